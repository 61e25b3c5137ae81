package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studypilot/backend/internal/models"
)

func TestBuildPromptFlashcards(t *testing.T) {
	text := strings.Repeat("Photosynthesis converts light into chemical energy. ", 5)

	system, user, err := BuildPrompt(PromptInput{
		Kind:     models.ArtifactKindFlashcard,
		Text:     text,
		MaxItems: 15,
		Subject:  "Biology",
		Title:    "Chapter 4",
		Tags:     []string{"plants", "energy"},
	})
	require.NoError(t, err)

	assert.Contains(t, system, "at most 15 flashcards")
	assert.NotContains(t, system, "recognition noise")

	assert.Contains(t, user, "Document title: Chapter 4")
	assert.Contains(t, user, "Subject: Biology")
	assert.Contains(t, user, "Tags: plants, energy")
	assert.Contains(t, user, "CONTENT START")
	assert.Contains(t, user, "CONTENT END")
	assert.Contains(t, user, "Photosynthesis")
}

func TestBuildPromptRejectsShortInput(t *testing.T) {
	_, _, err := BuildPrompt(PromptInput{
		Kind:     models.ArtifactKindFlashcard,
		Text:     "too short",
		MaxItems: 10,
	})
	require.Error(t, err)
	assert.Equal(t, KindInsufficientContent, KindOf(err))

	// Quiz generation has a higher floor than flashcards.
	borderline := strings.Repeat("x", 80)
	_, _, err = BuildPrompt(PromptInput{
		Kind:     models.ArtifactKindQuiz,
		Text:     borderline,
		MaxItems: 10,
	})
	require.Error(t, err)
	assert.Equal(t, KindInsufficientContent, KindOf(err))

	_, _, err = BuildPrompt(PromptInput{
		Kind:     models.ArtifactKindFlashcard,
		Text:     borderline,
		MaxItems: 10,
	})
	assert.NoError(t, err)
}

func TestBuildPromptTruncatesLongInput(t *testing.T) {
	_, user, err := BuildPrompt(PromptInput{
		Kind:     models.ArtifactKindFlashcard,
		Text:     strings.Repeat("a", maxPromptChars+5000),
		MaxItems: 10,
	})
	require.NoError(t, err)
	assert.Less(t, len(user), maxPromptChars+200)
}

func TestBuildPromptOCRCaveat(t *testing.T) {
	text := strings.Repeat("Scanned lecture notes about thermodynamics. ", 5)

	system, _, err := BuildPrompt(PromptInput{
		Kind:      models.ArtifactKindFlashcard,
		Text:      text,
		MaxItems:  10,
		FromImage: true,
	})
	require.NoError(t, err)
	assert.Contains(t, system, "recognition noise")
}

func TestBuildPromptUnknownKind(t *testing.T) {
	_, _, err := BuildPrompt(PromptInput{
		Kind:     "essay",
		Text:     strings.Repeat("x", 200),
		MaxItems: 10,
	})
	require.Error(t, err)
	assert.Equal(t, Kind(""), KindOf(err))
}
