package generation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFlashcardDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"easy", "easy"},
		{"medium", "medium"},
		{"advanced", "advanced"},
		{"hard", "advanced"},
		{"HARD", "advanced"},
		{" Advanced ", "advanced"},
		{"expert", "medium"},
		{"", "medium"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeFlashcardDifficulty(tt.in), "in=%q", tt.in)
	}
}

func TestNormalizeQuizDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"easy", "easy"},
		{"hard", "hard"},
		{"advanced", "hard"},
		{"Medium", "medium"},
		{"impossible", "medium"},
		{"", "medium"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeQuizDifficulty(tt.in), "in=%q", tt.in)
	}
}

func TestNormalizeFlashcards(t *testing.T) {
	cands := []flashcardCandidate{
		{Question: "Q1", Answer: "A1", Difficulty: "hard"},
		{Question: "  ", Answer: "orphan answer"},
		{Question: "Q2", Answer: ""},
		{Question: "Q3", Answer: "A3", Subject: "Networking", Tags: []string{"tcp"}},
	}

	out, skipped := normalizeFlashcards(cands, 20, "General")
	assert.Equal(t, 2, skipped)
	require.Len(t, out, 2)

	assert.Equal(t, "advanced", out[0].Difficulty)
	assert.Equal(t, "General", out[0].Subject)
	assert.NotNil(t, out[0].Tags)
	assert.NotNil(t, out[0].Examples)

	assert.Equal(t, "Networking", out[1].Subject)
	assert.Equal(t, []string{"tcp"}, out[1].Tags)
}

func TestNormalizeFlashcardsTruncates(t *testing.T) {
	var cands []flashcardCandidate
	for i := 0; i < 30; i++ {
		cands = append(cands, flashcardCandidate{
			Question: fmt.Sprintf("Q%d", i),
			Answer:   fmt.Sprintf("A%d", i),
		})
	}

	out, skipped := normalizeFlashcards(cands, 20, "General")
	assert.Zero(t, skipped)
	assert.Len(t, out, 20)
}

func TestNormalizeQuizQuestions(t *testing.T) {
	cands := []quizCandidate{
		{Question: "Q1", Options: []string{"a", "b", "c"}, CorrectAnswer: float64(1)},
		{Question: "Q2", Options: []string{"only one"}, CorrectAnswer: float64(0)},
		{Question: "Q3", Options: []string{"a", "b"}, CorrectAnswer: nil},
		{Question: "Q4", Options: []string{"a", "b"}, CorrectAnswer: float64(9)},
		{Question: "Q5", Options: []string{"a", "b"}, CorrectAnswer: float64(-2)},
	}

	out, skipped := normalizeQuizQuestions(cands, 10, "General")
	assert.Equal(t, 2, skipped)
	require.Len(t, out, 3)

	assert.Equal(t, 1, out[0].CorrectIndex)
	assert.Equal(t, 1, out[1].CorrectIndex, "over-range index clamps to last option")
	assert.Equal(t, 0, out[2].CorrectIndex, "negative index clamps to zero")
}

func TestNormalizeQuizQuestionDefaults(t *testing.T) {
	cands := []quizCandidate{
		{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: float64(0)},
		{Question: "Q2", Options: []string{"a", "b"}, CorrectAnswer: float64(0), Points: "not a number", TimeLimit: float64(-5)},
		{Question: "Q3", Options: []string{"a", "b"}, CorrectAnswer: float64(0), Points: float64(25), TimeLimit: float64(90), Category: "Biology"},
	}

	out, skipped := normalizeQuizQuestions(cands, 10, "General")
	assert.Zero(t, skipped)
	require.Len(t, out, 3)

	assert.Equal(t, 10, out[0].Points)
	assert.Equal(t, 60, out[0].TimeLimitSeconds)
	assert.Equal(t, "General", out[0].Category)

	assert.Equal(t, 10, out[1].Points)
	assert.Equal(t, 60, out[1].TimeLimitSeconds)

	assert.Equal(t, 25, out[2].Points)
	assert.Equal(t, 90, out[2].TimeLimitSeconds)
	assert.Equal(t, "Biology", out[2].Category)
}
