package generation

import (
	"fmt"
	"strings"

	"github.com/studypilot/backend/internal/models"
)

const (
	// Minimum extracted-text lengths below which a run fails without
	// calling the external service.
	minFlashcardChars = 60
	minQuizChars      = 100

	// Content beyond this is dropped, not summarized.
	maxPromptChars = 15000

	DefaultFlashcardMax = 20
	DefaultQuizMax      = 10
)

type PromptInput struct {
	Kind      string
	Text      string
	MaxItems  int
	Subject   string
	Title     string
	Tags      []string
	FromImage bool
}

const flashcardSystemPrompt = `You are a study assistant that turns source material into flashcards.
Respond with a JSON array only: no prose, no code fences. Each element is an
object with fields: "question" (string), "answer" (string), "hint" (string,
optional), "difficulty" (one of "easy", "medium", "advanced"), "subject"
(string), "tags" (array of strings), "examples" (array of strings, optional).
Create at most %d flashcards. Every question and answer must be grounded in
the supplied content; never invent facts that are not in it.`

const quizSystemPrompt = `You are a study assistant that turns source material into multiple-choice
quiz questions. Respond with a JSON array only: no prose, no code fences.
Each element is an object with fields: "question" (string), "options" (array
of 2 to 6 strings), "correctAnswer" (0-based integer index into options),
"explanation" (string), "category" (string), "difficulty" (one of "easy",
"medium", "hard"), "timeLimit" (seconds, integer). Create at most %d
questions. Every question must be answerable from the supplied content alone;
never invent facts that are not in it.`

const ocrCaveat = `
The content was extracted by optical character recognition and may contain
recognition noise. Tolerate misspelled or broken words and skip fragments
that carry no meaning.`

// BuildPrompt constructs the system and user instructions for one run. It
// rejects input that is too short for the requested kind and truncates input
// that exceeds the prompt budget.
func BuildPrompt(in PromptInput) (system, user string, err error) {
	text := strings.TrimSpace(in.Text)

	switch in.Kind {
	case models.ArtifactKindFlashcard:
		if len(text) < minFlashcardChars {
			return "", "", Errf(KindInsufficientContent,
				"not enough content for flashcard generation: %d chars, need at least %d", len(text), minFlashcardChars)
		}
		system = fmt.Sprintf(flashcardSystemPrompt, in.MaxItems)
	case models.ArtifactKindQuiz:
		if len(text) < minQuizChars {
			return "", "", Errf(KindInsufficientContent,
				"not enough content for quiz generation: %d chars, need at least %d", len(text), minQuizChars)
		}
		system = fmt.Sprintf(quizSystemPrompt, in.MaxItems)
	default:
		return "", "", fmt.Errorf("unknown artifact kind %q", in.Kind)
	}

	if in.FromImage {
		system += ocrCaveat
	}

	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	var b strings.Builder
	if in.Title != "" {
		fmt.Fprintf(&b, "Document title: %s\n", in.Title)
	}
	if in.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	}
	if len(in.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(in.Tags, ", "))
	}
	b.WriteString("\nCONTENT START\n")
	b.WriteString(text)
	b.WriteString("\nCONTENT END\n")

	return system, b.String(), nil
}
