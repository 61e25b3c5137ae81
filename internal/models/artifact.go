package models

import (
	"time"

	"github.com/google/uuid"
)

// Artifact kinds a generation run can produce.
const (
	ArtifactKindFlashcard = "flashcard"
	ArtifactKindQuiz      = "quiz"
)

type Flashcard struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OwnerID    uuid.UUID `json:"owner_id" db:"owner_id"`
	DocumentID uuid.UUID `json:"document_id" db:"document_id"`
	Question   string    `json:"question" db:"question"`
	Answer     string    `json:"answer" db:"answer"`
	Hint       string    `json:"hint,omitempty" db:"hint"`
	Difficulty string    `json:"difficulty" db:"difficulty"` // easy, medium, advanced
	Subject    string    `json:"subject" db:"subject"`
	Tags       []string  `json:"tags" db:"tags"`
	Examples   []string  `json:"examples" db:"examples"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type QuizQuestion struct {
	ID               uuid.UUID `json:"id" db:"id"`
	OwnerID          uuid.UUID `json:"owner_id" db:"owner_id"`
	DocumentID       uuid.UUID `json:"document_id" db:"document_id"`
	Question         string    `json:"question" db:"question"`
	Options          []string  `json:"options" db:"options"` // 2-6 entries
	CorrectIndex     int       `json:"correct_index" db:"correct_index"`
	Explanation      string    `json:"explanation,omitempty" db:"explanation"`
	Difficulty       string    `json:"difficulty" db:"difficulty"` // easy, medium, hard
	Category         string    `json:"category" db:"category"`
	Points           int       `json:"points" db:"points"`
	TimeLimitSeconds int       `json:"time_limit_seconds" db:"time_limit_seconds"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
