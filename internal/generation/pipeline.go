package generation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studypilot/backend/internal/models"
)

// Notification event types emitted on terminal run states.
const (
	EventArtifactsReady   = "artifacts.ready"
	EventGenerationFailed = "generation.failed"
)

// ExtractedContent is the plain-text form of a stored document.
type ExtractedContent struct {
	Text      string `json:"text"`
	Pages     int    `json:"pages"`
	FromImage bool   `json:"from_image"`
}

// ContentExtractor converts stored document bytes into plain text.
type ContentExtractor interface {
	Extract(ctx context.Context, data []byte, mediaType string) (*ExtractedContent, error)
}

// GenerateRequest is a single instruction to the external text service.
type GenerateRequest struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// TextGenerator is the seam to the external generative text service. A call
// happens at most once per run; implementations must not retry.
type TextGenerator interface {
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)
}

// DocumentStore is the slice of the document service a run needs: loading
// the document and its bytes, and driving the status machine.
type DocumentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	Download(ctx context.Context, doc *models.Document) ([]byte, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, createdCount int) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
}

// ArtifactStore persists accepted artifacts and answers the dedup
// existence check. The check-then-insert pair is best effort, not atomic.
type ArtifactStore interface {
	CreateFlashcard(ctx context.Context, fc *models.Flashcard) error
	CreateQuizQuestion(ctx context.Context, q *models.QuizQuestion) error
	QuestionExists(ctx context.Context, ownerID, documentID uuid.UUID, kind, question string) (bool, error)
}

// Notifier delivers a fire-and-forget user signal. Implementations must
// never block the run or surface delivery failures.
type Notifier interface {
	Notify(ownerID uuid.UUID, event string, metadata map[string]any)
}

// TextCache is an optional cache for extracted text keyed by document.
type TextCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
