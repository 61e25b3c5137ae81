package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/studypilot/backend/internal/generation"
	"github.com/studypilot/backend/internal/queue"
)

// GenerationWorker consumes artifact:generate tasks and hands them to the
// orchestrator. Run failures are terminal: the orchestrator has already
// recorded them on the document and notified the owner, so the task is
// acked rather than retried.
type GenerationWorker struct {
	svc *generation.Service
}

func NewGenerationWorker(svc *generation.Service) *GenerationWorker {
	return &GenerationWorker{svc: svc}
}

func (w *GenerationWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.ArtifactGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	docID, err := uuid.Parse(payload.DocumentID)
	if err != nil {
		return fmt.Errorf("parse document ID: %w", err)
	}
	ownerID, err := uuid.Parse(payload.OwnerID)
	if err != nil {
		return fmt.Errorf("parse owner ID: %w", err)
	}

	slog.Info("generation run started",
		"document_id", docID,
		"kind", payload.Kind,
		"max_items", payload.MaxItems,
	)

	res, err := w.svc.Run(ctx, generation.Request{
		DocumentID: docID,
		OwnerID:    ownerID,
		Kind:       payload.Kind,
		MaxItems:   payload.MaxItems,
		Subject:    payload.Subject,
		Tags:       payload.Tags,
	})
	if err != nil {
		slog.Error("generation run failed",
			"document_id", docID,
			"kind", payload.Kind,
			"error_kind", generation.KindOf(err),
			"error", err,
		)
		return nil
	}

	slog.Info("generation run finished",
		"document_id", docID,
		"kind", payload.Kind,
		"created", res.Created,
		"duplicates", res.Duplicates,
		"skipped", res.Skipped,
	)
	return nil
}
