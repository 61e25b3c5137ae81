package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	OwnerID            uuid.UUID  `json:"owner_id" db:"owner_id"`
	Title              string     `json:"title" db:"title"`
	FilePath           string     `json:"file_path,omitempty" db:"file_path"`
	MediaType          string     `json:"media_type" db:"media_type"`
	FileSizeBytes      int64      `json:"file_size_bytes,omitempty" db:"file_size_bytes"`
	Status             string     `json:"status" db:"status"`
	LastGeneratedCount int        `json:"last_generated_count" db:"last_generated_count"`
	LastGeneratedAt    *time.Time `json:"last_generated_at,omitempty" db:"last_generated_at"`
	LastError          *string    `json:"last_error,omitempty" db:"last_error"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// Generation status lifecycle: pending -> queued -> processing -> completed | failed.
// A new generation request restarts the cycle from queued regardless of the
// current state.
const (
	DocStatusPending    = "pending"
	DocStatusQueued     = "queued"
	DocStatusProcessing = "processing"
	DocStatusCompleted  = "completed"
	DocStatusFailed     = "failed"
)
