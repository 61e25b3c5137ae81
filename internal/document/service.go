package document

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studypilot/backend/internal/models"
	"github.com/studypilot/backend/internal/storage"
)

const docColumns = `id, owner_id, title, file_path, media_type, file_size_bytes,
	status, last_generated_count, last_generated_at, last_error, created_at`

type Service struct {
	db      *pgxpool.Pool
	storage storage.Storage
	bucket  string
}

func NewService(db *pgxpool.Pool, store storage.Storage, bucket string) *Service {
	return &Service{db: db, storage: store, bucket: bucket}
}

type UploadRequest struct {
	OwnerID   uuid.UUID
	Title     string
	MediaType string
	FileSize  int64
	Data      io.Reader
}

func (s *Service) Upload(ctx context.Context, req UploadRequest) (*models.Document, error) {
	docID := uuid.New()
	path := fmt.Sprintf("%s/%s/%s", req.OwnerID, docID, time.Now().Format("20060102"))

	if err := s.storage.Upload(ctx, s.bucket, path, req.Data, req.MediaType); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	var doc models.Document
	err := s.db.QueryRow(ctx,
		`INSERT INTO documents (id, owner_id, title, file_path, media_type, file_size_bytes, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+docColumns,
		docID, req.OwnerID, req.Title, path, req.MediaType, req.FileSize, models.DocStatusPending,
	).Scan(scanTargets(&doc)...)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return &doc, nil
}

// Get fetches a document scoped to its owner. Used by the API surface.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(ctx,
		`SELECT `+docColumns+` FROM documents WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(scanTargets(&doc)...)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

// GetByID fetches a document without owner scoping. Used by generation runs,
// which carry the owner in the task payload rather than a request context.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(ctx,
		`SELECT `+docColumns+` FROM documents WHERE id = $1`,
		id,
	).Scan(scanTargets(&doc)...)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]models.Document, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+docColumns+` FROM documents
		 WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(scanTargets(&d)...); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	doc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if doc.FilePath != "" {
		_ = s.storage.Delete(ctx, s.bucket, doc.FilePath)
	}

	_, err = s.db.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return err
}

// Download returns the raw stored bytes for a document.
func (s *Service) Download(ctx context.Context, doc *models.Document) ([]byte, error) {
	reader, err := s.storage.Download(ctx, s.bucket, doc.FilePath)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// MarkQueued is the synchronous half of accepting a generation request. It
// overwrites whatever state the document is in; a re-trigger restarts the
// cycle regardless of any previous terminal state.
func (s *Service) MarkQueued(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE documents SET status = $1 WHERE id = $2`,
		models.DocStatusQueued, id,
	)
	return err
}

// MarkProcessing records that extraction has started and clears any error
// left over from a previous run.
func (s *Service) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE documents SET status = $1, last_error = NULL WHERE id = $2`,
		models.DocStatusProcessing, id,
	)
	return err
}

// MarkCompleted records a successful run. Zero newly created artifacts is a
// valid completion.
func (s *Service) MarkCompleted(ctx context.Context, id uuid.UUID, createdCount int) error {
	_, err := s.db.Exec(ctx,
		`UPDATE documents
		 SET status = $1, last_generated_count = $2, last_generated_at = now(), last_error = NULL
		 WHERE id = $3`,
		models.DocStatusCompleted, createdCount, id,
	)
	return err
}

// MarkFailed records the failure message verbatim.
func (s *Service) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE documents SET status = $1, last_error = $2 WHERE id = $3`,
		models.DocStatusFailed, message, id,
	)
	return err
}

func scanTargets(d *models.Document) []any {
	return []any{
		&d.ID, &d.OwnerID, &d.Title, &d.FilePath, &d.MediaType, &d.FileSizeBytes,
		&d.Status, &d.LastGeneratedCount, &d.LastGeneratedAt, &d.LastError, &d.CreatedAt,
	}
}
