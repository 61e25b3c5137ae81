package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studypilot/backend/internal/models"
)

const (
	flashcardResponseTokens = 4096
	quizResponseTokens      = 3000

	defaultTemperature = 0.3
	defaultCacheTTL    = 24 * time.Hour
)

type Config struct {
	Model          string
	Temperature    float64
	DefaultSubject string
	CacheTTL       time.Duration
}

// Service drives one generation run end to end: status transitions, content
// extraction, the external generation call, validation, dedup, persistence,
// and the completion notification.
type Service struct {
	docs      DocumentStore
	artifacts ArtifactStore
	extractor ContentExtractor
	generator TextGenerator
	cache     TextCache // may be nil
	notifier  Notifier  // may be nil
	cfg       Config
}

func NewService(
	docs DocumentStore,
	artifacts ArtifactStore,
	extractor ContentExtractor,
	generator TextGenerator,
	cache TextCache,
	notifier Notifier,
	cfg Config,
) *Service {
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.DefaultSubject == "" {
		cfg.DefaultSubject = "General"
	}
	return &Service{
		docs:      docs,
		artifacts: artifacts,
		extractor: extractor,
		generator: generator,
		cache:     cache,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// Request describes one generation run. It is ephemeral: consumed by Run and
// never retried.
type Request struct {
	DocumentID uuid.UUID
	OwnerID    uuid.UUID
	Kind       string // models.ArtifactKindFlashcard or models.ArtifactKindQuiz
	MaxItems   int
	Subject    string
	Tags       []string
}

type Result struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

// Run executes the pipeline for one document and one artifact kind. Any
// unrecoverable error marks the document failed with the error's message
// verbatim and emits a failure notification; the error is also returned for
// the caller's logging. Status writes are last-writer-wins: concurrent runs
// against the same document are not serialized here.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.MaxItems <= 0 {
		if req.Kind == models.ArtifactKindQuiz {
			req.MaxItems = DefaultQuizMax
		} else {
			req.MaxItems = DefaultFlashcardMax
		}
	}

	if err := s.docs.MarkProcessing(ctx, req.DocumentID); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}

	doc, err := s.docs.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, s.fail(ctx, req, fmt.Errorf("load document: %w", err))
	}

	content, err := s.extractContent(ctx, doc)
	if err != nil {
		return nil, s.fail(ctx, req, err)
	}

	subject := req.Subject
	if subject == "" {
		subject = s.cfg.DefaultSubject
	}

	system, user, err := BuildPrompt(PromptInput{
		Kind:      req.Kind,
		Text:      content.Text,
		MaxItems:  req.MaxItems,
		Subject:   subject,
		Title:     doc.Title,
		Tags:      req.Tags,
		FromImage: content.FromImage,
	})
	if err != nil {
		return nil, s.fail(ctx, req, err)
	}

	raw, err := s.generator.GenerateText(ctx, GenerateRequest{
		Model:       s.cfg.Model,
		System:      system,
		User:        user,
		Temperature: s.cfg.Temperature,
		MaxTokens:   responseBudget(req.Kind),
	})
	if err != nil {
		return nil, s.fail(ctx, req, err)
	}

	res, err := s.persistCandidates(ctx, req, subject, raw)
	if err != nil {
		return nil, s.fail(ctx, req, err)
	}

	if err := s.docs.MarkCompleted(ctx, req.DocumentID, res.Created); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}

	s.notify(req.OwnerID, EventArtifactsReady, map[string]any{
		"document_id": req.DocumentID.String(),
		"kind":        req.Kind,
		"created":     res.Created,
		"duplicates":  res.Duplicates,
	})

	return res, nil
}

// fail records the terminal failure and emits the failure notification. The
// original error passes through so callers can log it.
func (s *Service) fail(ctx context.Context, req Request, runErr error) error {
	if err := s.docs.MarkFailed(ctx, req.DocumentID, runErr.Error()); err != nil {
		slog.Error("record generation failure",
			"document_id", req.DocumentID,
			"error", err,
		)
	}
	s.notify(req.OwnerID, EventGenerationFailed, map[string]any{
		"document_id": req.DocumentID.String(),
		"kind":        req.Kind,
		"error":       runErr.Error(),
	})
	return runErr
}

func (s *Service) notify(ownerID uuid.UUID, event string, metadata map[string]any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ownerID, event, metadata)
}

// extractContent returns the document's plain text, consulting the cache
// first so regeneration of an unchanged document skips re-extraction. Cache
// failures fall through to extraction.
func (s *Service) extractContent(ctx context.Context, doc *models.Document) (*ExtractedContent, error) {
	key := "doc:" + doc.ID.String() + ":text"

	if s.cache != nil {
		var cached ExtractedContent
		if err := s.cache.Get(ctx, key, &cached); err == nil && cached.Text != "" {
			return &cached, nil
		}
	}

	data, err := s.docs.Download(ctx, doc)
	if err != nil {
		return nil, Wrap(KindExtractionFailed, "fetch stored document", err)
	}

	content, err := s.extractor.Extract(ctx, data, doc.MediaType)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, content, s.cfg.CacheTTL); err != nil {
			slog.Debug("cache extracted text", "document_id", doc.ID, "error", err)
		}
	}

	return content, nil
}

// persistCandidates parses, validates, dedupes, and stores the response.
// Per-item validation and duplicate hits only accumulate counters; the run
// fails only when zero valid candidates survive validation.
func (s *Service) persistCandidates(ctx context.Context, req Request, subject, raw string) (*Result, error) {
	res := &Result{}

	switch req.Kind {
	case models.ArtifactKindFlashcard:
		cands, malformed, err := parseFlashcardCandidates(raw)
		if err != nil {
			return nil, err
		}
		drafts, dropped := normalizeFlashcards(cands, req.MaxItems, subject)
		res.Skipped = malformed + dropped
		if len(drafts) == 0 {
			return nil, Errf(KindEmptyResult, "no valid flashcards in model response (%d candidates skipped)", res.Skipped)
		}

		for i := range drafts {
			fc := &drafts[i]
			exists, err := s.artifacts.QuestionExists(ctx, req.OwnerID, req.DocumentID, models.ArtifactKindFlashcard, fc.Question)
			if err != nil {
				return nil, fmt.Errorf("check duplicate flashcard: %w", err)
			}
			if exists {
				res.Duplicates++
				continue
			}
			fc.ID = uuid.New()
			fc.OwnerID = req.OwnerID
			fc.DocumentID = req.DocumentID
			if err := s.artifacts.CreateFlashcard(ctx, fc); err != nil {
				return nil, fmt.Errorf("persist flashcard: %w", err)
			}
			res.Created++
		}

	case models.ArtifactKindQuiz:
		cands, malformed, err := parseQuizCandidates(raw)
		if err != nil {
			return nil, err
		}
		drafts, dropped := normalizeQuizQuestions(cands, req.MaxItems, subject)
		res.Skipped = malformed + dropped
		if len(drafts) == 0 {
			return nil, Errf(KindEmptyResult, "no valid quiz questions in model response (%d candidates skipped)", res.Skipped)
		}

		for i := range drafts {
			q := &drafts[i]
			exists, err := s.artifacts.QuestionExists(ctx, req.OwnerID, req.DocumentID, models.ArtifactKindQuiz, q.Question)
			if err != nil {
				return nil, fmt.Errorf("check duplicate quiz question: %w", err)
			}
			if exists {
				res.Duplicates++
				continue
			}
			q.ID = uuid.New()
			q.OwnerID = req.OwnerID
			q.DocumentID = req.DocumentID
			if err := s.artifacts.CreateQuizQuestion(ctx, q); err != nil {
				return nil, fmt.Errorf("persist quiz question: %w", err)
			}
			res.Created++
		}

	default:
		return nil, fmt.Errorf("unknown artifact kind %q", req.Kind)
	}

	return res, nil
}

func responseBudget(kind string) int {
	if kind == models.ArtifactKindQuiz {
		return quizResponseTokens
	}
	return flashcardResponseTokens
}
