package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studypilot/backend/internal/models"
)

type fakeDocStore struct {
	doc       *models.Document
	statuses  []string
	lastError string
	lastCount int
	data      []byte
}

func (f *fakeDocStore) GetByID(_ context.Context, id uuid.UUID) (*models.Document, error) {
	if f.doc == nil || f.doc.ID != id {
		return nil, fmt.Errorf("document not found")
	}
	return f.doc, nil
}

func (f *fakeDocStore) Download(_ context.Context, _ *models.Document) ([]byte, error) {
	return f.data, nil
}

func (f *fakeDocStore) MarkProcessing(_ context.Context, _ uuid.UUID) error {
	f.statuses = append(f.statuses, models.DocStatusProcessing)
	return nil
}

func (f *fakeDocStore) MarkCompleted(_ context.Context, _ uuid.UUID, createdCount int) error {
	f.statuses = append(f.statuses, models.DocStatusCompleted)
	f.lastCount = createdCount
	return nil
}

func (f *fakeDocStore) MarkFailed(_ context.Context, _ uuid.UUID, message string) error {
	f.statuses = append(f.statuses, models.DocStatusFailed)
	f.lastError = message
	return nil
}

type fakeArtifactStore struct {
	flashcards []models.Flashcard
	questions  []models.QuizQuestion
	existing   map[string]bool
}

func (f *fakeArtifactStore) CreateFlashcard(_ context.Context, fc *models.Flashcard) error {
	f.flashcards = append(f.flashcards, *fc)
	return nil
}

func (f *fakeArtifactStore) CreateQuizQuestion(_ context.Context, q *models.QuizQuestion) error {
	f.questions = append(f.questions, *q)
	return nil
}

func (f *fakeArtifactStore) QuestionExists(_ context.Context, _, _ uuid.UUID, kind, question string) (bool, error) {
	if f.existing[kind+"|"+question] {
		return true, nil
	}
	for _, fc := range f.flashcards {
		if kind == models.ArtifactKindFlashcard && fc.Question == question {
			return true, nil
		}
	}
	for _, q := range f.questions {
		if kind == models.ArtifactKindQuiz && q.Question == question {
			return true, nil
		}
	}
	return false, nil
}

type fakeExtractor struct {
	content *ExtractedContent
	err     error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, _ string) (*ExtractedContent, error) {
	return f.content, f.err
}

type fakeGenerator struct {
	response string
	err      error
	calls    int
	lastReq  GenerateRequest
}

func (f *fakeGenerator) GenerateText(_ context.Context, req GenerateRequest) (string, error) {
	f.calls++
	f.lastReq = req
	return f.response, f.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) Notify(_ uuid.UUID, event string, _ map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeNotifier) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func testDocument() *models.Document {
	return &models.Document{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Title:     "Cell Biology Notes",
		MediaType: "application/pdf",
		Status:    models.DocStatusQueued,
		CreatedAt: time.Now(),
	}
}

func flashcardResponse(n int) string {
	var items []string
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(
			`{"question":"What is concept %d?","answer":"Definition %d","difficulty":"medium"}`, i, i))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func newTestService(docs *fakeDocStore, artifacts *fakeArtifactStore, ext *fakeExtractor, gen *fakeGenerator, n *fakeNotifier) *Service {
	var notifier Notifier
	if n != nil {
		notifier = n
	}
	return NewService(docs, artifacts, ext, gen, nil, notifier, Config{
		Model:          "claude-sonnet-4-20250514",
		DefaultSubject: "General",
	})
}

func TestRunFlashcardsHappyPath(t *testing.T) {
	doc := testDocument()
	docs := &fakeDocStore{doc: doc, data: []byte("pdf bytes")}
	artifacts := &fakeArtifactStore{}
	ext := &fakeExtractor{content: &ExtractedContent{
		Text:  strings.Repeat("The mitochondria is the powerhouse of the cell. ", 10),
		Pages: 3,
	}}
	gen := &fakeGenerator{response: flashcardResponse(6)}
	notifier := &fakeNotifier{}

	svc := newTestService(docs, artifacts, ext, gen, notifier)

	res, err := svc.Run(context.Background(), Request{
		DocumentID: doc.ID,
		OwnerID:    doc.OwnerID,
		Kind:       models.ArtifactKindFlashcard,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Created)
	assert.Zero(t, res.Duplicates)
	assert.Zero(t, res.Skipped)
	assert.Len(t, artifacts.flashcards, 6)

	for _, fc := range artifacts.flashcards {
		assert.Equal(t, doc.OwnerID, fc.OwnerID)
		assert.Equal(t, doc.ID, fc.DocumentID)
		assert.NotEqual(t, uuid.Nil, fc.ID)
	}

	assert.Equal(t, []string{models.DocStatusProcessing, models.DocStatusCompleted}, docs.statuses)
	assert.Equal(t, 6, docs.lastCount)
	assert.Equal(t, []string{EventArtifactsReady}, notifier.Events())

	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.lastReq.System, "at most 20 flashcards", "default maximum applies when unset")
	assert.Equal(t, 4096, gen.lastReq.MaxTokens)
}

func TestRunDedupIsIdempotent(t *testing.T) {
	doc := testDocument()
	docs := &fakeDocStore{doc: doc, data: []byte("pdf bytes")}
	artifacts := &fakeArtifactStore{}
	ext := &fakeExtractor{content: &ExtractedContent{
		Text: strings.Repeat("Entropy always increases in an isolated system. ", 10),
	}}
	gen := &fakeGenerator{response: flashcardResponse(4)}

	svc := newTestService(docs, artifacts, ext, gen, nil)
	req := Request{DocumentID: doc.ID, OwnerID: doc.OwnerID, Kind: models.ArtifactKindFlashcard}

	res, err := svc.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Created)
	assert.Zero(t, res.Duplicates)

	// Re-running against the same response creates nothing new.
	res, err = svc.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Equal(t, 4, res.Duplicates)
	assert.Len(t, artifacts.flashcards, 4)

	// A zero-creation rerun is still a successful completion.
	assert.Equal(t, models.DocStatusCompleted, docs.statuses[len(docs.statuses)-1])
	assert.Zero(t, docs.lastCount)
}

func TestRunInsufficientContentSkipsGenerator(t *testing.T) {
	doc := testDocument()
	docs := &fakeDocStore{doc: doc, data: []byte("x")}
	artifacts := &fakeArtifactStore{}
	ext := &fakeExtractor{content: &ExtractedContent{Text: "too short"}}
	gen := &fakeGenerator{response: flashcardResponse(3)}
	notifier := &fakeNotifier{}

	svc := newTestService(docs, artifacts, ext, gen, notifier)

	_, err := svc.Run(context.Background(), Request{
		DocumentID: doc.ID,
		OwnerID:    doc.OwnerID,
		Kind:       models.ArtifactKindFlashcard,
	})
	require.Error(t, err)
	assert.Equal(t, KindInsufficientContent, KindOf(err))

	assert.Zero(t, gen.calls, "short content must not reach the external service")
	assert.Equal(t, models.DocStatusFailed, docs.statuses[len(docs.statuses)-1])
	assert.NotEmpty(t, docs.lastError)
	assert.Equal(t, []string{EventGenerationFailed}, notifier.Events())
}

func TestRunExtractionFailureMarksFailed(t *testing.T) {
	doc := testDocument()
	docs := &fakeDocStore{doc: doc, data: []byte("bytes")}
	artifacts := &fakeArtifactStore{}
	ext := &fakeExtractor{err: Errf(KindUnsupportedFormat, "unsupported media type: application/zip")}
	gen := &fakeGenerator{}
	notifier := &fakeNotifier{}

	svc := newTestService(docs, artifacts, ext, gen, notifier)

	_, err := svc.Run(context.Background(), Request{
		DocumentID: doc.ID,
		OwnerID:    doc.OwnerID,
		Kind:       models.ArtifactKindFlashcard,
	})
	require.Error(t, err)
	assert.Equal(t, KindUnsupportedFormat, KindOf(err))
	assert.Zero(t, gen.calls)

	assert.Equal(t, models.DocStatusFailed, docs.statuses[len(docs.statuses)-1])
	assert.Equal(t, "unsupported media type: application/zip", docs.lastError)
	assert.Equal(t, []string{EventGenerationFailed}, notifier.Events())
}

func TestRunQuizDropsInvalidCandidates(t *testing.T) {
	doc := testDocument()
	docs := &fakeDocStore{doc: doc, data: []byte("bytes")}
	artifacts := &fakeArtifactStore{}
	ext := &fakeExtractor{content: &ExtractedContent{
		Text: strings.Repeat("Newton's second law relates force, mass, and acceleration. ", 10),
	}}
	gen := &fakeGenerator{response: `[
		{"question":"Q1","options":["a","b","c"],"correctAnswer":0},
		{"question":"Q2","options":["only"],"correctAnswer":0},
		{"question":"Q3","options":["a","b"],"correctAnswer":1},
		{"question":"Q4","options":["a","b","c","d"],"correctAnswer":3}
	]`}

	svc := newTestService(docs, artifacts, ext, gen, nil)

	res, err := svc.Run(context.Background(), Request{
		DocumentID: doc.ID,
		OwnerID:    doc.OwnerID,
		Kind:       models.ArtifactKindQuiz,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, artifacts.questions, 3)
	assert.Equal(t, 3000, gen.lastReq.MaxTokens)
	assert.Contains(t, gen.lastReq.System, "at most 10")
}

func TestRunEmptyResultFails(t *testing.T) {
	doc := testDocument()
	docs := &fakeDocStore{doc: doc, data: []byte("bytes")}
	artifacts := &fakeArtifactStore{}
	ext := &fakeExtractor{content: &ExtractedContent{
		Text: strings.Repeat("Valid content about the French Revolution. ", 10),
	}}
	gen := &fakeGenerator{response: `[{"question":"","answer":""}]`}

	svc := newTestService(docs, artifacts, ext, gen, nil)

	_, err := svc.Run(context.Background(), Request{
		DocumentID: doc.ID,
		OwnerID:    doc.OwnerID,
		Kind:       models.ArtifactKindFlashcard,
	})
	require.Error(t, err)
	assert.Equal(t, KindEmptyResult, KindOf(err))
	assert.Empty(t, artifacts.flashcards)
	assert.Equal(t, models.DocStatusFailed, docs.statuses[len(docs.statuses)-1])
}

func TestRunMalformedResponseFails(t *testing.T) {
	doc := testDocument()
	docs := &fakeDocStore{doc: doc, data: []byte("bytes")}
	artifacts := &fakeArtifactStore{}
	ext := &fakeExtractor{content: &ExtractedContent{
		Text: strings.Repeat("Valid content about linear algebra. ", 10),
	}}
	gen := &fakeGenerator{response: "Sorry, I cannot help with that."}

	svc := newTestService(docs, artifacts, ext, gen, nil)

	_, err := svc.Run(context.Background(), Request{
		DocumentID: doc.ID,
		OwnerID:    doc.OwnerID,
		Kind:       models.ArtifactKindFlashcard,
	})
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
	assert.Equal(t, models.DocStatusFailed, docs.statuses[len(docs.statuses)-1])
}
