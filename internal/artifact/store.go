package artifact

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studypilot/backend/internal/models"
)

// Store persists generated study artifacts. There is deliberately no
// uniqueness constraint on question text: dedup is the pipeline filter's
// job, scoped to (owner, document, kind).
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) CreateFlashcard(ctx context.Context, fc *models.Flashcard) error {
	tags, _ := json.Marshal(fc.Tags)
	examples, _ := json.Marshal(fc.Examples)

	err := s.db.QueryRow(ctx,
		`INSERT INTO flashcards (id, owner_id, document_id, question, answer, hint, difficulty, subject, tags, examples)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		fc.ID, fc.OwnerID, fc.DocumentID, fc.Question, fc.Answer, fc.Hint, fc.Difficulty, fc.Subject, tags, examples,
	).Scan(&fc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert flashcard: %w", err)
	}
	return nil
}

func (s *Store) CreateQuizQuestion(ctx context.Context, q *models.QuizQuestion) error {
	options, _ := json.Marshal(q.Options)

	err := s.db.QueryRow(ctx,
		`INSERT INTO quiz_questions (id, owner_id, document_id, question, options, correct_index, explanation, difficulty, category, points, time_limit_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at`,
		q.ID, q.OwnerID, q.DocumentID, q.Question, options, q.CorrectIndex, q.Explanation, q.Difficulty, q.Category, q.Points, q.TimeLimitSeconds,
	).Scan(&q.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz question: %w", err)
	}
	return nil
}

// QuestionExists answers the dedup check: an exact question-text match for
// the same owner, source document, and kind.
func (s *Store) QuestionExists(ctx context.Context, ownerID, documentID uuid.UUID, kind, question string) (bool, error) {
	var table string
	switch kind {
	case models.ArtifactKindFlashcard:
		table = "flashcards"
	case models.ArtifactKindQuiz:
		table = "quiz_questions"
	default:
		return false, fmt.Errorf("unknown artifact kind %q", kind)
	}

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+table+` WHERE owner_id = $1 AND document_id = $2 AND question = $3)`,
		ownerID, documentID, question,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check existing question: %w", err)
	}
	return exists, nil
}

func (s *Store) ListFlashcards(ctx context.Context, ownerID uuid.UUID, documentID *uuid.UUID, limit, offset int) ([]models.Flashcard, error) {
	query := `SELECT id, owner_id, document_id, question, answer, hint, difficulty, subject, tags, examples, created_at
		 FROM flashcards WHERE owner_id = $1`
	args := []any{ownerID}
	if documentID != nil {
		query += ` AND document_id = $2`
		args = append(args, *documentID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var fc models.Flashcard
		var tags, examples []byte
		if err := rows.Scan(&fc.ID, &fc.OwnerID, &fc.DocumentID, &fc.Question, &fc.Answer, &fc.Hint,
			&fc.Difficulty, &fc.Subject, &tags, &examples, &fc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan flashcard: %w", err)
		}
		_ = json.Unmarshal(tags, &fc.Tags)
		_ = json.Unmarshal(examples, &fc.Examples)
		cards = append(cards, fc)
	}
	return cards, rows.Err()
}

func (s *Store) ListQuizQuestions(ctx context.Context, ownerID uuid.UUID, documentID *uuid.UUID, limit, offset int) ([]models.QuizQuestion, error) {
	query := `SELECT id, owner_id, document_id, question, options, correct_index, explanation, difficulty, category, points, time_limit_seconds, created_at
		 FROM quiz_questions WHERE owner_id = $1`
	args := []any{ownerID}
	if documentID != nil {
		query += ` AND document_id = $2`
		args = append(args, *documentID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quiz questions: %w", err)
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	for rows.Next() {
		var q models.QuizQuestion
		var options []byte
		if err := rows.Scan(&q.ID, &q.OwnerID, &q.DocumentID, &q.Question, &options, &q.CorrectIndex,
			&q.Explanation, &q.Difficulty, &q.Category, &q.Points, &q.TimeLimitSeconds, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz question: %w", err)
		}
		_ = json.Unmarshal(options, &q.Options)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
