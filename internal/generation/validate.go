package generation

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/studypilot/backend/internal/models"
)

const (
	defaultQuizPoints    = 10
	defaultQuizTimeLimit = 60

	minQuizOptions = 2
	maxQuizOptions = 6
)

// normalizeFlashcards filters malformed candidates and maps free-form
// fields onto the closed flashcard vocabulary. The result is truncated to
// the requested maximum.
func normalizeFlashcards(cands []flashcardCandidate, max int, defaultSubject string) (out []models.Flashcard, skipped int) {
	for _, c := range cands {
		question := strings.TrimSpace(c.Question)
		answer := strings.TrimSpace(c.Answer)
		if question == "" || answer == "" {
			skipped++
			continue
		}

		subject := strings.TrimSpace(c.Subject)
		if subject == "" {
			subject = defaultSubject
		}

		tags := c.Tags
		if tags == nil {
			tags = []string{}
		}
		examples := c.Examples
		if examples == nil {
			examples = []string{}
		}

		out = append(out, models.Flashcard{
			Question:   question,
			Answer:     answer,
			Hint:       strings.TrimSpace(c.Hint),
			Difficulty: normalizeFlashcardDifficulty(c.Difficulty),
			Subject:    subject,
			Tags:       tags,
			Examples:   examples,
		})
	}

	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out, skipped
}

// normalizeQuizQuestions filters malformed candidates, clamps the correct
// index into range, and applies point/time defaults. The result is truncated
// to the requested maximum.
func normalizeQuizQuestions(cands []quizCandidate, max int, defaultCategory string) (out []models.QuizQuestion, skipped int) {
	for _, c := range cands {
		question := strings.TrimSpace(c.Question)
		if question == "" {
			skipped++
			continue
		}
		if len(c.Options) < minQuizOptions || len(c.Options) > maxQuizOptions {
			skipped++
			continue
		}

		idx, ok := toInt(c.CorrectAnswer)
		if !ok {
			skipped++
			continue
		}
		// Out-of-range indices are clamped, not rejected.
		if idx < 0 {
			idx = 0
		}
		if idx >= len(c.Options) {
			idx = len(c.Options) - 1
		}

		points, ok := toInt(c.Points)
		if !ok || points <= 0 {
			points = defaultQuizPoints
		}
		timeLimit, ok := toInt(c.TimeLimit)
		if !ok || timeLimit <= 0 {
			timeLimit = defaultQuizTimeLimit
		}

		category := strings.TrimSpace(c.Category)
		if category == "" {
			category = defaultCategory
		}

		out = append(out, models.QuizQuestion{
			Question:         question,
			Options:          c.Options,
			CorrectIndex:     idx,
			Explanation:      strings.TrimSpace(c.Explanation),
			Difficulty:       normalizeQuizDifficulty(c.Difficulty),
			Category:         category,
			Points:           points,
			TimeLimitSeconds: timeLimit,
		})
	}

	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out, skipped
}

// Flashcards use {easy, medium, advanced}; "hard" folds into "advanced" and
// anything unrecognized into "medium".
func normalizeFlashcardDifficulty(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return "easy"
	case "medium":
		return "medium"
	case "advanced", "hard":
		return "advanced"
	default:
		return "medium"
	}
}

// Quiz questions use {easy, medium, hard}; "advanced" folds into "hard" and
// anything unrecognized into "medium".
func normalizeQuizDifficulty(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return "easy"
	case "medium":
		return "medium"
	case "hard", "advanced":
		return "hard"
	default:
		return "medium"
	}
}

// toInt coerces the loosely typed numeric fields a model may emit: JSON
// numbers decode as float64, but numeric strings show up too.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return int(i), true
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}
