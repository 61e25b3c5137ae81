package generation

import (
	"encoding/json"
	"strings"
)

// flashcardCandidate is the loose shape a model response element may take.
// Field-level validation happens in the normalizer, not here.
type flashcardCandidate struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Hint       string   `json:"hint"`
	Difficulty string   `json:"difficulty"`
	Subject    string   `json:"subject"`
	Tags       []string `json:"tags"`
	Examples   []string `json:"examples"`
}

type quizCandidate struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer any      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	Points        any      `json:"points"`
	TimeLimit     any      `json:"timeLimit"`
}

// ExtractJSONArray locates the JSON array embedded in a raw model response.
// Code fences are stripped first; if the remainder is not wholly an array,
// the slice between the first '[' and the last ']' is taken.
func ExtractJSONArray(raw string) (string, error) {
	s := stripCodeFences(strings.TrimSpace(raw))

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s, nil
	}

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end <= start {
		return "", Errf(KindMalformedResponse, "no JSON array found in model response")
	}
	return s[start : end+1], nil
}

func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop the opening fence line (which may carry a language tag).
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseFlashcardCandidates decodes the response array element by element so
// that one malformed element skips that element instead of aborting the run.
// An unparsable array aborts with a malformed-response error.
func parseFlashcardCandidates(raw string) (cands []flashcardCandidate, skipped int, err error) {
	elements, err := decodeArray(raw)
	if err != nil {
		return nil, 0, err
	}
	for _, el := range elements {
		var c flashcardCandidate
		if json.Unmarshal(el, &c) != nil {
			skipped++
			continue
		}
		cands = append(cands, c)
	}
	return cands, skipped, nil
}

func parseQuizCandidates(raw string) (cands []quizCandidate, skipped int, err error) {
	elements, err := decodeArray(raw)
	if err != nil {
		return nil, 0, err
	}
	for _, el := range elements {
		var c quizCandidate
		if json.Unmarshal(el, &c) != nil {
			skipped++
			continue
		}
		cands = append(cands, c)
	}
	return cands, skipped, nil
}

func decodeArray(raw string) ([]json.RawMessage, error) {
	arr, err := ExtractJSONArray(raw)
	if err != nil {
		return nil, err
	}
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(arr), &elements); err != nil {
		return nil, Wrap(KindMalformedResponse, "parse response array", err)
	}
	return elements, nil
}
