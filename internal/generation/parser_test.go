package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray(t *testing.T) {
	bare := `[{"question":"Q","answer":"A"}]`

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare array", bare, bare},
		{"fenced array", "```json\n" + bare + "\n```", bare},
		{"fence without language tag", "```\n" + bare + "\n```", bare},
		{"surrounding prose", "Here are your cards:\n" + bare + "\nEnjoy!", bare},
		{"leading whitespace", "\n\n  " + bare + "  \n", bare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONArrayMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"I could not generate anything.",
		"{\"question\":\"not an array\"}",
		"]broken[",
	} {
		_, err := ExtractJSONArray(raw)
		require.Error(t, err, "raw=%q", raw)
		assert.Equal(t, KindMalformedResponse, KindOf(err))
	}
}

func TestParseFlashcardCandidatesSkipsBadElements(t *testing.T) {
	raw := `[
		{"question":"What is Go?","answer":"A language"},
		{"question":123,"answer":true},
		{"question":"What is chi?","answer":"A router"}
	]`

	cands, skipped, err := parseFlashcardCandidates(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, cands, 2)
	assert.Equal(t, "What is Go?", cands[0].Question)
	assert.Equal(t, "What is chi?", cands[1].Question)
}

func TestParseFlashcardCandidatesUnparsableArray(t *testing.T) {
	_, _, err := parseFlashcardCandidates(`[{"question":"truncated`)
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestParseQuizCandidatesLooseNumericFields(t *testing.T) {
	raw := `[
		{"question":"Pick one","options":["a","b","c"],"correctAnswer":1,"timeLimit":"45"},
		{"question":"Pick again","options":["x","y"],"correctAnswer":"0","points":5.0}
	]`

	cands, skipped, err := parseQuizCandidates(raw)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, cands, 2)

	idx, ok := toInt(cands[0].CorrectAnswer)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	limit, ok := toInt(cands[0].TimeLimit)
	require.True(t, ok)
	assert.Equal(t, 45, limit)

	points, ok := toInt(cands[1].Points)
	require.True(t, ok)
	assert.Equal(t, 5, points)
}
