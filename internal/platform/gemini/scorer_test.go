package gemini

import (
	"testing"

	"github.com/speakoai/speako-api/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const validReply = `{
	"fluency_score": 6.5,
	"pronunciation_score": 7.0,
	"grammar_score": 6.0,
	"vocabulary_score": 7.5,
	"overall_score": 6.5,
	"feedback": "Good range of vocabulary; work on pacing."
}`

func TestExtractText(t *testing.T) {
	t.Parallel()

	t.Run("concatenates text parts", func(t *testing.T) {
		t.Parallel()

		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "{\"overall_score\": "},
						{Text: "7.0}"},
					},
				},
			}},
		}

		text, err := extractText(resp)
		require.NoError(t, err)
		assert.Equal(t, `{"overall_score": 7.0}`, text)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		_, err := extractText(nil)
		assert.ErrorIs(t, err, scoring.ErrInvalidResult)
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()

		_, err := extractText(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, scoring.ErrInvalidResult)
	})

	t.Run("safety block", func(t *testing.T) {
		t.Parallel()

		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: "redacted"}}},
				FinishReason: genai.FinishReasonSafety,
			}},
		}

		_, err := extractText(resp)
		assert.ErrorIs(t, err, scoring.ErrInvalidResult)
	})
}

func TestParseResult(t *testing.T) {
	t.Parallel()

	t.Run("plain JSON", func(t *testing.T) {
		t.Parallel()

		result, err := parseResult(validReply)
		require.NoError(t, err)

		require.NotNil(t, result.Overall)
		assert.InDelta(t, 6.5, *result.Overall, 1e-9)
		require.NotNil(t, result.Vocabulary)
		assert.InDelta(t, 7.5, *result.Vocabulary, 1e-9)
		assert.Equal(t, "Good range of vocabulary; work on pacing.", result.Feedback)
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		t.Parallel()

		result, err := parseResult("```json\n" + validReply + "\n```")
		require.NoError(t, err)
		require.NotNil(t, result.Overall)
		assert.InDelta(t, 6.5, *result.Overall, 1e-9)
	})

	t.Run("partial scores are allowed", func(t *testing.T) {
		t.Parallel()

		result, err := parseResult(`{"overall_score": 7.0, "feedback": "Short but solid."}`)
		require.NoError(t, err)
		require.NotNil(t, result.Overall)
		assert.Nil(t, result.Fluency)
	})

	t.Run("not JSON", func(t *testing.T) {
		t.Parallel()

		_, err := parseResult("I'd rate this answer a solid seven.")
		assert.ErrorIs(t, err, scoring.ErrInvalidResult)
	})

	t.Run("score above range", func(t *testing.T) {
		t.Parallel()

		_, err := parseResult(`{"overall_score": 9.5}`)
		assert.ErrorIs(t, err, scoring.ErrInvalidResult)
	})

	t.Run("score below range", func(t *testing.T) {
		t.Parallel()

		_, err := parseResult(`{"grammar_score": -1}`)
		assert.ErrorIs(t, err, scoring.ErrInvalidResult)
	})
}
