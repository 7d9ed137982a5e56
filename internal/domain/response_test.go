package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

const answerText = "I usually spend my weekends reading and hiking with friends."

func TestNewResponse(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	questionID := uuid.New()

	t.Run("valid response", func(t *testing.T) {
		t.Parallel()

		response, err := domain.NewResponse(userID, questionID, answerText)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, response.ID)
		assert.Equal(t, userID, response.UserID)
		assert.Equal(t, questionID, response.QuestionID)
		assert.Nil(t, response.OverallScore)
	})

	t.Run("empty user ID", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewResponse(uuid.Nil, questionID, answerText)
		assert.ErrorIs(t, err, domain.ErrEmptyResponseUserID)
	})

	t.Run("empty question ID", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewResponse(userID, uuid.Nil, answerText)
		assert.ErrorIs(t, err, domain.ErrEmptyResponseQuestion)
	})

	t.Run("answer text too short", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewResponse(userID, questionID, "short")
		assert.ErrorIs(t, err, domain.ErrResponseTextTooShort)
	})
}

func TestResponseValidate_ScoreRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*domain.Response)
		wantErr bool
	}{
		{
			name: "all scores in range",
			mutate: func(r *domain.Response) {
				r.FluencyScore = floatPtr(6.5)
				r.PronunciationScore = floatPtr(7.0)
				r.GrammarScore = floatPtr(5.5)
				r.VocabularyScore = floatPtr(8.0)
				r.OverallScore = floatPtr(6.5)
			},
		},
		{
			name: "boundary scores accepted",
			mutate: func(r *domain.Response) {
				r.FluencyScore = floatPtr(0.0)
				r.OverallScore = floatPtr(9.0)
			},
		},
		{
			name:    "overall above range",
			mutate:  func(r *domain.Response) { r.OverallScore = floatPtr(9.5) },
			wantErr: true,
		},
		{
			name:    "grammar below range",
			mutate:  func(r *domain.Response) { r.GrammarScore = floatPtr(-0.5) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			response, err := domain.NewResponse(uuid.New(), uuid.New(), answerText)
			require.NoError(t, err)

			tt.mutate(response)
			err = response.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrScoreOutOfRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResponseValidate_TextLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	// Five CJK characters are fifteen bytes but still well below the
	// ten character minimum.
	_, err := domain.NewResponse(uuid.New(), uuid.New(), "我喜欢读书")
	assert.ErrorIs(t, err, domain.ErrResponseTextTooShort)

	// A multibyte answer of more than ten characters is valid.
	response, err := domain.NewResponse(uuid.New(), uuid.New(), "Я отвечаю по-русски каждый день.")
	require.NoError(t, err)
	assert.NotNil(t, response)
}

func TestNewFeedback(t *testing.T) {
	t.Parallel()

	t.Run("valid feedback", func(t *testing.T) {
		t.Parallel()

		feedback, err := domain.NewFeedback(uuid.New(), "Work on linking words to improve fluency.")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, feedback.ID)
	})

	t.Run("comment too short", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewFeedback(uuid.New(), "short")
		assert.ErrorIs(t, err, domain.ErrCommentTooShort)
	})

	t.Run("empty user ID", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewFeedback(uuid.Nil, "Work on linking words to improve fluency.")
		assert.ErrorIs(t, err, domain.ErrEmptyFeedbackUserID)
	})
}
