package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		part        int
		text        string
		category    *string
		expectedErr error
	}{
		{
			name: "valid part 1 question",
			part: 1,
			text: "Describe your hometown and what you like about it.",
		},
		{
			name:     "valid part 3 question with category",
			part:     3,
			text:     "How has technology changed the way people communicate?",
			category: strPtr("Technology"),
		},
		{
			name:        "part below range",
			part:        0,
			text:        "Describe your hometown and what you like about it.",
			expectedErr: domain.ErrInvalidPart,
		},
		{
			name:        "part above range",
			part:        4,
			text:        "Describe your hometown and what you like about it.",
			expectedErr: domain.ErrInvalidPart,
		},
		{
			name:        "question text too short",
			part:        2,
			text:        "Too short",
			expectedErr: domain.ErrQuestionTextTooShort,
		},
		{
			name:        "category too long",
			part:        2,
			text:        "Describe a memorable trip you have taken recently.",
			category:    strPtr(strings.Repeat("c", 101)),
			expectedErr: domain.ErrCategoryTooLong,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			question, err := domain.NewQuestion(tt.part, tt.text, nil, tt.category)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, question)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, question)
			assert.NotEqual(t, uuid.Nil, question.ID)
			assert.Equal(t, tt.part, question.Part)
			assert.Equal(t, tt.text, question.Text)
		})
	}
}
