package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		telegramID  int64
		firstName   string
		username    *string
		expectedErr error
	}{
		{
			name:       "valid user",
			telegramID: 123456789,
			firstName:  "Alice",
			username:   strPtr("alice_speaks"),
		},
		{
			name:       "valid user without username",
			telegramID: 1,
			firstName:  "Bob",
		},
		{
			name:        "zero telegram ID",
			telegramID:  0,
			firstName:   "Alice",
			expectedErr: domain.ErrInvalidTelegramID,
		},
		{
			name:        "negative telegram ID",
			telegramID:  -5,
			firstName:   "Alice",
			expectedErr: domain.ErrInvalidTelegramID,
		},
		{
			name:        "empty first name",
			telegramID:  123,
			firstName:   "",
			expectedErr: domain.ErrEmptyFirstName,
		},
		{
			name:        "first name too long",
			telegramID:  123,
			firstName:   strings.Repeat("a", 26),
			expectedErr: domain.ErrFirstNameTooLong,
		},
		{
			name:        "username too long",
			telegramID:  123,
			firstName:   "Alice",
			username:    strPtr(strings.Repeat("u", 51)),
			expectedErr: domain.ErrUsernameTooLong,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := domain.NewUser(tt.telegramID, tt.firstName, tt.username)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tt.telegramID, user.TelegramID)
			assert.Equal(t, tt.firstName, user.FirstName)
			assert.Equal(t, tt.username, user.Username)
			assert.False(t, user.CreatedAt.IsZero())
		})
	}
}

func TestUserValidate_BoundaryLengths(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser(42, strings.Repeat("a", 25), strPtr(strings.Repeat("u", 50)))
	require.NoError(t, err)
	assert.NoError(t, user.Validate())
}

func TestUserValidate_NameLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	// Twenty Cyrillic characters take forty bytes; the 25 character cap
	// counts characters, so the name is valid.
	user, err := domain.NewUser(500, strings.Repeat("я", 20), nil)
	require.NoError(t, err)
	assert.Equal(t, 20, len([]rune(user.FirstName)))

	_, err = domain.NewUser(500, strings.Repeat("я", 26), nil)
	assert.ErrorIs(t, err, domain.ErrFirstNameTooLong)

	_, err = domain.NewUser(500, "Ana", strPtr(strings.Repeat("ё", 51)))
	assert.ErrorIs(t, err, domain.ErrUsernameTooLong)
}
