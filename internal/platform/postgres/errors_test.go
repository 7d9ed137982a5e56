package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/speakoai/speako-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil error",
			input:    nil,
			expected: nil,
		},
		{
			name:     "no rows maps to not found",
			input:    sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name:     "wrapped no rows maps to not found",
			input:    fmt.Errorf("query failed: %w", sql.ErrNoRows),
			expected: store.ErrNotFound,
		},
		{
			name:     "unique violation maps to duplicate",
			input:    pgError("23505", "users_telegram_id_key"),
			expected: store.ErrDuplicate,
		},
		{
			name:     "foreign key violation maps to invalid entity",
			input:    pgError("23503", "user_responses_user_id_fkey"),
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "check violation maps to invalid entity",
			input:    pgError("23514", "user_responses_overall_score_check"),
			expected: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapped := MapError(tt.input)
			if tt.expected == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.expected)
		})
	}

	t.Run("unrecognized error passes through", func(t *testing.T) {
		t.Parallel()

		plain := errors.New("connection reset")
		assert.Equal(t, plain, MapError(plain))
	})
}

func TestIsViolationHelpers(t *testing.T) {
	t.Parallel()

	unique := pgError("23505", "users_telegram_id_key")
	fk := pgError("23503", "feedbacks_user_id_fkey")

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("zero rows returns the not-found error", func(t *testing.T) {
		t.Parallel()

		result := sqlmock.NewResult(0, 0)
		err := CheckRowsAffected(result, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("affected rows return nil", func(t *testing.T) {
		t.Parallel()

		result := sqlmock.NewResult(0, 1)
		require.NoError(t, CheckRowsAffected(result, store.ErrUserNotFound))
	})

	t.Run("rows affected failure is surfaced", func(t *testing.T) {
		t.Parallel()

		result := sqlmock.NewErrorResult(errors.New("driver does not support RowsAffected"))
		err := CheckRowsAffected(result, store.ErrUserNotFound)
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrUserNotFound)
	})
}
