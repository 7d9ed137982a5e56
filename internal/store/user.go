package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation internally.
	// Returns ErrTelegramIDExists if the telegram ID is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their internal ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByTelegramID retrieves a user by their external telegram ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)

	// List retrieves all users ordered by creation time descending.
	List(ctx context.Context) ([]*domain.User, error)

	// Update modifies an existing user's details.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrTelegramIDExists if updating to a telegram ID that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUserHasDependents if responses or feedback still
	// reference the user; deletion is refused rather than cascaded.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
