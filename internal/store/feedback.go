package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
)

// FeedbackStore defines the interface for feedback data persistence.
type FeedbackStore interface {
	// Create saves a new feedback entry to the store.
	// It handles domain validation internally.
	// The user existence check is performed by the calling service
	// inside a unit of work; a foreign key violation here maps to
	// ErrInvalidEntity as a backstop.
	Create(ctx context.Context, feedback *domain.Feedback) error

	// GetByID retrieves a feedback entry by its unique ID.
	// Returns ErrFeedbackNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)

	// ListByUser retrieves all feedback for a user,
	// ordered by creation time descending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error)

	// Update modifies an existing feedback entry.
	// Returns ErrFeedbackNotFound if the entry does not exist.
	Update(ctx context.Context, feedback *domain.Feedback) error

	// Delete removes a feedback entry from the store by its ID.
	// Returns ErrFeedbackNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new FeedbackStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) FeedbackStore
}
