package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
)

// UserScoreAggregate is one row of the per-user score rollup: how many
// responses a user has, how many of those carry an overall score, and
// the mean of the scored ones. MeanOverall is meaningful only when
// ScoredCount > 0.
type UserScoreAggregate struct {
	UserID         uuid.UUID
	TotalResponses int
	ScoredCount    int
	MeanOverall    float64
}

// ResponseStore defines the interface for practice response persistence.
type ResponseStore interface {
	// Create saves a new response to the store.
	// It handles domain validation internally, including score ranges.
	// The referential checks against user and question are performed by
	// the calling service inside a unit of work, so a missing parent is
	// surfaced as a distinct not-found error before this method runs;
	// a foreign key violation here maps to ErrInvalidEntity as a backstop.
	Create(ctx context.Context, response *domain.Response) error

	// GetByID retrieves a response by its unique ID.
	// Returns ErrResponseNotFound if the response does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Response, error)

	// ListByUser retrieves all responses submitted by a user,
	// ordered by creation time descending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Response, error)

	// ListByQuestion retrieves all responses to a question,
	// ordered by creation time descending.
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Response, error)

	// AggregateOverallScores rolls up response counts and the mean
	// overall score per user in one grouped query, covering every user
	// with at least one response.
	AggregateOverallScores(ctx context.Context) ([]UserScoreAggregate, error)

	// Update modifies an existing response.
	// Returns ErrResponseNotFound if the response does not exist.
	Update(ctx context.Context, response *domain.Response) error

	// Delete removes a response from the store by its ID.
	// Returns ErrResponseNotFound if the response does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ResponseStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ResponseStore
}
