package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
)

// AnyPart selects questions from every part when passed to List.
const AnyPart = 0

// QuestionStore defines the interface for question data persistence.
type QuestionStore interface {
	// Create saves a new question to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, question *domain.Question) error

	// GetByID retrieves a question by its unique ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// List retrieves questions ordered by creation time descending.
	// A part of AnyPart returns the whole pool; 1..3 filters by part.
	List(ctx context.Context, part int) ([]*domain.Question, error)

	// Update modifies an existing question.
	// Returns ErrQuestionNotFound if the question does not exist.
	Update(ctx context.Context, question *domain.Question) error

	// Delete removes a question from the store by its ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new QuestionStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) QuestionStore
}
