package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/store"
)

// MockFeedbackStore implements store.FeedbackStore for testing
type MockFeedbackStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, feedback *domain.Feedback) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error)
	UpdateFn     func(ctx context.Context, feedback *domain.Feedback) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	// Feedbacks holds the default implementation's data in insertion order.
	Feedbacks []*domain.Feedback

	CreateError error
}

// Ensure MockFeedbackStore implements store.FeedbackStore
var _ store.FeedbackStore = (*MockFeedbackStore)(nil)

// NewMockFeedbackStore creates a new mock store with initialized defaults
func NewMockFeedbackStore() *MockFeedbackStore {
	return &MockFeedbackStore{}
}

// Create implements the FeedbackStore interface
func (m *MockFeedbackStore) Create(ctx context.Context, feedback *domain.Feedback) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, feedback)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Feedbacks = append(m.Feedbacks, feedback)
	return nil
}

// GetByID implements the FeedbackStore interface
func (m *MockFeedbackStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, feedback := range m.Feedbacks {
		if feedback.ID == id {
			return feedback, nil
		}
	}

	return nil, store.ErrFeedbackNotFound
}

// ListByUser implements the FeedbackStore interface
func (m *MockFeedbackStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	// Newest first.
	matches := make([]*domain.Feedback, 0, len(m.Feedbacks))
	for i := len(m.Feedbacks) - 1; i >= 0; i-- {
		if m.Feedbacks[i].UserID == userID {
			matches = append(matches, m.Feedbacks[i])
		}
	}
	return matches, nil
}

// Update implements the FeedbackStore interface
func (m *MockFeedbackStore) Update(ctx context.Context, feedback *domain.Feedback) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, feedback)
	}

	for i, existing := range m.Feedbacks {
		if existing.ID == feedback.ID {
			m.Feedbacks[i] = feedback
			return nil
		}
	}

	return store.ErrFeedbackNotFound
}

// Delete implements the FeedbackStore interface
func (m *MockFeedbackStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for i, existing := range m.Feedbacks {
		if existing.ID == id {
			m.Feedbacks = append(m.Feedbacks[:i], m.Feedbacks[i+1:]...)
			return nil
		}
	}

	return store.ErrFeedbackNotFound
}

// WithTx implements the FeedbackStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockFeedbackStore) WithTx(tx *sql.Tx) store.FeedbackStore {
	return m
}
