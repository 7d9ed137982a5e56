package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/store"
)

// MockResponseStore implements store.ResponseStore for testing
type MockResponseStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, response *domain.Response) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Response, error)
	ListByUserFn     func(ctx context.Context, userID uuid.UUID) ([]*domain.Response, error)
	ListByQuestionFn func(ctx context.Context, questionID uuid.UUID) ([]*domain.Response, error)
	AggregateFn      func(ctx context.Context) ([]store.UserScoreAggregate, error)
	UpdateFn         func(ctx context.Context, response *domain.Response) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error

	// Responses holds the default implementation's data in insertion
	// order; listing reverses it so the newest response comes first,
	// matching the store contract.
	Responses []*domain.Response

	CreateError error
	ListError   error
}

// Ensure MockResponseStore implements store.ResponseStore
var _ store.ResponseStore = (*MockResponseStore)(nil)

// NewMockResponseStore creates a new mock store with initialized defaults
func NewMockResponseStore() *MockResponseStore {
	return &MockResponseStore{}
}

// Create implements the ResponseStore interface
func (m *MockResponseStore) Create(ctx context.Context, response *domain.Response) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, response)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Responses = append(m.Responses, response)
	return nil
}

// GetByID implements the ResponseStore interface
func (m *MockResponseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Response, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, response := range m.Responses {
		if response.ID == id {
			return response, nil
		}
	}

	return nil, store.ErrResponseNotFound
}

// ListByUser implements the ResponseStore interface
func (m *MockResponseStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Response, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	return m.listWhere(func(r *domain.Response) bool { return r.UserID == userID }), nil
}

// ListByQuestion implements the ResponseStore interface
func (m *MockResponseStore) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Response, error) {
	if m.ListByQuestionFn != nil {
		return m.ListByQuestionFn(ctx, questionID)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	return m.listWhere(func(r *domain.Response) bool { return r.QuestionID == questionID }), nil
}

// AggregateOverallScores implements the ResponseStore interface
func (m *MockResponseStore) AggregateOverallScores(ctx context.Context) ([]store.UserScoreAggregate, error) {
	if m.AggregateFn != nil {
		return m.AggregateFn(ctx)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	type rollup struct {
		total  int
		scored int
		sum    float64
	}
	totals := make(map[uuid.UUID]*rollup)
	var order []uuid.UUID
	for _, response := range m.Responses {
		r, ok := totals[response.UserID]
		if !ok {
			r = &rollup{}
			totals[response.UserID] = r
			order = append(order, response.UserID)
		}
		r.total++
		if response.OverallScore != nil {
			r.scored++
			r.sum += *response.OverallScore
		}
	}

	aggregates := make([]store.UserScoreAggregate, 0, len(order))
	for _, userID := range order {
		r := totals[userID]
		agg := store.UserScoreAggregate{
			UserID:         userID,
			TotalResponses: r.total,
			ScoredCount:    r.scored,
		}
		if r.scored > 0 {
			agg.MeanOverall = r.sum / float64(r.scored)
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

// Update implements the ResponseStore interface
func (m *MockResponseStore) Update(ctx context.Context, response *domain.Response) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, response)
	}

	for i, existing := range m.Responses {
		if existing.ID == response.ID {
			m.Responses[i] = response
			return nil
		}
	}

	return store.ErrResponseNotFound
}

// Delete implements the ResponseStore interface
func (m *MockResponseStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for i, existing := range m.Responses {
		if existing.ID == id {
			m.Responses = append(m.Responses[:i], m.Responses[i+1:]...)
			return nil
		}
	}

	return store.ErrResponseNotFound
}

// WithTx implements the ResponseStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockResponseStore) WithTx(tx *sql.Tx) store.ResponseStore {
	return m
}

// listWhere filters the stored responses and orders them newest first
// with insertion order breaking timestamp ties.
func (m *MockResponseStore) listWhere(keep func(*domain.Response) bool) []*domain.Response {
	type indexed struct {
		response *domain.Response
		position int
	}

	matches := make([]indexed, 0, len(m.Responses))
	for i, response := range m.Responses {
		if keep(response) {
			matches = append(matches, indexed{response: response, position: i})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.response.CreatedAt.Equal(b.response.CreatedAt) {
			return a.response.CreatedAt.After(b.response.CreatedAt)
		}
		return a.position > b.position
	})

	result := make([]*domain.Response, len(matches))
	for i, match := range matches {
		result[i] = match.response
	}
	return result
}
