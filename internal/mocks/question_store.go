package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/store"
)

// MockQuestionStore implements store.QuestionStore for testing
type MockQuestionStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, question *domain.Question) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListFn    func(ctx context.Context, part int) ([]*domain.Question, error)
	UpdateFn  func(ctx context.Context, question *domain.Question) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Questions map[uuid.UUID]*domain.Question

	CreateError error
	ListError   error
}

// Ensure MockQuestionStore implements store.QuestionStore
var _ store.QuestionStore = (*MockQuestionStore)(nil)

// NewMockQuestionStore creates a new mock store with initialized defaults
func NewMockQuestionStore() *MockQuestionStore {
	return &MockQuestionStore{
		Questions: make(map[uuid.UUID]*domain.Question),
	}
}

// Create implements the QuestionStore interface
func (m *MockQuestionStore) Create(ctx context.Context, question *domain.Question) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, question)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Questions[question.ID] = question
	return nil
}

// GetByID implements the QuestionStore interface
func (m *MockQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	question, exists := m.Questions[id]
	if !exists {
		return nil, store.ErrQuestionNotFound
	}

	return question, nil
}

// List implements the QuestionStore interface
func (m *MockQuestionStore) List(ctx context.Context, part int) ([]*domain.Question, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, part)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	questions := make([]*domain.Question, 0, len(m.Questions))
	for _, question := range m.Questions {
		if part != store.AnyPart && question.Part != part {
			continue
		}
		questions = append(questions, question)
	}
	sort.Slice(questions, func(i, j int) bool {
		if !questions[i].CreatedAt.Equal(questions[j].CreatedAt) {
			return questions[i].CreatedAt.After(questions[j].CreatedAt)
		}
		return questions[i].ID.String() < questions[j].ID.String()
	})
	return questions, nil
}

// Update implements the QuestionStore interface
func (m *MockQuestionStore) Update(ctx context.Context, question *domain.Question) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, question)
	}

	if _, exists := m.Questions[question.ID]; !exists {
		return store.ErrQuestionNotFound
	}

	m.Questions[question.ID] = question
	return nil
}

// Delete implements the QuestionStore interface
func (m *MockQuestionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Questions[id]; !exists {
		return store.ErrQuestionNotFound
	}

	delete(m.Questions, id)
	return nil
}

// WithTx implements the QuestionStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return m
}
