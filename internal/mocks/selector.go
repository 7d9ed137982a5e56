package mocks

import (
	"context"

	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/service/practice"
)

// MockQuestionSelector implements practice.QuestionSelector for testing
type MockQuestionSelector struct {
	// SelectFn overrides the default behavior when set
	SelectFn func(ctx context.Context, part int) (*domain.Question, error)

	// Question and Err drive the default behavior
	Question *domain.Question
	Err      error

	// SelectCalls records the parts passed to Select
	SelectCalls []int
}

// Ensure MockQuestionSelector implements practice.QuestionSelector
var _ practice.QuestionSelector = (*MockQuestionSelector)(nil)

// Select implements the QuestionSelector interface
func (m *MockQuestionSelector) Select(ctx context.Context, part int) (*domain.Question, error) {
	m.SelectCalls = append(m.SelectCalls, part)

	if m.SelectFn != nil {
		return m.SelectFn(ctx, part)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	if m.Question == nil {
		return nil, practice.ErrNoQuestions
	}

	return m.Question, nil
}
