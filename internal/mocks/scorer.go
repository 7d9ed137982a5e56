package mocks

import (
	"context"

	"github.com/speakoai/speako-api/internal/scoring"
)

// MockScorer implements scoring.Scorer for testing
type MockScorer struct {
	// ScoreFn overrides the default behavior when set
	ScoreFn func(ctx context.Context, answerText string) (*scoring.Result, error)

	// Result and Err drive the default behavior
	Result *scoring.Result
	Err    error

	// ScoreCalls records the answer texts passed to Score
	ScoreCalls []string
}

// Ensure MockScorer implements scoring.Scorer
var _ scoring.Scorer = (*MockScorer)(nil)

// NewMockScorer creates a scorer that returns the given uniform score
// for every dimension.
func NewMockScorer(score float64) *MockScorer {
	s := score
	return &MockScorer{
		Result: &scoring.Result{
			Fluency:       &s,
			Pronunciation: &s,
			Grammar:       &s,
			Vocabulary:    &s,
			Overall:       &s,
			Feedback:      "Keep practicing!",
		},
	}
}

// Score implements the Scorer interface
func (m *MockScorer) Score(ctx context.Context, answerText string) (*scoring.Result, error) {
	m.ScoreCalls = append(m.ScoreCalls, answerText)

	if m.ScoreFn != nil {
		return m.ScoreFn(ctx, answerText)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	return m.Result, nil
}
