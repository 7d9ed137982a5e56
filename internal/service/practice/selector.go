package practice

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/store"
)

// PartRandom selects from the unfiltered question pool.
const PartRandom = 0

// QuestionSelector picks the question for a practice turn. It is an
// injectable capability so tests can supply a deterministic fake.
type QuestionSelector interface {
	// Select draws a question from the pool filtered by part, or from
	// the whole pool for PartRandom. Returns ErrNoQuestions when the
	// filtered pool is empty.
	Select(ctx context.Context, part int) (*domain.Question, error)
}

// randomSelector draws uniformly at random from the question store.
type randomSelector struct {
	questions store.QuestionStore

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSelector creates the production QuestionSelector backed by
// the question store.
func NewRandomSelector(questions store.QuestionStore) QuestionSelector {
	if questions == nil {
		panic("questions store cannot be nil")
	}
	return &randomSelector{
		questions: questions,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Select implements QuestionSelector.Select.
func (s *randomSelector) Select(ctx context.Context, part int) (*domain.Question, error) {
	pool, err := s.questions.List(ctx, part)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if len(pool) == 0 {
		return nil, ErrNoQuestions
	}

	s.mu.Lock()
	index := s.rng.Intn(len(pool))
	s.mu.Unlock()

	return pool[index], nil
}
