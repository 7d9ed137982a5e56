// Package scoring defines the boundary between the application core and
// the external answer-scoring service. The core only ever sees the
// Scorer interface; the Gemini-backed implementation lives in
// internal/platform/gemini and tests supply deterministic fakes.
package scoring

import "context"

// Result is the score bundle returned for one answer. Every dimension
// is optional because the service may return partial data; a nil score
// means the dimension was not assessed.
type Result struct {
	Fluency       *float64 `json:"fluency_score"`
	Pronunciation *float64 `json:"pronunciation_score"`
	Grammar       *float64 `json:"grammar_score"`
	Vocabulary    *float64 `json:"vocabulary_score"`
	Overall       *float64 `json:"overall_score"`
	Feedback      string   `json:"feedback"`
}

// Scorer scores a spoken-practice answer.
type Scorer interface {
	// Score evaluates the given answer text and returns a score bundle.
	// The call respects ctx cancellation and deadlines; callers bound it
	// with a timeout because the backing service may be slow. Partial
	// results are valid. Failures are returned as errors, never as
	// garbage scores.
	Score(ctx context.Context, answerText string) (*Result, error)
}
