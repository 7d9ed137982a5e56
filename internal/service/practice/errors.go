package practice

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the practice service. The transition
// guards return these so the transport can answer with guidance text
// instead of propagating an internal error; none of them change the
// session state.
var (
	// ErrNoActiveSession indicates the user has no practice session.
	ErrNoActiveSession = errors.New("no active practice session")

	// ErrNotAwaitingPartChoice indicates a part was selected while the
	// session was not waiting for one.
	ErrNotAwaitingPartChoice = errors.New("session is not awaiting a part choice")

	// ErrNotAwaitingReadiness indicates a readiness acknowledgment
	// arrived while no question was presented.
	ErrNotAwaitingReadiness = errors.New("no question is awaiting acknowledgment")

	// ErrNotAwaitingAnswer indicates answer text arrived while the
	// session was not expecting one. Orphaned input must never be
	// misread as an answer.
	ErrNotAwaitingAnswer = errors.New("session is not awaiting an answer")

	// ErrInvalidPart indicates a malformed part number (valid: 1..3, or
	// PartRandom for an unfiltered draw).
	ErrInvalidPart = errors.New("part must be 1, 2, 3 or random")

	// ErrNoQuestions indicates the question pool for the requested part
	// is empty.
	ErrNoQuestions = errors.New("no questions available for the requested part")

	// ErrScoringFailed indicates the external scoring call failed or
	// timed out. No response was persisted; the turn ends in the
	// ScoringFailed state.
	ErrScoringFailed = errors.New("scoring failed")
)

// ServiceError wraps errors from the practice service with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("practice %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("practice %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
