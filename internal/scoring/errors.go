package scoring

import "errors"

// Common scoring errors.
var (
	// ErrEmptyAnswer is returned when the answer text is empty.
	ErrEmptyAnswer = errors.New("answer text cannot be empty")

	// ErrUnavailable is returned when the scoring service cannot be
	// reached, times out, or exhausts its retries. Callers treat it as
	// a failed turn and persist nothing.
	ErrUnavailable = errors.New("scoring service unavailable")

	// ErrInvalidResult is returned when the scoring service responds
	// with data that cannot be parsed or contains out-of-range scores.
	ErrInvalidResult = errors.New("invalid scoring result")
)
