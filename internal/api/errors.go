package api

import (
	"errors"
	"net/http"

	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/service/analytics"
	"github.com/speakoai/speako-api/internal/service/practice"
	"github.com/speakoai/speako-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrQuestionNotFound),
		errors.Is(err, store.ErrResponseNotFound),
		errors.Is(err, store.ErrFeedbackNotFound),
		errors.Is(err, analytics.ErrUserNotFound),
		errors.Is(err, analytics.ErrQuestionNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrTelegramIDExists),
		errors.Is(err, store.ErrUserHasDependents),
		errors.Is(err, practice.ErrNoActiveSession),
		errors.Is(err, practice.ErrNotAwaitingPartChoice),
		errors.Is(err, practice.ErrNotAwaitingReadiness),
		errors.Is(err, practice.ErrNotAwaitingAnswer):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, analytics.ErrInvalidLimit),
		errors.Is(err, practice.ErrInvalidPart),
		errors.Is(err, domain.ErrScoreOutOfRange),
		errors.Is(err, domain.ErrQuestionTextTooShort),
		errors.Is(err, domain.ErrResponseTextTooShort),
		errors.Is(err, domain.ErrInvalidPart),
		errors.Is(err, domain.ErrInvalidTelegramID),
		errors.Is(err, domain.ErrEmptyFirstName),
		errors.Is(err, domain.ErrFirstNameTooLong),
		errors.Is(err, domain.ErrUsernameTooLong),
		errors.Is(err, domain.ErrCategoryTooLong),
		errors.Is(err, domain.ErrCommentTooShort):
		return http.StatusBadRequest

	// Upstream scoring failures
	case errors.Is(err, practice.ErrScoringFailed):
		return http.StatusBadGateway

	// Empty question pool reads as a missing resource
	case errors.Is(err, practice.ErrNoQuestions):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, analytics.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrQuestionNotFound),
		errors.Is(err, analytics.ErrQuestionNotFound):
		return "Question not found"

	case errors.Is(err, store.ErrResponseNotFound):
		return "Response not found"

	case errors.Is(err, store.ErrFeedbackNotFound):
		return "Feedback not found"

	// Conflict errors
	case errors.Is(err, store.ErrTelegramIDExists):
		return "Telegram ID already registered"

	case errors.Is(err, store.ErrUserHasDependents):
		return "User still has responses or feedback; delete those first"

	case errors.Is(err, practice.ErrNoActiveSession),
		errors.Is(err, practice.ErrNotAwaitingPartChoice),
		errors.Is(err, practice.ErrNotAwaitingReadiness),
		errors.Is(err, practice.ErrNotAwaitingAnswer):
		return "Practice session is not in the right state for this action"

	// Bad request errors
	case errors.Is(err, analytics.ErrInvalidLimit):
		return "Limit must be greater than zero"

	case errors.Is(err, practice.ErrInvalidPart),
		errors.Is(err, domain.ErrInvalidPart):
		return "Part must be 1, 2 or 3"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrScoreOutOfRange):
		return "Scores must be between 0 and 9"

	// Upstream failures
	case errors.Is(err, practice.ErrScoringFailed):
		return "Scoring is temporarily unavailable, please try again"

	case errors.Is(err, practice.ErrNoQuestions):
		return "No questions available for the requested part"

	default:
		// Domain validation errors carry no internals and read well as-is.
		var validationSentinels = []error{
			domain.ErrQuestionTextTooShort,
			domain.ErrResponseTextTooShort,
			domain.ErrInvalidTelegramID,
			domain.ErrEmptyFirstName,
			domain.ErrFirstNameTooLong,
			domain.ErrUsernameTooLong,
			domain.ErrCategoryTooLong,
			domain.ErrCommentTooShort,
		}
		for _, sentinel := range validationSentinels {
			if errors.Is(err, sentinel) {
				return sentinel.Error()
			}
		}
		return "An unexpected error occurred"
	}
}
