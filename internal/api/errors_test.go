package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/service/analytics"
	"github.com/speakoai/speako-api/internal/service/practice"
	"github.com/speakoai/speako-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"question not found", store.ErrQuestionNotFound, http.StatusNotFound},
		{"analytics user not found", analytics.ErrUserNotFound, http.StatusNotFound},
		{"empty question pool", practice.ErrNoQuestions, http.StatusNotFound},
		{"duplicate telegram ID", store.ErrTelegramIDExists, http.StatusConflict},
		{"user has dependents", store.ErrUserHasDependents, http.StatusConflict},
		{"wrong session state", practice.ErrNotAwaitingAnswer, http.StatusConflict},
		{"invalid limit", analytics.ErrInvalidLimit, http.StatusBadRequest},
		{"invalid part", practice.ErrInvalidPart, http.StatusBadRequest},
		{"score out of range", domain.ErrScoreOutOfRange, http.StatusBadRequest},
		{"scoring failed", practice.ErrScoringFailed, http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToStatusCode_Wrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("submit answer: %w", store.ErrQuestionNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(wrapped))

	svcErr := &practice.ServiceError{
		Operation: "submit_answer",
		Message:   "failed to persist response",
		Err:       store.ErrUserNotFound,
	}
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(svcErr))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"user not found", store.ErrUserNotFound, "User not found"},
		{"duplicate telegram ID", store.ErrTelegramIDExists, "Telegram ID already registered"},
		{"invalid limit", analytics.ErrInvalidLimit, "Limit must be greater than zero"},
		{
			"scoring failed",
			practice.ErrScoringFailed,
			"Scoring is temporarily unavailable, please try again",
		},
		{
			"internal details stay hidden",
			errors.New("pq: connection to 10.0.0.5 refused"),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}
