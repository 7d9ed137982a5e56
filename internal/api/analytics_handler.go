package api

import (
	"net/http"

	"github.com/speakoai/speako-api/internal/service/analytics"
)

// DefaultLeaderboardLimit is used when the leaderboard request does not
// specify a limit.
const DefaultLeaderboardLimit = 10

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	analytics analytics.Service
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analyticsService,
	}
}

// GetUserScores handles GET /api/analytics/users/{id}/scores requests
func (h *AnalyticsHandler) GetUserScores(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	summary, err := h.analytics.UserSummary(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondOK(w, r, summary)
}

// GetLeaderboard handles GET /api/analytics/leaderboard requests. The
// optional limit query parameter caps the number of entries.
func (h *AnalyticsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := getQueryInt(r, "limit", DefaultLeaderboardLimit)
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	entries, err := h.analytics.Leaderboard(r.Context(), limit)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondOK(w, r, entries)
}

// GetQuestionSummary handles GET /api/analytics/questions/{id} requests
func (h *AnalyticsHandler) GetQuestionSummary(w http.ResponseWriter, r *http.Request) {
	questionID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	summary, err := h.analytics.QuestionSummary(r.Context(), questionID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondOK(w, r, summary)
}
