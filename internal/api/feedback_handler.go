package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/store"
)

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	db        *sql.DB
	users     store.UserStore
	feedbacks store.FeedbackStore
	validator *validator.Validate
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(db *sql.DB, users store.UserStore, feedbacks store.FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{
		db:        db,
		users:     users,
		feedbacks: feedbacks,
		validator: validator.New(),
	}
}

// CreateFeedback handles POST /api/feedback requests
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req CreateFeedbackRequest
	if err := decodeAndValidate(r, &req, h.validator); err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	userID := uuid.MustParse(req.UserID)

	feedback, err := domain.NewFeedback(userID, req.Comment)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	err = store.RunInTransaction(r.Context(), h.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := h.users.WithTx(tx).GetByID(ctx, userID); err != nil {
			return err
		}
		return h.feedbacks.WithTx(tx).Create(ctx, feedback)
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondCreated(w, r, feedback)
}

// GetFeedback handles GET /api/feedback/{id} requests
func (h *FeedbackHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	feedback, err := h.feedbacks.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondOK(w, r, feedback)
}

// ListUserFeedback handles GET /api/users/{id}/feedback requests
func (h *FeedbackHandler) ListUserFeedback(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	if _, err := h.users.GetByID(r.Context(), userID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	feedbacks, err := h.feedbacks.ListByUser(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if feedbacks == nil {
		feedbacks = []*domain.Feedback{}
	}

	RespondOK(w, r, feedbacks)
}

// DeleteFeedback handles DELETE /api/feedback/{id} requests
func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	if err := h.feedbacks.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
