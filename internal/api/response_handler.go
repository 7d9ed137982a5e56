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

// ResponseHandler handles practice-response HTTP requests. Creation
// here is the admin/import path with scores supplied directly; the
// conversational path goes through the practice service.
type ResponseHandler struct {
	db        *sql.DB
	users     store.UserStore
	questions store.QuestionStore
	responses store.ResponseStore
	validator *validator.Validate
}

// NewResponseHandler creates a new ResponseHandler
func NewResponseHandler(
	db *sql.DB,
	users store.UserStore,
	questions store.QuestionStore,
	responses store.ResponseStore,
) *ResponseHandler {
	return &ResponseHandler{
		db:        db,
		users:     users,
		questions: questions,
		responses: responses,
		validator: validator.New(),
	}
}

// CreateResponse handles POST /api/responses requests
func (h *ResponseHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	var req CreateResponseRequest
	if err := decodeAndValidate(r, &req, h.validator); err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	// uuid format already validated
	userID := uuid.MustParse(req.UserID)
	questionID := uuid.MustParse(req.QuestionID)

	response, err := domain.NewResponse(userID, questionID, req.ResponseText)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	response.FluencyScore = req.FluencyScore
	response.PronunciationScore = req.PronunciationScore
	response.GrammarScore = req.GrammarScore
	response.VocabularyScore = req.VocabularyScore
	response.OverallScore = req.OverallScore
	response.AIFeedback = req.AIFeedback

	// Parent lookups and the insert share one transaction so the
	// not-found answers cannot race a concurrent delete.
	err = store.RunInTransaction(r.Context(), h.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := h.users.WithTx(tx).GetByID(ctx, userID); err != nil {
			return err
		}
		if _, err := h.questions.WithTx(tx).GetByID(ctx, questionID); err != nil {
			return err
		}
		return h.responses.WithTx(tx).Create(ctx, response)
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondCreated(w, r, response)
}

// GetResponse handles GET /api/responses/{id} requests
func (h *ResponseHandler) GetResponse(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	response, err := h.responses.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondOK(w, r, response)
}

// ListUserResponses handles GET /api/users/{id}/responses requests
func (h *ResponseHandler) ListUserResponses(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	if _, err := h.users.GetByID(r.Context(), userID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	responses, err := h.responses.ListByUser(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if responses == nil {
		responses = []*domain.Response{}
	}

	RespondOK(w, r, responses)
}

// DeleteResponse handles DELETE /api/responses/{id} requests
func (h *ResponseHandler) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	if err := h.responses.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
