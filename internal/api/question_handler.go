package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/store"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	questions store.QuestionStore
	validator *validator.Validate
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(questions store.QuestionStore) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		validator: validator.New(),
	}
}

// CreateQuestion handles POST /api/questions requests
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := decodeAndValidate(r, &req, h.validator); err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	question, err := domain.NewQuestion(req.Part, req.QuestionText, req.SampleAnswer, req.Category)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.questions.Create(r.Context(), question); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondCreated(w, r, questionToDTOResponse(question))
}

// GetQuestion handles GET /api/questions/{id} requests
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	question, err := h.questions.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondOK(w, r, questionToDTOResponse(question))
}

// ListQuestions handles GET /api/questions requests. The optional part
// query parameter filters the pool; absent means every part.
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	part, err := getQueryInt(r, "part", store.AnyPart)
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}
	if part != store.AnyPart && (part < domain.MinPart || part > domain.MaxPart) {
		RespondWithMappedError(w, r, domain.ErrInvalidPart)
		return
	}

	questions, err := h.questions.List(r.Context(), part)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	response := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		response = append(response, questionToDTOResponse(question))
	}
	RespondOK(w, r, response)
}

// UpdateQuestion handles PUT /api/questions/{id} requests
func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	var req CreateQuestionRequest
	if err := decodeAndValidate(r, &req, h.validator); err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	question, err := h.questions.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	question.Part = req.Part
	question.Text = req.QuestionText
	question.SampleAnswer = req.SampleAnswer
	question.Category = req.Category
	if err := question.Validate(); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.questions.Update(r.Context(), question); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondOK(w, r, questionToDTOResponse(question))
}

// DeleteQuestion handles DELETE /api/questions/{id} requests
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	if err := h.questions.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
