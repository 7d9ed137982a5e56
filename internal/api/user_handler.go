package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/store"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users     store.UserStore
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validator.New(),
	}
}

// CreateUser handles POST /api/users requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeAndValidate(r, &req, h.validator); err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	user, err := domain.NewUser(req.TelegramID, req.FirstName, req.Username)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondCreated(w, r, userToDTOResponse(user))
}

// GetUser handles GET /api/users/{id} requests
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondOK(w, r, userToDTOResponse(user))
}

// ListUsers handles GET /api/users requests
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, userToDTOResponse(user))
	}
	RespondOK(w, r, response)
}

// UpdateUser handles PUT /api/users/{id} requests
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	var req UpdateUserRequest
	if err := decodeAndValidate(r, &req, h.validator); err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	user.FirstName = req.FirstName
	user.Username = req.Username
	if err := user.Validate(); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondOK(w, r, userToDTOResponse(user))
}

// DeleteUser handles DELETE /api/users/{id} requests. Deletion is
// refused with 409 while the user still owns responses or feedback.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithBadRequest(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
