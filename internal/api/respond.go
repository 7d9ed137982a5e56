package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/speakoai/speako-api/internal/api/shared"
)

// decodeAndValidate parses the JSON request body and runs struct
// validation on it.
func decodeAndValidate(r *http.Request, v interface{}, validate *validator.Validate) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// RespondOK writes the data as a 200 response.
func RespondOK(w http.ResponseWriter, r *http.Request, data interface{}) {
	shared.RespondWithJSON(w, r, http.StatusOK, data)
}

// RespondCreated writes the data as a 201 response.
func RespondCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	shared.RespondWithJSON(w, r, http.StatusCreated, data)
}

// RespondWithBadRequest answers a malformed or invalid request body.
// The validation error text is safe to show; decode errors are not.
func RespondWithBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	if _, ok := err.(validator.ValidationErrors); ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
}

// RespondWithMappedError maps a service or store error to its HTTP
// status and sanitized message, logging the full error.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
