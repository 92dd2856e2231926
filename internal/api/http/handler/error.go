package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akarasev/userhub/internal/model"
)

// errorResponse is the error body shape: a single human-readable detail.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// handleError maps domain errors to status codes without leaking internals.
// Credential and token failures share generic messages on purpose.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "Username already taken")
	case errors.Is(err, model.ErrInvalidUsername), errors.Is(err, model.ErrInvalidPassword):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username and/or password")
	case errors.Is(err, model.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "Signature has expired")
	case errors.Is(err, model.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, "Invalid token")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
