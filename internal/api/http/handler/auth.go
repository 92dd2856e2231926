// Package handler exposes the HTTP endpoints for registration, login and
// listing.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akarasev/userhub/internal/logger"
	"github.com/akarasev/userhub/internal/model"
)

// AuthService defines the use cases the handlers drive.
type AuthService interface {
	Register(ctx context.Context, username, password string) (model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ListUsers(ctx context.Context) ([]model.PublicUser, error)
}

// Auth handles HTTP endpoints for authentication and the user listing.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// credentialsRequest is the body for both register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type usersResponse struct {
	Users []model.PublicUser `json:"users"`
}

// Register creates a new user and returns its public projection.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Debug("Auth handler: processing register request",
		"username", req.Username)

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: register failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user.Public())
}

// Login verifies credentials and returns a bearer token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Debug("Auth handler: processing login request",
		"username", req.Username)

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// ListUsers returns the public view of every user. The route is protected by
// the authenticate middleware.
func (h *Auth) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Auth handler: list users failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, usersResponse{Users: users})
}
