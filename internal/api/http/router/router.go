// Package router wires handlers and middleware into the HTTP surface.
package router

import (
	"net/http"

	"github.com/akarasev/userhub/internal/api/http/handler"
	"github.com/akarasev/userhub/internal/api/http/middleware"
	"github.com/akarasev/userhub/internal/logger"
	"github.com/akarasev/userhub/internal/model"
)

// Router assembles the user endpoints under /users.
type Router struct {
	auth         *handler.Auth
	authenticate *middleware.Authenticate
	logging      *middleware.Logging
}

// New creates a router over the given services.
func New(authService handler.AuthService, tokenService middleware.TokenService, ctxManager model.ContextManager, logger *logger.Logger) *Router {
	return &Router{
		auth:         handler.NewAuth(authService, logger),
		authenticate: middleware.NewAuthenticate(tokenService, ctxManager, logger),
		logging:      middleware.NewLogging(logger),
	}
}

// Handler returns the fully wired root handler: mux, then logging, then CORS
// outermost so preflight requests are answered for every route.
func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/register", r.auth.Register)
	mux.HandleFunc("POST /users/login", r.auth.Login)
	mux.Handle("GET /users/list", r.authenticate.Handle(http.HandlerFunc(r.auth.ListUsers)))

	return middleware.CORS(r.logging.Handle(mux))
}
