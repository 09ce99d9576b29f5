// Package http wires the API routes and request middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docchat/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatApproach handlers.ChatApproach
	AskApproach  handlers.AskApproach
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	chatHandler := handlers.NewChatHandler(deps.ChatApproach)
	askHandler := handlers.NewAskHandler(deps.AskApproach)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodPost, "/ask", askHandler)
	})
	r.Method(http.MethodGet, "/healthz", handlers.NewHealthHandler())

	return r
}
