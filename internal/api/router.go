package api

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the public surface: the chat endpoint behind auth, and
// an unauthenticated health probe.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(RequestID)

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Post("/chat", h.Chat)
	})

	return r
}
