package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/pawsprefs/paws/internal/metrics"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(reg *Registry, apiKey string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(reg)
	sessionH := NewSessionHandler(reg)

	r.Get("/health", healthH.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionH.Create)
			r.Get("/{id}", sessionH.Get)
			r.Delete("/{id}", sessionH.Delete)
			r.Post("/{id}/decisions", sessionH.Decide)
			r.Get("/{id}/summary", sessionH.Summary)
			r.Post("/{id}/restart", sessionH.Restart)
		})
	})

	return r
}
