package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mrwolf/schedcheck/internal/audit"
	"github.com/mrwolf/schedcheck/internal/config"
	"github.com/mrwolf/schedcheck/internal/db"
	"github.com/mrwolf/schedcheck/internal/llm"
)

func NewRouter(cfg *config.Config, database *db.DB, auditLog *audit.Log, llmClient *llm.Client) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)

	handlers := NewHandlers(cfg, database, auditLog, llmClient)

	// Public endpoints
	r.Get("/health", handlers.Health)

	// API v1 routes (authenticated)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg))
		r.Use(JSONContentType)
		r.Use(RateLimitMiddleware(NewRateLimiter(60, time.Minute)))

		r.Post("/verify", handlers.Verify)
		r.Post("/parse", handlers.Parse)
		r.Post("/evaluate", handlers.Evaluate)
		r.Get("/runs", handlers.Runs)
	})

	return r
}
