package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures the gateway router.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", h.HandleRoot)
	if h.health != nil {
		r.Get("/health", h.health.HandleHealth)
	}

	r.Post("/analyze", h.HandleAnalyze)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", h.HandleAnalyze)

		r.Route("/cache", func(r chi.Router) {
			r.Get("/stats", h.HandleCacheStats)
			r.Post("/cleanup", h.HandleCacheCleanup)
			r.Post("/invalidate", h.HandleCacheInvalidate)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/list", h.HandleListReports)
			r.Get("/stats", h.HandleReportStats)
			r.Get("/{id}", h.HandleGetReport)
			r.Delete("/{id}", h.HandleDeleteReport)
		})
	})

	return r
}
