/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the table frontend

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:4200", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Roster
		r.Get("/employees", h.ListEmployees)

		// Ledger
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/", h.GetLedger)
			r.Post("/load", h.LoadLedger)
			r.Post("/save", h.Save)
			r.Post("/submit", h.Submit)
			r.Get("/export", h.Export)

			r.Route("/rows/{row}/days/{day}", func(r chi.Router) {
				r.Put("/hours", h.SetHours)
				r.Post("/absent", h.MarkAbsent)
				r.Post("/present", h.MarkPresent)
			})
		})

		// Rollup
		r.Route("/rollup", func(r chi.Router) {
			r.Get("/", h.GetRollup)
			r.Get("/vendor", h.GetVendorRollup)
			r.Get("/sites/{site}", h.GetSiteRollup)
		})

		// Input helpers
		r.Post("/time/preview", h.PreviewTime)
	})

	return r
}
