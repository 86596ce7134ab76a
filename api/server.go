/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the operations frontend
  5. WithActor:  roster.Actor from X-Actor-* headers

ROUTE GROUPS:
  /api/employees/*   Employee directory
  /api/budgets       Airline weekly-hour budgets
  /api/schedules/*   Schedule submission and review workflow
  /api/wchr/*        Flight closures and passenger reports
  /api/scenarios/*   Demo data seeding (dev only)

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
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Actor-Id", "X-Actor-Name", "X-Actor-Role"},
		AllowCredentials: true,
	}))
	r.Use(WithActor)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee directory
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.SaveEmployee)
		})

		// Airline budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", h.ListBudgets)
			r.Put("/", h.UpsertBudget)
		})

		// Schedule workflow
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Post("/", h.SubmitSchedule)
			r.Get("/{id}", h.GetSchedule)
			r.Post("/{id}/approve", h.ApproveSchedule)
			r.Post("/{id}/reject", h.RejectSchedule)
			r.Post("/{id}/return", h.ReturnSchedule)
			r.Post("/{id}/resubmit", h.ResubmitSchedule)
		})

		// WCHR flight closures and reports
		r.Route("/wchr", func(r chi.Router) {
			r.Post("/flights/close", h.CloseFlight)
			r.Get("/flights", h.ListFlights)
			r.Post("/reports", h.SubmitReport)
			r.Get("/reports", h.ListReports)
		})

		// Demo data
		r.Route("/scenarios", func(r chi.Router) {
			r.Post("/seed", h.SeedDemo)
		})
	})

	return r
}
