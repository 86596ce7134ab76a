/*
scenarios.go - Demo data seeding

PURPOSE:
  Loads a small ground-ops station into the stores so the frontend has
  something to show on a fresh database: a ramp crew, a couple of
  airline budgets. Dev/demo only; seeding is idempotent (plain upserts).

SEE ALSO:
  - server.go: /api/scenarios/seed route
*/
package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/skyport/roster-engine/roster"
)

var demoEmployees = []roster.Employee{
	{ID: "emp-001", Name: "Amina Hassan", Department: "ramp", Active: true},
	{ID: "emp-002", Name: "Jonas Weber", Department: "ramp", Active: true},
	{ID: "emp-003", Name: "Priya Nair", Department: "passenger-services", Active: true},
	{ID: "emp-004", Name: "Tomás Rivera", Department: "passenger-services", Active: true},
	{ID: "emp-005", Name: "Mei Chen", Department: "ramp", Active: false},
}

var demoBudgets = []roster.AirlineBudget{
	{Airline: "SY", Department: "ramp", BudgetHours: decimal.NewFromInt(160)},
	{Airline: "SY", Department: "passenger-services", BudgetHours: decimal.NewFromInt(80)},
	{Airline: "G9", Department: "ramp", BudgetHours: decimal.NewFromInt(120)},
}

// SeedDemo loads the demo station.
// POST /api/scenarios/seed
func (h *Handler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	for _, e := range demoEmployees {
		if err := h.Employees.SaveEmployee(ctx, e); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed employees", err)
			return
		}
	}
	for _, b := range demoBudgets {
		if err := h.Budgets.UpsertBudget(ctx, b); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed budgets", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"employees": len(demoEmployees),
		"budgets":   len(demoBudgets),
	})
}
