/*
handlers.go - HTTP API handlers for the roster engine

PURPOSE:
  Exposes the scheduling and WCHR workflows via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                   List active employees
    POST   /api/employees                   Create/update employee

  Budgets:
    GET    /api/budgets                     List airline budgets
    PUT    /api/budgets                     Upsert a budget

  Schedules:
    POST   /api/schedules                   Submit (or save draft)
    GET    /api/schedules                   Role-scoped listing
    GET    /api/schedules/{id}              Single document
    POST   /api/schedules/{id}/approve      Station manager only
    POST   /api/schedules/{id}/reject       Station manager only
    POST   /api/schedules/{id}/return       Station manager, notes required
    POST   /api/schedules/{id}/resubmit     Original creator only

  WCHR:
    POST   /api/wchr/flights/close          Record a flight closure
    GET    /api/wchr/flights?date=          A day's closures
    POST   /api/wchr/reports                Submit passenger report
    GET    /api/wchr/reports?from=&to=      Reports in a window

ERROR HANDLING:
  Domain errors map to HTTP status by family:
  - 400: validation errors, invalid transitions
  - 403: permission errors (shown as "not authorized", never "bad input")
  - 404: missing documents
  - 500: everything else

SEE ALSO:
  - dto.go:      Request/response data structures
  - actor.go:    Actor header middleware
  - server.go:   Router setup
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/skyport/roster-engine/roster"
	"github.com/skyport/roster-engine/wchr"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Schedules *roster.Service
	Registry  *wchr.Registry
	Reports   *wchr.Service
	Employees roster.EmployeeStore
	Budgets   roster.BudgetStore

	validate *validator.Validate
}

// NewHandler wires a handler over the domain services.
func NewHandler(schedules *roster.Service, registry *wchr.Registry, reports *wchr.Service, employees roster.EmployeeStore, budgets roster.BudgetStore) *Handler {
	return &Handler{
		Schedules: schedules,
		Registry:  registry,
		Reports:   reports,
		Employees: employees,
		Budgets:   budgets,
		validate:  validator.New(),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the active employee directory.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.ListActiveEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = EmployeeDTO{ID: e.ID, Name: e.Name, Department: e.Department, Active: e.Active}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveEmployee creates or updates a directory record.
func (h *Handler) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e := roster.Employee{ID: req.ID, Name: req.Name, Department: req.Department, Active: req.Active}
	if err := h.Employees.SaveEmployee(r.Context(), e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, EmployeeDTO{ID: e.ID, Name: e.Name, Department: e.Department, Active: e.Active})
}

// =============================================================================
// BUDGET HANDLERS
// =============================================================================

// ListBudgets returns every configured airline budget.
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.Budgets.ListBudgets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list budgets", err)
		return
	}

	dtos := make([]BudgetDTO, len(budgets))
	for i, b := range budgets {
		dtos[i] = BudgetDTO{Airline: b.Airline, Department: b.Department, BudgetHours: b.BudgetHours.InexactFloat64()}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpsertBudget creates or replaces a budget row. Existing schedule
// snapshots are never touched.
func (h *Handler) UpsertBudget(w http.ResponseWriter, r *http.Request) {
	var req UpsertBudgetRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	b := roster.AirlineBudget{
		Airline:     req.Airline,
		Department:  req.Department,
		BudgetHours: decimal.NewFromFloat(req.BudgetHours),
	}
	if err := h.Budgets.UpsertBudget(r.Context(), b); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save budget", err)
		return
	}
	writeJSON(w, http.StatusOK, BudgetDTO{Airline: b.Airline, Department: b.Department, BudgetHours: req.BudgetHours})
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// SubmitSchedule creates a pending schedule, or a draft when the body
// sets "draft": true.
func (h *Handler) SubmitSchedule(w http.ResponseWriter, r *http.Request) {
	var req SubmitScheduleRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in := roster.SubmitInput{
		Airline:    req.Airline,
		Department: req.Department,
		DayNumbers: req.DayNumbers,
		Grid:       fromRowDTOs(req.Rows),
	}

	var (
		doc *roster.Schedule
		err error
	)
	if req.Draft {
		doc, err = h.Schedules.SaveDraft(r.Context(), actorFrom(r), in)
	} else {
		doc, err = h.Schedules.Submit(r.Context(), actorFrom(r), in)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleDTO(doc))
}

// ListSchedules returns the schedules visible to the actor, newest first.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	filter := roster.ScheduleFilter{
		Status:  roster.Status(r.URL.Query().Get("status")),
		Airline: r.URL.Query().Get("airline"),
	}

	docs, err := h.Schedules.List(r.Context(), actorFrom(r), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]ScheduleDTO, len(docs))
	for i, doc := range docs {
		dtos[i] = toScheduleDTO(doc)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSchedule returns one schedule document.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Schedules.Get(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(doc))
}

// ApproveSchedule moves a pending schedule to approved.
func (h *Handler) ApproveSchedule(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Schedules.Approve(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(doc))
}

// RejectSchedule moves a pending schedule to rejected.
func (h *Handler) RejectSchedule(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Schedules.Reject(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(doc))
}

// ReturnSchedule sends a pending schedule back with review notes.
func (h *Handler) ReturnSchedule(w http.ResponseWriter, r *http.Request) {
	var req ReturnScheduleRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	doc, err := h.Schedules.Return(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(doc))
}

// ResubmitSchedule opens a new pending cycle from a returned schedule.
func (h *Handler) ResubmitSchedule(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Schedules.Resubmit(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleDTO(doc))
}

// =============================================================================
// WCHR HANDLERS
// =============================================================================

// CloseFlight records (or refreshes) a flight closure.
func (h *Handler) CloseFlight(w http.ResponseWriter, r *http.Request) {
	var req CloseFlightRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	flightDate, err := time.Parse("2006-01-02", req.FlightDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid flight_date format (use YYYY-MM-DD)", err)
		return
	}

	flight, err := h.Registry.Close(r.Context(), actorFrom(r), req.Airline, req.FlightNumber, flightDate, req.Origin, req.Destination)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFlightDTO(flight))
}

// ListFlights returns the closures of one day (default today, UTC).
func (h *Handler) ListFlights(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		day = parsed
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	flights, err := h.Registry.ListClosedBetween(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list flights", err)
		return
	}

	dtos := make([]FlightDTO, len(flights))
	for i := range flights {
		dtos[i] = toFlightDTO(&flights[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SubmitReport files a passenger assistance report.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req SubmitReportRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var flightDate time.Time
	if req.FlightDate != "" {
		parsed, err := time.Parse("2006-01-02", req.FlightDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid flight_date format (use YYYY-MM-DD)", err)
			return
		}
		flightDate = parsed
	}

	rep, err := h.Reports.Submit(r.Context(), actorFrom(r), wchr.SubmitInput{
		PassengerName: req.PassengerName,
		Airline:       req.Airline,
		FlightNumber:  req.FlightNumber,
		FlightDate:    flightDate,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Seat:          req.Seat,
		Gate:          req.Gate,
		PNR:           req.PNR,
		WCHType:       req.WCHType,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReportDTO(rep))
}

// ListReports returns reports submitted in a window. Defaults to the
// current UTC day.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from timestamp (use RFC3339)", err)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to timestamp (use RFC3339)", err)
			return
		}
		to = parsed
	}

	reports, err := h.Reports.ListBetween(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}

	dtos := make([]ReportDTO, len(reports))
	for i := range reports {
		dtos[i] = toReportDTO(&reports[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// decode parses the JSON body and runs struct-tag validation.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return h.validate.Struct(dst)
}

// writeDomainError maps a domain error onto its HTTP status family.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case roster.IsPermission(err):
		writeError(w, http.StatusForbidden, "Not authorized", err)
	case roster.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case roster.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
