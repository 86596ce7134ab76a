/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Inbound payloads carry validator/v10 struct tags; handlers run them
  through the shared validator before touching domain logic. Domain
  invariants (grid shape, role guards, status transitions) stay in the
  roster and wchr packages.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/skyport/roster-engine/roster"
	"github.com/skyport/roster-engine/wchr"
)

// =============================================================================
// SCHEDULE TYPES
// =============================================================================

// SlotDTO mirrors roster.ShiftSlot.
type SlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RowDTO is one employee week: seven days of two slots.
type RowDTO struct {
	EmployeeID string                                          `json:"employee_id"`
	Days       [roster.DaysPerWeek][roster.SlotsPerDay]SlotDTO `json:"days"`
}

// SubmitScheduleRequest is the body for POST /api/schedules.
type SubmitScheduleRequest struct {
	Airline    string                     `json:"airline" validate:"required"`
	Department string                     `json:"department" validate:"required"`
	DayNumbers [roster.DaysPerWeek]string `json:"day_numbers"`
	Rows       []RowDTO                   `json:"rows" validate:"required,min=1"`
	Draft      bool                       `json:"draft"`
}

// ReturnScheduleRequest is the body for POST /api/schedules/{id}/return.
type ReturnScheduleRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// ScheduleDTO represents a schedule document in API responses.
type ScheduleDTO struct {
	ID                 string                     `json:"id"`
	Airline            string                     `json:"airline"`
	Department         string                     `json:"department"`
	DayNumbers         [roster.DaysPerWeek]string `json:"day_numbers"`
	Rows               []RowDTO                   `json:"rows"`
	Totals             map[string]float64         `json:"totals"`
	AirlineWeeklyHours float64                    `json:"airline_weekly_hours"`
	BudgetHours        float64                    `json:"budget_hours"`
	OverBudget         bool                       `json:"over_budget"`
	Status             string                     `json:"status"`
	CreatedBy          string                     `json:"created_by"`
	CreatedAt          string                     `json:"created_at"`
	ReviewedBy         string                     `json:"reviewed_by,omitempty"`
	ReviewNotes        string                     `json:"review_notes,omitempty"`
	HandledAt          string                     `json:"handled_at,omitempty"`
	SeededFrom         string                     `json:"seeded_from,omitempty"`
}

func toScheduleDTO(doc *roster.Schedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:                 doc.ID,
		Airline:            doc.Airline,
		Department:         doc.Department,
		DayNumbers:         doc.DayNumbers,
		Rows:               toRowDTOs(doc.Grid),
		Totals:             make(map[string]float64, len(doc.Totals)),
		AirlineWeeklyHours: doc.AirlineWeeklyHours.InexactFloat64(),
		BudgetHours:        doc.BudgetHours.InexactFloat64(),
		OverBudget:         doc.OverBudget,
		Status:             string(doc.Status),
		CreatedBy:          doc.CreatedBy,
		CreatedAt:          doc.CreatedAt.Format(time.RFC3339),
		ReviewedBy:         doc.ReviewedBy,
		ReviewNotes:        doc.ReviewNotes,
		SeededFrom:         doc.SeededFrom,
	}
	for id, hours := range doc.Totals {
		dto.Totals[id] = hours.InexactFloat64()
	}
	if doc.HandledAt != nil {
		dto.HandledAt = doc.HandledAt.Format(time.RFC3339)
	}
	return dto
}

func toRowDTOs(g roster.Grid) []RowDTO {
	rows := make([]RowDTO, len(g.Rows))
	for i, row := range g.Rows {
		rows[i].EmployeeID = row.EmployeeID
		for d, day := range row.Days {
			for s, slot := range day {
				rows[i].Days[d][s] = SlotDTO{Start: slot.Start, End: slot.End}
			}
		}
	}
	return rows
}

func fromRowDTOs(rows []RowDTO) roster.Grid {
	g := roster.Grid{Rows: make([]roster.Row, len(rows))}
	for i, row := range rows {
		g.Rows[i].EmployeeID = row.EmployeeID
		for d, day := range row.Days {
			for s, slot := range day {
				g.Rows[i].Days[d][s] = roster.ShiftSlot{Start: slot.Start, End: slot.End}
			}
		}
	}
	return g
}

// =============================================================================
// EMPLOYEE & BUDGET TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Active     bool   `json:"active"`
}

// SaveEmployeeRequest is the body for POST /api/employees.
type SaveEmployeeRequest struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Active     bool   `json:"active"`
}

// BudgetDTO represents an airline budget row.
type BudgetDTO struct {
	Airline     string  `json:"airline"`
	Department  string  `json:"department"`
	BudgetHours float64 `json:"budget_hours"`
}

// UpsertBudgetRequest is the body for PUT /api/budgets.
type UpsertBudgetRequest struct {
	Airline     string  `json:"airline" validate:"required"`
	Department  string  `json:"department" validate:"required"`
	BudgetHours float64 `json:"budget_hours" validate:"gte=0"`
}

// =============================================================================
// WCHR TYPES
// =============================================================================

// CloseFlightRequest is the body for POST /api/wchr/flights/close.
type CloseFlightRequest struct {
	Airline      string `json:"airline" validate:"required"`
	FlightNumber string `json:"flight_number" validate:"required"`
	FlightDate   string `json:"flight_date" validate:"required"` // YYYY-MM-DD
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
}

// FlightDTO represents a flight closure record.
type FlightDTO struct {
	FlightKey    string `json:"flight_key"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	FlightDate   string `json:"flight_date"`
	Origin       string `json:"origin,omitempty"`
	Destination  string `json:"destination,omitempty"`
	ClosedAt     string `json:"closed_at"`
	ClosedBy     string `json:"closed_by"`
}

func toFlightDTO(f *wchr.Flight) FlightDTO {
	dto := FlightDTO{
		FlightKey:    f.FlightKey,
		Airline:      f.Airline,
		FlightNumber: f.FlightNumber,
		Origin:       f.Origin,
		Destination:  f.Destination,
		ClosedAt:     f.ClosedAt.Format(time.RFC3339),
		ClosedBy:     f.ClosedBy,
	}
	if !f.FlightDate.IsZero() {
		dto.FlightDate = f.FlightDate.Format("2006-01-02")
	}
	return dto
}

// SubmitReportRequest is the body for POST /api/wchr/reports.
type SubmitReportRequest struct {
	PassengerName string `json:"passenger_name" validate:"required"`
	Airline       string `json:"airline" validate:"required"`
	FlightNumber  string `json:"flight_number" validate:"required"`
	FlightDate    string `json:"flight_date"` // YYYY-MM-DD, optional
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Seat          string `json:"seat"`
	Gate          string `json:"gate"`
	PNR           string `json:"pnr"`
	WCHType       string `json:"wch_type"`
	ImageURL      string `json:"image_url"`
}

// ReportDTO represents a passenger report in API responses.
type ReportDTO struct {
	ID            string `json:"id"`
	ReportID      string `json:"report_id"`
	EmployeeID    string `json:"employee_id"`
	SubmittedAt   string `json:"submitted_at"`
	PassengerName string `json:"passenger_name"`
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flight_number"`
	FlightDate    string `json:"flight_date,omitempty"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	Seat          string `json:"seat,omitempty"`
	Gate          string `json:"gate,omitempty"`
	PNR           string `json:"pnr,omitempty"`
	WCHType       string `json:"wch_type,omitempty"`
	Status        string `json:"status"`
	FlightKey     string `json:"flight_key"`
	ImageURL      string `json:"image_url,omitempty"`
}

func toReportDTO(rep *wchr.Report) ReportDTO {
	dto := ReportDTO{
		ID:            rep.ID,
		ReportID:      rep.ReportID,
		EmployeeID:    rep.EmployeeID,
		SubmittedAt:   rep.SubmittedAt.Format(time.RFC3339),
		PassengerName: rep.PassengerName,
		Airline:       rep.Airline,
		FlightNumber:  rep.FlightNumber,
		Origin:        rep.Origin,
		Destination:   rep.Destination,
		Seat:          rep.Seat,
		Gate:          rep.Gate,
		PNR:           rep.PNR,
		WCHType:       rep.WCHType,
		Status:        string(rep.Status),
		FlightKey:     rep.FlightKey,
		ImageURL:      rep.ImageURL,
	}
	if !rep.FlightDate.IsZero() {
		dto.FlightDate = rep.FlightDate.Format("2006-01-02")
	}
	return dto
}
