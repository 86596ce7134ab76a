/*
report.go - WCHR passenger report submission

PURPOSE:
  Creates passenger assistance reports and assigns their NEW/LATE status
  and display id.

STATUS IS FROZEN AT CREATION:
  Status is resolved exactly once, at submission: LATE iff the flight is
  closed at that instant, NEW otherwise. It is stored, never recomputed.
  A closure one second after a NEW report does not flip it; that is the
  business rule (historical reports keep their classification), so the
  resolver is a one-shot call and must never become a live property.

KNOWN RACE:
  The closure check and the report insert are two separate operations.
  A closure landing between them produces a NEW report for a just-closed
  flight. Accepted: the label routes no work, and closing the window
  would need a cross-document transaction for a cosmetic boundary case.

DISPLAY ID:
  Two-phase: the report is created under its document id first, then
  patched with "WCHR-{YYYYMMDD}-{last 6 of the document id, upper}".
  Uniqueness rides on the document id; the display id is cosmetic.

SEE ALSO:
  - flight.go: FlightKey and the closure registry
*/
package wchr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skyport/roster-engine/roster"
)

// =============================================================================
// REPORT RECORD & STORE
// =============================================================================

type ReportStatus string

const (
	StatusNew  ReportStatus = "NEW"
	StatusLate ReportStatus = "LATE"
)

// Report is one passenger wheelchair-assistance report.
type Report struct {
	ID          string // document id
	ReportID    string // display id, patched in after creation
	EmployeeID  string
	SubmittedAt time.Time

	PassengerName string
	Airline       string
	FlightNumber  string
	FlightDate    time.Time
	Origin        string
	Destination   string
	Seat          string
	Gate          string
	PNR           string
	WCHType       string // WCHR / WCHS / WCHC

	Status    ReportStatus
	FlightKey string
	ImageURL  string
}

// ReportStore is the append-only report collection.
type ReportStore interface {
	// CreateReport persists a new report document.
	CreateReport(ctx context.Context, rep *Report) error

	// SetDisplayID patches the display id onto an existing report.
	SetDisplayID(ctx context.Context, id, reportID string) error

	// GetReport returns the document or (nil, nil) when absent.
	GetReport(ctx context.Context, id string) (*Report, error)

	// ListReportsBetween returns reports submitted in [from, to),
	// newest first.
	ListReportsBetween(ctx context.Context, from, to time.Time) ([]Report, error)
}

// =============================================================================
// DISPLAY ID
// =============================================================================

// ReportID builds the human-readable id for a durably created report.
func ReportID(documentID string, submitted time.Time) string {
	suffix := documentID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return fmt.Sprintf("WCHR-%s-%s", submitted.Format("20060102"), strings.ToUpper(suffix))
}

// =============================================================================
// SUBMISSION SERVICE
// =============================================================================

// SubmitInput is one report as entered by ground staff.
type SubmitInput struct {
	PassengerName string
	Airline       string
	FlightNumber  string
	FlightDate    time.Time
	Origin        string
	Destination   string
	Seat          string
	Gate          string
	PNR           string
	WCHType       string
	ImageURL      string
}

// Service handles report submission and listing.
type Service struct {
	Registry *Registry
	Reports  ReportStore

	Now   func() time.Time
	NewID func() string
}

// NewService wires a report service with default clock and id source.
func NewService(registry *Registry, reports ReportStore) *Service {
	return &Service{
		Registry: registry,
		Reports:  reports,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

// Submit creates a report, freezing its NEW/LATE status against the
// flight's closure state at this moment, then patches the display id.
func (s *Service) Submit(ctx context.Context, actor roster.Actor, in SubmitInput) (*Report, error) {
	if strings.TrimSpace(in.PassengerName) == "" {
		return nil, &roster.ValidationError{Field: "passenger_name", Message: "must not be empty"}
	}
	if strings.TrimSpace(in.Airline) == "" {
		return nil, &roster.ValidationError{Field: "airline", Message: "must not be empty"}
	}
	if strings.Join(strings.Fields(in.FlightNumber), "") == "" {
		return nil, &roster.ValidationError{Field: "flight_number", Message: "must not be empty"}
	}

	key := FlightKey(in.Airline, in.FlightNumber, in.FlightDate)

	status, err := s.ResolveStatus(ctx, key)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		ID:            s.NewID(),
		EmployeeID:    actor.ID,
		SubmittedAt:   s.Now(),
		PassengerName: strings.TrimSpace(in.PassengerName),
		Airline:       strings.TrimSpace(in.Airline),
		FlightNumber:  strings.Join(strings.Fields(in.FlightNumber), ""),
		FlightDate:    in.FlightDate,
		Origin:        in.Origin,
		Destination:   in.Destination,
		Seat:          in.Seat,
		Gate:          in.Gate,
		PNR:           in.PNR,
		WCHType:       in.WCHType,
		Status:        status,
		FlightKey:     key,
		ImageURL:      in.ImageURL,
	}

	if err := s.Reports.CreateReport(ctx, rep); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	// Second phase: the display id needs the durable document id.
	rep.ReportID = ReportID(rep.ID, rep.SubmittedAt)
	if err := s.Reports.SetDisplayID(ctx, rep.ID, rep.ReportID); err != nil {
		return nil, fmt.Errorf("failed to assign report id: %w", err)
	}

	return rep, nil
}

// ResolveStatus is the one-shot NEW/LATE decision for a flight key.
// Callers record the result permanently; it is never re-evaluated.
func (s *Service) ResolveStatus(ctx context.Context, flightKey string) (ReportStatus, error) {
	closed, err := s.Registry.IsClosed(ctx, flightKey)
	if err != nil {
		return "", err
	}
	if closed {
		return StatusLate, nil
	}
	return StatusNew, nil
}

// ListBetween returns reports submitted in a time window, newest first.
func (s *Service) ListBetween(ctx context.Context, from, to time.Time) ([]Report, error) {
	return s.Reports.ListReportsBetween(ctx, from, to)
}
