/*
Package wchr tracks wheelchair-assistance (WCHR) flight closures and
passenger reports.

PURPOSE:
  Ground staff file one report per assisted passenger. When a flight
  departs, a manager closes it; reports filed after closure are marked
  LATE, reports filed before it are NEW. This file owns flight identity
  and the closure registry.

FLIGHT IDENTITY (flight.go):
  A flight has no upstream id, so the key is derived deterministically
  from airline + flight number + calendar day:

      "SY-204-2026-01-08"

  The flight number is trimmed and stripped of internal whitespace so
  " 2 04 " and "204" collide on purpose. Missing inputs degrade to the
  "UNK" / "unknown-date" tokens, so a key is always producible.

CLOSURE:
  Closing is an idempotent upsert: re-closing a closed flight refreshes
  closed_at/closed_by and never errors, so two managers racing on the
  same departure are commutative (last writer wins). Absence of a record
  means the flight is open.

SEE ALSO:
  - report.go: NEW/LATE resolution at report submission
*/
package wchr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skyport/roster-engine/roster"
)

// =============================================================================
// FLIGHT KEY
// =============================================================================

// FlightKey derives the stable identity of one departure. Never fails:
// missing inputs fall back to placeholder tokens.
func FlightKey(airline, flightNumber string, flightDate time.Time) string {
	a := strings.TrimSpace(airline)
	if a == "" {
		a = "UNK"
	}

	// Collapse " 2 04 " to "204".
	n := strings.Join(strings.Fields(flightNumber), "")
	if n == "" {
		n = "UNK"
	}

	d := "unknown-date"
	if !flightDate.IsZero() {
		d = flightDate.Format("2006-01-02")
	}

	return fmt.Sprintf("%s-%s-%s", a, n, d)
}

// =============================================================================
// FLIGHT RECORD & STORE
// =============================================================================

// Flight is the closure record for one departure. Created lazily on
// first closure; no record means the flight is open.
type Flight struct {
	FlightKey    string
	Airline      string
	FlightNumber string
	FlightDate   time.Time
	Origin       string
	Destination  string
	ClosedAt     time.Time
	ClosedBy     string
}

// FlightStore persists flight closure records, one document per key.
type FlightStore interface {
	// GetFlight returns the record or (nil, nil) when absent.
	GetFlight(ctx context.Context, key string) (*Flight, error)

	// UpsertFlight creates or replaces the record for its key in a
	// single document write.
	UpsertFlight(ctx context.Context, f Flight) error

	// ListFlightsClosedBetween returns closures in [from, to), newest first.
	ListFlightsClosedBetween(ctx context.Context, from, to time.Time) ([]Flight, error)
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is the closure workflow over a FlightStore.
type Registry struct {
	Flights FlightStore
	Now     func() time.Time
}

// NewRegistry wires a registry with the default clock.
func NewRegistry(flights FlightStore) *Registry {
	return &Registry{Flights: flights, Now: time.Now}
}

// Close records (or refreshes) the closure of a flight. Restricted to
// station managers, duty managers and supervisors.
func (r *Registry) Close(ctx context.Context, actor roster.Actor, airline, flightNumber string, flightDate time.Time, origin, destination string) (*Flight, error) {
	if !actor.Role.CanCloseFlight() {
		return nil, &roster.PermissionError{Actor: actor, Action: "close flights"}
	}

	f := Flight{
		FlightKey:    FlightKey(airline, flightNumber, flightDate),
		Airline:      strings.TrimSpace(airline),
		FlightNumber: strings.Join(strings.Fields(flightNumber), ""),
		FlightDate:   flightDate,
		Origin:       origin,
		Destination:  destination,
		ClosedAt:     r.Now(),
		ClosedBy:     actor.ID,
	}

	if err := r.Flights.UpsertFlight(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to close flight %s: %w", f.FlightKey, err)
	}
	return &f, nil
}

// IsClosed reports whether the flight has a closure on record.
func (r *Registry) IsClosed(ctx context.Context, key string) (bool, error) {
	f, err := r.Flights.GetFlight(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to look up flight %s: %w", key, err)
	}
	return f != nil && !f.ClosedAt.IsZero(), nil
}

// ListClosedBetween returns the closures of a time window, for the
// daily flight listing.
func (r *Registry) ListClosedBetween(ctx context.Context, from, to time.Time) ([]Flight, error) {
	return r.Flights.ListFlightsClosedBetween(ctx, from, to)
}
