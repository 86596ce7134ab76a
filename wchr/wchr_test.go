package wchr_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyport/roster-engine/roster"
	"github.com/skyport/roster-engine/store/memory"
	"github.com/skyport/roster-engine/wchr"
)

var (
	supervisor = roster.Actor{ID: "sup-1", Username: "sv", Role: roster.RoleSupervisor}
	groundCrew = roster.Actor{ID: "agt-1", Username: "ag", Role: roster.RoleAgent}
)

func jan8() time.Time {
	return time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC)
}

// newFixtures wires registry and report service over the memory store
// with a deterministic clock.
func newFixtures(t *testing.T) (*wchr.Registry, *wchr.Service, *memory.Store) {
	t.Helper()
	store := memory.New()

	registry := wchr.NewRegistry(store)
	registry.Now = func() time.Time {
		return time.Date(2026, time.January, 8, 14, 30, 0, 0, time.UTC)
	}

	reports := wchr.NewService(registry, store)
	reports.Now = func() time.Time {
		return time.Date(2026, time.January, 8, 15, 0, 0, 0, time.UTC)
	}
	reports.NewID = func() string { return "doc-7f3a9c" }
	return registry, reports, store
}

func validReport() wchr.SubmitInput {
	return wchr.SubmitInput{
		PassengerName: "R. Okafor",
		Airline:       "SY",
		FlightNumber:  "204",
		FlightDate:    jan8(),
		Origin:        "MSP",
		Destination:   "LAS",
		Seat:          "12C",
		Gate:          "G4",
		PNR:           "ABC123",
		WCHType:       "WCHR",
	}
}

// =============================================================================
// FLIGHT KEY
// =============================================================================

func TestFlightKey_Canonical(t *testing.T) {
	assert.Equal(t, "SY-204-2026-01-08", wchr.FlightKey("SY", " 204 ", jan8()))
}

func TestFlightKey_CollapsesInternalWhitespace(t *testing.T) {
	assert.Equal(t, wchr.FlightKey("SY", "204", jan8()), wchr.FlightKey("SY", " 2 04 ", jan8()))
}

func TestFlightKey_Fallbacks(t *testing.T) {
	assert.Equal(t, "UNK-204-2026-01-08", wchr.FlightKey("  ", "204", jan8()))
	assert.Equal(t, "SY-UNK-2026-01-08", wchr.FlightKey("SY", "   ", jan8()))
	assert.Equal(t, "SY-204-unknown-date", wchr.FlightKey("SY", "204", time.Time{}))
	assert.Equal(t, "UNK-UNK-unknown-date", wchr.FlightKey("", "", time.Time{}))
}

// =============================================================================
// CLOSURE
// =============================================================================

func TestClose_RecordsClosure(t *testing.T) {
	registry, _, _ := newFixtures(t)
	ctx := context.Background()

	f, err := registry.Close(ctx, supervisor, "SY", " 204 ", jan8(), "MSP", "LAS")
	require.NoError(t, err)

	assert.Equal(t, "SY-204-2026-01-08", f.FlightKey)
	assert.Equal(t, "204", f.FlightNumber)
	assert.Equal(t, supervisor.ID, f.ClosedBy)
	assert.Equal(t, registry.Now(), f.ClosedAt)

	closed, err := registry.IsClosed(ctx, f.FlightKey)
	require.NoError(t, err)
	assert.True(t, closed)
}

func TestClose_IdempotentLastWriterWins(t *testing.T) {
	registry, _, store := newFixtures(t)
	ctx := context.Background()

	first := time.Date(2026, time.January, 8, 14, 30, 0, 0, time.UTC)
	second := first.Add(2 * time.Minute)

	registry.Now = func() time.Time { return first }
	_, err := registry.Close(ctx, supervisor, "SY", "204", jan8(), "MSP", "LAS")
	require.NoError(t, err)

	// A second manager closes the same departure two minutes later.
	registry.Now = func() time.Time { return second }
	other := roster.Actor{ID: "duty-1", Role: roster.RoleDutyManager}
	_, err = registry.Close(ctx, other, "SY", "204", jan8(), "MSP", "LAS")
	require.NoError(t, err)

	f, err := store.GetFlight(ctx, "SY-204-2026-01-08")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, second, f.ClosedAt)
	assert.Equal(t, other.ID, f.ClosedBy)
}

func TestClose_AgentForbidden(t *testing.T) {
	registry, _, _ := newFixtures(t)
	ctx := context.Background()

	_, err := registry.Close(ctx, groundCrew, "SY", "204", jan8(), "MSP", "LAS")
	assert.True(t, roster.IsPermission(err))

	closed, err := registry.IsClosed(ctx, "SY-204-2026-01-08")
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestIsClosed_AbsentMeansOpen(t *testing.T) {
	registry, _, _ := newFixtures(t)
	closed, err := registry.IsClosed(context.Background(), "G9-110-2026-01-08")
	require.NoError(t, err)
	assert.False(t, closed)
}

// =============================================================================
// REPORT SUBMISSION
// =============================================================================

func TestSubmit_NewBeforeClosure(t *testing.T) {
	_, reports, _ := newFixtures(t)
	ctx := context.Background()

	rep, err := reports.Submit(ctx, groundCrew, validReport())
	require.NoError(t, err)

	assert.Equal(t, wchr.StatusNew, rep.Status)
	assert.Equal(t, "SY-204-2026-01-08", rep.FlightKey)
	assert.Equal(t, groundCrew.ID, rep.EmployeeID)
}

func TestSubmit_LateAfterClosure(t *testing.T) {
	registry, reports, _ := newFixtures(t)
	ctx := context.Background()

	_, err := registry.Close(ctx, supervisor, "SY", "204", jan8(), "MSP", "LAS")
	require.NoError(t, err)

	rep, err := reports.Submit(ctx, groundCrew, validReport())
	require.NoError(t, err)
	assert.Equal(t, wchr.StatusLate, rep.Status)
}

func TestSubmit_StatusFrozenAgainstLaterClosure(t *testing.T) {
	registry, reports, store := newFixtures(t)
	ctx := context.Background()

	rep, err := reports.Submit(ctx, groundCrew, validReport())
	require.NoError(t, err)
	require.Equal(t, wchr.StatusNew, rep.Status)

	// The flight closes after the report was filed.
	_, err = registry.Close(ctx, supervisor, "SY", "204", jan8(), "MSP", "LAS")
	require.NoError(t, err)

	stored, err := store.GetReport(ctx, rep.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, wchr.StatusNew, stored.Status, "status is frozen at submission")
}

func TestSubmit_AssignsDisplayID(t *testing.T) {
	_, reports, store := newFixtures(t)
	ctx := context.Background()

	rep, err := reports.Submit(ctx, groundCrew, validReport())
	require.NoError(t, err)
	assert.Equal(t, "WCHR-20260108-7F3A9C", rep.ReportID)

	stored, err := store.GetReport(ctx, rep.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, rep.ReportID, stored.ReportID, "display id is patched onto the stored document")
}

func TestSubmit_RejectsMissingFields(t *testing.T) {
	_, reports, _ := newFixtures(t)
	ctx := context.Background()

	in := validReport()
	in.PassengerName = "  "
	_, err := reports.Submit(ctx, groundCrew, in)
	assert.True(t, roster.IsClientError(err), "blank passenger name: %v", err)

	in = validReport()
	in.Airline = ""
	_, err = reports.Submit(ctx, groundCrew, in)
	assert.True(t, roster.IsClientError(err), "blank airline: %v", err)

	in = validReport()
	in.FlightNumber = " \t "
	_, err = reports.Submit(ctx, groundCrew, in)
	assert.True(t, roster.IsClientError(err), "whitespace flight number: %v", err)
}

// =============================================================================
// DISPLAY ID FORMAT
// =============================================================================

func TestReportID_Format(t *testing.T) {
	submitted := time.Date(2026, time.January, 8, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "WCHR-20260108-E4D1F2", wchr.ReportID("a81bc81b-dead-4e5d-abff-90865de4d1f2", submitted))
	assert.Equal(t, "WCHR-20260108-AB12", wchr.ReportID("ab12", submitted), "short ids are kept whole")
}

// =============================================================================
// LISTING WINDOWS
// =============================================================================

func TestListBetween_HalfOpenWindow(t *testing.T) {
	_, reports, _ := newFixtures(t)
	ctx := context.Background()

	var seq int
	reports.NewID = func() string {
		seq++
		return []string{"doc-one", "doc-two", "doc-three"}[seq-1]
	}

	times := []time.Time{
		time.Date(2026, time.January, 8, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 8, 17, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC), // next day, excluded
	}
	for i := range times {
		submitted := times[i]
		reports.Now = func() time.Time { return submitted }
		_, err := reports.Submit(ctx, groundCrew, validReport())
		require.NoError(t, err)
	}

	from := time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	day, err := reports.ListBetween(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, day, 2, "the window is [from, to): midnight of the next day is out")
	assert.Equal(t, "doc-two", day[0].ID, "newest first")
	assert.Equal(t, "doc-one", day[1].ID)
}

func TestListClosedBetween(t *testing.T) {
	registry, _, _ := newFixtures(t)
	ctx := context.Background()

	early := time.Date(2026, time.January, 8, 6, 0, 0, 0, time.UTC)
	late := time.Date(2026, time.January, 8, 22, 0, 0, 0, time.UTC)

	registry.Now = func() time.Time { return early }
	_, err := registry.Close(ctx, supervisor, "SY", "204", jan8(), "MSP", "LAS")
	require.NoError(t, err)

	registry.Now = func() time.Time { return late }
	_, err = registry.Close(ctx, supervisor, "G9", "110", jan8(), "LAS", "PHX")
	require.NoError(t, err)

	from := time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC)
	day, err := registry.ListClosedBetween(ctx, from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "G9-110-2026-01-08", day[0].FlightKey, "newest first")

	morning, err := registry.ListClosedBetween(ctx, from, from.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, morning, 1)
	assert.Equal(t, "SY-204-2026-01-08", morning[0].FlightKey)
}
