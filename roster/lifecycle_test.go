package roster_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyport/roster-engine/roster"
	"github.com/skyport/roster-engine/store/memory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var (
	stationManager = roster.Actor{ID: "mgr-1", Username: "sm", Role: roster.RoleStationManager}
	dutyManager    = roster.Actor{ID: "duty-1", Username: "dm", Role: roster.RoleDutyManager}
	agent          = roster.Actor{ID: "agt-1", Username: "ag", Role: roster.RoleAgent}
)

// newTestService wires a lifecycle service over the memory store with a
// deterministic clock and id sequence.
func newTestService(t *testing.T) (*roster.Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.SaveEmployee(ctx, roster.Employee{ID: "emp-1", Name: "Amina", Department: "ramp", Active: true}))
	require.NoError(t, store.SaveEmployee(ctx, roster.Employee{ID: "emp-2", Name: "Jonas", Department: "ramp", Active: true}))
	require.NoError(t, store.UpsertBudget(ctx, roster.AirlineBudget{
		Airline: "SY", Department: "ramp", BudgetHours: decimal.NewFromInt(40),
	}))

	svc := roster.NewService(store, store, store)

	var tick int64
	svc.Now = func() time.Time {
		tick++
		return time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC).Add(time.Duration(tick) * time.Second)
	}
	var seq int
	svc.NewID = func() string {
		seq++
		return fmt.Sprintf("sched-%03d", seq)
	}
	return svc, store
}

// weekFor builds a submittable one-employee grid: Monday start-end,
// all other days OFF.
func weekFor(t *testing.T, employeeID, start, end string) roster.Grid {
	t.Helper()
	g := roster.NewGrid()
	require.NoError(t, g.SetEmployee(0, employeeID))
	_, err := g.SetSlot(0, 0, 0, roster.FieldStart, start)
	require.NoError(t, err)
	_, err = g.SetSlot(0, 0, 0, roster.FieldEnd, end)
	require.NoError(t, err)
	for day := 1; day < roster.DaysPerWeek; day++ {
		_, err = g.SetSlot(0, day, 0, roster.FieldStart, "OFF")
		require.NoError(t, err)
	}
	return *g
}

func submitInput(t *testing.T) roster.SubmitInput {
	t.Helper()
	return roster.SubmitInput{
		Airline:    "SY",
		Department: "ramp",
		DayNumbers: [roster.DaysPerWeek]string{"5", "6", "7", "8", "9", "10", "11"},
		Grid:       weekFor(t, "emp-1", "08:00", "16:00"),
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestSubmit_CreatesPendingWithSnapshots(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Submit(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)

	assert.Equal(t, roster.StatusPending, doc.Status)
	assert.Equal(t, dutyManager.ID, doc.CreatedBy)
	assert.True(t, doc.AirlineWeeklyHours.Equal(decimal.NewFromInt(8)), "weekly hours = %s", doc.AirlineWeeklyHours)
	assert.True(t, doc.Totals["emp-1"].Equal(decimal.NewFromInt(8)))
	assert.True(t, doc.BudgetHours.Equal(decimal.NewFromInt(40)))
	assert.False(t, doc.OverBudget)
	assert.Empty(t, doc.ReviewedBy)
	assert.Nil(t, doc.HandledAt)
}

func TestSubmit_BudgetSnapshotSurvivesLaterEdits(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Submit(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)

	// Budget edited after submission.
	require.NoError(t, store.UpsertBudget(ctx, roster.AirlineBudget{
		Airline: "SY", Department: "ramp", BudgetHours: decimal.NewFromInt(1),
	}))

	loaded, err := store.GetSchedule(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, loaded.BudgetHours.Equal(decimal.NewFromInt(40)),
		"schedule must keep the budget snapshot taken at submission")
	assert.False(t, loaded.OverBudget)
}

func TestSubmit_OverBudgetFlag(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertBudget(ctx, roster.AirlineBudget{
		Airline: "SY", Department: "ramp", BudgetHours: decimal.NewFromInt(8),
	}))

	// Exactly on budget: within.
	doc, err := svc.Submit(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)
	assert.False(t, doc.OverBudget)

	// One minute over: flagged.
	in := submitInput(t)
	in.Grid = weekFor(t, "emp-1", "08:00", "16:01")
	doc, err = svc.Submit(ctx, dutyManager, in)
	require.NoError(t, err)
	assert.True(t, doc.OverBudget)
}

func TestSubmit_RejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := submitInput(t)
	in.Airline = "  "
	_, err := svc.Submit(ctx, dutyManager, in)
	assert.True(t, roster.IsClientError(err), "blank airline must be a validation error, got %v", err)

	in = submitInput(t)
	in.Grid = weekFor(t, "emp-9", "08:00", "16:00") // not in directory
	_, err = svc.Submit(ctx, dutyManager, in)
	assert.True(t, roster.IsClientError(err), "unknown employee must be a validation error, got %v", err)
}

func TestSubmit_AgentForbidden(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, agent, submitInput(t))
	assert.True(t, roster.IsPermission(err))

	docs, err := store.ListSchedules(ctx, roster.ScheduleFilter{})
	require.NoError(t, err)
	assert.Empty(t, docs, "failed submit must not create a document")
}

func TestSaveDraft_InvisibleToReviewers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	draft, err := svc.SaveDraft(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)
	assert.Equal(t, roster.StatusDraft, draft.Status)

	visible, err := svc.List(ctx, stationManager, roster.ScheduleFilter{})
	require.NoError(t, err)
	assert.Empty(t, visible, "another creator's draft must not reach reviewers")

	own, err := svc.List(ctx, dutyManager, roster.ScheduleFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, draft.ID, own[0].ID)
}

// =============================================================================
// REVIEW TRANSITIONS
// =============================================================================

func TestReview_StationManagerOnly(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Submit(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)

	// Duty manager and agent may not transition out of pending.
	for _, actor := range []roster.Actor{dutyManager, agent} {
		_, err = svc.Approve(ctx, actor, doc.ID)
		assert.True(t, roster.IsPermission(err), "approve as %s: %v", actor.Role, err)
		_, err = svc.Reject(ctx, actor, doc.ID)
		assert.True(t, roster.IsPermission(err), "reject as %s: %v", actor.Role, err)
		_, err = svc.Return(ctx, actor, doc.ID, "fix Monday")
		assert.True(t, roster.IsPermission(err), "return as %s: %v", actor.Role, err)
	}

	// Status untouched by the failed attempts.
	loaded, err := store.GetSchedule(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusPending, loaded.Status)

	approved, err := svc.Approve(ctx, stationManager, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusApproved, approved.Status)
	assert.Equal(t, stationManager.ID, approved.ReviewedBy)
	require.NotNil(t, approved.HandledAt)
}

func TestReview_OnlyPendingTransitions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Submit(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, stationManager, doc.ID)
	require.NoError(t, err)

	// Approved is terminal for the cycle.
	_, err = svc.Reject(ctx, stationManager, doc.ID)
	assert.True(t, roster.IsClientError(err), "expected transition error, got %v", err)
}

func TestReturn_RequiresNotes(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Submit(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)

	_, err = svc.Return(ctx, stationManager, doc.ID, "   ")
	assert.True(t, roster.IsClientError(err), "blank notes must fail validation, got %v", err)

	loaded, err := store.GetSchedule(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusPending, loaded.Status)

	returned, err := svc.Return(ctx, stationManager, doc.ID, "Monday overlaps the SY204 turnaround")
	require.NoError(t, err)
	assert.Equal(t, roster.StatusReturned, returned.Status)
	assert.Equal(t, "Monday overlaps the SY204 turnaround", returned.ReviewNotes)
}

func TestReview_MissingSchedule(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Approve(context.Background(), stationManager, "no-such-id")
	assert.True(t, roster.IsNotFound(err))
}

// =============================================================================
// RESUBMISSION
// =============================================================================

func TestResubmit_CreatesNewCycleAndPreservesAudit(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	original, err := svc.Submit(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)
	_, err = svc.Return(ctx, stationManager, original.ID, "swap emp-1 off Tuesday")
	require.NoError(t, err)

	// Only the original creator may resubmit.
	other := roster.Actor{ID: "duty-2", Role: roster.RoleDutyManager}
	_, err = svc.Resubmit(ctx, other, original.ID)
	assert.True(t, roster.IsPermission(err))

	fresh, err := svc.Resubmit(ctx, dutyManager, original.ID)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, fresh.ID, "resubmission must be a new document")
	assert.Equal(t, roster.StatusPending, fresh.Status)
	assert.Equal(t, original.ID, fresh.SeededFrom)
	assert.Equal(t, original.Airline, fresh.Airline)
	assert.Equal(t, original.DayNumbers, fresh.DayNumbers)
	assert.Equal(t, original.Grid, fresh.Grid)

	// The returned cycle stays returned for audit.
	audit, err := store.GetSchedule(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusReturned, audit.Status)
	assert.Equal(t, "swap emp-1 off Tuesday", audit.ReviewNotes)
}

func TestResubmit_OnlyFromReturned(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Submit(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)

	_, err = svc.Resubmit(ctx, dutyManager, doc.ID)
	assert.True(t, roster.IsClientError(err), "resubmitting a pending cycle must fail, got %v", err)
}

// =============================================================================
// LISTING
// =============================================================================

func TestList_RoleScoping(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mine, err := svc.Submit(ctx, dutyManager, submitInput(t))
	require.NoError(t, err)

	otherDuty := roster.Actor{ID: "duty-2", Role: roster.RoleDutyManager}
	theirs, err := svc.Submit(ctx, otherDuty, submitInput(t))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, stationManager, theirs.ID)
	require.NoError(t, err)

	// Station manager sees every cycle, newest first.
	all, err := svc.List(ctx, stationManager, roster.ScheduleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, theirs.ID, all[0].ID)
	assert.Equal(t, mine.ID, all[1].ID)

	// Duty manager sees own pending plus the other's approved.
	scoped, err := svc.List(ctx, dutyManager, roster.ScheduleFilter{})
	require.NoError(t, err)
	require.Len(t, scoped, 2)

	// Agent sees approved only.
	public, err := svc.List(ctx, agent, roster.ScheduleFilter{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, theirs.ID, public[0].ID)
	assert.Equal(t, roster.StatusApproved, public[0].Status)
}
