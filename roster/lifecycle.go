/*
lifecycle.go - Schedule approval state machine

PURPOSE:
  Governs a schedule document from submission to a terminal state:

      submit ──▶ pending ──▶ approved        (station manager)
                    │  └───▶ rejected        (station manager)
                    └──────▶ returned        (station manager, with notes)
                                 │
                  resubmit ──▶ new pending   (original creator)

  draft is a staging state visible only to its creator. approved and
  rejected are terminal for a cycle. returned stays returned forever; a
  resubmission is a NEW document seeded from it, so the audit trail of
  what the reviewer sent back is never rewritten.

GUARDS:
  Every operation takes an explicit Actor. Only station managers move a
  schedule out of pending; only the original creator resubmits a
  returned one. Guard failures are permission errors and leave the
  stored status untouched.

SNAPSHOTS:
  Submit aggregates the grid and snapshots the airline budget valid at
  that moment. Later budget edits never retroactively change a submitted
  schedule; a resubmission re-aggregates and re-snapshots.

SEE ALSO:
  - hours.go: Aggregate and Compare
  - store.go: ScheduleStore / BudgetStore / EmployeeStore
*/
package roster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULE DOCUMENT
// =============================================================================

type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReturned Status = "returned"
)

// Schedule is one submission cycle of a weekly grid.
type Schedule struct {
	ID         string
	Airline    string
	Department string

	// DayNumbers holds the calendar date label shown over each weekday
	// column, Monday first (e.g. "12" over Monday). Display-only; the
	// engine never derives calendar math from it.
	DayNumbers [DaysPerWeek]string

	Grid   Grid
	Totals map[string]decimal.Decimal

	AirlineWeeklyHours decimal.Decimal
	BudgetHours        decimal.Decimal
	OverBudget         bool

	Status    Status
	CreatedBy string
	CreatedAt time.Time

	// Set when a reviewer handles the pending document.
	ReviewedBy  string
	ReviewNotes string
	HandledAt   *time.Time

	// SeededFrom is the id of the returned cycle this document was
	// resubmitted from; empty for first submissions.
	SeededFrom string
}

// SubmitInput is what a scheduler hands to Submit or SaveDraft.
type SubmitInput struct {
	Airline    string
	Department string
	DayNumbers [DaysPerWeek]string
	Grid       Grid
}

// =============================================================================
// SERVICE
// =============================================================================

// Service orchestrates the schedule lifecycle against the stores.
type Service struct {
	Schedules ScheduleStore
	Budgets   BudgetStore
	Employees EmployeeStore

	// Now and NewID are injectable for tests.
	Now   func() time.Time
	NewID func() string
}

// NewService wires a lifecycle service with default clock and id source.
func NewService(schedules ScheduleStore, budgets BudgetStore, employees EmployeeStore) *Service {
	return &Service{
		Schedules: schedules,
		Budgets:   budgets,
		Employees: employees,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submit validates the grid, computes totals, snapshots the budget and
// creates a pending schedule.
func (s *Service) Submit(ctx context.Context, actor Actor, in SubmitInput) (*Schedule, error) {
	return s.create(ctx, actor, in, StatusPending, "")
}

// SaveDraft stores the same snapshot as Submit but in draft status, with
// no reviewer visibility.
func (s *Service) SaveDraft(ctx context.Context, actor Actor, in SubmitInput) (*Schedule, error) {
	return s.create(ctx, actor, in, StatusDraft, "")
}

func (s *Service) create(ctx context.Context, actor Actor, in SubmitInput, status Status, seededFrom string) (*Schedule, error) {
	if !actor.Role.CanSubmitSchedule() {
		return nil, &PermissionError{Actor: actor, Action: "submit schedules"}
	}
	if strings.TrimSpace(in.Airline) == "" {
		return nil, &ValidationError{Field: "airline", Message: "must not be empty"}
	}
	if strings.TrimSpace(in.Department) == "" {
		return nil, &ValidationError{Field: "department", Message: "must not be empty"}
	}

	active, err := s.activeEmployees(ctx)
	if err != nil {
		return nil, err
	}

	// The grid may have been assembled outside the editor (API payload),
	// so the cell-edit rules are re-applied before anything reads it.
	grid := in.Grid.Clone()
	grid.Normalize()
	if err := grid.Validate(active); err != nil {
		return nil, err
	}

	totals := Aggregate(&grid)

	// Snapshot the budget valid right now. A missing budget row is a
	// configuration gap, not a submit blocker: snapshot zero.
	budgetHours := decimal.Zero
	budget, err := s.Budgets.GetBudget(ctx, in.Airline, in.Department)
	if err != nil {
		return nil, fmt.Errorf("failed to read budget: %w", err)
	}
	if budget != nil {
		budgetHours = budget.BudgetHours
	}
	verdict := Compare(totals.AirlineWeeklyHours, budgetHours)

	doc := &Schedule{
		ID:                 s.NewID(),
		Airline:            in.Airline,
		Department:         in.Department,
		DayNumbers:         in.DayNumbers,
		Grid:               grid,
		Totals:             totals.PerEmployee,
		AirlineWeeklyHours: totals.AirlineWeeklyHours,
		BudgetHours:        budgetHours,
		OverBudget:         verdict.OverBudget,
		Status:             status,
		CreatedBy:          actor.ID,
		CreatedAt:          s.Now(),
		SeededFrom:         seededFrom,
	}

	if err := s.Schedules.CreateSchedule(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return doc, nil
}

func (s *Service) activeEmployees(ctx context.Context) (map[string]Employee, error) {
	list, err := s.Employees.ListActiveEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	byID := make(map[string]Employee, len(list))
	for _, e := range list {
		byID[e.ID] = e
	}
	return byID, nil
}

// =============================================================================
// REVIEW TRANSITIONS
// =============================================================================

// Approve moves a pending schedule to approved. Station managers only.
func (s *Service) Approve(ctx context.Context, actor Actor, id string) (*Schedule, error) {
	return s.review(ctx, actor, id, StatusApproved, "approve", "")
}

// Reject moves a pending schedule to rejected. Station managers only.
func (s *Service) Reject(ctx context.Context, actor Actor, id string) (*Schedule, error) {
	return s.review(ctx, actor, id, StatusRejected, "reject", "")
}

// Return sends a pending schedule back to its creator for fixes. The
// reviewer must say what to fix.
func (s *Service) Return(ctx context.Context, actor Actor, id, notes string) (*Schedule, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, &ValidationError{Field: "review_notes", Message: "must explain the requested fix"}
	}
	return s.review(ctx, actor, id, StatusReturned, "return", notes)
}

func (s *Service) review(ctx context.Context, actor Actor, id string, to Status, action, notes string) (*Schedule, error) {
	if !actor.Role.CanReviewSchedule() {
		return nil, &PermissionError{Actor: actor, Action: action + " schedules"}
	}

	doc, err := s.Schedules.GetSchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if doc == nil {
		return nil, &NotFoundError{Kind: "schedule", ID: id}
	}
	if doc.Status != StatusPending {
		return nil, &TransitionError{ScheduleID: id, Action: action, Status: doc.Status}
	}

	now := s.Now()
	patch := StatusPatch{
		Status:      to,
		ReviewedBy:  actor.ID,
		ReviewNotes: notes,
		HandledAt:   now,
	}
	if err := s.Schedules.UpdateScheduleStatus(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("failed to update schedule status: %w", err)
	}

	doc.Status = to
	doc.ReviewedBy = actor.ID
	doc.ReviewNotes = notes
	doc.HandledAt = &now
	return doc, nil
}

// =============================================================================
// RESUBMISSION
// =============================================================================

// Resubmit creates a new pending cycle seeded from a returned schedule.
// Only the original creator may resubmit. The returned document is left
// untouched as the audit record of what the reviewer sent back; totals
// and the budget snapshot are recomputed for the new cycle.
func (s *Service) Resubmit(ctx context.Context, actor Actor, id string) (*Schedule, error) {
	original, err := s.Schedules.GetSchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if original == nil {
		return nil, &NotFoundError{Kind: "schedule", ID: id}
	}
	if original.Status != StatusReturned {
		return nil, &TransitionError{ScheduleID: id, Action: "resubmit", Status: original.Status}
	}
	if original.CreatedBy != actor.ID {
		return nil, &PermissionError{Actor: actor, Action: "resubmit another creator's schedule"}
	}

	seed := SubmitInput{
		Airline:    original.Airline,
		Department: original.Department,
		DayNumbers: original.DayNumbers,
		Grid:       original.Grid.Clone(),
	}
	return s.create(ctx, actor, seed, StatusPending, original.ID)
}

// =============================================================================
// LISTING
// =============================================================================

// List returns schedules visible to the actor, newest first. Station
// managers see everything; duty managers see their own cycles plus all
// approved schedules; everyone else sees approved only.
func (s *Service) List(ctx context.Context, actor Actor, filter ScheduleFilter) ([]*Schedule, error) {
	switch {
	case actor.Role.CanReviewSchedule():
		all, err := s.Schedules.ListSchedules(ctx, filter)
		if err != nil {
			return nil, err
		}
		// Drafts are staging-only: reviewers never see another
		// creator's draft.
		visible := all[:0]
		for _, doc := range all {
			if doc.Status == StatusDraft && doc.CreatedBy != actor.ID {
				continue
			}
			visible = append(visible, doc)
		}
		return visible, nil

	case actor.Role == RoleDutyManager:
		own := filter
		own.CreatedBy = actor.ID
		mine, err := s.Schedules.ListSchedules(ctx, own)
		if err != nil {
			return nil, err
		}

		approved := filter
		approved.Status = StatusApproved
		approved.CreatedBy = ""
		others, err := s.Schedules.ListSchedules(ctx, approved)
		if err != nil {
			return nil, err
		}
		return mergeByCreatedAt(mine, others), nil

	default:
		f := filter
		f.Status = StatusApproved
		f.CreatedBy = ""
		return s.Schedules.ListSchedules(ctx, f)
	}
}

// Get returns one schedule if the actor may see it.
func (s *Service) Get(ctx context.Context, actor Actor, id string) (*Schedule, error) {
	doc, err := s.Schedules.GetSchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if doc == nil {
		return nil, &NotFoundError{Kind: "schedule", ID: id}
	}
	if !s.visible(actor, doc) {
		return nil, &PermissionError{Actor: actor, Action: "view this schedule"}
	}
	return doc, nil
}

func (s *Service) visible(actor Actor, doc *Schedule) bool {
	switch {
	case actor.Role.CanReviewSchedule():
		return doc.Status != StatusDraft || doc.CreatedBy == actor.ID
	case actor.Role == RoleDutyManager:
		return doc.CreatedBy == actor.ID || doc.Status == StatusApproved
	default:
		return doc.Status == StatusApproved
	}
}

// mergeByCreatedAt merges two already-descending lists, dropping
// duplicates (a duty manager's own approved schedule appears in both).
func mergeByCreatedAt(a, b []*Schedule) []*Schedule {
	seen := make(map[string]bool, len(a))
	out := make([]*Schedule, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var next *Schedule
		switch {
		case i == len(a):
			next, j = b[j], j+1
		case j == len(b):
			next, i = a[i], i+1
		case a[i].CreatedAt.Before(b[j].CreatedAt):
			next, j = b[j], j+1
		default:
			next, i = a[i], i+1
		}
		if !seen[next.ID] {
			seen[next.ID] = true
			out = append(out, next)
		}
	}
	return out
}
