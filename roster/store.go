/*
store.go - Persistence interfaces for the roster engine

PURPOSE:
  Defines the boundary between the domain logic and storage. The engine
  is storage-agnostic: SQLite in production, in-memory for tests, with
  identical semantics.

KEY INTERFACES:
  ScheduleStore: Submitted/draft schedule documents
  BudgetStore:   Configured airline weekly-hour budgets
  EmployeeStore: Employee directory (read-mostly)

STATUS PATCHES:
  Schedules are created whole and afterwards mutated only through
  UpdateScheduleStatus with a StatusPatch. There is no general update:
  an approved or rejected document never changes again.

LISTING ORDER:
  ListSchedules returns documents ordered by CreatedAt descending.
  Callers (and both implementations) depend on that.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite
  - store/memory: In-memory for testing/dev

SEE ALSO:
  - lifecycle.go: The only writer of schedules
*/
package roster

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULES
// =============================================================================

// ScheduleFilter narrows a listing. Zero values mean "any".
type ScheduleFilter struct {
	Status    Status
	Airline   string
	CreatedBy string
}

// StatusPatch is the only mutation a persisted schedule accepts.
type StatusPatch struct {
	Status      Status
	ReviewedBy  string
	ReviewNotes string
	HandledAt   time.Time
}

// ScheduleStore persists schedule documents.
type ScheduleStore interface {
	// CreateSchedule persists a new document. The id must be unique.
	CreateSchedule(ctx context.Context, s *Schedule) error

	// GetSchedule returns the document or (nil, nil) when absent.
	GetSchedule(ctx context.Context, id string) (*Schedule, error)

	// UpdateScheduleStatus applies a status patch to an existing document.
	UpdateScheduleStatus(ctx context.Context, id string, patch StatusPatch) error

	// ListSchedules returns matching documents, CreatedAt descending.
	ListSchedules(ctx context.Context, filter ScheduleFilter) ([]*Schedule, error)
}

// =============================================================================
// BUDGETS
// =============================================================================

// AirlineBudget is the configured weekly-hour limit for one
// airline/department pair. Schedules snapshot the value at submission
// time; later edits never touch existing documents.
type AirlineBudget struct {
	Airline     string
	Department  string
	BudgetHours decimal.Decimal
}

// BudgetStore persists airline budgets.
type BudgetStore interface {
	// GetBudget returns the budget or (nil, nil) when none is configured.
	GetBudget(ctx context.Context, airline, department string) (*AirlineBudget, error)

	// UpsertBudget creates or replaces a budget row.
	UpsertBudget(ctx context.Context, b AirlineBudget) error

	// ListBudgets returns all configured budgets.
	ListBudgets(ctx context.Context) ([]AirlineBudget, error)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeStore is the employee directory.
type EmployeeStore interface {
	// ListActiveEmployees returns employees that may appear on a grid.
	ListActiveEmployees(ctx context.Context) ([]Employee, error)

	// GetEmployee returns the record or (nil, nil) when absent.
	GetEmployee(ctx context.Context, id string) (*Employee, error)

	// SaveEmployee creates or replaces a directory record.
	SaveEmployee(ctx context.Context, e Employee) error
}
