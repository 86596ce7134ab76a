/*
Package roster provides the core weekly shift-scheduling engine.

PURPOSE:
  This package contains the domain logic for airport ground-operations
  rostering: the per-employee weekly shift grid, the hours aggregation
  engine, airline budget comparison, and the schedule approval lifecycle.

KEY CONCEPTS IN THIS FILE (types.go):
  - Role:     Closed enum of actor roles with capability checks
  - Actor:    The authenticated user performing an operation
  - Employee: A directory record scheduled into shifts

DESIGN PRINCIPLES:
  1. Explicit actors: every lifecycle operation takes an Actor parameter.
     There is no ambient "current user", so tests stay deterministic.
  2. Capability checks live on Role, not scattered string comparisons.
     Adding a role cannot silently bypass a transition guard.
  3. Precision: weekly hour totals use decimal.Decimal, never float
     accumulation.

SEE ALSO:
  - grid.go:      ShiftGrid model and edit normalization
  - hours.go:     Hours aggregation and budget comparison
  - lifecycle.go: Schedule state machine
*/
package roster

// =============================================================================
// ROLES - Closed enum with capability checks
// =============================================================================

type Role string

const (
	RoleStationManager Role = "station_manager"
	RoleDutyManager    Role = "duty_manager"
	RoleSupervisor     Role = "supervisor"
	RoleAgent          Role = "agent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStationManager, RoleDutyManager, RoleSupervisor, RoleAgent:
		return true
	}
	return false
}

// CanSubmitSchedule reports whether r may create schedule submissions
// (pending or draft).
func (r Role) CanSubmitSchedule() bool {
	return r == RoleStationManager || r == RoleDutyManager
}

// CanReviewSchedule reports whether r may transition a schedule out of
// pending (approve, reject, return).
func (r Role) CanReviewSchedule() bool {
	return r == RoleStationManager
}

// CanCloseFlight reports whether r may record a WCHR flight closure.
func (r Role) CanCloseFlight() bool {
	return r == RoleStationManager || r == RoleDutyManager || r == RoleSupervisor
}

// =============================================================================
// ACTOR - The user performing an operation
// =============================================================================

// Actor identifies who is performing a lifecycle or registry call.
// It is always passed explicitly; the engine holds no session state.
type Actor struct {
	ID       string
	Username string
	Role     Role
}

// =============================================================================
// EMPLOYEE - Directory record
// =============================================================================

// Employee is a ground-operations staff member that can appear on a grid.
// The directory is owned by the surrounding application; the engine only
// reads it to resolve grid rows.
type Employee struct {
	ID         string
	Name       string
	Department string
	Active     bool
}
