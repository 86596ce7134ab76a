/*
errors.go - Centralized error types for the roster engine

PURPOSE:
  All error types in one place. The API layer maps these to HTTP status
  codes, so the three families must stay distinguishable:

  1. Validation errors - bad input, schedule/report never created (400)
  2. Permission errors - actor role not authorized for the action (403)
  3. Not-found errors  - referenced document absent (404)

USAGE:
  if roster.IsPermission(err) {
      // show "not authorized", not "bad input"
  }

SEE ALSO:
  - lifecycle.go: transition guards returning PermissionError
  - api/handlers.go: HTTP status mapping
*/
package roster

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrPermissionDenied is returned when the actor's role does not
	// authorize the requested operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation is returned when input fails validation before
	// reaching the state machine.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced schedule, flight,
	// employee or budget does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a lifecycle action is applied
	// to a schedule in the wrong status (e.g. approving a draft).
	ErrInvalidTransition = errors.New("invalid status transition")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PermissionError reports which actor attempted which action.
type PermissionError struct {
	Actor  Actor
	Action string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("role %q may not %s", e.Actor.Role, e.Action)
}

func (e *PermissionError) Unwrap() error { return ErrPermissionDenied }

// ValidationError reports a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports a missing document.
type NotFoundError struct {
	Kind string // "schedule", "flight", "employee", "budget"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// TransitionError reports an action applied in the wrong status.
type TransitionError struct {
	ScheduleID string
	Action     string
	Status     Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s schedule %s in status %q", e.Action, e.ScheduleID, e.Status)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsPermission returns true if the error is an authorization failure.
func IsPermission(err error) bool { return errors.Is(err, ErrPermissionDenied) }

// IsNotFound returns true if the error indicates a missing document.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidTransition)
}
