/*
grid.go - Weekly shift grid model and edit normalization

PURPOSE:
  Represents one week's shift assignments for a set of employees and
  enforces the cell-edit rules. Each row is one employee; each day holds
  up to two shift slots (a split shift). Marking a day OFF clears any
  second shift; an OFF day cannot carry work.

NORMALIZATION RULES:
  - Values are trimmed and upper-cased before storage, so "off", " Off "
    and "OFF" all compare equal.
  - Setting any slot's start to OFF rewrites the whole day to
    {OFF, ""} / {"", ""}, regardless of which slot was edited.
  - No other validation happens at edit time. Free-text time strings are
    accepted; aggregation treats anything unparsable as non-working.

ROWS:
  A grid starts with one blank row. Rows are appended on demand and never
  removed once present. A grid is only validated as a whole at submission
  time (every row resolvable to a distinct active employee).

SEE ALSO:
  - hours.go:     Consumes the grid for weekly totals
  - lifecycle.go: Snapshots the grid into a Schedule on submit
*/
package roster

import (
	"fmt"
	"strings"
)

// =============================================================================
// GRID TYPES
// =============================================================================

// Off is the sentinel start value marking a full day off.
const Off = "OFF"

// DaysPerWeek indexes grid days 0..6, Monday first.
const DaysPerWeek = 7

// SlotsPerDay allows a split shift: slot 0 and slot 1.
const SlotsPerDay = 2

// SlotField selects which half of a slot an edit targets.
type SlotField string

const (
	FieldStart SlotField = "start"
	FieldEnd   SlotField = "end"
)

// ShiftSlot is one contiguous work interval within a day.
// Start is a time-of-day string ("06:30"), the Off sentinel, or empty.
type ShiftSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsWorking reports whether the slot can contribute hours at all.
func (s ShiftSlot) IsWorking() bool {
	return s.Start != "" && s.Start != Off
}

// DayAssignment holds the two slots of one employee-day.
type DayAssignment [SlotsPerDay]ShiftSlot

// Row is one employee's week.
type Row struct {
	EmployeeID string                     `json:"employee_id"`
	Days       [DaysPerWeek]DayAssignment `json:"days"`
}

// Grid is the in-progress weekly roster for one airline/department.
type Grid struct {
	Rows []Row `json:"rows"`
}

// NewGrid creates a grid with a single blank row, matching the empty
// editor the UI opens with.
func NewGrid() *Grid {
	g := &Grid{}
	g.AddRow()
	return g
}

// AddRow appends a blank row (no employee, all slots empty) and returns
// its index.
func (g *Grid) AddRow() int {
	g.Rows = append(g.Rows, Row{})
	return len(g.Rows) - 1
}

// SetEmployee assigns the employee for a row.
func (g *Grid) SetEmployee(row int, employeeID string) error {
	if row < 0 || row >= len(g.Rows) {
		return &ValidationError{Field: "row", Message: fmt.Sprintf("index %d out of range", row)}
	}
	g.Rows[row].EmployeeID = strings.TrimSpace(employeeID)
	return nil
}

// =============================================================================
// CELL EDITS
// =============================================================================

// SetSlot applies a single cell edit and returns the resulting day.
// The raw value is trimmed and upper-cased first. If the edit writes the
// Off sentinel into a start field, the day collapses to {OFF,""}/{"",""}
// no matter which slot was edited.
func (g *Grid) SetSlot(row, day, slot int, field SlotField, raw string) (DayAssignment, error) {
	if row < 0 || row >= len(g.Rows) {
		return DayAssignment{}, &ValidationError{Field: "row", Message: fmt.Sprintf("index %d out of range", row)}
	}
	if day < 0 || day >= DaysPerWeek {
		return DayAssignment{}, &ValidationError{Field: "day", Message: fmt.Sprintf("index %d out of range", day)}
	}
	if slot < 0 || slot >= SlotsPerDay {
		return DayAssignment{}, &ValidationError{Field: "slot", Message: fmt.Sprintf("index %d out of range", slot)}
	}
	if field != FieldStart && field != FieldEnd {
		return DayAssignment{}, &ValidationError{Field: "field", Message: fmt.Sprintf("unknown field %q", field)}
	}

	value := strings.ToUpper(strings.TrimSpace(raw))
	d := &g.Rows[row].Days[day]

	if field == FieldStart {
		d[slot].Start = value
	} else {
		d[slot].End = value
	}

	// A day marked OFF cannot carry a second shift.
	if field == FieldStart && value == Off {
		d[0] = ShiftSlot{Start: Off, End: ""}
		d[1] = ShiftSlot{}
	}

	return *d, nil
}

// Normalize applies the cell-edit rules to a grid assembled outside
// the editor, such as one decoded from an API payload that never went
// through SetSlot: values are trimmed and upper-cased, and any day
// whose start carries the Off sentinel collapses to {OFF,""}/{"",""}.
func (g *Grid) Normalize() {
	for r := range g.Rows {
		g.Rows[r].EmployeeID = strings.TrimSpace(g.Rows[r].EmployeeID)
		for d := range g.Rows[r].Days {
			day := &g.Rows[r].Days[d]
			off := false
			for s := range day {
				day[s].Start = strings.ToUpper(strings.TrimSpace(day[s].Start))
				day[s].End = strings.ToUpper(strings.TrimSpace(day[s].End))
				if day[s].Start == Off {
					off = true
				}
			}
			if off {
				day[0] = ShiftSlot{Start: Off}
				day[1] = ShiftSlot{}
			}
		}
	}
}

// =============================================================================
// SUBMISSION VALIDATION
// =============================================================================

// Validate checks that the grid is submittable: every row names an
// employee, no employee appears twice, and each id resolves to an active
// directory record. The editor may hold blank rows transiently; a
// submitted grid may not.
func (g *Grid) Validate(activeByID map[string]Employee) error {
	seen := make(map[string]bool, len(g.Rows))
	for i, row := range g.Rows {
		if row.EmployeeID == "" {
			return &ValidationError{Field: "rows", Message: fmt.Sprintf("row %d has no employee", i)}
		}
		if seen[row.EmployeeID] {
			return &ValidationError{Field: "rows", Message: fmt.Sprintf("employee %s appears more than once", row.EmployeeID)}
		}
		seen[row.EmployeeID] = true
		if _, ok := activeByID[row.EmployeeID]; !ok {
			return &ValidationError{Field: "rows", Message: fmt.Sprintf("employee %s is not an active employee", row.EmployeeID)}
		}
	}
	return nil
}

// Clone returns a deep copy. Rows is the only reference-typed field.
func (g *Grid) Clone() Grid {
	out := Grid{Rows: make([]Row, len(g.Rows))}
	copy(out.Rows, g.Rows)
	return out
}
