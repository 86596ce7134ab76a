/*
hours.go - Weekly hours aggregation and budget comparison

PURPOSE:
  Turns a shift grid into per-employee weekly hour totals and an airline
  total, then compares the airline total against its configured budget.

AGGREGATION RULES:
  - A slot contributes hours iff its start parses as a time of day and is
    neither empty nor OFF.
  - Duration is wall-clock minutes end-start; an end earlier than its
    start crosses midnight and gains 24h. Ramp operations run through the
    night, so overnight shifts are first-class.
  - Malformed time strings contribute zero hours and never error. The
    editor accepts free text; the aggregator degrades silently.
  - Pure: no hidden state, aggregate twice and get identical results.

PRECISION:
  Totals use decimal.Decimal. Summing 14 quarter-hour slots per employee
  in float64 drifts; decimal keeps 7.25 + 7.25 exact.

SEE ALSO:
  - grid.go:      The input model
  - lifecycle.go: Snapshots totals and verdict on submit
*/
package roster

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TOTALS
// =============================================================================

const minutesPerDay = 24 * 60

var sixty = decimal.NewFromInt(60)

// Totals is the result of aggregating one grid.
type Totals struct {
	// PerEmployee maps employee id to weekly hours.
	PerEmployee map[string]decimal.Decimal

	// AirlineWeeklyHours is the sum of all per-employee totals. A grid is
	// always single-airline/department, so this is the airline's week.
	AirlineWeeklyHours decimal.Decimal
}

// Aggregate computes weekly totals for every row of the grid.
func Aggregate(g *Grid) Totals {
	totals := Totals{
		PerEmployee:        make(map[string]decimal.Decimal, len(g.Rows)),
		AirlineWeeklyHours: decimal.Zero,
	}

	for _, row := range g.Rows {
		sum := decimal.Zero
		for _, day := range row.Days {
			for _, slot := range day {
				sum = sum.Add(slotHours(slot))
			}
		}
		totals.PerEmployee[row.EmployeeID] = sum
		totals.AirlineWeeklyHours = totals.AirlineWeeklyHours.Add(sum)
	}
	return totals
}

// slotHours returns the hours one slot contributes.
func slotHours(s ShiftSlot) decimal.Decimal {
	if !s.IsWorking() {
		return decimal.Zero
	}
	start, ok := parseClock(s.Start)
	if !ok {
		return decimal.Zero
	}
	end, ok := parseClock(s.End)
	if !ok {
		return decimal.Zero
	}
	minutes := end - start
	if minutes < 0 {
		// Overnight shift: end is on the next day.
		minutes += minutesPerDay
	}
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// parseClock parses "HH:MM" (or "H:MM") into minutes since midnight.
func parseClock(s string) (int, bool) {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// =============================================================================
// BUDGET COMPARISON
// =============================================================================

// Verdict is the over/under-budget result for one airline week.
type Verdict struct {
	Hours      decimal.Decimal
	Budget     decimal.Decimal
	Difference decimal.Decimal // Hours - Budget; positive when over
	OverBudget bool
}

// Compare flags an airline week against its budget. The boundary is
// inclusive: exactly on budget is within budget.
func Compare(hours, budget decimal.Decimal) Verdict {
	return Verdict{
		Hours:      hours,
		Budget:     budget,
		Difference: hours.Sub(budget),
		OverBudget: hours.GreaterThan(budget),
	}
}
