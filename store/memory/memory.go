// Package memory provides an in-memory implementation of every roster
// and wchr store interface, for tests and dev runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/skyport/roster-engine/roster"
	"github.com/skyport/roster-engine/wchr"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	schedules []*roster.Schedule
	budgets   map[budgetKey]roster.AirlineBudget
	employees map[string]roster.Employee
	flights   map[string]wchr.Flight
	reports   []wchr.Report
}

type budgetKey struct {
	Airline    string
	Department string
}

func New() *Store {
	return &Store{
		budgets:   make(map[budgetKey]roster.AirlineBudget),
		employees: make(map[string]roster.Employee),
		flights:   make(map[string]wchr.Flight),
	}
}

// =============================================================================
// SCHEDULES (roster.ScheduleStore)
// =============================================================================

func (m *Store) CreateSchedule(_ context.Context, s *roster.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	m.schedules = append(m.schedules, &cp)
	return nil
}

func (m *Store) GetSchedule(_ context.Context, id string) (*roster.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.schedules {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Store) UpdateScheduleStatus(_ context.Context, id string, patch roster.StatusPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.schedules {
		if s.ID == id {
			handled := patch.HandledAt
			s.Status = patch.Status
			s.ReviewedBy = patch.ReviewedBy
			s.ReviewNotes = patch.ReviewNotes
			s.HandledAt = &handled
			return nil
		}
	}
	return &roster.NotFoundError{Kind: "schedule", ID: id}
}

func (m *Store) ListSchedules(_ context.Context, filter roster.ScheduleFilter) ([]*roster.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*roster.Schedule
	for _, s := range m.schedules {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Airline != "" && s.Airline != filter.Airline {
			continue
		}
		if filter.CreatedBy != "" && s.CreatedBy != filter.CreatedBy {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}

	// Newest first; stable so same-timestamp documents keep insertion
	// order reversed consistently with the sqlite store.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// =============================================================================
// BUDGETS (roster.BudgetStore)
// =============================================================================

func (m *Store) GetBudget(_ context.Context, airline, department string) (*roster.AirlineBudget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.budgets[budgetKey{airline, department}]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *Store) UpsertBudget(_ context.Context, b roster.AirlineBudget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.budgets[budgetKey{b.Airline, b.Department}] = b
	return nil
}

func (m *Store) ListBudgets(_ context.Context) ([]roster.AirlineBudget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]roster.AirlineBudget, 0, len(m.budgets))
	for _, b := range m.budgets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Airline != out[j].Airline {
			return out[i].Airline < out[j].Airline
		}
		return out[i].Department < out[j].Department
	})
	return out, nil
}

// =============================================================================
// EMPLOYEES (roster.EmployeeStore)
// =============================================================================

func (m *Store) ListActiveEmployees(_ context.Context) ([]roster.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []roster.Employee
	for _, e := range m.employees {
		if e.Active {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Store) GetEmployee(_ context.Context, id string) (*roster.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *Store) SaveEmployee(_ context.Context, e roster.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.employees[e.ID] = e
	return nil
}

// =============================================================================
// FLIGHTS (wchr.FlightStore)
// =============================================================================

func (m *Store) GetFlight(_ context.Context, key string) (*wchr.Flight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.flights[key]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (m *Store) UpsertFlight(_ context.Context, f wchr.Flight) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.flights[f.FlightKey] = f
	return nil
}

func (m *Store) ListFlightsClosedBetween(_ context.Context, from, to time.Time) ([]wchr.Flight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []wchr.Flight
	for _, f := range m.flights {
		if f.ClosedAt.IsZero() || f.ClosedAt.Before(from) || !f.ClosedAt.Before(to) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClosedAt.After(out[j].ClosedAt) })
	return out, nil
}

// =============================================================================
// REPORTS (wchr.ReportStore)
// =============================================================================

func (m *Store) CreateReport(_ context.Context, rep *wchr.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports = append(m.reports, *rep)
	return nil
}

func (m *Store) SetDisplayID(_ context.Context, id, reportID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.reports {
		if m.reports[i].ID == id {
			m.reports[i].ReportID = reportID
			return nil
		}
	}
	return &roster.NotFoundError{Kind: "report", ID: id}
}

func (m *Store) GetReport(_ context.Context, id string) (*wchr.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.reports {
		if m.reports[i].ID == id {
			cp := m.reports[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Store) ListReportsBetween(_ context.Context, from, to time.Time) ([]wchr.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []wchr.Report
	for _, r := range m.reports {
		if r.SubmittedAt.Before(from) || !r.SubmittedAt.Before(to) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}
