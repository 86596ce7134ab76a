/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements roster.ScheduleStore, roster.BudgetStore,
  roster.EmployeeStore, wchr.FlightStore and wchr.ReportStore on a
  single SQLite database. The same patterns apply to PostgreSQL; only
  minor dialect differences.

KEY TABLES:
  employees:       Staff directory with active flag
  airline_budgets: Weekly-hour budget per (airline, department)
  schedules:       Schedule documents; grid/totals/day labels as JSON
  wch_flights:     One closure record per flight key
  wch_reports:     Append-only passenger report collection

MUTATION CONTRACT:
  Schedules are inserted whole and only ever patched on the status
  columns. Reports are inserted whole and only ever patched on the
  display id. Flights are single-document upserts (last writer wins),
  which is what makes concurrent closures commutative.

WAL MODE:
  Opened with WAL for better concurrency: readers don't block, single
  writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/roster.db")   // ":memory:" for tests
  if err != nil { log.Fatal(err) }
  defer store.Close()

SEE ALSO:
  - roster/store.go: Interface definitions
  - store/memory:    In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/skyport/roster-engine/roster"
	"github.com/skyport/roster-engine/wchr"
)

// timeLayout is the TEXT encoding of every timestamp column. It must
// be fixed-width: range queries and ORDER BY compare these columns
// lexicographically, and RFC3339Nano trims trailing fraction zeros,
// which would sort "…00:00:00.5Z" before "…00:00:00Z".
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Staff directory
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		department TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_active
		ON employees(active);

	-- Weekly-hour budgets, one row per airline/department
	CREATE TABLE IF NOT EXISTS airline_budgets (
		airline TEXT NOT NULL,
		department TEXT NOT NULL,
		budget_hours TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (airline, department)
	);

	-- Schedule documents. Grid, totals and day labels travel as JSON;
	-- the status columns are the only thing ever updated.
	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		airline TEXT NOT NULL,
		department TEXT NOT NULL,
		day_numbers_json TEXT NOT NULL,
		grid_json TEXT NOT NULL,
		totals_json TEXT NOT NULL,
		airline_weekly_hours TEXT NOT NULL,
		budget_hours TEXT NOT NULL,
		over_budget BOOLEAN NOT NULL DEFAULT FALSE,
		status TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		reviewed_by TEXT,
		review_notes TEXT,
		handled_at TEXT,
		seeded_from TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_status
		ON schedules(status);
	CREATE INDEX IF NOT EXISTS idx_schedules_created_by
		ON schedules(created_by);
	-- Listing hot path: created_at descending
	CREATE INDEX IF NOT EXISTS idx_schedules_created_at
		ON schedules(created_at DESC);

	-- One closure record per flight key; absence means open
	CREATE TABLE IF NOT EXISTS wch_flights (
		flight_key TEXT PRIMARY KEY,
		airline TEXT NOT NULL,
		flight_number TEXT NOT NULL,
		flight_date TEXT NOT NULL,
		origin TEXT,
		destination TEXT,
		closed_at TEXT NOT NULL,
		closed_by TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_wch_flights_closed_at
		ON wch_flights(closed_at);

	-- Append-only report collection; display id patched after insert
	CREATE TABLE IF NOT EXISTS wch_reports (
		id TEXT PRIMARY KEY,
		report_id TEXT,
		employee_id TEXT NOT NULL,
		submitted_at TEXT NOT NULL,
		passenger_name TEXT NOT NULL,
		airline TEXT NOT NULL,
		flight_number TEXT NOT NULL,
		flight_date TEXT NOT NULL,
		origin TEXT,
		destination TEXT,
		seat TEXT,
		gate TEXT,
		pnr TEXT,
		wch_type TEXT,
		status TEXT NOT NULL,
		flight_key TEXT NOT NULL,
		image_url TEXT
	);

	-- Day-window listings query by submission timestamp
	CREATE INDEX IF NOT EXISTS idx_wch_reports_submitted_at
		ON wch_reports(submitted_at);
	CREATE INDEX IF NOT EXISTS idx_wch_reports_flight_key
		ON wch_reports(flight_key);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCHEDULES (roster.ScheduleStore)
// =============================================================================

// CreateSchedule inserts a schedule document.
func (s *Store) CreateSchedule(ctx context.Context, doc *roster.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dayNumbersJSON, err := json.Marshal(doc.DayNumbers)
	if err != nil {
		return fmt.Errorf("failed to encode day numbers: %w", err)
	}
	gridJSON, err := json.Marshal(doc.Grid)
	if err != nil {
		return fmt.Errorf("failed to encode grid: %w", err)
	}
	totalsJSON, err := json.Marshal(doc.Totals)
	if err != nil {
		return fmt.Errorf("failed to encode totals: %w", err)
	}

	query := `
		INSERT INTO schedules
		(id, airline, department, day_numbers_json, grid_json, totals_json,
		 airline_weekly_hours, budget_hours, over_budget, status,
		 created_by, created_at, reviewed_by, review_notes, handled_at, seeded_from)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Airline,
		doc.Department,
		string(dayNumbersJSON),
		string(gridJSON),
		string(totalsJSON),
		doc.AirlineWeeklyHours.String(),
		doc.BudgetHours.String(),
		doc.OverBudget,
		string(doc.Status),
		doc.CreatedBy,
		doc.CreatedAt.UTC().Format(timeLayout),
		nullString(doc.ReviewedBy),
		nullString(doc.ReviewNotes),
		nullTime(doc.HandledAt),
		nullString(doc.SeededFrom),
	)
	return err
}

// GetSchedule returns the document or (nil, nil) when absent.
func (s *Store) GetSchedule(ctx context.Context, id string) (*roster.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, scheduleSelect+` WHERE id = ?`, id)
	doc, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return doc, err
}

// UpdateScheduleStatus patches the status columns of one document.
func (s *Store) UpdateScheduleStatus(ctx context.Context, id string, patch roster.StatusPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE schedules
		SET status = ?, reviewed_by = ?, review_notes = ?, handled_at = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		string(patch.Status),
		patch.ReviewedBy,
		nullString(patch.ReviewNotes),
		patch.HandledAt.UTC().Format(timeLayout),
		id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &roster.NotFoundError{Kind: "schedule", ID: id}
	}
	return nil
}

// ListSchedules returns matching documents, created_at descending.
func (s *Store) ListSchedules(ctx context.Context, filter roster.ScheduleFilter) ([]*roster.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := scheduleSelect + ` WHERE 1=1`
	var args []any
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Airline != "" {
		query += ` AND airline = ?`
		args = append(args, filter.Airline)
	}
	if filter.CreatedBy != "" {
		query += ` AND created_by = ?`
		args = append(args, filter.CreatedBy)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*roster.Schedule
	for rows.Next() {
		doc, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

const scheduleSelect = `
	SELECT id, airline, department, day_numbers_json, grid_json, totals_json,
	       airline_weekly_hours, budget_hours, over_budget, status,
	       created_by, created_at, reviewed_by, review_notes, handled_at, seeded_from
	FROM schedules`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(r rowScanner) (*roster.Schedule, error) {
	var (
		doc                                  roster.Schedule
		dayNumbersJSON, gridJSON, totalsJSON string
		weeklyHours, budgetHours             string
		status, created                      string
		reviewedBy, reviewNotes              sql.NullString
		handled, seededFrom                  sql.NullString
	)
	err := r.Scan(
		&doc.ID, &doc.Airline, &doc.Department,
		&dayNumbersJSON, &gridJSON, &totalsJSON,
		&weeklyHours, &budgetHours, &doc.OverBudget, &status,
		&doc.CreatedBy, &created,
		&reviewedBy, &reviewNotes, &handled, &seededFrom,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(dayNumbersJSON), &doc.DayNumbers); err != nil {
		return nil, fmt.Errorf("failed to decode day numbers: %w", err)
	}
	if err := json.Unmarshal([]byte(gridJSON), &doc.Grid); err != nil {
		return nil, fmt.Errorf("failed to decode grid: %w", err)
	}
	if err := json.Unmarshal([]byte(totalsJSON), &doc.Totals); err != nil {
		return nil, fmt.Errorf("failed to decode totals: %w", err)
	}

	if doc.AirlineWeeklyHours, err = decimal.NewFromString(weeklyHours); err != nil {
		return nil, fmt.Errorf("bad airline_weekly_hours: %w", err)
	}
	if doc.BudgetHours, err = decimal.NewFromString(budgetHours); err != nil {
		return nil, fmt.Errorf("bad budget_hours: %w", err)
	}

	doc.Status = roster.Status(status)
	if doc.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("bad created_at: %w", err)
	}
	doc.ReviewedBy = reviewedBy.String
	doc.ReviewNotes = reviewNotes.String
	doc.SeededFrom = seededFrom.String
	if handled.Valid && handled.String != "" {
		t, err := time.Parse(time.RFC3339Nano, handled.String)
		if err != nil {
			return nil, fmt.Errorf("bad handled_at: %w", err)
		}
		doc.HandledAt = &t
	}
	return &doc, nil
}

// =============================================================================
// BUDGETS (roster.BudgetStore)
// =============================================================================

// GetBudget returns the budget or (nil, nil) when none is configured.
func (s *Store) GetBudget(ctx context.Context, airline, department string) (*roster.AirlineBudget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hours string
	err := s.db.QueryRowContext(ctx,
		`SELECT budget_hours FROM airline_budgets WHERE airline = ? AND department = ?`,
		airline, department,
	).Scan(&hours)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d, err := decimal.NewFromString(hours)
	if err != nil {
		return nil, fmt.Errorf("bad budget_hours: %w", err)
	}
	return &roster.AirlineBudget{Airline: airline, Department: department, BudgetHours: d}, nil
}

// UpsertBudget creates or replaces a budget row.
func (s *Store) UpsertBudget(ctx context.Context, b roster.AirlineBudget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO airline_budgets (airline, department, budget_hours, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(airline, department) DO UPDATE SET
			budget_hours = excluded.budget_hours,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		b.Airline, b.Department, b.BudgetHours.String(),
		time.Now().UTC().Format(timeLayout),
	)
	return err
}

// ListBudgets returns all configured budgets.
func (s *Store) ListBudgets(ctx context.Context) ([]roster.AirlineBudget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT airline, department, budget_hours FROM airline_budgets ORDER BY airline, department`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []roster.AirlineBudget
	for rows.Next() {
		var b roster.AirlineBudget
		var hours string
		if err := rows.Scan(&b.Airline, &b.Department, &hours); err != nil {
			return nil, err
		}
		if b.BudgetHours, err = decimal.NewFromString(hours); err != nil {
			return nil, fmt.Errorf("bad budget_hours: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// =============================================================================
// EMPLOYEES (roster.EmployeeStore)
// =============================================================================

// ListActiveEmployees returns employees that may appear on a grid.
func (s *Store) ListActiveEmployees(ctx context.Context) ([]roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, department, active FROM employees WHERE active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []roster.Employee
	for rows.Next() {
		var e roster.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Department, &e.Active); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEmployee returns the record or (nil, nil) when absent.
func (s *Store) GetEmployee(ctx context.Context, id string) (*roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e roster.Employee
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, department, active FROM employees WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.Department, &e.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SaveEmployee creates or replaces a directory record.
func (s *Store) SaveEmployee(ctx context.Context, e roster.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, name, department, active, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			department = excluded.department,
			active = excluded.active
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Department, e.Active,
		time.Now().UTC().Format(timeLayout),
	)
	return err
}

// =============================================================================
// FLIGHTS (wchr.FlightStore)
// =============================================================================

// GetFlight returns the record or (nil, nil) when absent.
func (s *Store) GetFlight(ctx context.Context, key string) (*wchr.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		f                    wchr.Flight
		flightDate, closedAt string
		origin, destination  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT flight_key, airline, flight_number, flight_date, origin, destination, closed_at, closed_by
		FROM wch_flights WHERE flight_key = ?`, key,
	).Scan(&f.FlightKey, &f.Airline, &f.FlightNumber, &flightDate, &origin, &destination, &closedAt, &f.ClosedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if f.FlightDate, err = time.Parse(time.RFC3339Nano, flightDate); err != nil {
		return nil, fmt.Errorf("bad flight_date: %w", err)
	}
	if f.ClosedAt, err = time.Parse(time.RFC3339Nano, closedAt); err != nil {
		return nil, fmt.Errorf("bad closed_at: %w", err)
	}
	f.Origin = origin.String
	f.Destination = destination.String
	return &f, nil
}

// UpsertFlight creates or replaces the closure record in a single
// document write. Last writer wins.
func (s *Store) UpsertFlight(ctx context.Context, f wchr.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO wch_flights
		(flight_key, airline, flight_number, flight_date, origin, destination, closed_at, closed_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(flight_key) DO UPDATE SET
			origin = excluded.origin,
			destination = excluded.destination,
			closed_at = excluded.closed_at,
			closed_by = excluded.closed_by
	`
	_, err := s.db.ExecContext(ctx, query,
		f.FlightKey, f.Airline, f.FlightNumber,
		f.FlightDate.UTC().Format(timeLayout),
		nullString(f.Origin), nullString(f.Destination),
		f.ClosedAt.UTC().Format(timeLayout),
		f.ClosedBy,
	)
	return err
}

// ListFlightsClosedBetween returns closures in [from, to), newest first.
func (s *Store) ListFlightsClosedBetween(ctx context.Context, from, to time.Time) ([]wchr.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT flight_key, airline, flight_number, flight_date, origin, destination, closed_at, closed_by
		FROM wch_flights
		WHERE closed_at >= ? AND closed_at < ?
		ORDER BY closed_at DESC`,
		from.UTC().Format(timeLayout),
		to.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []wchr.Flight
	for rows.Next() {
		var (
			f                    wchr.Flight
			flightDate, closedAt string
			origin, destination  sql.NullString
		)
		if err := rows.Scan(&f.FlightKey, &f.Airline, &f.FlightNumber, &flightDate, &origin, &destination, &closedAt, &f.ClosedBy); err != nil {
			return nil, err
		}
		if f.FlightDate, err = time.Parse(time.RFC3339Nano, flightDate); err != nil {
			return nil, fmt.Errorf("bad flight_date: %w", err)
		}
		if f.ClosedAt, err = time.Parse(time.RFC3339Nano, closedAt); err != nil {
			return nil, fmt.Errorf("bad closed_at: %w", err)
		}
		f.Origin = origin.String
		f.Destination = destination.String
		out = append(out, f)
	}
	return out, rows.Err()
}

// =============================================================================
// REPORTS (wchr.ReportStore)
// =============================================================================

// CreateReport inserts a report document.
func (s *Store) CreateReport(ctx context.Context, rep *wchr.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO wch_reports
		(id, report_id, employee_id, submitted_at, passenger_name, airline,
		 flight_number, flight_date, origin, destination, seat, gate, pnr,
		 wch_type, status, flight_key, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		rep.ID,
		nullString(rep.ReportID),
		rep.EmployeeID,
		rep.SubmittedAt.UTC().Format(timeLayout),
		rep.PassengerName,
		rep.Airline,
		rep.FlightNumber,
		rep.FlightDate.UTC().Format(timeLayout),
		nullString(rep.Origin),
		nullString(rep.Destination),
		nullString(rep.Seat),
		nullString(rep.Gate),
		nullString(rep.PNR),
		nullString(rep.WCHType),
		string(rep.Status),
		rep.FlightKey,
		nullString(rep.ImageURL),
	)
	return err
}

// SetDisplayID patches the display id onto an existing report.
func (s *Store) SetDisplayID(ctx context.Context, id, reportID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE wch_reports SET report_id = ? WHERE id = ?`, reportID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &roster.NotFoundError{Kind: "report", ID: id}
	}
	return nil
}

// GetReport returns the document or (nil, nil) when absent.
func (s *Store) GetReport(ctx context.Context, id string) (*wchr.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, reportSelect+` WHERE id = ?`, id)
	rep, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// ListReportsBetween returns reports submitted in [from, to), newest first.
func (s *Store) ListReportsBetween(ctx context.Context, from, to time.Time) ([]wchr.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		reportSelect+` WHERE submitted_at >= ? AND submitted_at < ? ORDER BY submitted_at DESC`,
		from.UTC().Format(timeLayout),
		to.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []wchr.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rep)
	}
	return out, rows.Err()
}

const reportSelect = `
	SELECT id, report_id, employee_id, submitted_at, passenger_name, airline,
	       flight_number, flight_date, origin, destination, seat, gate, pnr,
	       wch_type, status, flight_key, image_url
	FROM wch_reports`

func scanReport(r rowScanner) (*wchr.Report, error) {
	var (
		rep                                       wchr.Report
		submittedAt, flightDate, status           string
		reportID, origin, destination, seat, gate sql.NullString
		pnr, wchType, imageURL                    sql.NullString
	)
	err := r.Scan(
		&rep.ID, &reportID, &rep.EmployeeID, &submittedAt, &rep.PassengerName,
		&rep.Airline, &rep.FlightNumber, &flightDate, &origin, &destination,
		&seat, &gate, &pnr, &wchType, &status, &rep.FlightKey, &imageURL,
	)
	if err != nil {
		return nil, err
	}

	if rep.SubmittedAt, err = time.Parse(time.RFC3339Nano, submittedAt); err != nil {
		return nil, fmt.Errorf("bad submitted_at: %w", err)
	}
	if rep.FlightDate, err = time.Parse(time.RFC3339Nano, flightDate); err != nil {
		return nil, fmt.Errorf("bad flight_date: %w", err)
	}
	rep.ReportID = reportID.String
	rep.Origin = origin.String
	rep.Destination = destination.String
	rep.Seat = seat.String
	rep.Gate = gate.String
	rep.PNR = pnr.String
	rep.WCHType = wchType.String
	rep.Status = wchr.ReportStatus(status)
	rep.ImageURL = imageURL.String
	return &rep, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}
