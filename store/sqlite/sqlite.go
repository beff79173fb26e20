/*
Package sqlite provides the SQLite-backed roster source and submit sink.

PURPOSE:
  Implements the roster.Source and roster.Sink boundaries over SQLite.
  The engine itself never touches the database; it works on an in-memory
  ledger populated from here and hands save payloads back for
  persistence.

KEY TABLES:
  employees:       roster identity and display fields
  attendance_seed: seeded per-day state (hours, absent) per employee
  submissions:     append-only log of submitted save payloads

SUBMISSIONS ARE APPEND-ONLY:
  A submission is a record of what the operator sent, not live state;
  it is never updated or deleted. The editable state lives in the
  ledger, and the seed tables are replaced per employee on write.

WAL MODE:
  Opened with WAL and foreign keys on, same as any small single-writer
  deployment wants: readers don't block, crash recovery is sane.

USAGE:
  store, err := sqlite.New("./data/attendance.db")
  if err != nil { ... }
  defer store.Close()

  employees, err := store.Employees(ctx)

SEE ALSO:
  - roster/types.go: the Source and Sink contracts
  - api/handlers.go: the consumer of both
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

	"github.com/Abk8406/attendance-manager/engine"
	"github.com/Abk8406/attendance-manager/roster"
)

// Store implements roster.Source and roster.Sink using SQLite.
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
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		emp_id TEXT NOT NULL,
		designation TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		site TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance_seed (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		day_label TEXT NOT NULL,
		hours TEXT NOT NULL,
		absent INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (employee_id, day_label)
	);

	-- Append-only log of submitted payloads
	CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		submitted_at TEXT NOT NULL,
		payload_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_position ON employees(position);
	CREATE INDEX IF NOT EXISTS idx_attendance_seed_employee ON attendance_seed(employee_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ROSTER SOURCE
// =============================================================================

// Employees returns the roster in stable position order, each employee
// with their seeded attendance map. Implements roster.Source.
func (s *Store) Employees(ctx context.Context) ([]roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, emp_id, designation, hourly_rate, site
		FROM employees ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []roster.Employee
	index := make(map[string]int)
	for rows.Next() {
		var e roster.Employee
		var rate string
		if err := rows.Scan(&e.ID, &e.Name, &e.EmpID, &e.Designation, &rate, &e.Site); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		e.HourlyRate, err = decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("employee %s: bad hourly_rate %q: %w", e.ID, rate, err)
		}
		e.Attendance = make(map[string]roster.DayAttendance)
		index[e.ID] = len(employees)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	seeds, err := s.db.QueryContext(ctx, `
		SELECT employee_id, day_label, hours, absent FROM attendance_seed`)
	if err != nil {
		return nil, fmt.Errorf("list attendance seeds: %w", err)
	}
	defer seeds.Close()

	for seeds.Next() {
		var empID, label, hours string
		var absent bool
		if err := seeds.Scan(&empID, &label, &hours, &absent); err != nil {
			return nil, fmt.Errorf("scan attendance seed: %w", err)
		}
		if i, ok := index[empID]; ok {
			employees[i].Attendance[label] = roster.DayAttendance{Hours: hours, Absent: absent}
		}
	}
	return employees, seeds.Err()
}

// SaveEmployee upserts an employee and replaces their attendance seeds.
func (s *Store) SaveEmployee(ctx context.Context, e roster.Employee, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO employees (id, name, emp_id, designation, hourly_rate, site, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			emp_id = excluded.emp_id,
			designation = excluded.designation,
			hourly_rate = excluded.hourly_rate,
			site = excluded.site,
			position = excluded.position`,
		e.ID, e.Name, e.EmpID, e.Designation, e.HourlyRate.String(), e.Site,
		position, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save employee %s: %w", e.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance_seed WHERE employee_id = ?`, e.ID); err != nil {
		return fmt.Errorf("clear seeds for %s: %w", e.ID, err)
	}
	for label, day := range e.Attendance {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO attendance_seed (employee_id, day_label, hours, absent)
			VALUES (?, ?, ?, ?)`,
			e.ID, label, day.Hours, day.Absent)
		if err != nil {
			return fmt.Errorf("save seed %s/%s: %w", e.ID, label, err)
		}
	}

	return tx.Commit()
}

// SaveRoster writes a full roster in order. Used for demo seeding.
func (s *Store) SaveRoster(ctx context.Context, employees []roster.Employee) error {
	for i, e := range employees {
		if err := s.SaveEmployee(ctx, e, i); err != nil {
			return err
		}
	}
	return nil
}

// CountEmployees returns the roster size.
func (s *Store) CountEmployees(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	return n, err
}

// =============================================================================
// SUBMIT SINK
// =============================================================================

// SubmitAttendance appends the raw save payload to the submissions log.
// Implements roster.Sink.
func (s *Store) SubmitAttendance(ctx context.Context, payload engine.SavePayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO submissions (submitted_at, payload_json) VALUES (?, ?)`,
		time.Now().UTC().Format(time.RFC3339), string(data))
	if err != nil {
		return fmt.Errorf("store submission: %w", err)
	}
	return nil
}

// Submission is one logged submit.
type Submission struct {
	ID          int64
	SubmittedAt time.Time
	Payload     engine.SavePayload
}

// ListSubmissions returns all logged submissions, oldest first.
func (s *Store) ListSubmissions(ctx context.Context) ([]Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, submitted_at, payload_json FROM submissions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		var at, payload string
		if err := rows.Scan(&sub.ID, &at, &payload); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.SubmittedAt, _ = time.Parse(time.RFC3339, at)
		if err := json.Unmarshal([]byte(payload), &sub.Payload); err != nil {
			return nil, fmt.Errorf("decode submission %d: %w", sub.ID, err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
