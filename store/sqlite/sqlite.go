/*
Package sqlite provides the SQLite-backed store for the timesheet tables.

PURPOSE:
  Owns the embedded relational snapshot the analytics run over. Each
  ingestion fully replaces a table inside one transaction, mirroring a
  load-then-recompute batch model: there is no incremental update path.

KEY TABLES:
  work_hours: One row per logged work entry (worked in milli-hours)
  time_off:   One row per approved unavailability interval

DATES:
  Stored as TEXT in ISO 8601 calendar form (YYYY-MM-DD). Lexicographic
  order equals chronological order, so date comparisons in SQL stay
  correct without a native date type.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The batch pipeline is a single
  writer; the mutex exists for the read-only HTTP surface.

WAL MODE:
  SQLite is opened with WAL so report reads don't block an ingestion.

USAGE:
  store, err := sqlite.New("./data/timesheet.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - query.go:        Ad-hoc query-to-CSV export
  - pipeline/run.go:  The batch orchestration using this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/timesheet-engine/analytics"
)

// Store persists the two timesheet tables in SQLite.
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
	CREATE TABLE IF NOT EXISTS work_hours (
		employee_id   TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		date          TEXT NOT NULL,
		project_id    TEXT NOT NULL,
		worked        INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_work_hours_project_date
		ON work_hours(project_id, date);
	CREATE INDEX IF NOT EXISTS idx_work_hours_employee_date
		ON work_hours(employee_id, date);

	CREATE TABLE IF NOT EXISTS time_off (
		employee_id   TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		date_start    TEXT NOT NULL,
		date_end      TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_time_off_employee
		ON time_off(employee_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TABLE LOADS (full replace per run)
// =============================================================================

// ReplaceWorkHours replaces the work_hours table with the given rows
// atomically: either the new snapshot lands completely or the old one
// survives untouched.
func (s *Store) ReplaceWorkHours(ctx context.Context, entries []analytics.WorkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM work_hours"); err != nil {
		return fmt.Errorf("failed to clear work_hours: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO work_hours (employee_id, employee_name, date, project_id, worked)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.EmployeeID, e.EmployeeName, e.Date.String(), e.ProjectID, e.Worked,
		); err != nil {
			return fmt.Errorf("failed to insert work entry: %w", err)
		}
	}

	return tx.Commit()
}

// ReplaceTimeOff replaces the time_off table with the given rows atomically.
func (s *Store) ReplaceTimeOff(ctx context.Context, intervals []analytics.TimeOffInterval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM time_off"); err != nil {
		return fmt.Errorf("failed to clear time_off: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO time_off (employee_id, employee_name, date_start, date_end)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range intervals {
		if _, err := stmt.ExecContext(ctx,
			t.EmployeeID, t.EmployeeName, t.Start.String(), t.End.String(),
		); err != nil {
			return fmt.Errorf("failed to insert time-off interval: %w", err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// ROW READS
// =============================================================================

// WorkEntries returns all work_hours rows in insertion order.
func (s *Store) WorkEntries(ctx context.Context) ([]analytics.WorkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, employee_name, date, project_id, worked
		FROM work_hours
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query work_hours: %w", err)
	}
	defer rows.Close()

	var entries []analytics.WorkEntry
	for rows.Next() {
		var e analytics.WorkEntry
		var date string
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &date, &e.ProjectID, &e.Worked); err != nil {
			return nil, fmt.Errorf("failed to scan work entry: %w", err)
		}
		if e.Date, err = analytics.ParseDay(date); err != nil {
			return nil, fmt.Errorf("corrupt date %q in work_hours: %w", date, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TimeOff returns all time_off rows in insertion order.
func (s *Store) TimeOff(ctx context.Context) ([]analytics.TimeOffInterval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, employee_name, date_start, date_end
		FROM time_off
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query time_off: %w", err)
	}
	defer rows.Close()

	var intervals []analytics.TimeOffInterval
	for rows.Next() {
		var t analytics.TimeOffInterval
		var start, end string
		if err := rows.Scan(&t.EmployeeID, &t.EmployeeName, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan time-off interval: %w", err)
		}
		if t.Start, err = analytics.ParseDay(start); err != nil {
			return nil, fmt.Errorf("corrupt date_start %q in time_off: %w", start, err)
		}
		if t.End, err = analytics.ParseDay(end); err != nil {
			return nil, fmt.Errorf("corrupt date_end %q in time_off: %w", end, err)
		}
		intervals = append(intervals, t)
	}
	return intervals, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"work_hours", "time_off"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
