/*
Package ingest parses the two timesheet CSV datasets into typed rows.

PURPOSE:
  Boundary between raw delimited text and the analytics core. Parsing is
  strict: a missing column or a non-parseable field aborts the whole
  dataset with a MalformedInputError — rows are never skipped silently.

EXPECTED DATASETS:
  work_hours: employee_id, employee_name, date, project_id, worked
              (date ISO 8601; worked integer milli-hours)
  time_off:   employee_id, employee_name, date_start, date_end
              (closed inclusive interval, start <= end)

  Columns are located by header name; extra columns and column order are
  both tolerated, absence is not.

SEE ALSO:
  - analytics/types.go: Target row types
  - store/sqlite:       Where parsed rows are persisted
*/
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/warp/timesheet-engine/analytics"
)

// Dataset names used in error messages.
const (
	DatasetWorkHours = "work_hours"
	DatasetTimeOff   = "time_off"
)

// ErrMalformedInput is the sentinel for any parse failure: missing
// columns, bad dates, non-integer durations, inverted intervals.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError pinpoints the failure. Line is 1-based and counts
// the header; Line 0 means the header itself is unusable.
type MalformedInputError struct {
	Dataset string
	Line    int
	Column  string
	Err     error
}

func (e *MalformedInputError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: header: %v", e.Dataset, e.Err)
	}
	if e.Column != "" {
		return fmt.Sprintf("%s line %d: column %q: %v", e.Dataset, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s line %d: %v", e.Dataset, e.Line, e.Err)
}

func (e *MalformedInputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedInput}
	}
	return []error{ErrMalformedInput, e.Err}
}

// =============================================================================
// WORK HOURS
// =============================================================================

// ReadWorkHours parses the work_hours dataset.
func ReadWorkHours(r io.Reader) ([]analytics.WorkEntry, error) {
	rows, err := newRowReader(DatasetWorkHours, r,
		"employee_id", "employee_name", "date", "project_id", "worked")
	if err != nil {
		return nil, err
	}

	var entries []analytics.WorkEntry
	for {
		row, done, err := rows.next()
		if err != nil {
			return nil, err
		}
		if done {
			return entries, nil
		}

		date, err := analytics.ParseDay(row.field("date"))
		if err != nil {
			return nil, row.fail("date", err)
		}
		worked, err := strconv.ParseInt(row.field("worked"), 10, 64)
		if err != nil {
			return nil, row.fail("worked", err)
		}
		if worked < 0 {
			return nil, row.fail("worked", errors.New("negative duration"))
		}

		entries = append(entries, analytics.WorkEntry{
			EmployeeID:   row.field("employee_id"),
			EmployeeName: row.field("employee_name"),
			Date:         date,
			ProjectID:    row.field("project_id"),
			Worked:       worked,
		})
	}
}

// ReadWorkHoursFile parses the work_hours dataset from a file path.
func ReadWorkHoursFile(path string) ([]analytics.WorkEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadWorkHours(f)
}

// =============================================================================
// TIME OFF
// =============================================================================

// ReadTimeOff parses the time_off dataset. Intervals violating
// start <= end are malformed input, not a computable state.
func ReadTimeOff(r io.Reader) ([]analytics.TimeOffInterval, error) {
	rows, err := newRowReader(DatasetTimeOff, r,
		"employee_id", "employee_name", "date_start", "date_end")
	if err != nil {
		return nil, err
	}

	var intervals []analytics.TimeOffInterval
	for {
		row, done, err := rows.next()
		if err != nil {
			return nil, err
		}
		if done {
			return intervals, nil
		}

		start, err := analytics.ParseDay(row.field("date_start"))
		if err != nil {
			return nil, row.fail("date_start", err)
		}
		end, err := analytics.ParseDay(row.field("date_end"))
		if err != nil {
			return nil, row.fail("date_end", err)
		}

		interval := analytics.TimeOffInterval{
			EmployeeID:   row.field("employee_id"),
			EmployeeName: row.field("employee_name"),
			Start:        start,
			End:          end,
		}
		if err := interval.Validate(); err != nil {
			return nil, row.fail("", err)
		}
		intervals = append(intervals, interval)
	}
}

// ReadTimeOffFile parses the time_off dataset from a file path.
func ReadTimeOffFile(path string) ([]analytics.TimeOffInterval, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTimeOff(f)
}

// =============================================================================
// ROW READER - Header-addressed CSV iteration
// =============================================================================

type rowReader struct {
	dataset string
	reader  *csv.Reader
	columns map[string]int
	line    int
	current []string
}

func newRowReader(dataset string, r io.Reader, required ...string) (*rowReader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			err = errors.New("empty input")
		}
		return nil, &MalformedInputError{Dataset: dataset, Err: err}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, found := columns[name]; !found {
			return nil, &MalformedInputError{
				Dataset: dataset,
				Err:     fmt.Errorf("missing required column %q", name),
			}
		}
	}

	return &rowReader{dataset: dataset, reader: cr, columns: columns, line: 1}, nil
}

func (r *rowReader) next() (*rowReader, bool, error) {
	record, err := r.reader.Read()
	if err == io.EOF {
		return nil, true, nil
	}
	r.line++
	if err != nil {
		return nil, false, &MalformedInputError{Dataset: r.dataset, Line: r.line, Err: err}
	}
	r.current = record
	return r, false, nil
}

func (r *rowReader) field(column string) string {
	idx := r.columns[column]
	if idx >= len(r.current) {
		return ""
	}
	return strings.TrimSpace(r.current[idx])
}

func (r *rowReader) fail(column string, err error) error {
	return &MalformedInputError{Dataset: r.dataset, Line: r.line, Column: column, Err: err}
}
