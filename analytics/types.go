/*
Package analytics computes the two derived timesheet metrics: accumulated
project cost and monthly per-employee project utilization.

PURPOSE:
  Pure in-memory set transforms over typed rows. The package owns the
  calendar/interval logic; it does no I/O and holds no connection state.
  Ingestion and persistence live in ingest/ and store/sqlite/.

KEY CONCEPTS IN THIS FILE (types.go):
  - Day:             A calendar date at day granularity (always UTC)
  - Month:           A YYYY-MM bucket key derived from a Day
  - WorkEntry:       One logged work row; Worked is in milli-hours
  - TimeOffInterval: A closed [Start, End] unavailability interval

UNITS:
  Worked durations arrive scaled by 1000 (milli-hours). Hours are
  recovered by dividing by 1000.0 at aggregation time, never earlier.

SEE ALSO:
  - calendar.go:     Business-day grid generation
  - availability.go: Per employee-month capacity
  - utilization.go:  Capacity vs. logged hours join
  - cost.go:         Running cost accumulation
*/
package analytics

import (
	"time"
)

// =============================================================================
// DAY - Calendar date at day granularity
// =============================================================================

// Day is a calendar date with no time-of-day component. The zero value is
// not a valid date; construct via NewDay or ParseDay.
type Day struct {
	t time.Time
}

const dayLayout = "2006-01-02"

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses an ISO 8601 calendar date (YYYY-MM-DD).
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, err
	}
	return Day{t: t.UTC()}, nil
}

// Comparison
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }
func (d Day) After(other Day) bool  { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool  { return d.t.Equal(other.t) }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsZero() bool          { return d.t.IsZero() }

// IsWeekend reports whether the day is a Saturday or Sunday. Go's
// time.Weekday numbers Sunday as 0 and Saturday as 6, matching the
// strftime('%w') convention used by the store.
func (d Day) IsWeekend() bool {
	wd := d.t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Month returns the YYYY-MM bucket this day falls into.
func (d Day) Month() Month { return Month(d.t.Format("2006-01")) }

func (d Day) String() string { return d.t.Format(dayLayout) }

// =============================================================================
// MONTH - YYYY-MM aggregation bucket
// =============================================================================

// Month is a calendar month key in YYYY-MM form, ordered lexicographically.
type Month string

// =============================================================================
// INPUT ROWS
// =============================================================================

// WorkEntry is one logged work row. Multiple entries may exist per
// employee/date/project; entries are additive.
type WorkEntry struct {
	EmployeeID   string
	EmployeeName string
	Date         Day
	ProjectID    string
	Worked       int64 // milli-hours: 8000 = 8h
}

// Hours returns the logged duration in fractional hours.
func (w WorkEntry) Hours() float64 { return float64(w.Worked) / 1000.0 }

// TimeOffInterval is a closed, inclusive [Start, End] interval during which
// the employee is unavailable. Intervals for one employee may overlap.
type TimeOffInterval struct {
	EmployeeID   string
	EmployeeName string
	Start        Day
	End          Day
}

// Validate checks the Start <= End invariant.
func (t TimeOffInterval) Validate() error {
	if t.End.Before(t.Start) {
		return &InvalidIntervalError{EmployeeID: t.EmployeeID, Start: t.Start, End: t.End}
	}
	return nil
}

// Contains reports whether the day falls inside the interval.
func (t TimeOffInterval) Contains(d Day) bool {
	return !d.Before(t.Start) && !d.After(t.End)
}
