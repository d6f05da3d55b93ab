/*
errors.go - Centralized error types for the analytics core

PURPOSE:
  All analytics error types in one place. Callers classify with
  errors.Is/errors.As; the structured types carry the offending keys so a
  failure can name the exact employee-month or interval.

ERROR CATEGORIES:
  1. Capacity errors - zero available hours at division time
  2. Interval errors - malformed time-off intervals

SEE ALSO:
  - utilization.go: Raises ZeroAvailabilityError
  - ingest/csv.go:  Wraps InvalidIntervalError as malformed input
*/
package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroAvailability is returned when an employee-month has zero
	// available hours while work was logged against it. Surfaced
	// explicitly instead of emitting NULL/Inf percentages.
	ErrZeroAvailability = errors.New("zero available hours")

	// ErrInvalidInterval is returned for a time-off interval whose end
	// precedes its start.
	ErrInvalidInterval = errors.New("invalid time-off interval: end before start")
)

// ZeroAvailabilityError names the employee-month whose capacity collapsed
// to zero. It aborts the whole utilization computation.
type ZeroAvailabilityError struct {
	EmployeeID   string
	EmployeeName string
	Month        Month
}

func (e *ZeroAvailabilityError) Error() string {
	return fmt.Sprintf("zero available hours for employee %s (%s) in %s",
		e.EmployeeID, e.EmployeeName, e.Month)
}

func (e *ZeroAvailabilityError) Unwrap() error { return ErrZeroAvailability }

// InvalidIntervalError carries the offending interval bounds.
type InvalidIntervalError struct {
	EmployeeID string
	Start      Day
	End        Day
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid time-off interval for employee %s: [%s, %s]",
		e.EmployeeID, e.Start, e.End)
}

func (e *InvalidIntervalError) Unwrap() error { return ErrInvalidInterval }
