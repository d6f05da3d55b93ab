package analytics

import (
	"sort"
)

// =============================================================================
// UTILIZATION AGGREGATOR - Logged hours vs. monthly capacity
// =============================================================================

// UtilizationRecord is one output row of the utilization metric. Percent is
// unbounded above: logging more than nominal capacity yields > 100.
type UtilizationRecord struct {
	EmployeeName string
	Month        Month
	ProjectID    string
	Percent      float64
}

// UtilizationOptions tunes the aggregation.
type UtilizationOptions struct {
	// HoursPerDay is the nominal capacity of one business day.
	// Zero means DefaultHoursPerDay.
	HoursPerDay int

	// DefaultFullCapacity grants employee-months absent from the
	// availability mapping the full capacity of the month (business days
	// x HoursPerDay) instead of dropping them. Off by default: the stock
	// behavior is an inner join keyed off the time-off table, so
	// employees with no time-off history produce no output rows.
	DefaultFullCapacity bool
}

type utilizationKey struct {
	EmployeeID string
	Month      Month
	ProjectID  string
}

// Utilization computes the monthly per-employee project utilization
// percentage: 100 x logged hours / available hours.
//
// Logged durations are summed per (employee, month, project) and joined
// against the availability mapping on (employee, month). The join is
// inner: combinations with no availability row are dropped silently unless
// DefaultFullCapacity is set. A matched availability of zero hours is an
// explicit ZeroAvailabilityError, never a NaN/Inf row.
//
// Output rows are ordered by (employee name, month, project).
func Utilization(entries []WorkEntry, timeOff []TimeOffInterval, opts UtilizationOptions) ([]UtilizationRecord, error) {
	hoursPerDay := opts.HoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}

	days := BusinessDays(entries, timeOff)
	available := Availability(days, timeOff, hoursPerDay)

	// Sum milli-hours per (employee, month, project); remember the name
	// each employee logged under for the full-capacity fallback.
	worked := make(map[utilizationKey]int64)
	names := make(map[string]string)
	for _, e := range entries {
		key := utilizationKey{EmployeeID: e.EmployeeID, Month: e.Date.Month(), ProjectID: e.ProjectID}
		worked[key] += e.Worked
		names[e.EmployeeID] = e.EmployeeName
	}

	var perMonth map[Month]int
	if opts.DefaultFullCapacity {
		perMonth = BusinessDaysPerMonth(days)
	}

	records := make([]UtilizationRecord, 0, len(worked))
	for key, milliHours := range worked {
		capacity, matched := available[AvailabilityKey{EmployeeID: key.EmployeeID, Month: key.Month}]
		if !matched {
			if !opts.DefaultFullCapacity {
				continue
			}
			capacity = EmployeeMonth{
				EmployeeID:   key.EmployeeID,
				EmployeeName: names[key.EmployeeID],
				Month:        key.Month,
				Hours:        perMonth[key.Month] * hoursPerDay,
			}
		}
		if capacity.Hours == 0 {
			return nil, &ZeroAvailabilityError{
				EmployeeID:   key.EmployeeID,
				EmployeeName: capacity.EmployeeName,
				Month:        key.Month,
			}
		}

		records = append(records, UtilizationRecord{
			EmployeeName: capacity.EmployeeName,
			Month:        key.Month,
			ProjectID:    key.ProjectID,
			Percent:      100.0 * (float64(milliHours) / 1000.0) / float64(capacity.Hours),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.ProjectID < b.ProjectID
	})
	return records, nil
}
