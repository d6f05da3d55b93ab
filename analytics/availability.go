package analytics

// =============================================================================
// AVAILABILITY CALCULATOR - Per employee-month working capacity
// =============================================================================

// DefaultHoursPerDay is the nominal working capacity of one business day.
const DefaultHoursPerDay = 8

// AvailabilityKey identifies one employee-month capacity bucket.
type AvailabilityKey struct {
	EmployeeID string
	Month      Month
}

// EmployeeMonth is the available working capacity of one employee in one
// calendar month.
type EmployeeMonth struct {
	EmployeeID   string
	EmployeeName string
	Month        Month
	Hours        int
}

// Availability crosses the business-day grid against every time-off
// interval row and returns available hours per employee-month.
//
// The crossing is per interval ROW, not per consolidated employee interval
// set: for each row, every business day strictly outside that single row
// counts once, and the counts are then summed by (employee, month). An
// employee with several intervals touching the same month therefore has
// that month counted once per row, which inflates the figure unless each
// day is outside all-but-one row. Overlapping rows make this worse; callers
// wanting merged-interval capacity must consolidate rows first.
//
// Employees with no time-off rows do not appear in the result at all.
func Availability(days []Day, timeOff []TimeOffInterval, hoursPerDay int) map[AvailabilityKey]EmployeeMonth {
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}

	byKey := make(map[AvailabilityKey]EmployeeMonth)
	for _, row := range timeOff {
		for _, d := range days {
			if row.Contains(d) {
				continue
			}
			key := AvailabilityKey{EmployeeID: row.EmployeeID, Month: d.Month()}
			em, found := byKey[key]
			if !found {
				em = EmployeeMonth{
					EmployeeID:   row.EmployeeID,
					EmployeeName: row.EmployeeName,
					Month:        d.Month(),
				}
			}
			em.Hours += hoursPerDay
			byKey[key] = em
		}
	}
	return byKey
}
