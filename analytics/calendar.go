package analytics

// =============================================================================
// CALENDAR GENERATOR - Business-day grid over the observed data range
// =============================================================================

// BusinessDays returns the ordered, gap-free sequence of non-weekend dates
// spanning every date referenced by the inputs: work entry dates plus both
// boundaries of every time-off interval. The span runs from the global
// minimum to the global maximum inclusive; when they coincide the grid is a
// single date (still weekend-filtered).
//
// Returns nil when the inputs reference no dates at all.
func BusinessDays(entries []WorkEntry, timeOff []TimeOffInterval) []Day {
	min, max, ok := dateSpan(entries, timeOff)
	if !ok {
		return nil
	}

	var days []Day
	// Single-day increments rather than any closed-form skip: month lengths
	// and leap years fall out of time.AddDate.
	for d := min; !d.After(max); d = d.AddDays(1) {
		if !d.IsWeekend() {
			days = append(days, d)
		}
	}
	return days
}

// BusinessDaysPerMonth buckets a business-day grid by calendar month.
func BusinessDaysPerMonth(days []Day) map[Month]int {
	counts := make(map[Month]int)
	for _, d := range days {
		counts[d.Month()]++
	}
	return counts
}

func dateSpan(entries []WorkEntry, timeOff []TimeOffInterval) (min, max Day, ok bool) {
	observe := func(d Day) {
		if !ok {
			min, max, ok = d, d, true
			return
		}
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}

	for _, e := range entries {
		observe(e.Date)
	}
	for _, t := range timeOff {
		observe(t.Start)
		observe(t.End)
	}
	return min, max, ok
}
