package analytics

import (
	"testing"
	"time"
)

// januaryGrid2024 stretches the grid across January with two anchor
// entries; January 2024 has 23 business days.
func januaryGrid2024() []WorkEntry {
	return []WorkEntry{
		{EmployeeID: "E1", Date: NewDay(2024, time.January, 1)},
		{EmployeeID: "E1", Date: NewDay(2024, time.January, 31)},
	}
}

func TestAvailability_IntervalOutsideMonth_FullCapacity(t *testing.T) {
	// GIVEN: E1 has one time-off interval entirely in March
	// WHEN: Computing availability over a grid covering January
	// THEN: January capacity equals weekday count x 8

	timeOff := []TimeOffInterval{
		{EmployeeID: "E1", EmployeeName: "Ana", Start: NewDay(2024, time.March, 4), End: NewDay(2024, time.March, 8)},
	}
	days := BusinessDays(januaryGrid2024(), timeOff)

	avail := Availability(days, timeOff, 8)

	jan := avail[AvailabilityKey{EmployeeID: "E1", Month: "2024-01"}]
	if jan.Hours != 23*8 {
		t.Errorf("expected %d available hours in January, got %d", 23*8, jan.Hours)
	}
	if jan.EmployeeName != "Ana" {
		t.Errorf("expected employee name carried from the interval row, got %q", jan.EmployeeName)
	}
}

func TestAvailability_IntervalSpansWholeMonth_MonthAbsent(t *testing.T) {
	// GIVEN: E1 is off for all of February 2024
	// WHEN: Computing availability
	// THEN: No February bucket exists (zero qualifying days -> no row)

	timeOff := []TimeOffInterval{
		{EmployeeID: "E1", Start: NewDay(2024, time.February, 1), End: NewDay(2024, time.February, 29)},
	}
	days := BusinessDays(januaryGrid2024(), timeOff)

	avail := Availability(days, timeOff, 8)

	if em, found := avail[AvailabilityKey{EmployeeID: "E1", Month: "2024-02"}]; found {
		t.Errorf("expected no 2024-02 bucket, got %+v", em)
	}
	// January is outside the interval and keeps full capacity.
	if jan := avail[AvailabilityKey{EmployeeID: "E1", Month: "2024-01"}]; jan.Hours != 23*8 {
		t.Errorf("expected full January capacity, got %d", jan.Hours)
	}
}

func TestAvailability_TwoRowsSameMonth_CountedPerRow(t *testing.T) {
	// GIVEN: E1 has two disjoint time-off rows inside March 2024
	//        (March has 21 business days; each row removes 5)
	// WHEN: Computing availability
	// THEN: Each row contributes its own outside-count: (21-5)+(21-5) days,
	//       NOT the merged-interval figure of 21-10 days

	entries := []WorkEntry{
		{EmployeeID: "E1", Date: NewDay(2024, time.March, 1)},
		{EmployeeID: "E1", Date: NewDay(2024, time.March, 29)},
	}
	timeOff := []TimeOffInterval{
		{EmployeeID: "E1", Start: NewDay(2024, time.March, 4), End: NewDay(2024, time.March, 8)},
		{EmployeeID: "E1", Start: NewDay(2024, time.March, 11), End: NewDay(2024, time.March, 15)},
	}
	days := BusinessDays(entries, timeOff)

	avail := Availability(days, timeOff, 8)

	march := avail[AvailabilityKey{EmployeeID: "E1", Month: "2024-03"}]
	if want := (16 + 16) * 8; march.Hours != want {
		t.Errorf("expected row-wise count of %d hours, got %d", want, march.Hours)
	}
}

func TestAvailability_NoTimeOffRows_EmptyMapping(t *testing.T) {
	// GIVEN: A populated grid but an empty time_off dataset
	days := BusinessDays(januaryGrid2024(), nil)

	avail := Availability(days, nil, 8)

	if len(avail) != 0 {
		t.Fatalf("expected empty availability mapping, got %d buckets", len(avail))
	}
}

func TestAvailability_ZeroHoursPerDay_FallsBackToDefault(t *testing.T) {
	timeOff := []TimeOffInterval{
		{EmployeeID: "E1", Start: NewDay(2024, time.March, 4), End: NewDay(2024, time.March, 8)},
	}
	days := BusinessDays(januaryGrid2024(), timeOff)

	avail := Availability(days, timeOff, 0)

	jan := avail[AvailabilityKey{EmployeeID: "E1", Month: "2024-01"}]
	if jan.Hours != 23*DefaultHoursPerDay {
		t.Errorf("expected default %dh/day capacity, got %d", DefaultHoursPerDay, jan.Hours)
	}
}
