package analytics

import (
	"errors"
	"testing"
	"time"
)

// fullJanuary2024 logs eight hours on every business day of January 2024
// for the given employee/project.
func fullJanuary2024(employeeID, name, projectID string) []WorkEntry {
	span := []WorkEntry{
		{EmployeeID: employeeID, Date: NewDay(2024, time.January, 1)},
		{EmployeeID: employeeID, Date: NewDay(2024, time.January, 31)},
	}
	var entries []WorkEntry
	for _, d := range BusinessDays(span, nil) {
		entries = append(entries, WorkEntry{
			EmployeeID:   employeeID,
			EmployeeName: name,
			Date:         d,
			ProjectID:    projectID,
			Worked:       8000,
		})
	}
	return entries
}

func TestUtilization_FullMonthNoTimeOff_Exactly100Percent(t *testing.T) {
	// GIVEN: E1 logs 8h on all 23 business days of January; the only
	//        time-off row lies entirely outside January
	// WHEN: Computing utilization
	// THEN: January utilization is exactly 100.0

	entries := fullJanuary2024("E1", "Ana", "P1")
	timeOff := []TimeOffInterval{
		{EmployeeID: "E1", EmployeeName: "Ana", Start: NewDay(2024, time.March, 4), End: NewDay(2024, time.March, 8)},
	}

	records, err := Utilization(entries, timeOff, UtilizationOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var january *UtilizationRecord
	for i := range records {
		if records[i].Month == "2024-01" {
			january = &records[i]
		}
	}
	if january == nil {
		t.Fatal("expected a 2024-01 record")
	}
	if january.Percent != 100.0 {
		t.Errorf("expected 100.0%%, got %v", january.Percent)
	}
	if january.EmployeeName != "Ana" || january.ProjectID != "P1" {
		t.Errorf("unexpected record identity: %+v", january)
	}
}

func TestUtilization_OverCapacity_Exceeds100(t *testing.T) {
	// GIVEN: E1 logs 16h on the only business day in range
	entries := []WorkEntry{
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.January, 2), ProjectID: "P1", Worked: 16000},
	}
	timeOff := []TimeOffInterval{
		{EmployeeID: "E1", EmployeeName: "Ana", Start: NewDay(2024, time.January, 1), End: NewDay(2024, time.January, 1)},
	}

	records, err := Utilization(entries, timeOff, UtilizationOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Grid is Jan 1-2 (Mon, Tue); Jan 2 is outside the interval, so
	// capacity is 8h and 16h logged yields 200%.
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Percent != 200.0 {
		t.Errorf("expected 200.0%%, got %v", records[0].Percent)
	}
}

func TestUtilization_NoTimeOffHistory_DroppedByInnerJoin(t *testing.T) {
	// GIVEN: E1 logged work but has no time-off rows at all
	// WHEN: Computing utilization with stock options
	// THEN: No output rows; the availability mapping has no join key

	entries := []WorkEntry{
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.January, 2), ProjectID: "P1", Worked: 8000},
	}

	records, err := Utilization(entries, nil, UtilizationOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestUtilization_DefaultFullCapacity_IncludesUncoveredEmployee(t *testing.T) {
	// GIVEN: The same lone entry, but the full-capacity fallback enabled
	// WHEN: Computing utilization
	// THEN: E1 gets the month's full business-day capacity (here a single
	//       day, so 8h logged -> 100%)

	entries := []WorkEntry{
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.January, 2), ProjectID: "P1", Worked: 8000},
	}

	records, err := Utilization(entries, nil, UtilizationOptions{DefaultFullCapacity: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Percent != 100.0 {
		t.Errorf("expected 100.0%%, got %v", records[0].Percent)
	}
}

func TestUtilization_WeekendOnlyLogging_ZeroAvailabilityError(t *testing.T) {
	// GIVEN: E1 logged hours only on a Saturday; with the fallback on,
	//        the month has zero business days of capacity
	// WHEN: Computing utilization
	// THEN: An explicit ZeroAvailabilityError, not a NaN/Inf row

	entries := []WorkEntry{
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.January, 6), ProjectID: "P1", Worked: 4000},
	}

	_, err := Utilization(entries, nil, UtilizationOptions{DefaultFullCapacity: true})

	if !errors.Is(err, ErrZeroAvailability) {
		t.Fatalf("expected ErrZeroAvailability, got %v", err)
	}
	var zero *ZeroAvailabilityError
	if !errors.As(err, &zero) {
		t.Fatal("expected a ZeroAvailabilityError")
	}
	if zero.EmployeeID != "E1" || zero.Month != "2024-01" {
		t.Errorf("unexpected error detail: %+v", zero)
	}
}

func TestUtilization_MonthFullyOff_DroppedNotDivByZero(t *testing.T) {
	// GIVEN: E1 is off for all of January but still logged hours in it
	// WHEN: Computing utilization
	// THEN: The January row is dropped (no availability bucket exists);
	//       no division-by-zero error is raised

	entries := []WorkEntry{
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.January, 10), ProjectID: "P1", Worked: 8000},
	}
	timeOff := []TimeOffInterval{
		{EmployeeID: "E1", EmployeeName: "Ana", Start: NewDay(2024, time.January, 1), End: NewDay(2024, time.January, 31)},
	}

	records, err := Utilization(entries, timeOff, UtilizationOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestUtilization_OutputOrdering_Deterministic(t *testing.T) {
	// GIVEN: Two employees across two projects and months
	timeOff := []TimeOffInterval{
		{EmployeeID: "E1", EmployeeName: "Ana", Start: NewDay(2024, time.March, 4), End: NewDay(2024, time.March, 8)},
		{EmployeeID: "E2", EmployeeName: "Bruno", Start: NewDay(2024, time.March, 4), End: NewDay(2024, time.March, 8)},
	}
	entries := []WorkEntry{
		{EmployeeID: "E2", EmployeeName: "Bruno", Date: NewDay(2024, time.January, 3), ProjectID: "P2", Worked: 4000},
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.February, 5), ProjectID: "P1", Worked: 4000},
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.January, 3), ProjectID: "P2", Worked: 4000},
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.January, 3), ProjectID: "P1", Worked: 4000},
	}

	records, err := Utilization(entries, timeOff, UtilizationOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	wantOrder := []struct {
		name    string
		month   Month
		project string
	}{
		{"Ana", "2024-01", "P1"},
		{"Ana", "2024-01", "P2"},
		{"Ana", "2024-02", "P1"},
		{"Bruno", "2024-01", "P2"},
	}
	for i, want := range wantOrder {
		got := records[i]
		if got.EmployeeName != want.name || got.Month != want.month || got.ProjectID != want.project {
			t.Errorf("record %d: expected %v, got %+v", i, want, got)
		}
	}
}

func TestUtilization_AdditiveEntries_SummedBeforeDivision(t *testing.T) {
	// GIVEN: Two entries for the same employee/date/project
	entries := []WorkEntry{
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.January, 2), ProjectID: "P1", Worked: 3000},
		{EmployeeID: "E1", EmployeeName: "Ana", Date: NewDay(2024, time.January, 2), ProjectID: "P1", Worked: 5000},
	}
	timeOff := []TimeOffInterval{
		{EmployeeID: "E1", EmployeeName: "Ana", Start: NewDay(2024, time.January, 1), End: NewDay(2024, time.January, 1)},
	}

	records, err := Utilization(entries, timeOff, UtilizationOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	// 8h summed over an 8h capacity day.
	if records[0].Percent != 100.0 {
		t.Errorf("expected 100.0%%, got %v", records[0].Percent)
	}
}
