package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COST ACCUMULATOR - Running project cost over time
// =============================================================================

// DefaultHourlyRate is the flat cost of one worked hour.
var DefaultHourlyRate = decimal.NewFromInt(100)

var milliHoursPerHour = decimal.NewFromInt(1000)

// CostRecord is one output row of the cost metric: the total accumulated
// cost of a project as of Date, including that date's contribution.
type CostRecord struct {
	ProjectID  string
	Date       Day
	Cumulative decimal.Decimal
}

// AccumulatedCost computes, per project, the running sum of
// worked_hours x rate ordered by date. A non-positive rate falls back to
// DefaultHourlyRate.
//
// Granularity matches the source data: one output row per input row, not
// per distinct date. Rows sharing a (project, date) each appear with the
// running total as of their position; ties keep input order (stable sort),
// since intra-day ordering is not guaranteed by the inputs.
func AccumulatedCost(entries []WorkEntry, rate decimal.Decimal) []CostRecord {
	if !rate.IsPositive() {
		rate = DefaultHourlyRate
	}

	ordered := make([]WorkEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ProjectID != ordered[j].ProjectID {
			return ordered[i].ProjectID < ordered[j].ProjectID
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})

	running := make(map[string]decimal.Decimal)
	records := make([]CostRecord, 0, len(ordered))
	for _, e := range ordered {
		contribution := decimal.NewFromInt(e.Worked).Div(milliHoursPerHour).Mul(rate)
		total := running[e.ProjectID].Add(contribution)
		running[e.ProjectID] = total

		records = append(records, CostRecord{
			ProjectID:  e.ProjectID,
			Date:       e.Date,
			Cumulative: total,
		})
	}
	return records
}
