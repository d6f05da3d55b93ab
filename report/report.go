/*
Package report renders the computed metric series as delimited text.

PURPOSE:
  The only place output formatting lives. Each renderer produces the
  complete CSV document in memory so callers can write it atomically:
  a metric either lands as a whole file or not at all.

OUTPUT SCHEMAS:
  utilization: employee_name, work_month, project_id, project_utilization_percent
  cost:        project_id, date, total_accumulated_cost

FORMATTING:
  Floats are rendered with the shortest exact representation
  (strconv 'f', precision -1); no rounding is applied to percentages.
*/
package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/warp/timesheet-engine/analytics"
)

// RenderUtilization renders the utilization series as CSV.
func RenderUtilization(records []analytics.UtilizationRecord) (string, error) {
	data := make([][]string, 0, len(records)+1)
	data = append(data, []string{"employee_name", "work_month", "project_id", "project_utilization_percent"})
	for _, r := range records {
		data = append(data, []string{
			r.EmployeeName,
			string(r.Month),
			r.ProjectID,
			formatFloat(r.Percent),
		})
	}
	return render(data)
}

// RenderCost renders the accumulated cost series as CSV.
func RenderCost(records []analytics.CostRecord) (string, error) {
	data := make([][]string, 0, len(records)+1)
	data = append(data, []string{"project_id", "date", "total_accumulated_cost"})
	for _, r := range records {
		data = append(data, []string{
			r.ProjectID,
			r.Date.String(),
			formatFloat(r.Cumulative.InexactFloat64()),
		})
	}
	return render(data)
}

func render(data [][]string) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
