/*
dto.go - Request/response data structures for the HTTP API

PURPOSE:
  JSON shapes exchanged with clients. Report payloads are NOT here: the
  report endpoints return the rendered CSV documents directly.

SEE ALSO:
  - handlers.go: Handler implementations using these types
*/
package api

// IngestRequest optionally overrides the configured CSV source paths.
type IngestRequest struct {
	WorkHours string `json:"work_hours,omitempty"`
	TimeOff   string `json:"time_off,omitempty"`
}

// IngestResponse reports a completed ingestion.
type IngestResponse struct {
	Status    string `json:"status"`
	WorkHours string `json:"work_hours"`
	TimeOff   string `json:"time_off"`
}

// RunResponse reports a completed batch run.
type RunResponse struct {
	RunID           string `json:"run_id"`
	CostPath        string `json:"cost_path"`
	CostRows        int    `json:"cost_rows"`
	UtilizationPath string `json:"utilization_path"`
	UtilizationRows int    `json:"utilization_rows"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
