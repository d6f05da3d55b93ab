/*
handlers.go - HTTP API handlers for the timesheet analytics engine

PURPOSE:
  Exposes the batch engine over REST. Handles HTTP request/response,
  JSON serialization, and delegates to the pipeline and store.

ENDPOINTS:
  Engine:
    GET  /api/health               Liveness probe
    POST /api/ingest               Load the CSV sources into the store
    POST /api/runs                 Execute a full batch run

  Reports (rendered on demand from the current snapshot, text/csv):
    GET  /api/reports/utilization  Monthly per-employee project utilization
    GET  /api/reports/cost         Accumulated project cost series

  Admin:
    POST /api/reset                Drop all loaded data (dev only)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid request body
  - 422: Computation rejected the snapshot (zero availability)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - pipeline: The batch orchestration behind these handlers
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/warp/timesheet-engine/analytics"
	"github.com/warp/timesheet-engine/config"
	"github.com/warp/timesheet-engine/pipeline"
	"github.com/warp/timesheet-engine/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Runner is the slice of the pipeline the handlers drive.
type Runner interface {
	Ingest(ctx context.Context, workHoursPath, timeOffPath string) error
	Run(ctx context.Context) (pipeline.Result, error)
	ComputeCost(ctx context.Context) ([]analytics.CostRecord, error)
	ComputeUtilization(ctx context.Context) ([]analytics.UtilizationRecord, error)
}

// Resetter drops all loaded data.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Runner   Runner
	Resetter Resetter

	// Default CSV source paths, overridable per ingest request.
	Inputs config.Inputs
}

// NewHandler creates a new handler over the given pipeline and store.
func NewHandler(runner Runner, resetter Resetter, inputs config.Inputs) *Handler {
	return &Handler{Runner: runner, Resetter: resetter, Inputs: inputs}
}

// =============================================================================
// ENGINE ENDPOINTS
// =============================================================================

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// IngestSources loads both CSV sources into the store, replacing whatever
// was loaded before.
// POST /api/ingest
func (h *Handler) IngestSources(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	workHours := req.WorkHours
	if workHours == "" {
		workHours = h.Inputs.WorkHours
	}
	timeOff := req.TimeOff
	if timeOff == "" {
		timeOff = h.Inputs.TimeOff
	}

	if err := h.Runner.Ingest(r.Context(), workHours, timeOff); err != nil {
		writeError(w, http.StatusBadRequest, "Ingestion failed", err)
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		Status:    "loaded",
		WorkHours: workHours,
		TimeOff:   timeOff,
	})
}

// TriggerRun executes a full batch run over the current snapshot.
// POST /api/runs
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.Runner.Run(r.Context())
	if err != nil {
		writeError(w, statusForComputation(err), "Batch run failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, RunResponse{
		RunID:           result.RunID,
		CostPath:        result.CostPath,
		CostRows:        result.CostRows,
		UtilizationPath: result.UtilizationPath,
		UtilizationRows: result.UtilizationRows,
	})
}

// =============================================================================
// REPORT ENDPOINTS
// =============================================================================

// UtilizationReport renders the utilization series from the current
// snapshot and returns it as CSV.
// GET /api/reports/utilization
func (h *Handler) UtilizationReport(w http.ResponseWriter, r *http.Request) {
	records, err := h.Runner.ComputeUtilization(r.Context())
	if err != nil {
		writeError(w, statusForComputation(err), "Failed to compute utilization", err)
		return
	}
	h.writeCSV(w, "project_utilization.csv", func() (string, error) {
		return report.RenderUtilization(records)
	})
}

// CostReport renders the accumulated cost series from the current
// snapshot and returns it as CSV.
// GET /api/reports/cost
func (h *Handler) CostReport(w http.ResponseWriter, r *http.Request) {
	records, err := h.Runner.ComputeCost(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute cost", err)
		return
	}
	h.writeCSV(w, "accumulated_actual_costs.csv", func() (string, error) {
		return report.RenderCost(records)
	})
}

func (h *Handler) writeCSV(w http.ResponseWriter, filename string, render func() (string, error)) {
	body, err := render()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render report", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// =============================================================================
// ADMIN ENDPOINTS
// =============================================================================

// ResetData drops all loaded data.
// POST /api/reset
func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.Resetter.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset data", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// HELPERS
// =============================================================================

// statusForComputation distinguishes snapshots the engine rejects from
// plain internal failures.
func statusForComputation(err error) int {
	if errors.Is(err, analytics.ErrZeroAvailability) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
