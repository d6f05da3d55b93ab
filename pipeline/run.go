/*
Package pipeline orchestrates a full batch run: ingest the CSV sources
into the store, load the snapshot back, compute both metric series, and
write each as a complete CSV output file.

PURPOSE:
  The two metrics are independent: each either writes a complete file or
  nothing (render fully in memory, then write). A failure in one does not
  block the other; Run reports both outcomes. Within the utilization
  metric, any calendar/availability failure aborts that whole metric — no
  partial output.

STORE LIFECYCLE:
  The store handle is passed in by the caller and never owned here; cmd/
  opens it once, defers Close, and hands it to every computation. No
  package-level connection state exists anywhere.

SEE ALSO:
  - analytics:    The metric computations
  - ingest:       CSV parsing
  - report:       Output rendering
  - cmd/analytics: The batch entry point driving this package
*/
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/warp/timesheet-engine/analytics"
	"github.com/warp/timesheet-engine/config"
	"github.com/warp/timesheet-engine/ingest"
	"github.com/warp/timesheet-engine/report"
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	ReplaceWorkHours(ctx context.Context, entries []analytics.WorkEntry) error
	ReplaceTimeOff(ctx context.Context, intervals []analytics.TimeOffInterval) error
	WorkEntries(ctx context.Context) ([]analytics.WorkEntry, error)
	TimeOff(ctx context.Context) ([]analytics.TimeOffInterval, error)
}

// Options tunes a batch run.
type Options struct {
	HourlyRate          decimal.Decimal
	HoursPerDay         int
	DefaultFullCapacity bool

	OutputDir       string
	UtilizationFile string
	CostFile        string
}

// FromConfig maps the loaded application config onto run options.
func FromConfig(cfg config.Application) Options {
	return Options{
		HourlyRate:          decimal.NewFromFloat(cfg.Cost.HourlyRate),
		HoursPerDay:         cfg.Utilization.HoursPerDay,
		DefaultFullCapacity: cfg.Utilization.DefaultFullCapacity,
		OutputDir:           cfg.Outputs.Dir,
		UtilizationFile:     cfg.Outputs.Utilization,
		CostFile:            cfg.Outputs.Cost,
	}
}

// Pipeline runs ingestion and the two metric computations over one store.
type Pipeline struct {
	store Store
	opts  Options
}

func New(store Store, opts Options) *Pipeline {
	return &Pipeline{store: store, opts: opts}
}

// Result summarizes one batch run. A metric that failed has a zero row
// count and an empty path; the error detail comes back from Run itself.
type Result struct {
	RunID           string
	CostPath        string
	CostRows        int
	UtilizationPath string
	UtilizationRows int
}

// Ingest parses both CSV sources and replaces the store tables. Either
// dataset failing aborts the whole ingestion; nothing partial is loaded.
func (p *Pipeline) Ingest(ctx context.Context, workHoursPath, timeOffPath string) error {
	entries, err := ingest.ReadWorkHoursFile(workHoursPath)
	if err != nil {
		return fmt.Errorf("ingest work_hours: %w", err)
	}
	intervals, err := ingest.ReadTimeOffFile(timeOffPath)
	if err != nil {
		return fmt.Errorf("ingest time_off: %w", err)
	}

	if err := p.store.ReplaceWorkHours(ctx, entries); err != nil {
		return fmt.Errorf("load work_hours: %w", err)
	}
	if err := p.store.ReplaceTimeOff(ctx, intervals); err != nil {
		return fmt.Errorf("load time_off: %w", err)
	}

	log.Infof("Ingested %d work entries and %d time-off intervals", len(entries), len(intervals))
	return nil
}

// ComputeCost loads the snapshot and computes the accumulated cost series.
func (p *Pipeline) ComputeCost(ctx context.Context) ([]analytics.CostRecord, error) {
	entries, err := p.store.WorkEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load work entries: %w", err)
	}
	return analytics.AccumulatedCost(entries, p.opts.HourlyRate), nil
}

// ComputeUtilization loads the snapshot and computes the utilization series.
func (p *Pipeline) ComputeUtilization(ctx context.Context) ([]analytics.UtilizationRecord, error) {
	entries, err := p.store.WorkEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load work entries: %w", err)
	}
	intervals, err := p.store.TimeOff(ctx)
	if err != nil {
		return nil, fmt.Errorf("load time-off intervals: %w", err)
	}
	return analytics.Utilization(entries, intervals, analytics.UtilizationOptions{
		HoursPerDay:         p.opts.HoursPerDay,
		DefaultFullCapacity: p.opts.DefaultFullCapacity,
	})
}

// Run computes both metrics and writes each as a complete CSV file. The
// metrics fail independently; the returned error joins whatever failed
// while the Result reflects whatever succeeded.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	log.Infof("Starting batch run %s", result.RunID)

	var errs []error

	if rows, path, err := p.runCost(ctx); err != nil {
		log.Errorf("Run %s: cost metric failed: %v", result.RunID, err)
		errs = append(errs, fmt.Errorf("cost: %w", err))
	} else {
		result.CostRows, result.CostPath = rows, path
		log.Infof("Run %s: wrote %d cost rows to %s", result.RunID, rows, path)
	}

	if rows, path, err := p.runUtilization(ctx); err != nil {
		log.Errorf("Run %s: utilization metric failed: %v", result.RunID, err)
		errs = append(errs, fmt.Errorf("utilization: %w", err))
	} else {
		result.UtilizationRows, result.UtilizationPath = rows, path
		log.Infof("Run %s: wrote %d utilization rows to %s", result.RunID, rows, path)
	}

	return result, errors.Join(errs...)
}

func (p *Pipeline) runCost(ctx context.Context) (int, string, error) {
	records, err := p.ComputeCost(ctx)
	if err != nil {
		return 0, "", err
	}
	rendered, err := report.RenderCost(records)
	if err != nil {
		return 0, "", err
	}
	path, err := p.writeOutput(p.opts.CostFile, rendered)
	if err != nil {
		return 0, "", err
	}
	return len(records), path, nil
}

func (p *Pipeline) runUtilization(ctx context.Context) (int, string, error) {
	records, err := p.ComputeUtilization(ctx)
	if err != nil {
		return 0, "", err
	}
	rendered, err := report.RenderUtilization(records)
	if err != nil {
		return 0, "", err
	}
	path, err := p.writeOutput(p.opts.UtilizationFile, rendered)
	if err != nil {
		return 0, "", err
	}
	return len(records), path, nil
}

func (p *Pipeline) writeOutput(name, content string) (string, error) {
	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(p.opts.OutputDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
