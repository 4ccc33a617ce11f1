package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lineup-cli/internal/lineup"
	"github.com/sells-group/lineup-cli/internal/model"
	"github.com/sells-group/lineup-cli/internal/sink"
)

// Options selects what one run collects and how it is written.
type Options struct {
	Source      string
	URL         string
	Columns     []string
	EmptyMarker string

	// FallbackStyles overrides the source adapter's policy when set.
	FallbackStyles *bool

	Verbose bool

	// DryRun enriches without writing; the records are returned in the Report.
	DryRun bool
}

// Report summarizes a run.
type Report struct {
	Source   string
	Acts     int
	Resolved int
	Degraded int
	Written  int
	Skipped  int

	// Records is set only for dry runs.
	Records []model.EnrichedAct
}

// Runner wires the stages of a run together.
type Runner struct {
	Dispatcher  *lineup.Dispatcher
	Resolver    Resolver
	Destination sink.Destination
}

// Run extracts the lineup, enriches it and appends it to the destination.
// Extraction failures abort the run before anything is written.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	adapter, err := r.Dispatcher.Registry.Lookup(opts.Source)
	if err != nil {
		return nil, err
	}
	if !opts.DryRun {
		if r.Destination == nil {
			return nil, eris.New("pipeline: no destination configured")
		}
		if err := sink.ValidateColumns(opts.Columns); err != nil {
			return nil, err
		}
	}

	acts, err := r.Dispatcher.Dispatch(ctx, opts.Source, opts.URL)
	if err != nil {
		return nil, err
	}

	fallback := adapter.FallbackStyles()
	if opts.FallbackStyles != nil {
		fallback = *opts.FallbackStyles
	}
	enricher := &Enricher{Resolver: r.Resolver, FallbackStyles: fallback, Verbose: opts.Verbose}

	records, stats, err := enricher.Run(ctx, acts)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Source:   adapter.ID(),
		Acts:     len(acts),
		Resolved: stats.Resolved,
		Degraded: stats.Degraded,
	}
	if opts.DryRun {
		report.Records = records
		return report, nil
	}

	res, err := sink.Append(ctx, r.Destination, records, opts.Columns, opts.EmptyMarker)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: write records")
	}
	report.Written = res.Written
	report.Skipped = res.Skipped

	zap.L().Info("pipeline: run complete",
		zap.String("source", report.Source),
		zap.Int("acts", report.Acts),
		zap.Int("resolved", report.Resolved),
		zap.Int("degraded", report.Degraded),
		zap.Int("written", report.Written),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}
