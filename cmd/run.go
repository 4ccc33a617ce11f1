package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/lineup-cli/internal/config"
	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/info"
	"github.com/sells-group/lineup-cli/internal/lineup"
	"github.com/sells-group/lineup-cli/internal/pipeline"
	"github.com/sells-group/lineup-cli/internal/sink"
)

var runDryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect and enrich one festival lineup",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate(); err != nil {
			return err
		}
		_, err := runLineup(ctx, cfg, cmd.OutOrStdout(), runDryRun)
		return err
	},
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print the enriched acts instead of writing them")
	rootCmd.AddCommand(runCmd)
}

func runLineup(ctx context.Context, cfg *config.Config, out io.Writer, dryRun bool) (*pipeline.Report, error) {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.Fetch.UserAgent,
		Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Fetch.MaxRetries,
	})
	runner := &pipeline.Runner{
		Dispatcher: lineup.NewDispatcher(f),
		Resolver:   info.NewResolver(f, cfg.Info.BaseURL),
	}

	if !dryRun {
		dest, err := openDestination(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer dest.Close() //nolint:errcheck
		runner.Destination = dest
	}

	report, err := runner.Run(ctx, pipeline.Options{
		Source:         cfg.Source,
		URL:            cfg.URL,
		Columns:        cfg.Columns,
		EmptyMarker:    cfg.EmptyMarker,
		FallbackStyles: cfg.FallbackStyles,
		Verbose:        verbose,
		DryRun:         dryRun,
	})
	if err != nil {
		return nil, err
	}

	if dryRun {
		rows := make([][]string, 0, len(report.Records))
		for _, rec := range report.Records {
			rows = append(rows, sink.Project(rec, cfg.Columns, cfg.EmptyMarker))
		}
		fmt.Fprintln(out, renderTable(cfg.Columns, rows))
	}
	fmt.Fprintf(out, "%s: %d acts, %d resolved, %d degraded, %d written, %d skipped\n",
		report.Source, report.Acts, report.Resolved, report.Degraded, report.Written, report.Skipped)
	return report, nil
}
