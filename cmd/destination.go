package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/lineup-cli/internal/config"
	"github.com/sells-group/lineup-cli/internal/db"
	"github.com/sells-group/lineup-cli/internal/sink"
	"github.com/sells-group/lineup-cli/pkg/notion"
)

func openDestination(ctx context.Context, cfg *config.Config) (sink.Destination, error) {
	runID := uuid.NewString()

	switch cfg.Sink.Kind {
	case config.SinkCSV:
		return sink.NewCSVFile(cfg.SinkPath()), nil
	case config.SinkXLSX:
		return sink.NewWorkbook(cfg.SinkPath(), cfg.Sink.Sheet), nil
	case config.SinkSQLite:
		s, err := sink.NewSQLite(ctx, cfg.SinkPath(), cfg.Sink.Table, runID)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SinkPostgres:
		pool, err := db.Connect(ctx, cfg.Sink.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pg, err := sink.NewPostgres(pool, cfg.Sink.Table, runID)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pg, nil
	case config.SinkNotion:
		client := notion.NewAPI(cfg.Sink.NotionToken, notion.DefaultRequestsPerSecond)
		return sink.NewNotion(client, cfg.Sink.NotionDatabase, cfg.Columns), nil
	default:
		return nil, eris.Errorf("unsupported sink kind: %s", cfg.Sink.Kind)
	}
}
