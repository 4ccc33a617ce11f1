package sink

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/lineup-cli/internal/db"
)

// DefaultPostgresTable holds rows written by the Postgres destination.
const DefaultPostgresTable = "lineup_acts"

var postgresColumns = []string{"run_id", "position", "name", "cells"}

// Postgres appends rows with COPY. Rows of one run share run_id and are
// ordered by position.
type Postgres struct {
	pool  db.Pool
	table string
	runID string
}

// NewPostgres returns a destination writing to table through pool.
func NewPostgres(pool db.Pool, table, runID string) (*Postgres, error) {
	if table == "" {
		table = DefaultPostgresTable
	}
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Postgres{pool: pool, table: table, runID: runID}, nil
}

func (p *Postgres) ident() string {
	return db.Identifier(p.table).Sanitize()
}

// Migrate creates the table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id     TEXT NOT NULL,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	cells      TEXT[] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, p.ident())
	_, err := p.pool.Exec(ctx, ddl)
	return eris.Wrapf(err, "postgres: migrate %s", p.table)
}

// Names returns stored names oldest first.
func (p *Postgres) Names(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, "SELECT name FROM "+p.ident()+" ORDER BY created_at, position")
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: select names from %s", p.table)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan name")
		}
		names = append(names, n)
	}
	return names, eris.Wrap(rows.Err(), "postgres: iterate names")
}

// AppendRows copies rows into the table with COPY. Each row keeps its batch
// position and the full projected row as cells.
func (p *Postgres) AppendRows(ctx context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	src := pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		return []any{p.runID, i, rows[i][0], rows[i]}, nil
	})
	n, err := p.pool.CopyFrom(ctx, db.Identifier(p.table), postgresColumns, src)
	if err != nil {
		return eris.Wrapf(err, "postgres: copy rows into %s", p.table)
	}
	if int(n) != len(rows) {
		return eris.Errorf("postgres: copied %d of %d rows", n, len(rows))
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
