package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// DefaultSQLiteTable holds rows written by the SQLite destination.
const DefaultSQLiteTable = "acts"

// SQLite stores each row with the run that wrote it. The row's cells are kept
// as a JSON array so any column layout fits one table.
type SQLite struct {
	db    *sql.DB
	table string
	runID string
}

// NewSQLite opens the database at dsn, configures WAL mode and creates the table.
func NewSQLite(ctx context.Context, dsn, table, runID string) (*SQLite, error) {
	if table == "" {
		table = DefaultSQLiteTable
	}
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if strings.Contains(table, ".") {
		return nil, eris.Errorf("sqlite: table %q must not be schema-qualified", table)
	}
	if runID == "" {
		runID = uuid.NewString()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	s := &SQLite{db: db, table: table, runID: runID}
	if err := s.migrate(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

func (s *SQLite) quoted() string {
	return `"` + s.table + `"`
}

func (s *SQLite) migrate(ctx context.Context) error {
	t := s.quoted()
	index := `"idx_` + s.table + `_name"`
	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	cells      TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s(name);
`, t, index)
	_, err := s.db.ExecContext(ctx, ddl)
	return eris.Wrap(err, "sqlite: migrate")
}

// Names returns stored names in write order.
func (s *SQLite) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM "+s.quoted()+" ORDER BY position")
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: select names")
	}
	defer rows.Close() //nolint:errcheck

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan name")
		}
		names = append(names, n)
	}
	return names, eris.Wrap(rows.Err(), "sqlite: iterate names")
}

// AppendRows inserts rows in one transaction after the current last position.
func (s *SQLite) AppendRows(ctx context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	var next int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position) + 1, 0) FROM "+s.quoted()).Scan(&next); err != nil {
		return eris.Wrap(err, "sqlite: next position")
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+s.quoted()+" (id, run_id, position, name, cells) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	for i, row := range rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal cells")
		}
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), s.runID, next+i, row[0], string(cells)); err != nil {
			return eris.Wrapf(err, "sqlite: insert %s", row[0])
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

// Rows returns every stored row's cells in write order.
func (s *SQLite) Rows(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT cells FROM "+s.quoted()+" ORDER BY position")
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: select rows")
	}
	defer rows.Close() //nolint:errcheck

	var out [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan row")
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal cells")
		}
		out = append(out, cells)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate rows")
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
