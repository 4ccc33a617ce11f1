// Package sink appends enriched acts to a tabular destination, skipping acts
// the destination already holds.
package sink

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lineup-cli/internal/model"
)

// Delimiter separates cells in delimited output; it is replaced inside values.
const Delimiter = ","

// ErrColumns is returned for a column list that cannot be projected.
var ErrColumns = eris.New("sink: invalid column list")

// Destination is an append-only table whose first column is the act name.
type Destination interface {
	// Names returns the first-column values already stored, in storage order.
	Names(ctx context.Context) ([]string, error)
	// AppendRows stores rows after the existing ones.
	AppendRows(ctx context.Context, rows [][]string) error
	Close() error
}

// Result counts the outcome of an append.
type Result struct {
	Written int
	Skipped int
}

// Sanitize replaces the delimiter so a value stays within one cell.
func Sanitize(v string) string {
	return strings.ReplaceAll(v, Delimiter, ";")
}

// ValidateColumns checks that columns is non-empty and starts with the name
// column, which is the duplicate key of every destination.
func ValidateColumns(columns []string) error {
	if len(columns) == 0 {
		return eris.Wrap(ErrColumns, "no columns configured")
	}
	if model.CanonicalColumn(columns[0]) != model.ColName {
		return eris.Wrapf(ErrColumns, "first column must be %q, got %q", model.ColName, columns[0])
	}
	return nil
}

// Append writes every act whose sanitized name is not yet present at dest.
// Names are read once before writing; acts repeated within the batch are
// written once. A column an act cannot provide is written as empty.
func Append(ctx context.Context, dest Destination, acts []model.EnrichedAct, columns []string, empty string) (Result, error) {
	var res Result
	if err := ValidateColumns(columns); err != nil {
		return res, err
	}

	existing, err := dest.Names(ctx)
	if err != nil {
		return res, eris.Wrap(err, "sink: read existing acts")
	}
	skip := make(map[string]bool, len(existing))
	for _, n := range existing {
		skip[Sanitize(strings.TrimSpace(n))] = true
	}

	var rows [][]string
	for _, act := range acts {
		name := Sanitize(act.Name)
		if skip[name] {
			zap.L().Debug("sink: act already recorded", zap.String("act", name))
			res.Skipped++
			continue
		}
		skip[name] = true
		rows = append(rows, Project(act, columns, empty))
	}

	if len(rows) == 0 {
		return res, nil
	}
	if err := dest.AppendRows(ctx, rows); err != nil {
		return res, eris.Wrap(err, "sink: append rows")
	}
	res.Written = len(rows)
	return res, nil
}

// Project returns the act's cells in column order, sanitized.
func Project(act model.EnrichedAct, columns []string, empty string) []string {
	row := make([]string, 0, len(columns))
	for _, col := range columns {
		v, ok := act.Field(col, empty)
		if !ok {
			zap.L().Warn("sink: act has no such column, writing empty cell",
				zap.String("act", act.Name),
				zap.String("column", col),
				zap.Strings("known", model.Columns()),
			)
		}
		row = append(row, Sanitize(v))
	}
	return row
}
