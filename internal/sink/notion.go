package sink

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lineup-cli/pkg/notion"
)

// Notion stores each row as a page of a Notion lineup database.
type Notion struct {
	lineup     *notion.Lineup
	databaseID string
}

// NewNotion returns a destination for the database databaseID.
func NewNotion(client notion.Client, databaseID string, columns []string) *Notion {
	return &Notion{lineup: notion.NewLineup(client, databaseID, columns), databaseID: databaseID}
}

func (n *Notion) Names(ctx context.Context) ([]string, error) {
	names, err := n.lineup.Names(ctx)
	if err != nil {
		return nil, eris.Wrapf(err, "notion sink: list pages of %s", n.databaseID)
	}
	return names, nil
}

// AppendRows creates one page per row, in order. Pages created before a
// failure are kept.
func (n *Notion) AppendRows(ctx context.Context, rows [][]string) error {
	for _, row := range rows {
		if err := n.lineup.AddAct(ctx, row); err != nil {
			return eris.Wrapf(err, "notion sink: create page for %s", row[0])
		}
	}
	return nil
}

func (n *Notion) Close() error { return nil }
