package notion

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// Lineup is a Notion database of acts. Property names are the column names;
// the first column is the title.
type Lineup struct {
	client  Client
	id      string
	columns []string
}

// NewLineup returns the lineup stored in database id.
func NewLineup(c Client, id string, columns []string) *Lineup {
	return &Lineup{client: c, id: id, columns: columns}
}

// Names returns the title of every page in the database, following the
// result cursor until the last page. Blank titles are skipped.
func (l *Lineup) Names(ctx context.Context) ([]string, error) {
	var names []string
	var cursor notionapi.Cursor
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := l.client.QueryDatabase(ctx, l.id, &notionapi.DatabaseQueryRequest{StartCursor: cursor})
		if err != nil {
			return nil, err
		}
		for _, page := range resp.Results {
			if title := strings.TrimSpace(Title(page.Properties)); title != "" {
				names = append(names, title)
			}
		}
		if !resp.HasMore || resp.NextCursor == "" {
			return names, nil
		}
		cursor = resp.NextCursor
	}
}

// AddAct creates the page for one projected row.
func (l *Lineup) AddAct(ctx context.Context, row []string) error {
	if len(row) == 0 {
		return eris.New("notion: empty row")
	}
	_, err := l.client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(l.id),
		},
		Properties: rowProperties(l.columns, row),
	})
	return err
}
