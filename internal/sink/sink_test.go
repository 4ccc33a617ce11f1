package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lineup-cli/internal/model"
)

// memory is an in-memory Destination.
type memory struct {
	rows     [][]string
	namesErr error
	writeErr error
	appends  int
}

func (m *memory) Names(context.Context) ([]string, error) {
	if m.namesErr != nil {
		return nil, m.namesErr
	}
	names := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		names = append(names, r[0])
	}
	return names, nil
}

func (m *memory) AppendRows(_ context.Context, rows [][]string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.appends++
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *memory) Close() error { return nil }

func enriched(name string, genres, styles []string) model.EnrichedAct {
	e := model.NewEnrichedAct(model.Act{Name: name, Link: model.NoLink})
	e.Genres = genres
	e.Styles = styles
	return e
}

var defaultColumns = []string{"name", "activeDate", "genres", "styles"}

func TestAppend_WritesRowsInOrder(t *testing.T) {
	muse := enriched("Muse", []string{"Rock"}, []string{"Alternative", "Arena Rock"})
	muse.ActiveDate = "1994-present"
	dest := &memory{}

	res, err := Append(context.Background(), dest, []model.EnrichedAct{muse, enriched("Nina Simone", nil, nil)}, defaultColumns, model.Empty)
	require.NoError(t, err)
	assert.Equal(t, Result{Written: 2}, res)
	assert.Equal(t, [][]string{
		{"Muse", "1994-present", "Rock", "Alternative;Arena Rock"},
		{"Nina Simone", "", "", ""},
	}, dest.rows)
}

func TestAppend_Idempotent(t *testing.T) {
	acts := []model.EnrichedAct{enriched("Muse", nil, nil), enriched("Nina Simone", nil, nil)}
	dest := &memory{}

	_, err := Append(context.Background(), dest, acts, defaultColumns, model.Empty)
	require.NoError(t, err)
	res, err := Append(context.Background(), dest, acts, defaultColumns, model.Empty)
	require.NoError(t, err)

	assert.Equal(t, Result{Skipped: 2}, res)
	assert.Len(t, dest.rows, 2)
	assert.Equal(t, 1, dest.appends, "nothing new means no write")
}

func TestAppend_SkipsExistingNames(t *testing.T) {
	dest := &memory{rows: [][]string{{"Muse", "", "", ""}}}

	res, err := Append(context.Background(), dest, []model.EnrichedAct{
		enriched("Muse", nil, nil),
		enriched("Nina Simone", nil, nil),
	}, defaultColumns, model.Empty)
	require.NoError(t, err)
	assert.Equal(t, Result{Written: 1, Skipped: 1}, res)
	assert.Equal(t, "Nina Simone", dest.rows[1][0])
}

func TestAppend_DuplicatesWithinBatch(t *testing.T) {
	dest := &memory{}

	res, err := Append(context.Background(), dest, []model.EnrichedAct{
		enriched("Muse", nil, nil),
		enriched("Muse", []string{"Rock"}, nil),
	}, defaultColumns, model.Empty)
	require.NoError(t, err)
	assert.Equal(t, Result{Written: 1, Skipped: 1}, res)
	assert.Equal(t, "", dest.rows[0][2], "first occurrence wins")
}

func TestAppend_SanitizesBeforeDedup(t *testing.T) {
	dest := &memory{rows: [][]string{{"Crosby; Stills & Nash"}}}

	res, err := Append(context.Background(), dest, []model.EnrichedAct{
		enriched("Crosby, Stills & Nash", nil, nil),
	}, defaultColumns, model.Empty)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 1}, res)
}

func TestAppend_SanitizesEveryCell(t *testing.T) {
	dest := &memory{}
	act := enriched("Earth, Wind & Fire", []string{"R&B, Soul"}, nil)

	_, err := Append(context.Background(), dest, []model.EnrichedAct{act}, defaultColumns, model.Empty)
	require.NoError(t, err)
	for _, cell := range dest.rows[0] {
		assert.NotContains(t, cell, Delimiter)
	}
	assert.Equal(t, "Earth; Wind & Fire", dest.rows[0][0])
	assert.Equal(t, "R&B; Soul", dest.rows[0][2])
}

func TestAppend_UnknownColumnWritesEmptyMarker(t *testing.T) {
	dest := &memory{}

	res, err := Append(context.Background(), dest, []model.EnrichedAct{
		enriched("Muse", []string{"Rock"}, nil),
	}, []string{"name", "label", "genres"}, "-")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Written)
	assert.Equal(t, [][]string{{"Muse", "-", "Rock"}}, dest.rows)
}

func TestAppend_EmptyMarker(t *testing.T) {
	dest := &memory{}

	_, err := Append(context.Background(), dest, []model.EnrichedAct{enriched("Muse", nil, nil)}, defaultColumns, "n/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Muse", "n/a", "n/a", "n/a"}, dest.rows[0])
}

func TestAppend_ColumnAliases(t *testing.T) {
	dest := &memory{}
	act := enriched("Muse", nil, nil)
	act.InfoLink = "https://www.allmusic.com/artist/muse-mn0000828598"

	_, err := Append(context.Background(), dest, []model.EnrichedAct{act}, []string{"name", "act_url", "info_url"}, model.Empty)
	require.NoError(t, err)
	assert.Equal(t, []string{"Muse", model.NoLink, "https://www.allmusic.com/artist/muse-mn0000828598"}, dest.rows[0])
}

func TestAppend_InvalidColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{"empty", nil},
		{"name not first", []string{"genres", "name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := &memory{}
			_, err := Append(context.Background(), dest, []model.EnrichedAct{enriched("Muse", nil, nil)}, tt.columns, model.Empty)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrColumns))
			assert.Empty(t, dest.rows)
		})
	}
}

func TestAppend_DestinationErrors(t *testing.T) {
	acts := []model.EnrichedAct{enriched("Muse", nil, nil)}

	_, err := Append(context.Background(), &memory{namesErr: errors.New("disk gone")}, acts, defaultColumns, model.Empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read existing acts")

	res, err := Append(context.Background(), &memory{writeErr: errors.New("disk full")}, acts, defaultColumns, model.Empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append rows")
	assert.Zero(t, res.Written)
}

func TestSanitize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a; b;c", Sanitize("a, b,c"))
	assert.Equal(t, "plain", Sanitize("plain"))
}
