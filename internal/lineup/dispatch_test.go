package lineup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/model"
)

// staticAdapter returns fixed acts.
type staticAdapter struct {
	id   string
	acts []model.Act
	err  error
}

func (s staticAdapter) ID() string           { return s.id }
func (s staticAdapter) FallbackStyles() bool { return false }
func (s staticAdapter) Extract(context.Context, fetcher.Fetcher, string) ([]model.Act, error) {
	return s.acts, s.err
}

func TestDefaultRegistryIDs(t *testing.T) {
	assert.Equal(t, []string{"BKS", "DTRH", "lowlands", "pinkpop"}, DefaultRegistry().IDs())
	assert.Len(t, DefaultRegistry().Adapters(), 4)
}

func TestLookupCaseInsensitive(t *testing.T) {
	a, err := DefaultRegistry().Lookup("dtrh")
	require.NoError(t, err)
	assert.Equal(t, "DTRH", a.ID())

	a, err = DefaultRegistry().Lookup(" Lowlands ")
	require.NoError(t, err)
	assert.Equal(t, "lowlands", a.ID())
}

func TestDispatchUnknownSource(t *testing.T) {
	d := NewDispatcher(newFixtureFetcher(t, nil))

	_, err := d.Dispatch(context.Background(), "glastonbury", "https://example.test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSource)

	var use *UnknownSourceError
	require.True(t, errors.As(err, &use))
	assert.Equal(t, "glastonbury", use.Source)
	assert.Equal(t, []string{"BKS", "DTRH", "lowlands", "pinkpop"}, use.Supported)
	assert.Contains(t, err.Error(), "[BKS, DTRH, lowlands, pinkpop]")
}

func TestDispatchRoutesToAdapter(t *testing.T) {
	d := NewDispatcher(newFixtureFetcher(t, map[string]string{dtrhURL: "dtrh.html"}))

	acts, err := d.Dispatch(context.Background(), "DTRH", dtrhURL)
	require.NoError(t, err)
	assert.Len(t, acts, 4)
	assert.Equal(t, "Muse", acts[0].Name)
}

func TestDispatchEmptyResultIsStructureChanged(t *testing.T) {
	d := &Dispatcher{Registry: NewRegistry(staticAdapter{id: "quiet"})}

	acts, err := d.Dispatch(context.Background(), "quiet", "https://example.test")
	assert.ErrorIs(t, err, ErrStructureChanged)
	assert.Nil(t, acts)
}

func TestDispatchPropagatesStructureChanged(t *testing.T) {
	d := NewDispatcher(newFixtureFetcher(t, map[string]string{dtrhURL: "empty.html"}))

	acts, err := d.Dispatch(context.Background(), "DTRH", dtrhURL)
	assert.ErrorIs(t, err, ErrStructureChanged)
	assert.Empty(t, acts)
}

func TestDispatchPropagatesFetchFailed(t *testing.T) {
	d := NewDispatcher(newFixtureFetcher(t, nil))

	_, err := d.Dispatch(context.Background(), "pinkpop", pinkpopURL)
	assert.ErrorIs(t, err, fetcher.ErrFetchFailed)
}
