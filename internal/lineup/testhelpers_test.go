package lineup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/resilience"
)

// fixtureFetcher serves testdata files by URL. Unknown URLs fail with a 404
// FetchError; calls records every requested URL in order.
type fixtureFetcher struct {
	t     *testing.T
	pages map[string]string
	calls []string
}

func newFixtureFetcher(t *testing.T, pages map[string]string) *fixtureFetcher {
	return &fixtureFetcher{t: t, pages: pages}
}

func (f *fixtureFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	file, ok := f.pages[url]
	if !ok {
		return nil, &fetcher.FetchError{URL: url, Err: &resilience.StatusError{URL: url, StatusCode: 404}}
	}
	data, err := os.ReadFile(filepath.Join("testdata", file))
	require.NoError(f.t, err)
	return data, nil
}
