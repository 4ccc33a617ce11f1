// Package lineup extracts festival acts from lineup websites. Each supported
// site has one Adapter; a Dispatcher routes a source identifier to it.
package lineup

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/model"
)

var (
	// ErrStructureChanged means the page no longer contains the elements an
	// adapter anchors on. An empty lineup is never returned silently.
	ErrStructureChanged = eris.New("lineup page structure changed")

	// ErrUnknownSource matches *UnknownSourceError.
	ErrUnknownSource = eris.New("unknown source")
)

// Adapter turns one site's lineup markup into acts, in page order.
type Adapter interface {
	// ID is the source identifier used in params files.
	ID() string
	// FallbackStyles reports whether acts from this source carry a style
	// that should replace an empty metadata-source style.
	FallbackStyles() bool
	// Extract fetches the listing page (and any detail pages) and returns the acts.
	Extract(ctx context.Context, f fetcher.Fetcher, listingURL string) ([]model.Act, error)
}

// UnknownSourceError is returned for a source identifier no adapter handles.
type UnknownSourceError struct {
	Source    string
	Supported []string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown source %q, supported sources are [%s]", e.Source, strings.Join(e.Supported, ", "))
}

// Is makes errors.Is(err, ErrUnknownSource) true.
func (e *UnknownSourceError) Is(target error) bool { return target == ErrUnknownSource }

func structureChanged(source, url, expected string) error {
	return eris.Wrapf(ErrStructureChanged, "%s: no %s found on %s", source, expected, url)
}

// sanitizeName replaces commas, which would otherwise split the act across
// columns in delimited output.
func sanitizeName(name string) string {
	return strings.ReplaceAll(name, ",", ";")
}

// collapse trims and collapses internal whitespace.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
