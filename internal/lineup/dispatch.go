package lineup

import (
	"context"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/model"
)

// Registry maps source identifiers to adapters. Lookup is case-insensitive.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds a registry from the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[strings.ToLower(a.ID())] = a
	}
	return r
}

// DefaultRegistry returns every supported lineup site.
func DefaultRegistry() *Registry {
	return NewRegistry(dtrh{}, lowlands{}, pinkpop{}, bks{})
}

// Lookup returns the adapter for a source identifier.
func (r *Registry) Lookup(source string) (Adapter, error) {
	a, ok := r.adapters[strings.ToLower(strings.TrimSpace(source))]
	if !ok {
		return nil, &UnknownSourceError{Source: source, Supported: r.IDs()}
	}
	return a, nil
}

// IDs returns the supported source identifiers, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.adapters))
	for _, a := range r.adapters {
		ids = append(ids, a.ID())
	}
	sort.Slice(ids, func(i, j int) bool { return strings.ToLower(ids[i]) < strings.ToLower(ids[j]) })
	return ids
}

// Adapters returns the registered adapters in IDs order.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, 0, len(r.adapters))
	for _, id := range r.IDs() {
		out = append(out, r.adapters[strings.ToLower(id)])
	}
	return out
}

// Dispatcher routes a source identifier to its adapter and validates the result.
type Dispatcher struct {
	Registry *Registry
	Fetcher  fetcher.Fetcher
}

// NewDispatcher creates a Dispatcher over the default registry.
func NewDispatcher(f fetcher.Fetcher) *Dispatcher {
	return &Dispatcher{Registry: DefaultRegistry(), Fetcher: f}
}

// Dispatch extracts the lineup of source from listingURL. Unknown sources,
// listing fetch failures and structural failures are returned as errors;
// an extraction that yields no acts is reported as ErrStructureChanged.
func (d *Dispatcher) Dispatch(ctx context.Context, source, listingURL string) ([]model.Act, error) {
	adapter, err := d.Registry.Lookup(source)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("lineup: extracting",
		zap.String("source", adapter.ID()),
		zap.String("url", listingURL),
	)

	acts, err := adapter.Extract(ctx, d.Fetcher, listingURL)
	if err != nil {
		return nil, eris.Wrapf(err, "lineup: %s", adapter.ID())
	}
	if len(acts) == 0 {
		return nil, structureChanged(adapter.ID(), listingURL, "acts")
	}

	zap.L().Info("lineup: extracted acts",
		zap.String("source", adapter.ID()),
		zap.Int("acts", len(acts)),
	)
	return acts, nil
}
