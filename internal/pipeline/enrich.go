// Package pipeline runs one collection pass: extract a lineup, enrich every
// act with its metadata profile and append the records to a sink.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/lineup-cli/internal/info"
	"github.com/sells-group/lineup-cli/internal/model"
)

// Resolver looks up the verified metadata profile of an act.
type Resolver interface {
	Resolve(ctx context.Context, actName string) (*model.Profile, error)
}

// Stats counts enrichment outcomes.
type Stats struct {
	Resolved int
	Degraded int
}

// Enricher merges profiles into acts, one act at a time.
type Enricher struct {
	Resolver Resolver

	// FallbackStyles substitutes an act's FallbackStyle when no style was resolved.
	FallbackStyles bool

	// Verbose logs a summary line per act at info level instead of debug.
	Verbose bool
}

// Run enriches acts in order. A failed lookup degrades that act to empty
// enrichment fields and never aborts the batch; only cancellation of ctx does.
func (e *Enricher) Run(ctx context.Context, acts []model.Act) ([]model.EnrichedAct, Stats, error) {
	var stats Stats
	out := make([]model.EnrichedAct, 0, len(acts))
	for _, act := range acts {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		rec, ok := e.Enrich(ctx, act)
		if ok {
			stats.Resolved++
		} else {
			stats.Degraded++
		}
		out = append(out, rec)
	}
	return out, stats, nil
}

// Enrich resolves one act. The bool reports whether a verified profile was merged.
func (e *Enricher) Enrich(ctx context.Context, act model.Act) (model.EnrichedAct, bool) {
	rec := model.NewEnrichedAct(act)

	profile, err := e.Resolver.Resolve(ctx, act.Name)
	resolved := err == nil && profile != nil
	if resolved {
		rec.Merge(*profile)
	} else {
		var mismatch *info.MismatchError
		switch {
		case errors.As(err, &mismatch):
			rec.InfoLink = mismatch.Link
		case err == nil, errors.Is(err, info.ErrNotFound):
			zap.L().Warn("pipeline: no profile found, keeping act without metadata", zap.String("act", act.Name))
		default:
			zap.L().Warn("pipeline: profile lookup failed, keeping act without metadata",
				zap.String("act", act.Name),
				zap.Error(err),
			)
		}
	}

	if e.FallbackStyles && rec.StylesEmpty() && act.FallbackStyle != "" {
		rec.Styles = []string{act.FallbackStyle}
	}

	e.summarize(rec)
	return rec, resolved
}

func (e *Enricher) summarize(rec model.EnrichedAct) {
	log := zap.L().Debug
	if e.Verbose {
		log = zap.L().Info
	}
	log("pipeline: act",
		zap.String("act", rec.Name),
		zap.String("active_date", rec.ActiveDate),
		zap.String("genres", strings.Join(rec.Genres, model.ListSeparator)),
		zap.String("styles", strings.Join(rec.Styles, model.ListSeparator)),
	)
}
