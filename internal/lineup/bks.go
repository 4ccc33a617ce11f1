package lineup

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/model"
)

// bks is Best Kept Secret. The listing page only links artist pages; the
// canonical name, performance days and genre caption live on each detail page.
type bks struct{}

func (bks) ID() string           { return "BKS" }
func (bks) FallbackStyles() bool { return true }

const bksArtistSelector = "a[data-artist]"

func (b bks) Extract(ctx context.Context, f fetcher.Fetcher, listingURL string) ([]model.Act, error) {
	urls, err := b.detailURLs(ctx, f, listingURL)
	if err != nil {
		return nil, err
	}

	var acts []model.Act
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		act, err := b.detail(ctx, f, u)
		if err != nil {
			zap.L().Warn("bks: skipping artist page",
				zap.String("url", u),
				zap.Error(err),
			)
			continue
		}
		acts = append(acts, act)
	}
	return acts, nil
}

// detailURLs returns the artist page URLs in listing order, without duplicates.
func (b bks) detailURLs(ctx context.Context, f fetcher.Fetcher, listingURL string) ([]string, error) {
	p, err := fetchPage(ctx, f, listingURL)
	if err != nil {
		return nil, err
	}

	anchors := p.doc.Find(bksArtistSelector)
	if anchors.Length() == 0 {
		return nil, structureChanged(b.ID(), listingURL, bksArtistSelector)
	}

	seen := make(map[string]bool)
	var urls []string
	anchors.Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		u := p.resolve(href)
		if seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	})
	return urls, nil
}

func (b bks) detail(ctx context.Context, f fetcher.Fetcher, detailURL string) (model.Act, error) {
	p, err := fetchPage(ctx, f, detailURL)
	if err != nil {
		return model.Act{}, err
	}

	name := sanitizeName(collapse(p.doc.Find("h1").First().Text()))
	if name == "" {
		return model.Act{}, structureChanged(b.ID(), detailURL, "h1 artist name")
	}

	return model.Act{
		Name:          name,
		Link:          detailURL,
		Day:           firstDay(p.doc.Find("[data-days]").First().AttrOr("data-days", "")),
		FallbackStyle: collapse(p.doc.Find(".artist-genre").First().Text()),
	}, nil
}

// firstDay returns the first recognised day in a space or comma separated list.
func firstDay(days string) model.Day {
	for _, tok := range strings.FieldsFunc(days, func(r rune) bool { return r == ' ' || r == ',' }) {
		if d, ok := model.ParseDay(tok); ok {
			return d
		}
	}
	return model.DayUnset
}
