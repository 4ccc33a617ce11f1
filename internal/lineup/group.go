package lineup

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/model"
)

// groupSelector is the act tile used by the Mojo festival sites.
const groupSelector = "a.group"

// groupActs reads a.group tiles: name in the title attribute, detail page in
// href. Day and fallback style are read only when the site provides them.
func groupActs(ctx context.Context, f fetcher.Fetcher, source, listingURL string, withDay, withStyle bool) ([]model.Act, error) {
	p, err := fetchPage(ctx, f, listingURL)
	if err != nil {
		return nil, err
	}

	tiles := p.doc.Find(groupSelector)
	if tiles.Length() == 0 {
		return nil, structureChanged(source, listingURL, groupSelector)
	}

	var acts []model.Act
	tiles.Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("title")
		if !ok || collapse(name) == "" {
			name = s.Text()
		}
		name = collapse(name)
		if name == "" {
			return
		}
		href, _ := s.Attr("href")
		act := model.Act{Name: name, Link: p.resolve(href)}
		if withDay {
			if d, ok := model.ParseDay(s.AttrOr("data-day", "")); ok {
				act.Day = d
			}
		}
		if withStyle {
			act.FallbackStyle = collapse(s.Find(".genre").First().Text())
		}
		acts = append(acts, act)
	})
	return acts, nil
}

// dtrh is Down The Rabbit Hole.
type dtrh struct{}

func (dtrh) ID() string           { return "DTRH" }
func (dtrh) FallbackStyles() bool { return false }

func (d dtrh) Extract(ctx context.Context, f fetcher.Fetcher, listingURL string) ([]model.Act, error) {
	return groupActs(ctx, f, d.ID(), listingURL, false, false)
}

// lowlands tiles carry a data-day attribute and a genre caption.
type lowlands struct{}

func (lowlands) ID() string           { return "lowlands" }
func (lowlands) FallbackStyles() bool { return true }

func (l lowlands) Extract(ctx context.Context, f fetcher.Fetcher, listingURL string) ([]model.Act, error) {
	return groupActs(ctx, f, l.ID(), listingURL, true, true)
}
