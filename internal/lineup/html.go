package lineup

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/model"
)

// page is a fetched and parsed HTML document with its base URL.
type page struct {
	doc  *goquery.Document
	base *url.URL
}

func fetchPage(ctx context.Context, f fetcher.Fetcher, rawURL string) (*page, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "lineup: parse url %q", rawURL)
	}
	body, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrapf(err, "lineup: parse html from %s", rawURL)
	}
	return &page{doc: doc, base: base}, nil
}

// resolve makes href absolute against the page URL. An empty href yields NoLink.
func (p *page) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return model.NoLink
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return p.base.ResolveReference(u).String()
}

// links returns every anchor href on the page, resolved.
func (p *page) links() map[string]bool {
	out := make(map[string]bool)
	p.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		out[p.resolve(href)] = true
	})
	return out
}
