// Package info resolves lineup acts to AllMusic artist profiles.
package info

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/model"
)

// DefaultBaseURL is the AllMusic site root.
const DefaultBaseURL = "https://www.allmusic.com"

var (
	// ErrNotFound means no verified profile exists for the act. It is an
	// expected outcome, not a failure.
	ErrNotFound = eris.New("artist profile not found")

	// ErrNameMismatch matches *MismatchError.
	ErrNameMismatch = eris.New("artist name mismatch")
)

// MismatchError is returned when the candidate profile names a different
// artist. It also matches ErrNotFound.
type MismatchError struct {
	ActName  string
	InfoName string
	Link     string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("profile %s is %q, not %q", e.Link, e.InfoName, e.ActName)
}

// Is makes a mismatch read as both ErrNameMismatch and ErrNotFound.
func (e *MismatchError) Is(target error) bool {
	return target == ErrNameMismatch || target == ErrNotFound
}

// Resolver finds and verifies AllMusic profiles.
type Resolver struct {
	Fetcher fetcher.Fetcher
	BaseURL string
}

// NewResolver creates a Resolver. An empty baseURL uses DefaultBaseURL.
func NewResolver(f fetcher.Fetcher, baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{Fetcher: f, BaseURL: strings.TrimRight(baseURL, "/")}
}

// SearchURL returns the artist search page for a name.
func (r *Resolver) SearchURL(name string) string {
	return r.BaseURL + "/search/artists/" + url.PathEscape(name)
}

// Search returns the first artist result link for name, or ErrNotFound.
func (r *Resolver) Search(ctx context.Context, name string) (string, error) {
	searchURL := r.SearchURL(name)
	doc, err := r.get(ctx, searchURL)
	if err != nil {
		return "", err
	}

	href, ok := doc.Find("div.artist a[href]").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", ErrNotFound
	}
	return r.absolute(searchURL, href), nil
}

// Resolve searches for actName, fetches the first candidate and verifies it
// names the same artist. Transport failures match fetcher.ErrFetchFailed;
// a candidate naming another artist returns *MismatchError.
func (r *Resolver) Resolve(ctx context.Context, actName string) (*model.Profile, error) {
	link, err := r.Search(ctx, actName)
	if err != nil {
		return nil, err
	}

	doc, err := r.get(ctx, link)
	if err != nil {
		return nil, err
	}

	profile := parseProfile(doc)
	profile.Link = link

	if !Match(actName, profile.Name) {
		zap.L().Warn("info: profile does not match act name",
			zap.String("act", actName),
			zap.String("info_name", profile.Name),
			zap.String("url", link),
		)
		return nil, &MismatchError{ActName: actName, InfoName: profile.Name, Link: link}
	}
	return profile, nil
}

func (r *Resolver) get(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := r.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrapf(err, "info: parse html from %s", rawURL)
	}
	return doc, nil
}

func (r *Resolver) absolute(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// parseProfile reads the artist header regions. Missing regions leave the
// field empty.
func parseProfile(doc *goquery.Document) *model.Profile {
	p := &model.Profile{
		Name:   collapse(doc.Find("h1#artistName").First().Text()),
		Genres: tags(doc.Find("div.genre a")),
		Styles: tags(doc.Find("div.styles a")),
	}

	active := doc.Find("div.activeDates").First()
	if inner := active.ChildrenFiltered("div"); inner.Length() > 0 {
		p.ActiveDate = collapse(inner.First().Text())
	} else {
		p.ActiveDate = collapse(strings.TrimPrefix(collapse(active.Text()), "Active"))
	}
	return p
}

func tags(s *goquery.Selection) []string {
	out := []string{}
	s.Each(func(_ int, a *goquery.Selection) {
		if t := collapse(a.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
