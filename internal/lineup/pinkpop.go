package lineup

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/model"
)

// pinkpop lists acts as h3 headings without links; detail pages follow a
// slug convention under /line-up/. Some headings prefix the name with a
// weekday, either as a label (<h3><span class="day">Vrijdag</span>Muse</h3>,
// whose text reads "VrijdagMuse") or typed into the text ("FRIDAYMuse").
type pinkpop struct{}

func (pinkpop) ID() string           { return "pinkpop" }
func (pinkpop) FallbackStyles() bool { return false }

func (pp pinkpop) Extract(ctx context.Context, f fetcher.Fetcher, listingURL string) ([]model.Act, error) {
	p, err := fetchPage(ctx, f, listingURL)
	if err != nil {
		return nil, err
	}

	headings := p.doc.Find("h3")
	if headings.Length() == 0 {
		return nil, structureChanged(pp.ID(), listingURL, "h3 headings")
	}

	known := p.links()
	var acts []model.Act
	headings.Each(func(_ int, s *goquery.Selection) {
		name, day := splitDay(s)
		if name == "" {
			return
		}
		link := p.resolve("/line-up/" + slug(name) + "/")
		if !known[link] {
			zap.L().Warn("pinkpop: constructed act link not present on lineup page",
				zap.String("act", name),
				zap.String("url", link),
			)
		}
		acts = append(acts, model.Act{Name: name, Link: link, Day: day})
	})
	return acts, nil
}

// splitDay strips a leading weekday from a heading. The weekday is either a
// .day/time label element or typed into the text itself.
func splitDay(s *goquery.Selection) (string, model.Day) {
	text := collapse(s.Text())
	label := collapse(s.Find(".day, time").First().Text())
	if label == "" {
		return splitTypedDay(text)
	}
	day, ok := model.ParseDay(label)
	if !ok {
		return text, model.DayUnset
	}
	if len(text) >= len(label) && strings.EqualFold(text[:len(label)], label) {
		text = strings.TrimSpace(text[len(label):])
	}
	return text, day
}

// dutchDays never start an act name on a Dutch lineup page.
var dutchDays = map[string]bool{"vrijdag": true, "zaterdag": true, "zondag": true}

// splitTypedDay strips a weekday typed in front of the name. It needs a
// capital right after the weekday ("FRIDAYMuse", "VrijdagMuse"), a weekday
// in capitals ("FRIDAY Muse") or a Dutch weekday ("Vrijdag Foo Fighters").
// "Sunday Service Choir" stays intact.
func splitTypedDay(text string) (string, model.Day) {
	for _, prefix := range model.DayPrefixes() {
		if len(text) <= len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
			continue
		}
		typed, rest := text[:len(prefix)], text[len(prefix):]
		next, _ := utf8.DecodeRuneInString(rest)
		spaced := unicode.IsSpace(next)
		name := strings.TrimSpace(rest)
		if name == "" {
			continue
		}
		if unicode.IsUpper(next) || (spaced && (typed == strings.ToUpper(typed) || dutchDays[prefix])) {
			day, _ := model.ParseDay(prefix)
			return name, day
		}
	}
	return text, model.DayUnset
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
