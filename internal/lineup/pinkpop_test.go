package lineup

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lineup-cli/internal/fetcher"
	"github.com/sells-group/lineup-cli/internal/model"
)

const pinkpopURL = "https://www.pinkpop.test/line-up/"

func TestPinkpopExtract(t *testing.T) {
	f := newFixtureFetcher(t, map[string]string{pinkpopURL: "pinkpop.html"})

	acts, err := pinkpop{}.Extract(context.Background(), f, pinkpopURL)
	require.NoError(t, err)

	assert.Equal(t, []model.Act{
		{Name: "Muse", Link: "https://www.pinkpop.test/line-up/muse/"},
		{Name: "Foo Fighters", Link: "https://www.pinkpop.test/line-up/foo-fighters/", Day: model.DaySaturday},
		{Name: "Queens of the Stone Age", Link: "https://www.pinkpop.test/line-up/queens-of-the-stone-age/"},
	}, acts)
}

func TestPinkpopStructureChanged(t *testing.T) {
	f := newFixtureFetcher(t, map[string]string{pinkpopURL: "empty.html"})

	_, err := pinkpop{}.Extract(context.Background(), f, pinkpopURL)
	assert.ErrorIs(t, err, ErrStructureChanged)
}

func TestSplitDay(t *testing.T) {
	tests := []struct {
		html     string
		wantName string
		wantDay  model.Day
	}{
		{`<h3><span class="day">Vrijdag</span>Muse</h3>`, "Muse", model.DayFriday},
		{`<h3><time>SUNDAY</time> Sigur Rós</h3>`, "Sigur Rós", model.DaySunday},
		{`<h3>Sunday Service Choir</h3>`, "Sunday Service Choir", model.DayUnset},
		{`<h3><span class="day">Main stage</span>Muse</h3>`, "Main stageMuse", model.DayUnset},
		{`<h3>FRIDAYMuse</h3>`, "Muse", model.DayFriday},
		{`<h3>Vrijdag Foo Fighters</h3>`, "Foo Fighters", model.DayFriday},
		{`<h3>ZaterdagModerat</h3>`, "Moderat", model.DaySaturday},
		{`<h3>SUNDAY Sigur Rós</h3>`, "Sigur Rós", model.DaySunday},
		{`<h3>Sundays</h3>`, "Sundays", model.DayUnset},
		{`<h3>Friday</h3>`, "Friday", model.DayUnset},
	}
	for _, tt := range tests {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
		require.NoError(t, err)

		name, day := splitDay(doc.Find("h3").First())
		assert.Equal(t, tt.wantName, name, tt.html)
		assert.Equal(t, tt.wantDay, day, tt.html)
	}
}

func TestPinkpopExtract_TypedDays(t *testing.T) {
	f := fetcher.Func(func(_ context.Context, _ string) ([]byte, error) {
		return []byte(`<html><body><h3>FRIDAYMuse</h3><h3>Vrijdag Foo Fighters</h3></body></html>`), nil
	})

	acts, err := pinkpop{}.Extract(context.Background(), f, pinkpopURL)
	require.NoError(t, err)

	assert.Equal(t, []model.Act{
		{Name: "Muse", Link: "https://www.pinkpop.test/line-up/muse/", Day: model.DayFriday},
		{Name: "Foo Fighters", Link: "https://www.pinkpop.test/line-up/foo-fighters/", Day: model.DayFriday},
	}, acts)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "queens-of-the-stone-age", slug("Queens of the Stone Age"))
	assert.Equal(t, "muse", slug("MUSE"))
}
