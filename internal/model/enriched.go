package model

import "strings"

// Empty is the default empty marker written for absent enrichment fields.
const Empty = ""

// ListSeparator joins tag lists into a single cell.
const ListSeparator = ";"

// Column names accepted for projection.
const (
	ColName          = "name"
	ColLink          = "link"
	ColDay           = "day"
	ColFallbackStyle = "fallbackStyle"
	ColActiveDate    = "activeDate"
	ColGenres        = "genres"
	ColStyles        = "styles"
	ColInfoLink      = "infoLink"
)

// columnAliases maps column names used by older params files to field names.
var columnAliases = map[string]string{
	"act_url":        ColLink,
	"info_url":       ColInfoLink,
	"backup_styles":  ColFallbackStyle,
	"fallback_style": ColFallbackStyle,
	"active_date":    ColActiveDate,
}

// Columns returns every projectable column, in record order.
func Columns() []string {
	return []string{ColName, ColLink, ColDay, ColFallbackStyle, ColActiveDate, ColGenres, ColStyles, ColInfoLink}
}

// CanonicalColumn resolves aliases. Unknown names are returned unchanged.
func CanonicalColumn(col string) string {
	col = strings.TrimSpace(col)
	if c, ok := columnAliases[col]; ok {
		return c
	}
	return col
}

// EnrichedAct is an Act merged with its metadata-source profile. All
// enrichment fields are always set; an unresolved act carries empty values
// rather than missing ones.
type EnrichedAct struct {
	Act
	ActiveDate string   `json:"active_date"`
	Genres     []string `json:"genres"`
	Styles     []string `json:"styles"`
	InfoLink   string   `json:"info_link"`
}

// NewEnrichedAct returns the act with every enrichment field empty.
func NewEnrichedAct(act Act) EnrichedAct {
	return EnrichedAct{
		Act:        act,
		ActiveDate: Empty,
		Genres:     []string{},
		Styles:     []string{},
		InfoLink:   Empty,
	}
}

// Merge copies the profile fields onto the act. The act name is kept.
func (e *EnrichedAct) Merge(p Profile) {
	e.ActiveDate = p.ActiveDate
	e.Genres = nonNil(p.Genres)
	e.Styles = nonNil(p.Styles)
	e.InfoLink = p.Link
}

// StylesEmpty reports whether no usable style was resolved. A lone separator
// counts as empty.
func (e EnrichedAct) StylesEmpty() bool {
	joined := strings.TrimSpace(strings.Join(e.Styles, ListSeparator))
	return joined == "" || joined == ListSeparator
}

// Field returns the value of a column, with lists joined by ListSeparator.
// Empty values are replaced with the empty marker. The bool is false for
// unknown columns.
func (e EnrichedAct) Field(col, empty string) (string, bool) {
	var v string
	switch CanonicalColumn(col) {
	case ColName:
		v = e.Name
	case ColLink:
		v = e.Link
	case ColDay:
		v = string(e.Day)
	case ColFallbackStyle:
		v = e.FallbackStyle
	case ColActiveDate:
		v = e.ActiveDate
	case ColGenres:
		v = strings.Join(e.Genres, ListSeparator)
	case ColStyles:
		v = strings.Join(e.Styles, ListSeparator)
	case ColInfoLink:
		v = e.InfoLink
	default:
		return empty, false
	}
	if v == "" {
		return empty, true
	}
	return v, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
