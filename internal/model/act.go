// Package model defines lineup acts and the enriched records written to sinks.
package model

import "strings"

// Day is the festival day an act performs on. The zero value means unset.
type Day string

const (
	DayUnset    Day = ""
	DayFriday   Day = "friday"
	DaySaturday Day = "saturday"
	DaySunday   Day = "sunday"
)

// NoLink is the source link of an act whose lineup page has no detail page.
const NoLink = "none"

// dayTokens maps lowercased weekday tokens seen on lineup pages to days.
// Listings are a mix of English and Dutch.
var dayTokens = map[string]Day{
	"friday":   DayFriday,
	"fri":      DayFriday,
	"vrijdag":  DayFriday,
	"vr":       DayFriday,
	"saturday": DaySaturday,
	"sat":      DaySaturday,
	"zaterdag": DaySaturday,
	"za":       DaySaturday,
	"sunday":   DaySunday,
	"sun":      DaySunday,
	"zondag":   DaySunday,
	"zo":       DaySunday,
}

// ParseDay maps a weekday token to a Day. Unknown tokens return DayUnset and false.
func ParseDay(token string) (Day, bool) {
	d, ok := dayTokens[strings.ToLower(strings.TrimSpace(token))]
	return d, ok
}

// DayPrefixes returns the full weekday names recognised by ParseDay, longest first,
// for stripping a day that was concatenated into visible text.
func DayPrefixes() []string {
	return []string{"saturday", "zaterdag", "vrijdag", "friday", "sunday", "zondag"}
}

// Act is one performer scraped from a lineup page.
type Act struct {
	Name          string `json:"name"`
	Link          string `json:"link"`
	Day           Day    `json:"day,omitempty"`
	FallbackStyle string `json:"fallback_style,omitempty"`
}

// Profile is an artist page on the metadata source.
type Profile struct {
	Name       string   `json:"name"`
	Link       string   `json:"link"`
	ActiveDate string   `json:"active_date"`
	Genres     []string `json:"genres"`
	Styles     []string `json:"styles"`
}
