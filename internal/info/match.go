package info

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldLetters covers letters that have no canonical decomposition.
var foldLetters = strings.NewReplacer(
	"ø", "o",
	"æ", "ae",
	"œ", "oe",
	"ß", "ss",
	"đ", "d",
	"ł", "l",
	"þ", "th",
	"ı", "i",
)

// NormalizeName lowercases a name and strips diacritics, so "Motörhead"
// and "MOTORHEAD" compare equal.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(name))
	if err != nil {
		out = strings.ToLower(name)
	}
	return foldLetters.Replace(out)
}

// Match reports whether the name displayed on a metadata page refers to the
// scraped act. After normalization the names must be equal, or the act name
// must open the displayed name: the displayed name is right-trimmed, padded
// with one leading space, and the act name has to be found at offset 1.
// "Muse" matches "Muse & Friends"; "Friends" does not.
func Match(actName, infoName string) bool {
	act := NormalizeName(actName)
	shown := strings.ReplaceAll(NormalizeName(infoName), "&amp;", "&")
	if act == "" {
		return false
	}
	if act == shown {
		return true
	}
	return strings.Index(" "+strings.TrimRightFunc(shown, unicode.IsSpace), act) == 1
}
