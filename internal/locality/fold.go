package locality

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics (Palhoça -> palhoca).
// A transform.Chain keeps internal buffers, so each call builds its own.
func Fold(s string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// collapseSpaces trims s and reduces internal whitespace runs to a single space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsWord reports whether word occurs in text bounded by spaces or the string edges.
func containsWord(text, word string) bool {
	return strings.Contains(" "+text+" ", " "+word+" ")
}
