// Package reconcile matches club names across sources and merges scraped
// wage bills into the prepared dataset.
package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var dropTokens = map[string]bool{
	"fc":  true,
	"afc": true,
}

// ClubKey folds a club name into a comparison key: accents stripped, lower
// case, "&" spelled out, punctuation and FC/AFC dropped, then aliased to the
// full club name.
func ClubKey(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	folded = strings.ReplaceAll(folded, "&", " and ")

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r == '\'' || r == '’' || r == '.':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, f := range fields {
		if !dropTokens[f] {
			kept = append(kept, f)
		}
	}
	key := strings.Join(kept, " ")
	if full, ok := aliases[key]; ok {
		return full
	}
	return key
}
