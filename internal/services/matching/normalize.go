package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decomposer splits accented characters into base + combining mark form and
// drops the combining marks, so "Café" becomes "Cafe" before filtering.
var decomposer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize produces the canonical comparison form of text: diacritics
// stripped, everything that is not an ASCII letter or digit dropped, and the
// remainder lowercased. It is deterministic and total; empty input yields
// empty output.
//
// Canonical answers and player input must both pass through Normalize before
// any comparison. Never compare normalized text to raw text.
func Normalize(text string) string {
	decomposed, _, err := transform.String(decomposer, text)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the raw
		// input and let the ASCII filter below discard the bad bytes.
		decomposed = text
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
