package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matches the ASCII punctuation set removed by the preprocessing step.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize lowercases the text, strips combining diacritical marks,
// removes ASCII punctuation and collapses runs of whitespace. It is
// deterministic, locale-independent and idempotent; the empty string maps
// to the empty string.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	deaccent := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(deaccent, lower)
	if err != nil {
		stripped = lower
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if r < 128 && strings.ContainsRune(asciiPunct, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
