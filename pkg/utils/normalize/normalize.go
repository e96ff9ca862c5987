// Package normalize provides text canonicalization for keyword matching.
// Menu routing, label matching and required-field matching all compare
// normalized text so that "Cotización", "COTIZACION" and "cotizacion"
// are the same word.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns a lowercase, diacritic-stripped, trimmed copy of s.
// It never fails: if the transform chain errors on malformed input, the
// input is kept as-is and only lowercased and trimmed.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// The transformers are stateful, so build the chain per call.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, s)
	if err != nil {
		out = s
	}

	return strings.ToLower(strings.TrimSpace(out))
}

// Contains reports whether the normalized haystack contains the normalized
// needle.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}
