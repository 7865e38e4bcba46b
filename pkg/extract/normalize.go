package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// canonicalize composes combining sequences and drops invisible format
// characters (zero-width joiners, BOMs) that Word likes to leave behind.
var canonicalize = transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cf)))

// punctuation maps typographic punctuation onto the ASCII forms the label
// and date patterns expect.
var punctuation = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"“", `"`, // left smart quote
	"”", `"`, // right smart quote
)

// Clean canonicalizes one paragraph's text: Unicode normalization,
// punctuation translation, and trimming of surrounding whitespace and
// emphasis markup.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	normalized, _, err := transform.String(canonicalize, text)
	if err != nil {
		normalized = text
	}
	return TrimMarkup(punctuation.Replace(normalized))
}

// TrimMarkup trims surrounding whitespace and emphasis characters from a
// captured value span.
func TrimMarkup(text string) string {
	return strings.Trim(text, " \t\n\r*_")
}
