package reducer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Lower returns the NFC normalized, lowercased form of s using Icelandic
// case mapping. This is the key used for preference table and lexicon
// lookups. A cases.Caser is stateful, so one is made per call.
func Lower(s string) string {
	return cases.Lower(language.Icelandic).String(norm.NFC.String(s))
}

// Compose returns s in Unicode normalization form C, so that precomposed
// and decomposed accented letters compare equal.
func Compose(s string) string {
	return norm.NFC.String(s)
}
