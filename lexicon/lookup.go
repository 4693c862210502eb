package lexicon

import (
	"slices"
	"strings"

	"github.com/cours-de-latin/reducer"
)

// negationPrefix turns an adjective into its negation, as in
// "hefðbundinn" and "óhefðbundinn".
const negationPrefix = "ó"

// LookupWord returns the meanings of a simple or compound word. The
// returned word equals the input except that the brackets of a known
// bracketed abbreviation ("[t.d.]") are removed.
//
// The lookup tries, in order, until something is found:
//  1. the exact form;
//  2. the lowercase form (also tried, and appended, at the start of a
//     sentence);
//  3. the abbreviation table, for capitalized or bracketed words;
//  4. the adjective template, for words containing "leg";
//  5. a compound split, using the meanings of the last part;
//  6. adjectives without a leading "ó".
func (lx *Lexicon) LookupWord(word string, atSentenceStart bool) (string, []reducer.Meaning) {
	if word == "" {
		return word, nil
	}
	word = reducer.Compose(word)
	m := lx.formMeanings(word)
	if !atSentenceStart && len(m) > 0 {
		return word, m
	}

	lower := reducer.Lower(word)
	if lower != word {
		if lm := lx.formMeanings(lower); len(m) == 0 {
			m = lm
		} else {
			m = append(slices.Clip(m), lm...)
		}
	}
	if len(m) > 0 {
		return word, m
	}

	bracketed := isBracketed(word)
	if lower != word || bracketed {
		m = lx.abbreviation(word)
		if len(m) == 0 && bracketed {
			m = lx.abbreviation(lower)
		}
		if len(m) > 0 {
			if bracketed {
				word = unbracket(word)
			}
			return word, m
		}
	}

	if m = adjectiveMeanings(lower, lx.adjective); len(m) > 0 {
		return word, m
	}

	if parts := lx.wordbase.split(lower); parts != nil {
		prefix := strings.Join(parts[:len(parts)-1], "-") + "-"
		last := lx.formMeanings(parts[len(parts)-1])
		m = make([]reducer.Meaning, len(last))
		for i, r := range last {
			m[i] = prefixed(r, prefix)
		}
		if len(m) > 0 {
			return word, m
		}
	}

	if suffix, ok := strings.CutPrefix(lower, negationPrefix); ok && suffix != "" {
		for _, r := range lx.formMeanings(suffix) {
			if r.Category == reducer.CatAdjective {
				m = append(m, prefixed(r, negationPrefix))
			}
		}
	}
	return word, m
}

func isBracketed(w string) bool {
	return len(w) >= 2 && w[0] == '[' && w[len(w)-1] == ']'
}

func unbracket(w string) string {
	if isBracketed(w) {
		return w[1 : len(w)-1]
	}
	return w
}

// abbreviation returns the single meaning of a known abbreviation, with
// brackets removed before lookup.
func (lx *Lexicon) abbreviation(w string) []reducer.Meaning {
	m, ok := lx.abbrevs[unbracket(w)]
	if !ok {
		return nil
	}
	return []reducer.Meaning{m}
}
