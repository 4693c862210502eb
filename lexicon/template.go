package lexicon

import (
	"strings"

	"github.com/cours-de-latin/reducer"
)

// adjectiveMarker must occur in a word for the adjective template to be
// tried.
const adjectiveMarker = "leg"

// adjectiveStem is the lemma ending given to synthesized adjectives.
const adjectiveStem = "legur"

// adjectiveEnding pairs an inflected "-leg-" ending with its inflection tag.
type adjectiveEnding struct {
	ending     string
	inflection string
}

// adjectiveMeanings guesses adjective meanings for an unknown lowercase
// word ending in one of the template endings, such as "-legur" or
// "-legt".
func adjectiveMeanings(lower string, endings []adjectiveEnding) []reducer.Meaning {
	if !strings.Contains(lower, adjectiveMarker) {
		return nil
	}
	var out []reducer.Meaning
	for _, e := range endings {
		if len(lower) <= len(e.ending) || !strings.HasSuffix(lower, e.ending) {
			continue
		}
		prefix := lower[:len(lower)-len(e.ending)]
		out = append(out, reducer.Meaning{
			Stem:        prefix + adjectiveStem,
			Category:    reducer.CatAdjective,
			Subcategory: "alm",
			Form:        lower,
			Inflection:  e.inflection,
		})
	}
	return out
}
