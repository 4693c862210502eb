package lexicon

import "github.com/cours-de-latin/reducer"

// Source returns the meanings stored for an exact word form. An unknown
// form yields no meanings and no error.
type Source interface {
	Meanings(form string) ([]reducer.Meaning, error)
}

// MemorySource is a Source held in a map.
type MemorySource map[string][]reducer.Meaning

// Meanings implements Source.
func (ms MemorySource) Meanings(form string) ([]reducer.Meaning, error) {
	return ms[form], nil
}

// Add appends meanings under their forms.
func (ms MemorySource) Add(meanings ...reducer.Meaning) {
	for _, m := range meanings {
		ms[m.Form] = append(ms[m.Form], m)
	}
}
