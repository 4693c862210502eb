package reducer

import "slices"

// Preference biases the choice between word categories for one word:
// terminals whose category is in Worse lose to terminals whose category
// is in Better, scaled by Factor.
type Preference struct {
	Worse  []string
	Better []string
	Factor int
}

// PreferenceLookup returns the preferences declared for a lowercased
// word, or nil.
type PreferenceLookup interface {
	Lookup(word string) []Preference
}

// PreferenceTable is an in-memory PreferenceLookup.
type PreferenceTable struct {
	entries map[string][]Preference
}

// NewPreferenceTable returns an empty table.
func NewPreferenceTable() *PreferenceTable {
	return &PreferenceTable{entries: make(map[string][]Preference)}
}

// Add appends a preference for word. The word is lowercased.
func (pt *PreferenceTable) Add(word string, p Preference) {
	w := Lower(word)
	pt.entries[w] = append(pt.entries[w], p)
}

// Lookup implements PreferenceLookup.
func (pt *PreferenceTable) Lookup(word string) []Preference {
	if pt == nil {
		return nil
	}
	return pt.entries[word]
}

// Len returns the number of words with preferences.
func (pt *PreferenceTable) Len() int { return len(pt.entries) }

// ValencyLookup answers questions about verb arguments.
type ValencyLookup interface {
	// IsZeroArgument reports whether the verb stem may take no arguments.
	IsZeroArgument(stem string) bool
	// CaseScore returns the bonus declared for the stem with the given
	// case signature (see Terminal.VerbCases), and whether one exists.
	CaseScore(stem, cases string) (int, bool)
}

// VerbTable is an in-memory ValencyLookup.
type VerbTable struct {
	zero   map[string]struct{}
	scores map[string]int
}

// NewVerbTable returns an empty table.
func NewVerbTable() *VerbTable {
	return &VerbTable{
		zero:   make(map[string]struct{}),
		scores: make(map[string]int),
	}
}

// AddZeroArgument marks stem as admitting no arguments.
func (vt *VerbTable) AddZeroArgument(stem string) {
	vt.zero[stem] = struct{}{}
}

// SetScore declares the bonus for stem with the given case signature.
func (vt *VerbTable) SetScore(stem, cases string, score int) {
	vt.scores[stem+cases] = score
}

// IsZeroArgument implements ValencyLookup.
func (vt *VerbTable) IsZeroArgument(stem string) bool {
	if vt == nil {
		return false
	}
	_, ok := vt.zero[stem]
	return ok
}

// CaseScore implements ValencyLookup.
func (vt *VerbTable) CaseScore(stem, cases string) (int, bool) {
	if vt == nil {
		return 0, false
	}
	s, ok := vt.scores[stem+cases]
	return s, ok
}

func (p Preference) worse(cat string) bool  { return slices.Contains(p.Worse, cat) }
func (p Preference) better(cat string) bool { return slices.Contains(p.Better, cat) }
