package reducer

import "strings"

// Word categories (BÍN "ordfl" values and grammar terminal prefixes)
// that the scoring heuristics know about.
const (
	CatAdverb           = "ao"
	CatExclamation      = "eo"
	CatNoun             = "no"
	CatPreposition      = "fs"
	CatVerb             = "so"
	CatNumber           = "tala"
	CatNumeral          = "töl"
	CatProperName       = "sérnafn"
	CatInfinitiveMarker = "nhm"
	CatAdjective        = "lo"
)

// Terminal variants the scoring heuristics test for.
const (
	VarNominative     = "nf"
	VarAccusative     = "þf"
	VarDative         = "þgf"
	VarGenitive       = "ef"
	VarSingular       = "et"
	VarPlural         = "ft"
	VarAbbrev         = "abbrev"
	VarSupine         = "sagnb"
	VarPastParticiple = "lh"
	VarWeak           = "vb"
	VarMiddle         = "mm"
	VarSubjunctive    = "vh"
	VarSubject        = "subj"
	VarNone           = "none"
	VarInfinitive     = "nh"
)

// middleVoiceMarker flags a middle voice verb form in a BÍN inflection tag.
const middleVoiceMarker = "MM"

// Meaning is one candidate lexical meaning of a word form,
// as stored in the BÍN database.
type Meaning struct {
	// Stem is the lemma ("stofn").
	Stem string `json:"stem"`
	// ID is the BÍN entry id ("utg"); 0 for synthesized meanings.
	ID int `json:"id,omitempty"`
	// Category is the primary word category ("ordfl"), e.g. "so", "no".
	Category string `json:"category"`
	// Subcategory is the BÍN domain ("fl"), e.g. "alm", "ism".
	Subcategory string `json:"subcategory"`
	// Form is the matched word form ("ordmynd").
	Form string `json:"form"`
	// Inflection is the inflection tag ("beyging"), e.g. "GM-FH-NT-3P-ET".
	Inflection string `json:"inflection"`
}

// IsMiddleVoice reports whether the meaning is a middle voice verb form.
func (m Meaning) IsMiddleVoice() bool {
	return strings.Contains(m.Inflection, middleVoiceMarker)
}

// Token is one input token of a sentence. Tokens are produced outside the
// reducer and are never modified by it.
type Token struct {
	// Start and End delimit the token positions covered, [Start, End).
	Start, End int
	// Text is the original token text.
	Text string
	// Lower is Text lowercased with Lower.
	Lower string
	// Meanings lists the candidate lexical meanings, possibly none.
	Meanings []Meaning
}

// NewToken creates a token covering the single position pos.
func NewToken(pos int, text string, meanings []Meaning) *Token {
	return &Token{
		Start:    pos,
		End:      pos + 1,
		Text:     text,
		Lower:    Lower(text),
		Meanings: meanings,
	}
}

// HasMeanings reports whether the lexicon knew the token at all.
func (t *Token) HasMeanings() bool {
	return len(t.Meanings) > 0
}
