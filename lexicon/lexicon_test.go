package lexicon

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/reducer"
)

var _ reducer.SentenceMeaningProvider = (*Lexicon)(nil)

func newTestLexicon(t *testing.T, opts ...Option) *Lexicon {
	t.Helper()
	lx, err := New("testdata", opts...)
	require.NoError(t, err)
	return lx
}

func stems(ms []reducer.Meaning) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Stem + "/" + m.Category
	}
	return out
}

func TestLookupWord(t *testing.T) {
	lx := newTestLexicon(t)

	tests := []struct {
		name     string
		word     string
		atStart  bool
		wantWord string
		want     []string
	}{
		{"exact form", "hestur", false, "hestur", []string{"hestur/kk"}},
		{"supplementary meanings follow stored ones", "á", false, "á", []string{"á/fs", "á/so", "á/ao"}},
		{"lowercase retry", "Hestur", false, "Hestur", []string{"hestur/kk"}},
		{"capitalized form found", "Ás", false, "Ás", []string{"Ás/kk"}},
		{"sentence start adds lowercase", "Ás", true, "Ás", []string{"Ás/kk", "ás/kk"}},
		{"capitalized abbreviation", "Rvk.", false, "Rvk.", []string{"Reykjavík/kvk"}},
		{"bracketed abbreviation", "[t.d.]", false, "t.d.", []string{"til dæmis/ao"}},
		{"bracketed abbreviation at sentence start", "[T.d.]", true, "T.d.", []string{"til dæmis/ao"}},
		{"adjective template", "skemmtilegt", false, "skemmtilegt", []string{"skemmtilegur/lo"}},
		{"compound word", "bílhús", false, "bílhús", []string{"bíl-hús/hk"}},
		{"negated adjective", "óhefðbundinn", false, "óhefðbundinn", []string{"óhefðbundinn/lo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, m := lx.LookupWord(tt.word, tt.atStart)
			assert.Equal(t, tt.wantWord, w)
			assert.Equal(t, tt.want, stems(m))
		})
	}
}

func TestLookupWordUnknown(t *testing.T) {
	lx := newTestLexicon(t)

	for _, w := range []string{"xyzzy", "t.d.", "ó", ""} {
		_, m := lx.LookupWord(w, false)
		assert.Empty(t, m, w)
	}
}

func TestLookupWordSynthesizedForms(t *testing.T) {
	lx := newTestLexicon(t)

	_, m := lx.LookupWord("skemmtilegan", false)
	require.Len(t, m, 1)
	assert.Equal(t, reducer.Meaning{
		Stem:        "skemmtilegur",
		Category:    reducer.CatAdjective,
		Subcategory: "alm",
		Form:        "skemmtilegan",
		Inflection:  "FSB-KK-ÞFET",
	}, m[0])

	_, m = lx.LookupWord("bílhús", false)
	require.Len(t, m, 1)
	assert.Equal(t, "bíl-hús", m[0].Form)
	assert.Equal(t, 4001, m[0].ID)
}

func TestMeanings(t *testing.T) {
	lx := newTestLexicon(t)

	assert.Equal(t, []string{"hestur/kk"}, stems(lx.Meanings("Hestur")))
	assert.Equal(t, []string{"Ás/kk"}, stems(lx.Meanings("Ás")))
}

func TestNewMissingForms(t *testing.T) {
	_, err := New(t.TempDir())
	require.ErrorIs(t, err, ErrNoSource)
}

func TestNewOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	src := MemorySource{}
	src.Add(reducer.Meaning{Stem: "hús", Category: "hk", Form: "hús"})

	lx, err := New(dir, WithSource(src))
	require.NoError(t, err)

	_, m := lx.LookupWord("hús", false)
	assert.Len(t, m, 1)
	_, m = lx.LookupWord("bílhús", false)
	assert.Empty(t, m)
}

func TestNewBadRecord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FormsFile), "hestur;1001;kk;alm;hestur\n")

	_, err := New(dir)
	require.ErrorIs(t, err, ErrBadRecord)
	assert.Contains(t, err.Error(), "ord.csv:1")
}

func TestLookupWithCache(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)
	lx := newTestLexicon(t, WithCache(cache))

	lx.Meanings("hestur")
	lx.Meanings("hestur")

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, cache.Len())
}

func TestDecodeWithLexicon(t *testing.T) {
	lx := newTestLexicon(t)
	const doc = `{
	  "tokens": [{"text": "Ás"}, {"text": "Ás"}],
	  "nodes": [
	    {"kind": "token", "token": 0, "terminal": "no_kk"},
	    {"kind": "token", "token": 1, "terminal": "no_kk"},
	    {"kind": "nonterminal", "nonterminal": "S", "start": 0, "end": 2,
	     "families": [{"priority": 0, "children": [0, 1]}]}
	  ],
	  "root": 2
	}`
	f, err := reducer.Decode(strings.NewReader(doc), reducer.NewGrammar(), lx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ás/kk", "ás/kk"}, stems(f.Node(0).Token.Meanings))
	assert.Equal(t, []string{"Ás/kk"}, stems(f.Node(1).Token.Meanings))
}
