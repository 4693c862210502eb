package reducer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPreferences(t *testing.T, table string) *PreferenceTable {
	t.Helper()
	pt, err := ReadPreferences(strings.NewReader(table))
	require.NoError(t, err)
	return pt
}

func mustVerbs(t *testing.T, table string) *VerbTable {
	t.Helper()
	vt, err := ReadVerbs(strings.NewReader(table))
	require.NoError(t, err)
	return vt
}

func TestScoreCategoryHeuristics(t *testing.T) {
	tests := []struct {
		name string
		word string
		alts []string
		want map[string]int
	}{
		{
			name: "adverb and singular noun",
			word: "ekki",
			alts: []string{"ao", "no_et_nf_hk"},
			want: map[string]int{"ao": -1, "no_et_nf_hk": 1},
		},
		{
			name: "exclamation",
			word: "já",
			alts: []string{"eo", "st"},
			want: map[string]int{"eo": -1, "st": 0},
		},
		{
			name: "abbreviated noun",
			word: "kr",
			alts: []string{"no_et_nf_kvk", "no_ft_nf_kvk_abbrev", "no_ft_nf_kvk"},
			want: map[string]int{"no_et_nf_kvk": 1, "no_ft_nf_kvk_abbrev": -1, "no_ft_nf_kvk": 0},
		},
		{
			name: "prepositions",
			word: "á",
			alts: []string{"fs_nf", "fs_þf", "fs_þgf"},
			want: map[string]int{"fs_nf": -5, "fs_þf": 2, "fs_þgf": 2},
		},
		{
			name: "við with dative",
			word: "Við",
			alts: []string{"fs_þgf", "fs_þf", "pfn_ft_nf"},
			want: map[string]int{"fs_þgf": 1, "fs_þf": 2, "pfn_ft_nf": 0},
		},
		{
			name: "sem with accusative",
			word: "sem",
			alts: []string{"fs_þf", "st"},
			want: map[string]int{"fs_þf": -6, "st": 0},
		},
		{
			name: "literal terminal",
			word: "ekki",
			alts: []string{"'ekki'", "ao"},
			want: map[string]int{"'ekki'": 1, "ao": -1},
		},
		{
			name: "numbers penalize genitives once",
			word: "tveggja",
			alts: []string{"tala", "töl_ef", "no_ft_ef_kk", "no_et_nf_kk", "töl_nf"},
			want: map[string]int{"tala": -1, "töl_ef": -1, "no_ft_ef_kk": -1, "no_et_nf_kk": 1, "töl_nf": 0},
		},
		{
			name: "verb forms",
			word: "farið",
			alts: []string{"so_sagnb", "so_lh_vb", "so_lh_sb", "so_mm_fh", "so_vh", "so_sagnb_mm"},
			want: map[string]int{"so_sagnb": 6, "so_lh_vb": -2, "so_lh_sb": 3, "so_mm_fh": 3, "so_vh": 2, "so_sagnb_mm": 6},
		},
		{
			name: "verb subjects",
			word: "langar",
			alts: []string{"so_subj_þf", "so_subj_none", "so_vh_subj_þgf"},
			want: map[string]int{"so_subj_þf": 1, "so_subj_none": -3, "so_vh_subj_þgf": 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, tt.word)
			f := fx.positions(tt.alts)

			scores, err := New(nil).TerminalScores(f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, scoresByName(scores, 0))
		})
	}
}

func TestScoreSingleTerminalIsZero(t *testing.T) {
	fx := newFixture(t, "Hún", "sefur")
	f := fx.positions([]string{"pfn_et_nf"}, []string{"so_0_et_p3"})

	scores, err := New(nil).TerminalScores(f)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"pfn_et_nf": 0}, scoresByName(scores, 0))
	assert.Equal(t, map[string]int{"so_0_et_p3": 0}, scoresByName(scores, 1), "no zero-argument penalty without competition")
}

func TestScoreProperNames(t *testing.T) {
	known := Meaning{Stem: "björn", Category: "kk", Form: "björn"}
	alts := []string{"sérnafn", "no_et_nf_kk"}

	fx := newFixture(t, "Björn", "Björn")
	fx.meanings(0, known).meanings(1, known)
	scores, err := New(nil).TerminalScores(fx.positions(alts, alts))
	require.NoError(t, err)
	assert.Equal(t, -10, scoresByName(scores, 0)["sérnafn"], "known word at the start of the span")
	assert.Equal(t, -6, scoresByName(scores, 1)["sérnafn"])

	fx = newFixture(t, "Zóphónías")
	scores, err = New(nil).TerminalScores(fx.positions(alts))
	require.NoError(t, err)
	assert.Equal(t, 2, scoresByName(scores, 0)["sérnafn"], "unknown word")
}

func TestScoreVerbArguments(t *testing.T) {
	verbs := mustVerbs(t, `
rigna
gefa þgf þf $score(2)
gefa þf $score(1)
gefa þf $score(-1)   # the later declaration wins
`)
	r := New(nil, WithValency(verbs))
	alts := []string{"so_2_þgf_þf_fh", "so_1_þf_fh", "so_0_fh"}

	t.Run("case scores", func(t *testing.T) {
		fx := newFixture(t, "gaf").meanings(0, verb("gefa"))
		scores, err := r.TerminalScores(fx.positions(alts))
		require.NoError(t, err)
		assert.Equal(t, map[string]int{
			"so_2_þgf_þf_fh": 4 + 2,
			"so_1_þf_fh":     2 - 1,
			"so_0_fh":        -5,
		}, scoresByName(scores, 0))
	})

	t.Run("zero argument verb", func(t *testing.T) {
		fx := newFixture(t, "rignir").meanings(0, verb("rigna"))
		scores, err := r.TerminalScores(fx.positions(alts))
		require.NoError(t, err)
		assert.Equal(t, 0, scoresByName(scores, 0)["so_0_fh"])
		assert.Equal(t, 2, scoresByName(scores, 0)["so_1_þf_fh"])
	})

	t.Run("middle voice meaning", func(t *testing.T) {
		m := verb("gefast")
		m.Inflection = "MM-FH-ÞT-3P-ET"
		fx := newFixture(t, "gafst").meanings(0, m)
		scores, err := r.TerminalScores(fx.positions(alts))
		require.NoError(t, err)
		assert.Equal(t, 0, scoresByName(scores, 0)["so_0_fh"])
	})

	t.Run("best of several meanings", func(t *testing.T) {
		other := verb("gifta")
		fx := newFixture(t, "gaf").meanings(0, other, verb("gefa"))
		scores, err := New(nil, WithValency(mustVerbs(t, "gifta þgf þf $score(-3)\ngefa þgf þf $score(2)"))).
			TerminalScores(fx.positions(alts))
		require.NoError(t, err)
		assert.Equal(t, 6, scoresByName(scores, 0)["so_2_þgf_þf_fh"])
	})

	t.Run("non-verb meanings are ignored", func(t *testing.T) {
		fx := newFixture(t, "gefa").meanings(0, Meaning{Stem: "gefa", Category: "kvk", Form: "gefa"})
		scores, err := r.TerminalScores(fx.positions(alts))
		require.NoError(t, err)
		assert.Equal(t, 4, scoresByName(scores, 0)["so_2_þgf_þf_fh"])
	})
}

func TestScoreInfinitive(t *testing.T) {
	t.Run("preceded by infinitive marker", func(t *testing.T) {
		fx := newFixture(t, "að", "fara")
		f := fx.positions([]string{"nhm", "st", "fs_þgf"}, []string{"so_1_þf_nh", "no_et_nf_kvk"})

		scores, err := New(nil).TerminalScores(f)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"nhm": 2, "st": 0, "fs_þgf": 2}, scoresByName(scores, 0))
		assert.Equal(t, map[string]int{"so_1_þf_nh": 2 + 4, "no_et_nf_kvk": 1}, scoresByName(scores, 1))
	})

	t.Run("without marker", func(t *testing.T) {
		fx := newFixture(t, "vil", "fara")
		f := fx.positions([]string{"so_1_nh_et", "so_1_þf_fh"}, []string{"so_1_þf_nh", "no_et_nf_kvk"})

		scores, err := New(nil).TerminalScores(f)
		require.NoError(t, err)
		assert.Equal(t, 2, scoresByName(scores, 1)["so_1_þf_nh"])
	})

	t.Run("competing plural genitive noun", func(t *testing.T) {
		fx := newFixture(t, "að", "hlaupa")
		f := fx.positions([]string{"nhm", "st"}, []string{"so_1_þf_nh", "no_ft_ef_hk"})

		scores, err := New(nil).TerminalScores(f)
		require.NoError(t, err)
		assert.Equal(t, 2+4+4, scoresByName(scores, 1)["so_1_þf_nh"])
		assert.Equal(t, 0, scoresByName(scores, 1)["no_ft_ef_hk"])
	})

	t.Run("at span start", func(t *testing.T) {
		fx := newFixture(t, "fara")
		f := fx.positions([]string{"so_0_nh", "no_et_nf_kvk"})

		scores, err := New(nil).TerminalScores(f)
		require.NoError(t, err)
		assert.Equal(t, -5, scoresByName(scores, 0)["so_0_nh"])
	})
}

func TestScorePreferences(t *testing.T) {
	prefs := mustPreferences(t, `
ekki  no < ao
á     so < fs 2
of    ao < fs
of    ao < fs 3
`)
	r := New(nil, WithPreferences(prefs))

	tests := []struct {
		name string
		word string
		alts []string
		want map[string]int
	}{
		{
			name: "worse loses, better gains",
			word: "Ekki",
			alts: []string{"ao", "no_et_nf_hk"},
			want: map[string]int{"ao": 4 - 1, "no_et_nf_hk": -2 + 1},
		},
		{
			name: "literal better terminal gains more",
			word: "á",
			alts: []string{"so_0_fh", `"á:fs"_þgf`},
			want: map[string]int{"so_0_fh": -4 - 5, `"á:fs"_þgf`: 12 + 2},
		},
		{
			name: "strongest matching rule applies once",
			word: "of",
			alts: []string{"ao", "fs_þf"},
			want: map[string]int{"ao": -6 - 1, "fs_þf": 12 + 2},
		},
		{
			name: "same category has nothing to prefer",
			word: "ekki",
			alts: []string{"no_et_nf_hk", "no_ft_nf_hk"},
			want: map[string]int{"no_et_nf_hk": 1, "no_ft_nf_hk": 0},
		},
		{
			name: "word without preferences",
			word: "alls",
			alts: []string{"ao", "no_et_nf_hk"},
			want: map[string]int{"ao": -1, "no_et_nf_hk": 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, tt.word)
			scores, err := r.TerminalScores(fx.positions(tt.alts))
			require.NoError(t, err)
			assert.Equal(t, tt.want, scoresByName(scores, 0))
		})
	}
}

func TestScoreUnmatchedPosition(t *testing.T) {
	fx := newFixture(t, "a", "b")
	f := fx.root(fx.nt("S", 0, 2, family(0, fx.tok(0, "ao"))))

	_, err := New(nil).TerminalScores(f)
	require.ErrorIs(t, err, ErrUnmatchedPosition)
}
