package reducer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTerminal(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		literal  bool
		variants []string
	}{
		{"ao", "ao", false, nil},
		{"no_et_nf_kk", "no", false, []string{"et", "nf", "kk"}},
		{"so_2_þgf_þf_gm_fh", "so", false, []string{"2", "þgf", "þf", "gm", "fh"}},
		{"'ekki'", "ekki", true, nil},
		{`"á:fs"_þgf`, "fs", true, []string{"þgf"}},
		{"'sem:st'", "st", true, nil},
		{"'ó", "ó", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := NewTerminal(tt.name)
			assert.Equal(t, tt.name, term.Name())
			assert.Equal(t, tt.first, term.First())
			assert.Equal(t, tt.literal, term.IsLiteral())
			assert.Equal(t, tt.variants, term.Variants())
			for _, v := range tt.variants {
				assert.True(t, term.HasVariant(v))
			}
		})
	}
}

func TestTerminalVerbSignature(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		ok    bool
		cases string
	}{
		{"so_2_þgf_þf_gm_fh", 2, true, "_þgf_þf"},
		{"so_1_ef_mm", 1, true, "_ef"},
		{"so_0_gm_fh", 0, true, ""},
		{"so_gm_nh", 0, false, ""},
		{"so_3_þf_þf_þf", 0, false, ""},
		{"so_2_þf", 2, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := NewTerminal(tt.name)
			n, ok := term.ArgCount()
			assert.Equal(t, tt.n, n)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.cases, term.VerbCases())
		})
	}
}

func TestTerminalPredicates(t *testing.T) {
	term := NewTerminal("so_lh_vb_subj_none_nh")
	assert.True(t, term.IsPastParticiple())
	assert.True(t, term.IsSubject())
	assert.True(t, term.IsInfinitive())
	assert.False(t, term.IsSupine())
	assert.Equal(t, "lh", term.Variant(0))
	assert.Equal(t, "", term.Variant(9))
	assert.Equal(t, "", term.Variant(-1))
}

func TestGrammarInterning(t *testing.T) {
	g := NewGrammar()
	assert.Same(t, g.Terminal("ao"), g.Terminal("ao"))
	assert.NotSame(t, g.Terminal("ao"), g.Terminal("eo"))

	s := g.Nonterminal("S")
	assert.Same(t, s, g.Nonterminal("S"))
	p := g.Production(s, 1, "Nl", "Sl")
	assert.Same(t, p, g.Production(s, 1, "Nl", "Sl"))
	assert.NotSame(t, p, g.Production(s, 0, "Nl", "Sl"))
	assert.NotSame(t, p, g.Production(s, 1, "NlSl"))
	assert.Equal(t, "S → Nl Sl /1", p.String())
	assert.Same(t, s, p.Nonterminal())

	assert.Zero(t, g.ScoreAdjustment("S"))
	g.SetScore("S", -4)
	assert.Equal(t, -4, g.ScoreAdjustment("S"))
}

func TestGrammarConcurrentInterning(t *testing.T) {
	g := NewGrammar()
	var wg sync.WaitGroup
	got := make([]*Terminal, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = g.Terminal("no_et_nf")
			g.Production(g.Nonterminal("S"), 0, "no_et_nf")
		}()
	}
	wg.Wait()
	for _, term := range got {
		assert.Same(t, got[0], term)
	}
}
