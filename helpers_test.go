package reducer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixture builds small forests over a sentence of words.
type fixture struct {
	t    *testing.T
	g    *Grammar
	f    *Forest
	toks []*Token
}

func newFixture(t *testing.T, words ...string) *fixture {
	t.Helper()
	fx := &fixture{t: t, g: NewGrammar(), f: NewForest()}
	for i, w := range words {
		fx.toks = append(fx.toks, NewToken(i, w, nil))
	}
	return fx
}

// meanings sets the meanings of token i.
func (fx *fixture) meanings(i int, ms ...Meaning) *fixture {
	fx.toks[i].Meanings = ms
	return fx
}

// tok adds a token node matching token i with the named terminal.
func (fx *fixture) tok(i int, terminal string) NodeID {
	return fx.f.AddToken(fx.g.Terminal(terminal), fx.toks[i])
}

type fam struct {
	prio     int
	children []NodeID
}

func family(prio int, children ...NodeID) fam {
	return fam{prio: prio, children: children}
}

// nt adds a completed nonterminal node with the given families.
func (fx *fixture) nt(name string, start, end int, fams ...fam) NodeID {
	return fx.addNT(name, start, end, true, fams)
}

// interior adds a nonterminal node standing for a partial production.
func (fx *fixture) interior(name string, start, end int, fams ...fam) NodeID {
	return fx.addNT(name, start, end, false, fams)
}

func (fx *fixture) addNT(name string, start, end int, completed bool, fams []fam) NodeID {
	fx.t.Helper()
	nt := fx.g.Nonterminal(name)
	id := fx.f.AddNonterminal(nt, start, end, completed)
	for _, fm := range fams {
		var symbols []string
		for _, c := range fm.children {
			n := fx.f.Node(c)
			require.NotNil(fx.t, n)
			switch n.Kind {
			case KindToken:
				symbols = append(symbols, n.Terminal.Name())
			case KindNonterminal:
				symbols = append(symbols, n.Nonterminal.Name())
			}
		}
		require.NoError(fx.t, fx.f.AddFamily(id, fx.g.Production(nt, fm.prio, symbols...), fm.children...))
	}
	return id
}

// root sets the root and returns the forest.
func (fx *fixture) root(id NodeID) *Forest {
	fx.t.Helper()
	require.NoError(fx.t, fx.f.SetRoot(id))
	return fx.f
}

// positions builds a forest in which token i may match any of alts[i]:
// a root S with one family of per-position nonterminals P, each with one
// family per alternative terminal.
func (fx *fixture) positions(alts ...[]string) *Forest {
	fx.t.Helper()
	children := make([]NodeID, len(alts))
	for i, ts := range alts {
		fams := make([]fam, len(ts))
		for j, term := range ts {
			fams[j] = family(0, fx.tok(i, term))
		}
		children[i] = fx.nt("P", i, i+1, fams...)
	}
	return fx.root(fx.nt("S", 0, len(alts), family(0, children...)))
}

// term returns the interned terminal with the given name.
func (fx *fixture) term(name string) *Terminal {
	return fx.g.Terminal(name)
}

// scoresByName converts the scores at position pos to a name keyed map.
func scoresByName(s Scores, pos int) map[string]int {
	out := make(map[string]int, len(s[pos]))
	for t, sc := range s[pos] {
		out[t.Name()] = sc
	}
	return out
}

func verb(stem string) Meaning {
	return Meaning{Stem: stem, Category: CatVerb, Subcategory: "alm", Form: stem}
}
