package reducer

import (
	"strconv"
	"strings"
	"sync"
)

// Terminal is a grammar symbol matched by a single token.
//
// Terminal names are "_"-separated: the first part is the word category
// and the rest are variants, e.g. "so_1_þgf_gm_fh" or "no_et_nf".
// Literal terminals start with a quote and name a word, optionally with
// a category after a colon: 'ekki', "á:fs"_þgf.
type Terminal struct {
	name     string
	first    string
	literal  bool
	variants []string
	vset     map[string]struct{}
}

// NewTerminal parses a terminal name. Terminals are normally obtained
// through Grammar.Terminal so that each name maps to a single instance.
func NewTerminal(name string) *Terminal {
	t := &Terminal{name: name, vset: make(map[string]struct{})}
	rest := name
	if name != "" && (name[0] == '"' || name[0] == '\'') {
		t.literal = true
		q := name[0]
		end := strings.IndexByte(name[1:], q)
		var lit string
		if end < 0 {
			lit, rest = name[1:], ""
		} else {
			lit, rest = name[1:end+1], name[end+2:]
		}
		if _, cat, ok := strings.Cut(lit, ":"); ok {
			t.first = cat
		} else {
			t.first = lit
		}
		rest = strings.TrimPrefix(rest, "_")
	} else {
		first, tail, _ := strings.Cut(name, "_")
		t.first, rest = first, tail
	}
	if rest != "" {
		t.variants = strings.Split(rest, "_")
	}
	for _, v := range t.variants {
		t.vset[v] = struct{}{}
	}
	return t
}

// Name returns the full terminal name.
func (t *Terminal) Name() string { return t.name }

// First returns the word category of the terminal.
func (t *Terminal) First() string { return t.first }

// IsLiteral reports whether the terminal matches a quoted literal word.
func (t *Terminal) IsLiteral() bool { return t.literal }

// Variants returns the variant flags in name order.
func (t *Terminal) Variants() []string { return t.variants }

// Variant returns the variant at ordinal position i, or "" if there is none.
func (t *Terminal) Variant(i int) string {
	if i < 0 || i >= len(t.variants) {
		return ""
	}
	return t.variants[i]
}

// HasVariant reports whether v is one of the terminal's variants.
func (t *Terminal) HasVariant(v string) bool {
	_, ok := t.vset[v]
	return ok
}

func (t *Terminal) IsSingular() bool       { return t.HasVariant(VarSingular) }
func (t *Terminal) IsPlural() bool         { return t.HasVariant(VarPlural) }
func (t *Terminal) IsAbbrev() bool         { return t.HasVariant(VarAbbrev) }
func (t *Terminal) IsSupine() bool         { return t.HasVariant(VarSupine) }
func (t *Terminal) IsPastParticiple() bool { return t.HasVariant(VarPastParticiple) }
func (t *Terminal) IsMiddleVoice() bool    { return t.HasVariant(VarMiddle) }
func (t *Terminal) IsSubjunctive() bool    { return t.HasVariant(VarSubjunctive) }
func (t *Terminal) IsSubject() bool        { return t.HasVariant(VarSubject) }
func (t *Terminal) IsInfinitive() bool     { return t.HasVariant(VarInfinitive) }

// ArgCount returns the number of verb arguments encoded in the first
// variant (0, 1 or 2), and false if the terminal does not encode one.
func (t *Terminal) ArgCount() (int, bool) {
	v := t.Variant(0)
	if len(v) != 1 || v[0] < '0' || v[0] > '2' {
		return 0, false
	}
	return int(v[0] - '0'), true
}

// VerbCases returns the case signature of a verb terminal: the case
// variants of its arguments, each prefixed with "_". It is "" for
// terminals without arguments. "so_2_þgf_þf_gm" yields "_þgf_þf".
func (t *Terminal) VerbCases() string {
	n, ok := t.ArgCount()
	if !ok || n == 0 || len(t.variants) < n+1 {
		return ""
	}
	return "_" + strings.Join(t.variants[1:n+1], "_")
}

func (t *Terminal) String() string { return t.name }

// Nonterminal is a grammar category derived through productions.
type Nonterminal struct {
	name string
}

// Name returns the nonterminal name.
func (nt *Nonterminal) Name() string { return nt.name }

func (nt *Nonterminal) String() string { return nt.name }

// Production is one right-hand side of a nonterminal. Priority orders
// sibling productions; a lower number is preferred.
type Production struct {
	nt       *Nonterminal
	priority int
	symbols  []string
}

// Nonterminal returns the nonterminal owning the production.
func (p *Production) Nonterminal() *Nonterminal { return p.nt }

// Priority returns the production priority. Lower is preferred.
func (p *Production) Priority() int { return p.priority }

// Symbols returns the right-hand side symbol names.
func (p *Production) Symbols() []string { return p.symbols }

func (p *Production) String() string {
	return p.nt.name + " → " + strings.Join(p.symbols, " ") + " /" + strconv.Itoa(p.priority)
}

// ScoreAdjuster supplies the grammar-declared score adjustment of a
// nonterminal ($score pragma), 0 when none is declared.
type ScoreAdjuster interface {
	ScoreAdjustment(nonterminal string) int
}

// Grammar interns terminals, nonterminals and productions and holds
// the per-nonterminal score adjustments.
//
// Grammar is safe for concurrent use; forest documents decoded in
// parallel intern their symbols into the same grammar.
type Grammar struct {
	mu           sync.RWMutex
	terminals    map[string]*Terminal
	nonterminals map[string]*Nonterminal
	productions  map[string]*Production
	scores       map[string]int
}

// NewGrammar returns an empty grammar.
func NewGrammar() *Grammar {
	return &Grammar{
		terminals:    make(map[string]*Terminal),
		nonterminals: make(map[string]*Nonterminal),
		productions:  make(map[string]*Production),
		scores:       make(map[string]int),
	}
}

// Terminal returns the terminal with the given name, creating it on
// first use.
func (g *Grammar) Terminal(name string) *Terminal {
	g.mu.RLock()
	t, ok := g.terminals[name]
	g.mu.RUnlock()
	if ok {
		return t
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if t, ok = g.terminals[name]; !ok {
		t = NewTerminal(name)
		g.terminals[name] = t
	}
	return t
}

// Nonterminal returns the nonterminal with the given name, creating it
// on first use.
func (g *Grammar) Nonterminal(name string) *Nonterminal {
	g.mu.RLock()
	nt, ok := g.nonterminals[name]
	g.mu.RUnlock()
	if ok {
		return nt
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if nt, ok = g.nonterminals[name]; !ok {
		nt = &Nonterminal{name: name}
		g.nonterminals[name] = nt
	}
	return nt
}

// Production returns the production of nt with the given right-hand side
// and priority, creating it on first use.
func (g *Grammar) Production(nt *Nonterminal, priority int, symbols ...string) *Production {
	key := nt.name + "\x00" + strconv.Itoa(priority) + "\x00" + strings.Join(symbols, "\x00")
	g.mu.RLock()
	p, ok := g.productions[key]
	g.mu.RUnlock()
	if ok {
		return p
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok = g.productions[key]; !ok {
		p = &Production{nt: nt, priority: priority, symbols: append([]string(nil), symbols...)}
		g.productions[key] = p
	}
	return p
}

// SetScore declares the score adjustment of a nonterminal.
func (g *Grammar) SetScore(nonterminal string, score int) {
	g.mu.Lock()
	g.scores[nonterminal] = score
	g.mu.Unlock()
}

// ScoreAdjustment implements ScoreAdjuster.
func (g *Grammar) ScoreAdjustment(nonterminal string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scores[nonterminal]
}
