package reducer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Scores holds the score of each candidate terminal at each token position.
type Scores map[int]map[*Terminal]int

// Get returns the score of terminal t at position pos.
func (s Scores) Get(pos int, t *Terminal) (int, bool) {
	sc, ok := s[pos][t]
	return sc, ok
}

// scorer computes terminal scores from the preference table, the verb
// valency tables and fixed category heuristics.
type scorer struct {
	prefs  PreferenceLookup
	verbs  ValencyLookup
	logger *slog.Logger
}

// score computes the scores for every position in the span of the forest.
// Positions with a single candidate terminal all score 0.
func (s *scorer) score(f *Forest, opts *Options) (Scores, error) {
	root := f.Root()
	scores := make(Scores, root.End-root.Start)
	for i := root.Start; i < root.End; i++ {
		finals := opts.Finals[i]
		if len(finals) == 0 {
			return nil, fmt.Errorf("position %d: %w", i, ErrUnmatchedPosition)
		}
		sc := make(map[*Terminal]int, len(finals))
		for _, t := range finals {
			sc[t] = 0
		}
		scores[i] = sc
		if len(finals) <= 1 {
			continue
		}
		tok := opts.Tokens[i]
		if !sameFirst(finals) && s.prefs != nil {
			s.applyPreferences(sc, finals, s.prefs.Lookup(tok.Lower))
		}
		penalizedGenitives := false
		for _, t := range finals {
			switch t.First() {
			case CatAdverb, CatExclamation:
				sc[t]--
			case CatNoun:
				if t.IsSingular() {
					sc[t]++
				} else if t.IsAbbrev() {
					sc[t]--
				}
			case CatPreposition:
				sc[t] += prepositionScore(t, tok.Lower)
			case CatVerb:
				s.scoreVerb(scores, opts, i, t, tok)
			case CatNumber, CatNumeral:
				if t.First() == CatNumber {
					sc[t]--
				}
				if !penalizedGenitives {
					for _, pt := range finals {
						if (pt.First() == CatNoun || pt.First() == CatNumeral) && pt.HasVariant(VarGenitive) {
							sc[pt]--
						}
					}
					penalizedGenitives = true
				}
			case CatProperName:
				if !tok.HasMeanings() {
					sc[t] += 2
				} else {
					sc[t] -= 6
					if i == root.Start {
						sc[t] -= 4
					}
				}
			default:
				if t.IsLiteral() {
					sc[t]++
				}
			}
		}
	}
	s.logScores(scores, opts, root)
	return scores, nil
}

// sameFirst reports whether all terminals share one category, in which
// case the preference table has nothing to choose between.
func sameFirst(ts []*Terminal) bool {
	for _, t := range ts[1:] {
		if t.First() != ts[0].First() {
			return false
		}
	}
	return true
}

// applyPreferences adjusts worse terminals down and better terminals up.
// A terminal matched by several rules gets the strongest adjustment
// once, not the sum.
func (s *scorer) applyPreferences(sc map[*Terminal]int, finals []*Terminal, prefs []Preference) {
	if len(prefs) == 0 {
		return
	}
	adjWorse := make(map[*Terminal]int)
	adjBetter := make(map[*Terminal]int)
	for _, p := range prefs {
		for _, wt := range finals {
			if !p.worse(wt.First()) {
				continue
			}
			for _, bt := range finals {
				if wt == bt || !p.better(bt.First()) {
					continue
				}
				adjW, adjB := -2*p.Factor, 4*p.Factor
				if bt.IsLiteral() {
					adjB = 6 * p.Factor
				}
				adjWorse[wt] = min(adjWorse[wt], adjW)
				adjBetter[bt] = max(adjBetter[bt], adjB)
			}
		}
	}
	for t, adj := range adjWorse {
		sc[t] += adj
	}
	for t, adj := range adjBetter {
		sc[t] += adj
	}
}

// prepositionScore scores a preposition terminal for the word txt.
func prepositionScore(t *Terminal, txt string) int {
	switch {
	case t.HasVariant(VarNominative):
		// Outweighs the bonus the grammar gives nominative prepositions
		return -5
	case txt == "við" && t.HasVariant(VarDative):
		return 1
	case txt == "sem" && t.HasVariant(VarAccusative):
		return -6
	default:
		return 2
	}
}

// scoreVerb applies the verb heuristics to terminal t at position i.
func (s *scorer) scoreVerb(scores Scores, opts *Options, i int, t *Terminal, tok *Token) {
	sc := scores[i]
	if n, ok := t.ArgCount(); ok {
		adj := 2 * n
		if n == 0 && !s.allowsZeroArguments(tok) {
			adj = -5
		}
		sc[t] += adj + s.caseScore(tok, t)
	}
	switch {
	case t.IsSupine():
		sc[t] += 6
	case t.IsPastParticiple():
		if t.HasVariant(VarWeak) {
			sc[t] -= 2
		} else {
			sc[t] += 3
		}
	case t.IsMiddleVoice():
		sc[t] += 3
	case t.IsSubjunctive():
		sc[t] += 2
	}
	if t.IsSubject() {
		if t.HasVariant(VarNone) {
			sc[t] -= 3
		} else {
			sc[t]++
		}
	}
	if !t.IsInfinitive() {
		return
	}
	if prev, ok := scores[i-1]; ok {
		marked := false
		for _, pt := range opts.Finals[i-1] {
			if pt.First() == CatInfinitiveMarker {
				prev[pt] += 2
				marked = true
			}
		}
		if marked {
			sc[t] += 4
		}
	}
	for _, pt := range opts.Finals[i] {
		if pt.First() == CatNoun && pt.HasVariant(VarGenitive) && pt.IsPlural() {
			sc[t] += 4
			break
		}
	}
}

// allowsZeroArguments reports whether any verb meaning of the token may
// stand without arguments.
func (s *scorer) allowsZeroArguments(tok *Token) bool {
	for _, m := range tok.Meanings {
		if m.Category != CatVerb {
			continue
		}
		if m.IsMiddleVoice() || (s.verbs != nil && s.verbs.IsZeroArgument(m.Stem)) {
			return true
		}
	}
	return false
}

// caseScore returns the largest bonus declared for any verb meaning of
// the token combined with the case signature of t, or 0.
func (s *scorer) caseScore(tok *Token, t *Terminal) int {
	if s.verbs == nil {
		return 0
	}
	cases := t.VerbCases()
	best, found := 0, false
	for _, m := range tok.Meanings {
		if m.Category != CatVerb {
			continue
		}
		if sc, ok := s.verbs.CaseScore(m.Stem, cases); ok && (!found || sc > best) {
			best, found = sc, true
		}
	}
	return best
}

func (s *scorer) logScores(scores Scores, opts *Options, root *Node) {
	if !s.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for i := root.Start; i < root.End; i++ {
		if len(opts.Finals[i]) <= 1 {
			continue
		}
		var b strings.Builder
		for j, t := range opts.Finals[i] {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.Name())
			b.WriteByte('=')
			b.WriteString(strconv.Itoa(scores[i][t]))
		}
		s.logger.Debug("terminal scores",
			slog.Int("pos", i),
			slog.String("token", opts.Tokens[i].Text),
			slog.String("scores", b.String()))
	}
}
