package reducer

import (
	"fmt"
	"log/slog"
)

// reductionInfo accumulates the family scores and priorities of one
// nonterminal node while its children are visited.
type reductionInfo struct {
	// scores holds the running total of each family, by family index.
	scores []int
	// nt is set only for completed nodes; priorities and score
	// adjustments do not apply to interior nodes.
	nt *Nonterminal
	// bestPrio is the lowest priority number seen, valid when havePrio.
	bestPrio int
	havePrio bool
	// usePrio is set once two families with different priorities are seen.
	usePrio bool
	// best lists the family indices having bestPrio, in order.
	best []int
}

func (ri *reductionInfo) addProduction(ix int, prod *Production) {
	if ri.nt == nil || prod == nil {
		return
	}
	prio := prod.Priority()
	if ri.havePrio && prio != ri.bestPrio {
		ri.usePrio = true
	}
	switch {
	case !ri.havePrio || prio < ri.bestPrio:
		ri.bestPrio, ri.havePrio = prio, true
		ri.best = append(ri.best[:0], ix)
	case prio == ri.bestPrio:
		ri.best = append(ri.best, ix)
	}
}

// forestReducer collapses every nonterminal to its best family.
type forestReducer struct {
	forest  *Forest
	scores  Scores
	grammar ScoreAdjuster
	logger  *slog.Logger
	// collapsed counts the nodes that lost at least one family.
	collapsed int
}

func (fr *forestReducer) VisitEpsilon(int) int { return 0 }

func (fr *forestReducer) VisitToken(_ int, n *Node) (int, error) {
	sc, ok := fr.scores.Get(n.Start, n.Terminal)
	if !ok {
		return 0, fmt.Errorf("%s: %w", n, ErrMissingScore)
	}
	return sc, nil
}

func (fr *forestReducer) VisitNonterminal(_ int, n *Node) *reductionInfo {
	ri := &reductionInfo{scores: make([]int, len(n.Families))}
	if n.Completed {
		ri.nt = n.Nonterminal
	}
	return ri
}

func (fr *forestReducer) VisitFamily(ri *reductionInfo, _ int, _ *Node, ix int, prod *Production) {
	ri.addProduction(ix, prod)
}

func (fr *forestReducer) AddResult(ri *reductionInfo, ix int, sc int) {
	ri.scores[ix] += sc
}

// ProcessResults picks the surviving family of n, collapses n to it and
// returns its score including the nonterminal's score adjustment.
func (fr *forestReducer) ProcessResults(ri *reductionInfo, n *Node) (int, error) {
	candidates := ri.best
	if !ri.usePrio {
		candidates = make([]int, len(ri.scores))
		for ix := range candidates {
			candidates[ix] = ix
		}
	}
	if len(candidates) == 0 {
		return 0, fmt.Errorf("%s: %w", n, ErrNoFamilies)
	}

	var sc int
	if len(candidates) == 1 && !ri.usePrio {
		sc = ri.scores[candidates[0]]
	} else {
		// First maximum in family order, as a stable sort by descending
		// score would give.
		bestIx := candidates[0]
		for _, ix := range candidates[1:] {
			if ri.scores[ix] > ri.scores[bestIx] {
				bestIx = ix
			}
		}
		sc = ri.scores[bestIx]
		if len(n.Families) > 1 {
			fr.collapsed++
			fr.logger.Debug("reduced node",
				slog.String("node", n.String()),
				slog.Int("families", len(n.Families)),
				slog.Int("chosen", bestIx),
				slog.Int("score", sc),
				slog.Bool("by_priority", ri.usePrio))
		}
		fr.forest.reduceTo(n, bestIx)
	}
	if ri.nt != nil && fr.grammar != nil {
		sc += fr.grammar.ScoreAdjustment(ri.nt.Name())
	}
	return sc, nil
}
