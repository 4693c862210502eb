package reducer

import "fmt"

// Navigator receives callbacks during a postorder walk of a forest.
//
// R is the result a node hands to its parent and A is the accumulator
// a nonterminal collects its families' results into. For every
// nonterminal the walk calls VisitNonterminal, then for each family in
// order VisitFamily followed by AddResult for each child, and finally
// ProcessResults to obtain the node's own result.
type Navigator[R, A any] interface {
	VisitEpsilon(level int) R
	VisitToken(level int, node *Node) (R, error)
	VisitNonterminal(level int, node *Node) A
	VisitFamily(acc A, level int, node *Node, ix int, prod *Production)
	AddResult(acc A, ix int, r R)
	ProcessResults(acc A, node *Node) (R, error)
}

// Navigate walks the forest from its root and returns the root's result.
// Each nonterminal is processed once; a node shared by several parents
// hands its memoized result to all of them. Children of interior
// (not completed) nodes are reported at the parent's level.
func Navigate[R, A any](f *Forest, nav Navigator[R, A]) (R, error) {
	w := walker[R, A]{
		f:     f,
		nav:   nav,
		state: make([]visitState, f.Len()),
		memo:  make([]R, f.Len()),
	}
	root := f.Root()
	if root == nil {
		var zero R
		return zero, fmt.Errorf("navigate: %w", ErrUnknownNode)
	}
	return w.visit(root, 0)
}

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

type walker[R, A any] struct {
	f     *Forest
	nav   Navigator[R, A]
	state []visitState
	memo  []R
}

func (w *walker[R, A]) visit(n *Node, level int) (R, error) {
	switch n.Kind {
	case KindEpsilon:
		return w.nav.VisitEpsilon(level), nil
	case KindToken:
		return w.nav.VisitToken(level, n)
	}

	switch w.state[n.ID] {
	case done:
		return w.memo[n.ID], nil
	case inProgress:
		var zero R
		return zero, fmt.Errorf("at %s: %w", n, ErrCycle)
	}
	w.state[n.ID] = inProgress

	acc := w.nav.VisitNonterminal(level, n)
	childLevel := level + 1
	if !n.Completed {
		childLevel = level
	}
	for ix := range n.Families {
		fam := n.Families[ix]
		w.nav.VisitFamily(acc, level, n, ix, fam.Production)
		for _, c := range fam.Children {
			r, err := w.visit(&w.f.nodes[c], childLevel)
			if err != nil {
				var zero R
				return zero, err
			}
			w.nav.AddResult(acc, ix, r)
		}
	}
	r, err := w.nav.ProcessResults(acc, n)
	if err != nil {
		return r, err
	}
	w.state[n.ID] = done
	w.memo[n.ID] = r
	return r, nil
}
