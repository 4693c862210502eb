package reducer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TreeNode is one node of a reduced forest in nested form.
type TreeNode struct {
	Kind        string      `json:"kind"`
	Start       int         `json:"start"`
	End         int         `json:"end"`
	Nonterminal string      `json:"nonterminal,omitempty"`
	Terminal    string      `json:"terminal,omitempty"`
	Text        string      `json:"text,omitempty"`
	Children    []*TreeNode `json:"children,omitempty"`
}

// Tree converts a fully reduced forest into a nested tree. It returns
// ErrAmbiguous if a reachable node still has more than one family, and
// nil for an empty forest.
func (f *Forest) Tree() (*TreeNode, error) {
	root := f.Root()
	if root == nil {
		return nil, nil
	}
	return f.tree(root)
}

func (f *Forest) tree(n *Node) (*TreeNode, error) {
	tn := &TreeNode{Kind: n.Kind.String(), Start: n.Start, End: n.End}
	switch n.Kind {
	case KindToken:
		tn.Terminal = n.Terminal.Name()
		tn.Text = n.Token.Text
	case KindNonterminal:
		tn.Nonterminal = n.Nonterminal.Name()
		if n.IsAmbiguous() {
			return nil, fmt.Errorf("%s: %w", n, ErrAmbiguous)
		}
		if len(n.Families) == 0 {
			return nil, fmt.Errorf("%s: %w", n, ErrNoFamilies)
		}
		for _, c := range n.Families[0].Children {
			ct, err := f.tree(&f.nodes[c])
			if err != nil {
				return nil, err
			}
			tn.Children = append(tn.Children, ct)
		}
	}
	return tn, nil
}

// Dump writes an indented rendering of the forest to w. Families of
// ambiguous nodes are numbered; shared nodes are written in full under
// every parent.
func (f *Forest) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if root := f.Root(); root != nil {
		f.dump(bw, root, 0)
	}
	return bw.Flush()
}

func (f *Forest) dump(w *bufio.Writer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case KindEpsilon:
		fmt.Fprintf(w, "%sε\n", indent)
		return
	case KindToken:
		fmt.Fprintf(w, "%s%s: %q\n", indent, n.Terminal.Name(), n.Token.Text)
		return
	}
	fmt.Fprintf(w, "%s%s [%d,%d)\n", indent, n.Nonterminal.Name(), n.Start, n.End)
	for ix, fam := range n.Families {
		childDepth := depth + 1
		if n.IsAmbiguous() {
			fmt.Fprintf(w, "%s  #%d %s\n", indent, ix, fam.Production)
			childDepth++
		}
		for _, c := range fam.Children {
			f.dump(w, &f.nodes[c], childDepth)
		}
	}
}
