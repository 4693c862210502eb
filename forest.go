package reducer

import "fmt"

// NodeID identifies a node within its Forest.
type NodeID int32

// NoNode is the zero reference; it is never a valid node.
const NoNode NodeID = -1

// NodeKind distinguishes the three node variants.
type NodeKind uint8

const (
	KindEpsilon NodeKind = iota
	KindToken
	KindNonterminal
)

func (k NodeKind) String() string {
	switch k {
	case KindEpsilon:
		return "epsilon"
	case KindToken:
		return "token"
	case KindNonterminal:
		return "nonterminal"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// Family is one alternative derivation of a nonterminal node: the
// production used and the child nodes realizing its symbols.
type Family struct {
	Production *Production
	Children   []NodeID
}

// Node is an entry in the forest arena.
//
// Which fields are set depends on Kind:
//   - KindEpsilon: Start (End == Start)
//   - KindToken: Start, End, Terminal, Token
//   - KindNonterminal: Start, End, Nonterminal, Completed, Families
type Node struct {
	ID          NodeID
	Kind        NodeKind
	Start, End  int
	Terminal    *Terminal
	Token       *Token
	Nonterminal *Nonterminal
	// Completed is false for interior nodes standing for a partially
	// matched production; those never receive a score adjustment.
	Completed bool
	Families  []Family
}

// IsAmbiguous reports whether the node still has more than one family.
func (n *Node) IsAmbiguous() bool {
	return len(n.Families) > 1
}

func (n *Node) String() string {
	switch n.Kind {
	case KindEpsilon:
		return fmt.Sprintf("ε@%d", n.Start)
	case KindToken:
		return fmt.Sprintf("%s[%d] %q", n.Terminal, n.Start, n.Token.Text)
	default:
		return fmt.Sprintf("%s[%d,%d)", n.Nonterminal, n.Start, n.End)
	}
}

// Forest is a packed shared parse forest stored as an arena of nodes.
// Nonterminal nodes refer to their children by NodeID, so several
// parents may share a child and collapsing a node to one family only
// touches that node's entry.
//
// A Forest is not safe for concurrent use. Reduction mutates it.
type Forest struct {
	nodes []Node
	root  NodeID
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{root: NoNode}
}

func (f *Forest) add(n Node) NodeID {
	n.ID = NodeID(len(f.nodes))
	f.nodes = append(f.nodes, n)
	return n.ID
}

// AddEpsilon adds an empty derivation at position pos.
func (f *Forest) AddEpsilon(pos int) NodeID {
	return f.add(Node{Kind: KindEpsilon, Start: pos, End: pos})
}

// AddToken adds a leaf binding terminal t to token tok at tok's position.
func (f *Forest) AddToken(t *Terminal, tok *Token) NodeID {
	return f.add(Node{Kind: KindToken, Start: tok.Start, End: tok.End, Terminal: t, Token: tok})
}

// AddNonterminal adds a nonterminal node spanning [start, end) without
// any families.
func (f *Forest) AddNonterminal(nt *Nonterminal, start, end int, completed bool) NodeID {
	return f.add(Node{Kind: KindNonterminal, Start: start, End: end, Nonterminal: nt, Completed: completed})
}

// AddFamily appends a family to the nonterminal node id.
func (f *Forest) AddFamily(id NodeID, prod *Production, children ...NodeID) error {
	n := f.Node(id)
	if n == nil {
		return fmt.Errorf("add family to %d: %w", id, ErrUnknownNode)
	}
	if n.Kind != KindNonterminal {
		return fmt.Errorf("add family to %s: %w", n, ErrNotNonterminal)
	}
	for _, c := range children {
		if f.Node(c) == nil {
			return fmt.Errorf("add family to %s: child %d: %w", n, c, ErrUnknownNode)
		}
	}
	n.Families = append(n.Families, Family{Production: prod, Children: append([]NodeID(nil), children...)})
	return nil
}

// SetRoot sets the root node of the forest.
func (f *Forest) SetRoot(id NodeID) error {
	if f.Node(id) == nil {
		return fmt.Errorf("set root %d: %w", id, ErrUnknownNode)
	}
	f.root = id
	return nil
}

// Root returns the root node, or nil for an empty forest.
func (f *Forest) Root() *Node {
	if f == nil {
		return nil
	}
	return f.Node(f.root)
}

// Node returns the node with the given id, or nil if there is none.
// The pointer stays valid until the next node is added.
func (f *Forest) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(f.nodes) {
		return nil
	}
	return &f.nodes[id]
}

// Len returns the number of nodes in the arena.
func (f *Forest) Len() int { return len(f.nodes) }

// IsEmpty reports whether the forest is nil or has no root.
func (f *Forest) IsEmpty() bool {
	return f.Root() == nil
}

// reduceTo discards every family of n except the one at index ix.
func (f *Forest) reduceTo(n *Node, ix int) {
	n.Families = n.Families[ix : ix+1 : ix+1]
}

// Ambiguity returns the number of nonterminal nodes reachable from the
// root that have more than one family.
func (f *Forest) Ambiguity() int {
	count := 0
	f.reachable(func(n *Node) {
		if n.IsAmbiguous() {
			count++
		}
	})
	return count
}

// reachable calls fn once for every node reachable from the root,
// parents before children.
func (f *Forest) reachable(fn func(*Node)) {
	root := f.Root()
	if root == nil {
		return
	}
	seen := make([]bool, len(f.nodes))
	stack := []NodeID{root.ID}
	seen[root.ID] = true
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &f.nodes[id]
		fn(n)
		for i := len(n.Families) - 1; i >= 0; i-- {
			ch := n.Families[i].Children
			for j := len(ch) - 1; j >= 0; j-- {
				if !seen[ch[j]] {
					seen[ch[j]] = true
					stack = append(stack, ch[j])
				}
			}
		}
	}
}
