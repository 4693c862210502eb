package reducer

// Options holds, for each token position spanned by a forest, the
// terminals that match the token there and the token itself.
type Options struct {
	// Finals lists the distinct terminals per position in discovery order.
	Finals map[int][]*Terminal
	// Tokens maps each position to its token.
	Tokens map[int]*Token
}

// Has reports whether t was found at position pos.
func (o *Options) Has(pos int, t *Terminal) bool {
	for _, ft := range o.Finals[pos] {
		if ft == t {
			return true
		}
	}
	return false
}

func (o *Options) add(pos int, t *Terminal, tok *Token) {
	if !o.Has(pos, t) {
		o.Finals[pos] = append(o.Finals[pos], t)
	}
	o.Tokens[pos] = tok
}

// optionFinder records token/terminal matches; nonterminals carry no
// state of their own.
type optionFinder struct {
	opts *Options
}

func (o optionFinder) VisitEpsilon(int) struct{} { return struct{}{} }

func (o optionFinder) VisitToken(_ int, n *Node) (struct{}, error) {
	o.opts.add(n.Start, n.Terminal, n.Token)
	return struct{}{}, nil
}

func (o optionFinder) VisitNonterminal(int, *Node) struct{} {
	return struct{}{}
}

func (o optionFinder) VisitFamily(struct{}, int, *Node, int, *Production) {}

func (o optionFinder) AddResult(struct{}, int, struct{}) {}

func (o optionFinder) ProcessResults(struct{}, *Node) (struct{}, error) {
	return struct{}{}, nil
}

// FindOptions collects the terminal options of every token position
// reachable from the forest root in a single walk.
func FindOptions(f *Forest) (*Options, error) {
	opts := &Options{
		Finals: make(map[int][]*Terminal),
		Tokens: make(map[int]*Token),
	}
	if _, err := Navigate[struct{}, struct{}](f, optionFinder{opts: opts}); err != nil {
		return nil, err
	}
	return opts, nil
}
