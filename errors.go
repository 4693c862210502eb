package reducer

import "errors"

// Sentinel errors returned by forest construction and reduction.
var (
	// ErrNoFamilies is returned when a nonterminal node is left without any
	// family to choose from, either because it had none to begin with or
	// because priority filtering removed all of them.
	ErrNoFamilies = errors.New("nonterminal has no surviving families")

	// ErrUnmatchedPosition is returned when a token position spanned by the
	// forest has no terminal matching it anywhere in the forest.
	ErrUnmatchedPosition = errors.New("token position has no matching terminal")

	// ErrMissingScore is returned when a token node refers to a
	// (position, terminal) pair that the scorer never saw.
	ErrMissingScore = errors.New("no score for token terminal")

	// ErrCycle is returned when a node is reached again while it is still
	// being visited.
	ErrCycle = errors.New("forest contains a cycle")

	// ErrUnknownNode is returned for references to nodes outside the arena.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNotNonterminal is returned when a family is added to an epsilon or
	// token node.
	ErrNotNonterminal = errors.New("node is not a nonterminal")

	// ErrAmbiguous is returned when a tree is requested from a forest that
	// still has nodes with more than one family.
	ErrAmbiguous = errors.New("forest is still ambiguous")

	// ErrBadDocument is returned for malformed forest documents.
	ErrBadDocument = errors.New("malformed forest document")

	// ErrBadTableLine is returned for malformed lines in table files.
	ErrBadTableLine = errors.New("malformed table line")
)
