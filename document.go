package reducer

import (
	"encoding/json"
	"fmt"
	"io"
)

// MeaningProvider returns the candidate meanings of a token text. An
// unknown word yields an empty result, never an error.
type MeaningProvider interface {
	Meanings(word string) []Meaning
}

// SentenceMeaningProvider is a MeaningProvider whose lookup depends on
// whether the word opens a sentence, where a capitalized word may also
// stand for its lowercase form.
type SentenceMeaningProvider interface {
	MeaningProvider
	SentenceMeanings(word string, atSentenceStart bool) []Meaning
}

// Document is the JSON interchange form of a parse forest.
type Document struct {
	Tokens []TokenDoc `json:"tokens"`
	Nodes  []NodeDoc  `json:"nodes"`
	Root   int        `json:"root"`
}

// TokenDoc is a token in a Document. When Meanings is null the decoder
// asks its MeaningProvider, if any.
type TokenDoc struct {
	Text     string    `json:"text"`
	Meanings []Meaning `json:"meanings"`
}

// NodeDoc is a forest node in a Document. Kind is "epsilon", "token" or
// "nonterminal". Token nodes refer to Tokens by index; families refer to
// Nodes by index.
type NodeDoc struct {
	Kind        string      `json:"kind"`
	Start       int         `json:"start,omitempty"`
	End         int         `json:"end,omitempty"`
	Token       int         `json:"token,omitempty"`
	Terminal    string      `json:"terminal,omitempty"`
	Nonterminal string      `json:"nonterminal,omitempty"`
	Completed   *bool       `json:"completed,omitempty"`
	Families    []FamilyDoc `json:"families,omitempty"`
}

// FamilyDoc is one family of a nonterminal NodeDoc.
type FamilyDoc struct {
	Priority int      `json:"priority"`
	Symbols  []string `json:"symbols,omitempty"`
	Children []int    `json:"children"`
}

// Decode reads a Document from r and builds a forest from it, interning
// symbols in g. Tokens without meanings are looked up in mp if it is not
// nil.
func Decode(r io.Reader, g *Grammar, mp MeaningProvider) (*Forest, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}
	return doc.Build(g, mp)
}

// Build creates the forest described by the document. The first token
// is looked up as the start of a sentence when mp is a
// SentenceMeaningProvider.
func (doc *Document) Build(g *Grammar, mp MeaningProvider) (*Forest, error) {
	sp, _ := mp.(SentenceMeaningProvider)
	tokens := make([]*Token, len(doc.Tokens))
	for i, td := range doc.Tokens {
		meanings := td.Meanings
		switch {
		case meanings != nil:
		case sp != nil:
			meanings = sp.SentenceMeanings(td.Text, i == 0)
		case mp != nil:
			meanings = mp.Meanings(td.Text)
		}
		tokens[i] = NewToken(i, td.Text, meanings)
	}

	f := NewForest()
	for i, nd := range doc.Nodes {
		switch nd.Kind {
		case "epsilon":
			f.AddEpsilon(nd.Start)
		case "token":
			if nd.Token < 0 || nd.Token >= len(tokens) {
				return nil, fmt.Errorf("%w: node %d: token %d out of range", ErrBadDocument, i, nd.Token)
			}
			if nd.Terminal == "" {
				return nil, fmt.Errorf("%w: node %d: missing terminal", ErrBadDocument, i)
			}
			f.AddToken(g.Terminal(nd.Terminal), tokens[nd.Token])
		case "nonterminal":
			if nd.Nonterminal == "" {
				return nil, fmt.Errorf("%w: node %d: missing nonterminal", ErrBadDocument, i)
			}
			if nd.End < nd.Start {
				return nil, fmt.Errorf("%w: node %d: bad span [%d,%d)", ErrBadDocument, i, nd.Start, nd.End)
			}
			completed := nd.Completed == nil || *nd.Completed
			f.AddNonterminal(g.Nonterminal(nd.Nonterminal), nd.Start, nd.End, completed)
		default:
			return nil, fmt.Errorf("%w: node %d: unknown kind %q", ErrBadDocument, i, nd.Kind)
		}
	}

	for i, nd := range doc.Nodes {
		if nd.Kind != "nonterminal" {
			continue
		}
		nt := g.Nonterminal(nd.Nonterminal)
		for _, fd := range nd.Families {
			children := make([]NodeID, len(fd.Children))
			for j, c := range fd.Children {
				children[j] = NodeID(c)
			}
			prod := g.Production(nt, fd.Priority, fd.Symbols...)
			if err := f.AddFamily(NodeID(i), prod, children...); err != nil {
				return nil, fmt.Errorf("%w: node %d: %w", ErrBadDocument, i, err)
			}
		}
	}

	if len(doc.Nodes) == 0 {
		return f, nil
	}
	if err := f.SetRoot(NodeID(doc.Root)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}
	return f, nil
}
