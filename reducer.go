// Package reducer reduces a parse forest containing every possible parse
// of a sentence to the single most likely parse tree.
//
// The reduction combines three sources of evidence:
//   - a table of preferred word interpretations, where words like "ekki"
//     are declared more likely to belong to one category than another
//     (adverb rather than noun);
//   - fixed heuristics keyed on terminal category and variants (adverbs
//     are by default less preferred, singular nouns more, and so on);
//   - production priorities within nonterminals and per-nonterminal
//     score adjustments declared by the grammar.
//
// A reduction runs in three passes: option finding collects the
// terminals matching each token, scoring ranks them, and a bottom-up
// walk keeps the best scoring family of every nonterminal node.
package reducer

import (
	"fmt"
	"log/slog"
)

// Reducer reduces parse forests. A Reducer holds only static tables and
// may be used from several goroutines, each reducing its own forest.
type Reducer struct {
	grammar ScoreAdjuster
	scorer  scorer
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithPreferences sets the word preference table.
func WithPreferences(p PreferenceLookup) Option {
	return func(r *Reducer) { r.scorer.prefs = p }
}

// WithValency sets the verb valency tables.
func WithValency(v ValencyLookup) Option {
	return func(r *Reducer) { r.scorer.verbs = v }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reducer) { r.scorer.logger = l }
}

// New creates a Reducer using the score adjustments of grammar, which
// may be nil.
func New(grammar ScoreAdjuster, opts ...Option) *Reducer {
	r := &Reducer{grammar: grammar}
	for _, opt := range opts {
		opt(r)
	}
	if r.scorer.logger == nil {
		r.scorer.logger = slog.Default()
	}
	return r
}

// TerminalScores runs the option finding and scoring passes without
// reducing the forest.
func (r *Reducer) TerminalScores(f *Forest) (Scores, error) {
	if f.IsEmpty() {
		return Scores{}, nil
	}
	opts, err := FindOptions(f)
	if err != nil {
		return nil, fmt.Errorf("find options: %w", err)
	}
	return r.scorer.score(f, opts)
}

// GoWithScore reduces the forest in place to a single tree and returns
// it with the score of its root. A nil or empty forest yields (nil, 0).
// On error the forest may be partially reduced and should be discarded.
func (r *Reducer) GoWithScore(f *Forest) (*Forest, int, error) {
	if f.IsEmpty() {
		return nil, 0, nil
	}
	scores, err := r.TerminalScores(f)
	if err != nil {
		return nil, 0, fmt.Errorf("score terminals: %w", err)
	}
	fr := &forestReducer{
		forest:  f,
		scores:  scores,
		grammar: r.grammar,
		logger:  r.scorer.logger,
	}
	score, err := Navigate[int, *reductionInfo](f, fr)
	if err != nil {
		return nil, 0, fmt.Errorf("reduce forest: %w", err)
	}
	root := f.Root()
	r.scorer.logger.Debug("forest reduced",
		slog.Int("start", root.Start),
		slog.Int("end", root.End),
		slog.Int("collapsed", fr.collapsed),
		slog.Int("score", score))
	return f, score, nil
}

// Go reduces the forest like GoWithScore and discards the score.
func (r *Reducer) Go(f *Forest) (*Forest, error) {
	f, _, err := r.GoWithScore(f)
	return f, err
}
