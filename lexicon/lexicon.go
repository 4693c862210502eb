// Package lexicon looks up the candidate meanings of Icelandic word
// forms in a BÍN-style lexicon, with fallbacks for words the lexicon
// lacks: lowercasing, abbreviations, an adjective template, compound
// splitting and the negating "ó-" prefix.
package lexicon

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/cours-de-latin/reducer"
)

// Lexicon holds the loaded lexicon data. It is safe for concurrent use
// once created.
type Lexicon struct {
	source    Source
	cache     *Cache
	extra     map[string][]reducer.Meaning
	abbrevs   map[string]reducer.Meaning
	adjective []adjectiveEnding
	wordbase  *wordbase
	logger    *slog.Logger
}

// Option configures a Lexicon.
type Option func(*Lexicon)

// WithSource sets the word form source. Without it New loads FormsFile
// from the data directory into memory.
func WithSource(s Source) Option {
	return func(lx *Lexicon) { lx.source = s }
}

// WithCache puts c in front of the word form source.
func WithCache(c *Cache) Option {
	return func(lx *Lexicon) { lx.cache = c }
}

// WithLogger sets the logger used to report source failures.
func WithLogger(l *slog.Logger) Option {
	return func(lx *Lexicon) { lx.logger = l }
}

// New loads the lexicon in dataDir. Only FormsFile is required, and
// only when no Source is given; the other data files are optional.
func New(dataDir string, opts ...Option) (*Lexicon, error) {
	lx := &Lexicon{}
	for _, opt := range opts {
		opt(lx)
	}
	if lx.logger == nil {
		lx.logger = slog.Default()
	}

	if lx.source == nil {
		forms, err := loadForms(filepath.Join(dataDir, FormsFile))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", FormsFile, ErrNoSource)
		}
		if err != nil {
			return nil, err
		}
		lx.source = MemorySource(forms)
	}

	var err error
	if lx.extra, err = loadForms(filepath.Join(dataDir, ExtraFile)); optional(err) != nil {
		return nil, err
	}
	if lx.abbrevs, err = loadAbbreviations(filepath.Join(dataDir, AbbrevFile)); optional(err) != nil {
		return nil, err
	}
	if lx.adjective, err = loadAdjectiveEndings(filepath.Join(dataDir, AdjectiveFile)); optional(err) != nil {
		return nil, err
	}
	if lx.wordbase, err = loadWordbase(filepath.Join(dataDir, WordbaseFile)); optional(err) != nil {
		return nil, err
	}
	return lx, nil
}

// Meanings returns the meanings of word as LookupWord would away from
// the start of a sentence. It implements reducer.MeaningProvider.
func (lx *Lexicon) Meanings(word string) []reducer.Meaning {
	_, m := lx.LookupWord(word, false)
	return m
}

// SentenceMeanings implements reducer.SentenceMeaningProvider.
func (lx *Lexicon) SentenceMeanings(word string, atSentenceStart bool) []reducer.Meaning {
	_, m := lx.LookupWord(word, atSentenceStart)
	return m
}

// formMeanings returns the stored and supplementary meanings of an
// exact form. Source failures are logged and yield no meanings.
func (lx *Lexicon) formMeanings(form string) []reducer.Meaning {
	var (
		m   []reducer.Meaning
		err error
	)
	if lx.cache != nil {
		m, err = lx.cache.Get(form, lx.fetch)
	} else {
		m, err = lx.fetch(form)
	}
	if err != nil {
		lx.logger.Error("word lookup failed",
			slog.String("form", form),
			slog.String("error", err.Error()))
		return nil
	}
	return m
}

func (lx *Lexicon) fetch(form string) ([]reducer.Meaning, error) {
	m, err := lx.source.Meanings(form)
	if err != nil {
		return nil, err
	}
	if extra := lx.extra[form]; len(extra) > 0 {
		m = append(m[:len(m):len(m)], extra...)
	}
	return m, nil
}
