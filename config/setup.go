package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cours-de-latin/reducer"
	"github.com/cours-de-latin/reducer/lexicon"
)

// Runtime holds everything built from a Config.
type Runtime struct {
	Grammar *reducer.Grammar
	Reducer *reducer.Reducer
	// Lexicon is nil when no lexicon directory is configured.
	Lexicon *lexicon.Lexicon
	// Cache is nil when caching is disabled.
	Cache *lexicon.Cache

	store *lexicon.Store
}

// MeaningProvider returns the lexicon as a reducer.MeaningProvider, or
// nil without a lexicon.
func (rt *Runtime) MeaningProvider() reducer.MeaningProvider {
	if rt.Lexicon == nil {
		return nil
	}
	return rt.Lexicon
}

// Close releases the lexicon store, if any.
func (rt *Runtime) Close() error {
	if rt.store == nil {
		return nil
	}
	return rt.store.Close()
}

// Setup loads the tables and lexicon named by cfg and creates the
// reducer.
func Setup(cfg *Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{Grammar: reducer.NewGrammar()}
	if err := rt.setup(cfg, logger); err != nil {
		return nil, errors.Join(err, rt.Close())
	}
	return rt, nil
}

func (rt *Runtime) setup(cfg *Config, logger *slog.Logger) error {
	opts := []reducer.Option{reducer.WithLogger(logger)}
	if p := cfg.Tables.Preferences; p != "" {
		pt, err := reducer.LoadPreferences(p)
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}
		opts = append(opts, reducer.WithPreferences(pt))
		logger.Info("preferences loaded", slog.String("path", p), slog.Int("words", pt.Len()))
	}
	if p := cfg.Tables.Verbs; p != "" {
		vt, err := reducer.LoadVerbs(p)
		if err != nil {
			return fmt.Errorf("load verbs: %w", err)
		}
		opts = append(opts, reducer.WithValency(vt))
		logger.Info("verbs loaded", slog.String("path", p))
	}
	if p := cfg.Tables.GrammarScores; p != "" {
		if err := reducer.LoadGrammarScores(p, rt.Grammar); err != nil {
			return fmt.Errorf("load grammar scores: %w", err)
		}
		logger.Info("grammar scores loaded", slog.String("path", p))
	}
	rt.Reducer = reducer.New(rt.Grammar, opts...)

	if cfg.Lexicon.Dir == "" {
		return nil
	}
	var err error
	lexOpts := []lexicon.Option{lexicon.WithLogger(logger)}
	if n := cfg.Lexicon.CacheSize; n > 0 {
		if rt.Cache, err = lexicon.NewCache(n); err != nil {
			return err
		}
		lexOpts = append(lexOpts, lexicon.WithCache(rt.Cache))
	}
	if dir := cfg.Lexicon.StoreDir; dir != "" {
		if rt.store, err = lexicon.OpenStore(lexicon.StoreConfig{Dir: dir, Logger: logger}); err != nil {
			return err
		}
		if cfg.Lexicon.Import {
			if err := rt.importForms(cfg.Lexicon.Dir, logger); err != nil {
				return err
			}
		}
		lexOpts = append(lexOpts, lexicon.WithSource(rt.store))
	}
	if rt.Lexicon, err = lexicon.New(cfg.Lexicon.Dir, lexOpts...); err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	logger.Info("lexicon loaded", slog.String("dir", cfg.Lexicon.Dir))
	return nil
}

// importForms fills an empty store from the word form file of dir. A
// store that already holds word forms is left alone.
func (rt *Runtime) importForms(dir string, logger *slog.Logger) error {
	empty, err := rt.store.Empty()
	if err != nil {
		return err
	}
	if !empty {
		logger.Info("word form store already populated, skipping import")
		return nil
	}
	n, err := rt.store.ImportFile(filepath.Join(dir, lexicon.FormsFile))
	if err != nil {
		return err
	}
	logger.Info("word forms imported", slog.Int("records", n))
	return nil
}
