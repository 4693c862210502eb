// Command reduce reads a parse forest document, reduces it to its most
// likely tree and writes the tree as JSON, or as indented text with
// --dump.
//
//	reduce [--config config.yaml] [--dump] [forest.json|-]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cours-de-latin/reducer"
	"github.com/cours-de-latin/reducer/config"
)

var errNoInput = errors.New("no forest document: pass a file or pipe one to stdin")

type output struct {
	Score int               `json:"score"`
	Tree  *reducer.TreeNode `json:"tree"`
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		dump       bool
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:           "reduce [forest.json|-]",
		Short:         "Reduce a parse forest to its most likely tree",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Log.Level = "debug"
			}
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			} else if isTerminal(in) {
				return errNoInput
			}
			return run(cfg, in, cmd.OutOrStdout(), cmd.ErrOrStderr(), dump)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")
	cmd.Flags().BoolVar(&dump, "dump", false, "write the reduced forest as indented text")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log terminal scores and reductions")
	return cmd
}

func run(cfg *config.Config, in io.Reader, out, logOut io.Writer, dump bool) error {
	logger := config.NewLogger(logOut, cfg.Log)
	rt, err := config.Setup(cfg, logger)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	defer rt.Close()

	f, err := reducer.Decode(in, reducer.NewGrammar(), rt.MeaningProvider())
	if err != nil {
		return err
	}
	_, score, err := rt.Reducer.GoWithScore(f)
	if err != nil {
		return err
	}
	if dump {
		if _, err := fmt.Fprintf(out, "score %d\n", score); err != nil {
			return err
		}
		return f.Dump(out)
	}
	tree, err := f.Tree()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(output{Score: score, Tree: tree})
}

// isTerminal reports whether r is an interactive terminal, which would
// leave the decoder waiting for input nobody is going to type.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "reduce:", err)
		os.Exit(1)
	}
}
