package reducer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// scanLines calls fn for every non-empty line of r with comments
// ("#" to end of line) removed. lineNo is 1-based.
func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	return sc.Err()
}

func loadFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// ReadPreferences parses a preference table.
//
// Each line reads "word worse... < better... [factor]", e.g.
//
//	ekki   no < ao      # prefer adverb to noun
//	á      so < fs 2
//
// The factor defaults to 1.
func ReadPreferences(r io.Reader) (*PreferenceTable, error) {
	pt := NewPreferenceTable()
	err := scanLines(r, func(lineNo int, line string) error {
		fields := strings.Fields(line)
		lt := -1
		for i, f := range fields {
			if f == "<" {
				lt = i
				break
			}
		}
		if lt < 2 || lt == len(fields)-1 {
			return fmt.Errorf("line %d: %w: %q", lineNo, ErrBadTableLine, line)
		}
		word, worse, better := fields[0], fields[1:lt], fields[lt+1:]
		factor := 1
		if n, err := strconv.Atoi(better[len(better)-1]); err == nil {
			factor = n
			better = better[:len(better)-1]
		}
		if len(better) == 0 {
			return fmt.Errorf("line %d: %w: %q", lineNo, ErrBadTableLine, line)
		}
		pt.Add(word, Preference{
			Worse:  append([]string(nil), worse...),
			Better: append([]string(nil), better...),
			Factor: factor,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pt, nil
}

// LoadPreferences reads a preference table file.
func LoadPreferences(path string) (*PreferenceTable, error) {
	var pt *PreferenceTable
	err := loadFile(path, func(r io.Reader) error {
		var err error
		pt, err = ReadPreferences(r)
		return err
	})
	return pt, err
}

// parseScorePragma parses "$score(N)", with an optional sign on N.
func parseScorePragma(s string) (int, bool) {
	if !strings.HasPrefix(s, "$score(") || !strings.HasSuffix(s, ")") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s[len("$score("):len(s)-1], "+"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ReadVerbs parses verb valency declarations.
//
// Each line reads "stem [case ...] [$score(N)]":
//
//	rigna                  # takes no arguments
//	gefa þgf þf $score(2)
//
// A stem without cases admits zero arguments. A $score pragma declares
// the bonus for the stem with exactly those argument cases.
func ReadVerbs(r io.Reader) (*VerbTable, error) {
	vt := NewVerbTable()
	err := scanLines(r, func(lineNo int, line string) error {
		fields := strings.Fields(line)
		stem, cases := fields[0], fields[1:]
		score, hasScore := 0, false
		if n := len(cases); n > 0 && strings.HasPrefix(cases[n-1], "$") {
			var ok bool
			if score, ok = parseScorePragma(cases[n-1]); !ok {
				return fmt.Errorf("line %d: %w: %q", lineNo, ErrBadTableLine, line)
			}
			hasScore = true
			cases = cases[:n-1]
		}
		if len(cases) > 2 {
			return fmt.Errorf("line %d: %w: more than two arguments", lineNo, ErrBadTableLine)
		}
		if len(cases) == 0 {
			vt.AddZeroArgument(stem)
		}
		if hasScore {
			sig := ""
			if len(cases) > 0 {
				sig = "_" + strings.Join(cases, "_")
			}
			vt.SetScore(stem, sig, score)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vt, nil
}

// LoadVerbs reads a verb valency file.
func LoadVerbs(path string) (*VerbTable, error) {
	var vt *VerbTable
	err := loadFile(path, func(r io.Reader) error {
		var err error
		vt, err = ReadVerbs(r)
		return err
	})
	return vt, err
}

// ReadGrammarScores parses nonterminal score adjustments into g.
//
// Each line reads "$score(N) Nonterminal [Nonterminal ...]":
//
//	$score(-5) SérnafnEðaManneskja
//	$score(+2) Nl_nf Nl_þf
func ReadGrammarScores(r io.Reader, g *Grammar) error {
	return scanLines(r, func(lineNo int, line string) error {
		fields := strings.Fields(line)
		score, ok := parseScorePragma(fields[0])
		if !ok || len(fields) < 2 {
			return fmt.Errorf("line %d: %w: %q", lineNo, ErrBadTableLine, line)
		}
		for _, nt := range fields[1:] {
			g.SetScore(nt, score)
		}
		return nil
	})
}

// LoadGrammarScores reads a grammar score file into g.
func LoadGrammarScores(path string, g *Grammar) error {
	return loadFile(path, func(r io.Reader) error {
		return ReadGrammarScores(r, g)
	})
}
