package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cours-de-latin/reducer"
)

// Data file names within a lexicon directory.
const (
	FormsFile     = "ord.csv"
	ExtraFile     = "extra.csv"
	AbbrevFile    = "abbrev.csv"
	AdjectiveFile = "adjective.csv"
	WordbaseFile  = "wordbase.txt"
)

// readLines calls fn for every non-empty, non-comment line of the file.
// Lines starting with '#' are comments. A missing file is reported as
// fs.ErrNotExist so callers can treat optional files as empty.
func readLines(path string, fn func(lineNo int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return fmt.Errorf("%s:%d: %w", filepath.Base(path), lineNo, err)
		}
	}
	return sc.Err()
}

func optional(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadForms reads a word form file into a map keyed by form.
func loadForms(path string) (map[string][]reducer.Meaning, error) {
	forms := make(map[string][]reducer.Meaning)
	err := readLines(path, func(_ int, line string) error {
		m, err := ParseMeaning(line)
		if err != nil {
			return err
		}
		forms[m.Form] = append(forms[m.Form], m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return forms, nil
}

// loadAbbreviations reads abbreviation;stem;id;category;subcategory;form;inflection
// records. Each abbreviation has exactly one meaning; later lines win.
func loadAbbreviations(path string) (map[string]reducer.Meaning, error) {
	abbrevs := make(map[string]reducer.Meaning)
	err := readLines(path, func(_ int, line string) error {
		abbr, rest, ok := strings.Cut(line, ";")
		abbr = strings.TrimSpace(abbr)
		if !ok || abbr == "" {
			return fmt.Errorf("%w: %q", ErrBadRecord, line)
		}
		m, err := ParseMeaning(rest)
		if err != nil {
			return err
		}
		abbrevs[reducer.Compose(abbr)] = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return abbrevs, nil
}

// loadAdjectiveEndings reads ending;inflection pairs, keeping file order.
func loadAdjectiveEndings(path string) ([]adjectiveEnding, error) {
	var endings []adjectiveEnding
	err := readLines(path, func(_ int, line string) error {
		ending, infl, ok := strings.Cut(line, ";")
		ending, infl = strings.TrimSpace(ending), strings.TrimSpace(infl)
		if !ok || ending == "" || infl == "" {
			return fmt.Errorf("%w: %q", ErrBadRecord, line)
		}
		endings = append(endings, adjectiveEnding{ending: reducer.Lower(ending), inflection: infl})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return endings, nil
}

// loadWordbase reads one compound word part per line.
func loadWordbase(path string) (*wordbase, error) {
	wb := newWordbase()
	err := readLines(path, func(_ int, line string) error {
		wb.add(reducer.Lower(line))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wb, nil
}
