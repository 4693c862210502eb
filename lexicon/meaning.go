package lexicon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cours-de-latin/reducer"
)

// meaningFields is the number of ';' separated fields of a word form
// record: stem;id;category;subcategory;form;inflection.
const meaningFields = 6

// parseMeaning parses one word form record.
func parseMeaning(fields []string) (reducer.Meaning, error) {
	if len(fields) != meaningFields {
		return reducer.Meaning{}, fmt.Errorf("%w: %d fields, want %d", ErrBadRecord, len(fields), meaningFields)
	}
	id := 0
	if s := strings.TrimSpace(fields[1]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return reducer.Meaning{}, fmt.Errorf("%w: id %q", ErrBadRecord, s)
		}
		id = n
	}
	form := reducer.Compose(strings.TrimSpace(fields[4]))
	if form == "" {
		return reducer.Meaning{}, fmt.Errorf("%w: empty form", ErrBadRecord)
	}
	return reducer.Meaning{
		Stem:        reducer.Compose(strings.TrimSpace(fields[0])),
		ID:          id,
		Category:    strings.TrimSpace(fields[2]),
		Subcategory: strings.TrimSpace(fields[3]),
		Form:        form,
		Inflection:  strings.TrimSpace(fields[5]),
	}, nil
}

// ParseMeaning parses a "stem;id;category;subcategory;form;inflection"
// line.
func ParseMeaning(line string) (reducer.Meaning, error) {
	return parseMeaning(strings.Split(line, ";"))
}

// prefixed returns m as the meaning of a word with prefix prepended to
// its stem and form.
func prefixed(m reducer.Meaning, prefix string) reducer.Meaning {
	m.Stem = prefix + m.Stem
	m.Form = prefix + m.Form
	return m
}
