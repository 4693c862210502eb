package lexicon

import "unicode/utf8"

// minPartLen is the shortest compound part, in runes.
const minPartLen = 2

// wordbase is the set of words that may appear as parts of a compound.
type wordbase struct {
	parts map[string]struct{}
}

func newWordbase() *wordbase {
	return &wordbase{parts: make(map[string]struct{})}
}

func (wb *wordbase) add(part string) {
	if utf8.RuneCountInString(part) >= minPartLen {
		wb.parts[part] = struct{}{}
	}
}

func (wb *wordbase) has(part string) bool {
	_, ok := wb.parts[part]
	return ok
}

// split slices a lowercase word into at least two known parts. Of all
// possible slicings it returns the one with the fewest parts and, among
// those, the longest last part. It returns nil when there is none.
func (wb *wordbase) split(word string) []string {
	if wb == nil || len(wb.parts) == 0 {
		return nil
	}
	// prefix[i] is the best slicing of word[:i] into one or more parts.
	prefix := make([][]string, len(word))
	var res []string
	for end := 1; end <= len(word); end++ {
		if end < len(word) && !utf8.RuneStart(word[end]) {
			continue
		}
		for start := 0; start < end; start++ {
			if !utf8.RuneStart(word[start]) || !wb.has(word[start:end]) {
				continue
			}
			var head []string
			if start > 0 {
				if prefix[start] == nil {
					continue
				}
				head = prefix[start]
			}
			cand := append(append([]string(nil), head...), word[start:end])
			if end < len(word) {
				if better(cand, prefix[end]) {
					prefix[end] = cand
				}
			} else if len(cand) >= 2 && better(cand, res) {
				res = cand
			}
		}
	}
	return res
}

// better reports whether slicing a is preferred over b.
func better(a, b []string) bool {
	if b == nil {
		return true
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return len(a[len(a)-1]) > len(b[len(b)-1])
}
