package lexicon

import "errors"

var (
	// ErrBadRecord is returned for a malformed line in a lexicon data file.
	ErrBadRecord = errors.New("malformed lexicon record")

	// ErrNoSource is returned by New when neither a word form file nor a
	// Source is available.
	ErrNoSource = errors.New("no word form source")

	// ErrClosed is returned by a Store after Close.
	ErrClosed = errors.New("store closed")
)
