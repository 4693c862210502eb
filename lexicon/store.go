package lexicon

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"

	"github.com/cours-de-latin/reducer"
)

const (
	formPrefix   = "f/"
	sequenceKey  = "meta/seq"
	seqBandwidth = 1000
)

// Store is a Source backed by an embedded badger database. Each meaning
// is stored under formPrefix + form + "\x00" + big-endian sequence
// number, so a prefix scan returns the meanings of a form in import
// order.
type Store struct {
	db     *badger.DB
	closed atomic.Bool
}

// StoreConfig configures OpenStore.
type StoreConfig struct {
	// Dir holds the database files. Ignored when InMemory is set.
	Dir string
	// InMemory keeps the database in memory only.
	InMemory bool
	// Logger receives badger's own log output. Nil disables it.
	Logger *slog.Logger
}

// badgerLogger routes badger log output to slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// OpenStore opens or creates a word form store.
func OpenStore(cfg StoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, fmt.Errorf("open store: empty directory")
		}
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func formKeyPrefix(form string) []byte {
	return []byte(formPrefix + form + "\x00")
}

// Meanings implements Source.
func (s *Store) Meanings(form string) ([]reducer.Meaning, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	prefix := formKeyPrefix(form)
	var out []reducer.Meaning
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var m reducer.Meaning
				if err := json.Unmarshal(val, &m); err != nil {
					return err
				}
				out = append(out, m)
				return nil
			})
			if err != nil {
				return fmt.Errorf("decode %q: %w", it.Item().Key(), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", form, err)
	}
	return out, nil
}

// Empty reports whether the store holds no word forms.
func (s *Store) Empty() (bool, error) {
	if s.closed.Load() {
		return false, ErrClosed
	}
	empty := true
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(formPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		it.Rewind()
		empty = !it.Valid()
		return nil
	})
	return empty, err
}

// Put adds meanings to the store, after any already stored for the
// same forms.
func (s *Store) Put(meanings ...reducer.Meaning) error {
	if s.closed.Load() {
		return ErrClosed
	}
	seq, err := s.db.GetSequence([]byte(sequenceKey), seqBandwidth)
	if err != nil {
		return fmt.Errorf("get sequence: %w", err)
	}
	defer seq.Release()

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, m := range meanings {
		n, err := seq.Next()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		val, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode %q: %w", m.Form, err)
		}
		key := binary.BigEndian.AppendUint64(formKeyPrefix(m.Form), n)
		if err := wb.Set(key, val); err != nil {
			return fmt.Errorf("write %q: %w", m.Form, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Import reads word form records ("stem;id;category;subcategory;form;inflection")
// from r and stores them. It returns the number of records stored.
func (s *Store) Import(r io.Reader) (int, error) {
	const batchSize = 10000
	batch := make([]reducer.Meaning, 0, batchSize)
	total := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.Put(batch...); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m, err := ParseMeaning(line)
		if err != nil {
			return total, fmt.Errorf("line %d: %w", lineNo, err)
		}
		batch = append(batch, m)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return total, err
	}
	return total, flush()
}

// ImportFile imports a word form file.
func (s *Store) ImportFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	n, err := s.Import(f)
	if err != nil {
		return n, fmt.Errorf("import %s: %w", path, err)
	}
	return n, nil
}
