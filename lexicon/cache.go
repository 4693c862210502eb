package lexicon

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/cours-de-latin/reducer"
)

// DefaultCacheSize is the number of word forms a Cache keeps by default.
const DefaultCacheSize = 512

// LoadFunc fetches the meanings of a word form on a cache miss.
type LoadFunc func(form string) ([]reducer.Meaning, error)

// Cache is a bounded LRU cache of word form lookups. Concurrent misses
// for the same form share one load. A Cache is safe for concurrent use
// and may be shared by several lexicons over the same data.
//
// Cached slices are shared between callers and must not be modified.
type Cache struct {
	entries *lru.Cache[string, []reducer.Meaning]
	flight  singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a cache holding up to size forms.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, []reducer.Meaning](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Get returns the cached meanings of form, calling load on a miss.
// Failed loads are not cached.
func (c *Cache) Get(form string, load LoadFunc) ([]reducer.Meaning, error) {
	if m, ok := c.entries.Get(form); ok {
		c.hits.Add(1)
		return m, nil
	}
	c.misses.Add(1)
	v, err, _ := c.flight.Do(form, func() (any, error) {
		m, err := load(form)
		if err != nil {
			return nil, err
		}
		c.entries.Add(form, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]reducer.Meaning), nil
}

// Stats returns the number of hits and misses so far.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached forms.
func (c *Cache) Len() int { return c.entries.Len() }

// Purge empties the cache.
func (c *Cache) Purge() { c.entries.Purge() }
