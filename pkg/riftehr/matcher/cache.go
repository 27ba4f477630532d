package matcher

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// uniqueIndex maps a key's tuple value to the single patient MRN that
// owns it, built only from tuple values unique within the patient table.
type uniqueIndex map[string]string

// UniquenessCache memoizes the per-key unique-tuple index so repeated
// Match calls against the same patient table (same generation) don't
// rebuild all ten indexes from scratch. pipeline.Run creates a new cache
// for each run. Grounded on pkg/gedcom/query/hybrid_cache.go's HybridCache,
// which memoizes graph lookups the same way with the same library.
type UniquenessCache struct {
	cache *lru.Cache[string, uniqueIndex]
}

// NewUniquenessCache creates a cache holding up to size per-key indexes
// (at most len(Keys), so a small size comfortably covers a single run).
func NewUniquenessCache(size int) (*UniquenessCache, error) {
	c, err := lru.New[string, uniqueIndex](size)
	if err != nil {
		return nil, err
	}
	return &UniquenessCache{cache: c}, nil
}

func (c *UniquenessCache) get(generation string, key Key) (uniqueIndex, bool) {
	if c == nil {
		return nil, false
	}
	idx, ok := c.cache.Get(generation + "\x00" + key.Name)
	return idx, ok
}

func (c *UniquenessCache) set(generation string, key Key, idx uniqueIndex) {
	if c == nil {
		return
	}
	c.cache.Add(generation+"\x00"+key.Name, idx)
}
