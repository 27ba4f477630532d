package inference

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

// composeResult caches both the presence and absence of a composition
// cell, since a miss is looked up again on every subsequent pass of the
// same node pair during the fixed-point loop.
type composeResult struct {
	label model.Label
	ok    bool
}

// LabelCache memoizes Compose lookups across the many repeated
// (label1, label2) pairs a large closure re-evaluates pass after pass.
// Grounded on pkg/gedcom/query/hybrid_cache.go's HybridCache, which
// wraps golang-lru around otherwise-cheap repeated lookups the same way.
type LabelCache struct {
	cache *lru.Cache[compKey, composeResult]
}

// NewLabelCache creates a cache holding up to size composition results.
func NewLabelCache(size int) (*LabelCache, error) {
	c, err := lru.New[compKey, composeResult](size)
	if err != nil {
		return nil, err
	}
	return &LabelCache{cache: c}, nil
}

// Compose is Compose(l1, l2), memoized through the cache.
func (c *LabelCache) Compose(l1, l2 model.Group) (model.Label, bool) {
	if c == nil {
		return Compose(l1, l2)
	}
	key := compKey{l1, l2}
	if r, ok := c.cache.Get(key); ok {
		return r.label, r.ok
	}
	lbl, ok := Compose(l1, l2)
	c.cache.Add(key, composeResult{lbl, ok})
	return lbl, ok
}
