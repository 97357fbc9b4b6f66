// Package memo caches decoded makespans of resource orders, keyed by their fingerprint.
package memo

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"jobShop/internal/jobshop"
)

// Infeasible is stored for orders that do not decode.
const Infeasible = -1

type Cache struct {
	entries *lru.Cache[[32]byte, int]
	hits    atomic.Int64
	misses  atomic.Int64
}

// New returns a cache holding up to size makespans. A size <= 0 yields nil, which is a valid
// cache that never stores anything.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[[32]byte, int](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Makespan decodes o, or returns the memoized result. ok is false for infeasible orders.
func (c *Cache) Makespan(o *jobshop.ResourceOrder) (makespan int, ok bool) {
	if c == nil {
		s, ok := o.Decode()
		if !ok {
			return Infeasible, false
		}
		return s.Makespan(), true
	}

	key := o.Fingerprint()
	if ms, found := c.entries.Get(key); found {
		c.hits.Add(1)
		return ms, ms != Infeasible
	}
	c.misses.Add(1)

	ms := Infeasible
	if s, ok := o.Decode(); ok {
		ms = s.Makespan()
	}
	c.entries.Add(key, ms)
	return ms, ms != Infeasible
}

// Stats reports cache hits and misses; a nil cache reports zeros.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
