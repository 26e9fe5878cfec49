// Package cache provides a bounded LRU cache used to memoize expensive,
// input-determined work (page rasterization, extraction results).
package cache

import (
	"container/list"
	"sync"
)

// LRU is a thread-safe, size-bounded least-recently-used cache.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	maxSize int
	ll      *list.List
	items   map[K]*list.Element

	hits   uint64
	misses uint64
}

type entry[K comparable, V any] struct {
	key K
	val V
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Size   int    `json:"size"`
	Max    int    `json:"max"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// NewLRU creates a cache holding at most maxSize entries.
// A maxSize <= 0 defaults to 1.
func NewLRU[K comparable, V any](maxSize int) *LRU[K, V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &LRU[K, V]{
		maxSize: maxSize,
		ll:      list.New(),
		items:   make(map[K]*list.Element),
	}
}

// Get returns the cached value for key, marking it most-recently-used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		c.hits++
		return el.Value.(*entry[K, V]).val, true
	}

	c.misses++
	var zero V
	return zero, false
}

// Add stores a value for key, evicting the least-recently-used entry
// when the cache is full.
func (c *LRU[K, V]) Add(key K, val V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		el.Value.(*entry[K, V]).val = val
		return
	}

	el := c.ll.PushFront(&entry[K, V]{key: key, val: val})
	c.items[key] = el

	if c.ll.Len() > c.maxSize {
		c.evictOldest()
	}
}

// Remove deletes a key from the cache if present.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
		delete(c.items, key)
	}
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Purge removes all entries and resets counters.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	c.items = make(map[K]*list.Element)
	c.hits = 0
	c.misses = 0
}

// Stats returns current cache counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:   c.ll.Len(),
		Max:    c.maxSize,
		Hits:   c.hits,
		Misses: c.misses,
	}
}

// evictOldest removes the least-recently-used entry. Caller holds the lock.
func (c *LRU[K, V]) evictOldest() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key)
}
