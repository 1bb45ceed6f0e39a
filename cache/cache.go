// Package cache provides a small in-memory loading cache: values are
// computed on first lookup by a loader function and then served from
// memory. Concurrent lookups of the same missing key collapse into a
// single loader call, and entries are write-once for their lifetime in the
// cache. Retention is unbounded unless WithMaxEntries is set.
package cache

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// LoaderFunc computes the value for a missing key. A returned error is
// propagated to every caller waiting on the key, unchanged and uncached.
type LoaderFunc[K comparable, V any] func(K) (V, error)

// Stats is a snapshot of cache activity counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// Option configures a Loading cache.
type Option func(*settings)

type settings struct {
	maxEntries int
}

// WithMaxEntries bounds the number of retained entries. When the bound is
// exceeded the oldest-inserted entry is evicted; a later lookup of an
// evicted key runs the loader again. Zero (the default) keeps every entry.
func WithMaxEntries(n int) Option {
	return func(s *settings) {
		s.maxEntries = n
	}
}

// Loading is a loader-backed cache. It is safe for concurrent use by
// multiple goroutines; readers never observe a partially-written entry.
type Loading[K comparable, V any] struct {
	loader LoaderFunc[K, V]

	maxEntries int

	group   singleflight.Group
	mu      sync.RWMutex
	entries map[K]V
	order   []K // insertion order, consulted only when maxEntries > 0

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates a Loading cache around loader.
func New[K comparable, V any](loader LoaderFunc[K, V], opts ...Option) *Loading[K, V] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	return &Loading[K, V]{
		loader:     loader,
		maxEntries: s.maxEntries,
		entries:    make(map[K]V),
	}
}

// Get returns the cached value for key, running the loader on a miss. At
// most one loader call is in flight per key at any time; other callers for
// the same key wait and share its result.
func (c *Loading[K, V]) Get(key K) (V, error) {
	c.mu.RLock()
	value, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return value, nil
	}
	c.misses.Add(1)

	loaded, err, _ := c.group.Do(fmt.Sprint(key), func() (interface{}, error) {
		// a concurrent caller may have stored the entry while this one
		// waited on the flight group
		c.mu.RLock()
		value, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return value, nil
		}

		value, err := c.loader(key)
		if err != nil {
			return nil, err
		}

		c.store(key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return loaded.(V), nil
}

// store inserts a loaded value, evicting the oldest entry when a bound is
// configured and exceeded. Present entries are never overwritten.
func (c *Loading[K, V]) store(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		return
	}

	c.entries[key] = value
	if c.maxEntries > 0 {
		c.order = append(c.order, key)
		for len(c.entries) > c.maxEntries {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
			c.evictions.Add(1)
		}
	}
}

// Len reports the number of retained entries.
func (c *Loading[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Contains reports whether key is currently retained, without touching the
// loader or the hit/miss counters.
func (c *Loading[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Stats returns a snapshot of the activity counters.
func (c *Loading[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
	}
}
