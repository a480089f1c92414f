package result

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL determines how long fetched data is kept before refreshing
const DefaultCacheTTL = time.Hour

// cacheEntry holds a memoized outcome. Failed fetches are stored too so that a
// broken term is not requested again on every lookup within the window.
type cacheEntry[V any] struct {
	Timestamp time.Time
	Value     V
	Err       error
}

// Cache is an in-memory, time-bounded memoizer keyed by string
type Cache[V any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry[V]
	group   singleflight.Group
}

// NewCache creates a cache whose entries expire ttl after they were populated
func NewCache[V any](ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry[V]),
	}
}

// lookup returns an entry if one exists and has not expired
func (c *Cache[V]) lookup(key string) (cacheEntry[V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return entry, false
	}
	if c.now().Sub(entry.Timestamp) >= c.ttl {
		delete(c.entries, key)
		return entry, false
	}
	return entry, true
}

func (c *Cache[V]) store(key string, value V, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[V]{
		Timestamp: c.now(),
		Value:     value,
		Err:       err,
	}
}

// Get returns the memoized outcome for key, calling fetch when the key is
// missing or expired. Concurrent callers for the same key share one fetch.
func (c *Cache[V]) Get(key string, fetch func() (V, error)) (V, error) {
	if entry, ok := c.lookup(key); ok {
		return entry.Value, entry.Err
	}

	type outcome struct {
		value V
		err   error
	}

	res, _, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have populated the key while we waited
		if entry, ok := c.lookup(key); ok {
			return outcome{entry.Value, entry.Err}, nil
		}
		value, err := fetch()
		// A canceled caller says nothing about the remote data
		if !errors.Is(err, context.Canceled) {
			c.store(key, value, err)
		}
		return outcome{value, err}, nil
	})

	out := res.(outcome)
	return out.value, out.err
}

// Purge drops every expired entry
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.Timestamp) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

// Len is the number of stored entries, expired ones included until purged
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
