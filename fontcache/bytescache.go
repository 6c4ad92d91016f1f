package fontcache

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// BytesLoader reads the raw contents of a font file given its
// canonical path.
type BytesLoader func(path string) ([]byte, error)

// BytesCache is the path-keyed map of raw font bytes (spec component
// 4.C, map 1): unbounded, cleared only explicitly, with at-most-one
// on-disk load per key across concurrent callers.
type BytesCache struct {
	mu     sync.RWMutex
	m      map[string]*Bytes
	sf     singleflight.Group
	loader BytesLoader
}

// NewBytesCache constructs an empty bytes cache that loads misses
// using loader.
func NewBytesCache(loader BytesLoader) *BytesCache {
	return &BytesCache{m: make(map[string]*Bytes), loader: loader}
}

// GetOrLoad returns the bytes cached for path, loading them via the
// configured loader on a miss. Concurrent misses on the same path
// collapse into a single load.
func (c *BytesCache) GetOrLoad(path string) (*Bytes, error) {
	c.mu.RLock()
	if b, ok := c.m[path]; ok {
		c.mu.RUnlock()
		return b.Acquire(), nil
	}
	c.mu.RUnlock()

	v, err, _ := c.sf.Do(path, func() (any, error) {
		c.mu.RLock()
		if b, ok := c.m[path]; ok {
			c.mu.RUnlock()
			return b, nil
		}
		c.mu.RUnlock()

		data, err := c.loader(path)
		if err != nil {
			return nil, err
		}
		b := newBytes(path, data)
		c.mu.Lock()
		c.m[path] = b
		c.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Bytes).Acquire(), nil
}

// Len reports the number of distinct paths currently cached.
func (c *BytesCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Clear drops every cached entry. Bytes already acquired by a live
// parsed face remain valid (see [Bytes]); only the cache's own
// reference is dropped.
func (c *BytesCache) Clear() {
	c.mu.Lock()
	c.m = make(map[string]*Bytes)
	c.mu.Unlock()
}
