package fontcache

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FaceKey identifies a parsed face by its backing file and face index
// within that file (relevant for TrueType collections).
type FaceKey struct {
	Path  string
	Index int
}

func (k FaceKey) String() string {
	return fmt.Sprintf("%s#%d", k.Path, k.Index)
}

// FaceCache is the (path, face index) → parsed face map (spec
// component 4.C, map 2): unbounded, with at-most-one parse per key
// across concurrent callers. F is whatever a backend's parsed-face
// representation is (e.g. a wrapped *sfnt.Font).
type FaceCache[F any] struct {
	mu sync.RWMutex
	m  map[FaceKey]F
	sf singleflight.Group
}

// NewFaceCache constructs an empty face cache.
func NewFaceCache[F any]() *FaceCache[F] {
	return &FaceCache[F]{m: make(map[FaceKey]F)}
}

// GetOrLoad returns the face cached for key, parsing it via load on a
// miss. Concurrent misses on the same key collapse into one call to
// load.
func (c *FaceCache[F]) GetOrLoad(key FaceKey, load func() (F, error)) (F, error) {
	c.mu.RLock()
	if f, ok := c.m[key]; ok {
		c.mu.RUnlock()
		return f, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.sf.Do(key.String(), func() (any, error) {
		c.mu.RLock()
		if f, ok := c.m[key]; ok {
			c.mu.RUnlock()
			return f, nil
		}
		c.mu.RUnlock()

		f, err := load()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.m[key] = f
		c.mu.Unlock()
		return f, nil
	})
	if err != nil {
		var zero F
		return zero, err
	}
	return v.(F), nil
}

// Len reports the number of parsed faces currently cached.
func (c *FaceCache[F]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Clear drops every cached parsed face.
func (c *FaceCache[F]) Clear() {
	c.mu.Lock()
	c.m = make(map[FaceKey]F)
	c.mu.Unlock()
}
