package fontcache

import (
	"container/list"
	"sync"

	"golang.org/x/sync/singleflight"
)

type lruEntry[K comparable, V any] struct {
	key K
	val V
}

// LRU is a bounded, least-recently-used cache with single-flighted
// production: under N concurrent GetOrProduce calls racing on the same
// key, produce runs exactly once (spec component 4.C, maps 3 and 4).
// The mutex-guarded critical sections are lookup/insert only and O(1)
// amortized; produce is always called outside the lock, so the lock is
// never held across a shaper or rasterizer call.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[K]*list.Element
	sf       singleflight.Group
	keyStr   func(K) string
}

// NewLRU constructs an LRU bounded to capacity entries (<=0 means
// unbounded). keyStr renders a key to a string for the single-flight
// group; it need not be collision-free across unrelated caches, only
// within one.
func NewLRU[K comparable, V any](capacity int, keyStr func(K) string) *LRU[K, V] {
	return &LRU[K, V]{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[K]*list.Element),
		keyStr:   keyStr,
	}
}

// Get returns the cached value for key without producing it.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(*lruEntry[K, V]).val, true
	}
	var zero V
	return zero, false
}

func (c *LRU[K, V]) put(key K, val V) {
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		el.Value.(*lruEntry[K, V]).val = val
		return
	}
	el := c.ll.PushFront(&lruEntry[K, V]{key: key, val: val})
	c.items[key] = el
	if c.capacity > 0 && c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry[K, V]).key)
		}
	}
}

// GetOrProduce returns the cached value for key, calling produce
// exactly once across any number of concurrent callers racing on the
// same key, then inserting the result and marking it most-recently
// used.
func (c *LRU[K, V]) GetOrProduce(key K, produce func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err, _ := c.sf.Do(c.keyStr(key), func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		val, err := produce()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.put(key, val)
		c.mu.Unlock()
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Len reports the number of live entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Clear drops every entry.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	c.ll = list.New()
	c.items = make(map[K]*list.Element)
	c.mu.Unlock()
}
