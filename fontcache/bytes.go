package fontcache

import "sync"

// Bytes is a reference-counted handle to raw font file bytes, shared
// between the cache and every parsed face or shaper font derived from
// it. This replaces the leaked-'static-slice trick of the original
// renderer: instead of lying to the compiler about a byte slice's
// lifetime, every holder explicitly acquires and releases a reference,
// and the slice itself is kept alive by Go's garbage collector for as
// long as any reference exists, map membership or not.
type Bytes struct {
	Path string
	Data []byte

	mu   sync.Mutex
	refs int
}

func newBytes(path string, data []byte) *Bytes {
	return &Bytes{Path: path, Data: data, refs: 1}
}

// Acquire increments the reference count and returns b.
// BytesCache.GetOrLoad calls it on every hit and load, so each caller
// receives its own reference.
func (b *Bytes) Acquire() *Bytes {
	b.mu.Lock()
	b.refs++
	b.mu.Unlock()
	return b
}

// Release decrements the reference count. It never frees Data; Go's
// GC reclaims it once the last reference anywhere is dropped. The
// count exists for diagnostics (see RefCount), not for manual memory
// management.
func (b *Bytes) Release() {
	b.mu.Lock()
	b.refs--
	b.mu.Unlock()
}

// RefCount reports the current reference count, for diagnostics.
func (b *Bytes) RefCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refs
}
