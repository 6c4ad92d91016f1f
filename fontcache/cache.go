// Package fontcache implements the process-wide, thread-safe cache of
// font bytes, parsed faces, shaping results, and rendered glyph masks
// described by the font resolution and caching layer. Every map
// guarantees at-most-one load/parse/render per key under contention.
package fontcache

import (
	"hash/fnv"
	"sort"
)

// DefaultShapeCacheCapacity is the default bound on the shape-result
// LRU.
const DefaultShapeCacheCapacity = 512

// ShapeKey identifies a cached shaping result by the hash of its
// input text, the resolved font's key, the quantized size, and the
// hash of its enabled OpenType feature set.
type ShapeKey struct {
	TextHash    uint64
	FontKey     string
	SizeQ       int
	FeatureHash uint64
}

func (k ShapeKey) String() string {
	return fnvString(k.FontKey, k.TextHash, uint64(k.SizeQ), k.FeatureHash)
}

// GlyphKey identifies a cached rendered glyph mask by font key, face
// index, glyph id, and quantized size.
type GlyphKey struct {
	FontKey   string
	FaceIndex int
	GlyphID   uint32
	SizeQ     int
}

func (k GlyphKey) String() string {
	return fnvString(k.FontKey, uint64(k.FaceIndex), uint64(k.GlyphID), uint64(k.SizeQ))
}

func fnvString(fontKey string, nums ...uint64) string {
	h := fnv.New64a()
	h.Write([]byte(fontKey))
	buf := make([]byte, 8)
	for _, n := range nums {
		for i := 0; i < 8; i++ {
			buf[i] = byte(n >> (8 * i))
		}
		h.Write(buf)
	}
	return string(h.Sum(nil))
}

// HashText hashes run text for use in a ShapeKey.
func HashText(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// HashFeatures hashes an OpenType feature set (tag -> enabled) for use
// in a ShapeKey. Hashing is order-independent: features are sorted by
// tag first.
func HashFeatures(features map[string]bool) uint64 {
	if len(features) == 0 {
		return 0
	}
	tags := make([]string, 0, len(features))
	for tag := range features {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	h := fnv.New64a()
	for _, tag := range tags {
		h.Write([]byte(tag))
		if features[tag] {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return h.Sum64()
}

// Stats reports live entry counts for each of the four maps.
type Stats struct {
	Bytes  int
	Faces  int
	Shapes int
	Glyphs int
}

// Cache bundles the four maps of spec component 4.C. F is the
// backend's parsed-face type, S its shaping-result type, M its
// rendered-glyph-mask type.
type Cache[F any, S any, M any] struct {
	Bytes  *BytesCache
	Faces  *FaceCache[F]
	Shapes *LRU[ShapeKey, S]
	Glyphs *LRU[GlyphKey, M]
}

// New constructs a Cache with the given bytes loader and the default
// shape/glyph LRU capacity (512, matching "capacity equal to total
// shape cache" for glyph masks).
func New[F any, S any, M any](loader BytesLoader) *Cache[F, S, M] {
	return NewWithCapacity[F, S, M](loader, DefaultShapeCacheCapacity)
}

// NewWithCapacity is like New but lets the caller override the
// shape/glyph LRU capacity.
func NewWithCapacity[F any, S any, M any](loader BytesLoader, capacity int) *Cache[F, S, M] {
	return &Cache[F, S, M]{
		Bytes:  NewBytesCache(loader),
		Faces:  NewFaceCache[F](),
		Shapes: NewLRU[ShapeKey, S](capacity, ShapeKey.String),
		Glyphs: NewLRU[GlyphKey, M](capacity, GlyphKey.String),
	}
}

// Stats returns live counts for each map.
func (c *Cache[F, S, M]) Stats() Stats {
	return Stats{
		Bytes:  c.Bytes.Len(),
		Faces:  c.Faces.Len(),
		Shapes: c.Shapes.Len(),
		Glyphs: c.Glyphs.Len(),
	}
}

// Clear drops every entry from every map. Any still-referenced [Bytes]
// remains valid for holders that acquired a reference before Clear, per
// [Bytes]'s contract; Clear only drops the cache's own bookkeeping.
func (c *Cache[F, S, M]) Clear() {
	c.Bytes.Clear()
	c.Faces.Clear()
	c.Shapes.Clear()
	c.Glyphs.Clear()
}
