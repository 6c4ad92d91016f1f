package fontcache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesCacheSingleFlight(t *testing.T) {
	var loads int32
	c := NewBytesCache(func(path string) ([]byte, error) {
		atomic.AddInt32(&loads, 1)
		return []byte(path), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.GetOrLoad("/fonts/a.ttf")
			require.NoError(t, err)
			assert.Equal(t, "/fonts/a.ttf", b.Path)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	assert.Equal(t, 1, c.Len())
}

func TestBytesCacheClearDoesNotInvalidateHeldReferences(t *testing.T) {
	c := NewBytesCache(func(path string) ([]byte, error) { return []byte{1, 2, 3}, nil })
	b, err := c.GetOrLoad("x.ttf")
	require.NoError(t, err)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []byte{1, 2, 3}, b.Data)
}

func TestFaceCacheSingleFlight(t *testing.T) {
	var parses int32
	fc := NewFaceCache[int]()
	key := FaceKey{Path: "a.ttf", Index: 0}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := fc.GetOrLoad(key, func() (int, error) {
				atomic.AddInt32(&parses, 1)
				return 42, nil
			})
			require.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&parses))
}

func TestLRUEvictsOldest(t *testing.T) {
	lru := NewLRU[int, string](2, func(k int) string { return string(rune(k)) })
	mustPut := func(k int, v string) {
		_, err := lru.GetOrProduce(k, func() (string, error) { return v, nil })
		require.NoError(t, err)
	}
	mustPut(1, "a")
	mustPut(2, "b")
	mustPut(3, "c") // evicts 1

	_, ok := lru.Get(1)
	assert.False(t, ok)
	_, ok = lru.Get(2)
	assert.True(t, ok)
	assert.Equal(t, 2, lru.Len())
}

func TestLRUGetOrProduceRunsOnce(t *testing.T) {
	var produced int32
	lru := NewLRU[string, int](10, func(k string) string { return k })

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := lru.GetOrProduce("k", func() (int, error) {
				atomic.AddInt32(&produced, 1)
				return 7, nil
			})
			require.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&produced))
}

func TestLRUProduceErrorNotCached(t *testing.T) {
	lru := NewLRU[string, int](10, func(k string) string { return k })
	_, err := lru.GetOrProduce("k", func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	_, ok := lru.Get("k")
	assert.False(t, ok)
}

func TestCacheStats(t *testing.T) {
	c := New[int, int, int](func(string) ([]byte, error) { return nil, nil })
	_, _ = c.Bytes.GetOrLoad("a.ttf")
	_, _ = c.Faces.GetOrLoad(FaceKey{Path: "a.ttf"}, func() (int, error) { return 1, nil })
	_, _ = c.Shapes.GetOrProduce(ShapeKey{FontKey: "a"}, func() (int, error) { return 1, nil })
	_, _ = c.Glyphs.GetOrProduce(GlyphKey{FontKey: "a"}, func() (int, error) { return 1, nil })

	stats := c.Stats()
	assert.Equal(t, Stats{Bytes: 1, Faces: 1, Shapes: 1, Glyphs: 1}, stats)

	c.Clear()
	assert.Equal(t, Stats{}, c.Stats())
}

func TestHashFeaturesOrderIndependent(t *testing.T) {
	a := HashFeatures(map[string]bool{"liga": true, "kern": false})
	b := HashFeatures(map[string]bool{"kern": false, "liga": true})
	assert.Equal(t, a, b)
}
