// Package fontdb implements font resolution: turning a font
// specification (family name or path, size, weight, style, variation
// axes, feature set) into a font handle backed by shared, cached font
// bytes, plus the script-to-family fallback table used when a
// requested font doesn't cover a run's code points.
package fontdb

import "github.com/fontlaborg/gorender/fontcache"

// Style enumerates the three recognized font styles.
type Style int

const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

func (s Style) String() string {
	switch s {
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	default:
		return "normal"
	}
}

// Spec is an immutable font specification: the source (a family name
// or a filesystem path), device-unit size, OpenType weight class
// (1-1000), style, variation-axis coordinates, and enabled OpenType
// features.
type Spec struct {
	Source     string
	Size       float64
	Weight     int
	Style      Style
	Variations map[string]float64
	Features   map[string]bool
}

// Handle is produced by resolution: a stable canonical key (typically
// the absolute path, or a synthetic "family@index" token for
// collection members), the optional source path, the shared font
// bytes, and the face index within those bytes. Two handles with equal
// Key are interchangeable.
type Handle struct {
	Key       string
	Path      string
	Bytes     *fontcache.Bytes
	FaceIndex int
}
