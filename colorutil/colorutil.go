// Package colorutil implements the color-parsing and geometry helpers
// shared by the rasterizer, surface, and batch-result packages.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
)

// ParseColor accepts "#RRGGBB", "#RRGGBBAA", and the literal
// "transparent" (which maps to all-zero RGBA). Any other form
// (wrong length, missing "#", empty string) returns opaque black with
// no error; the call only fails when a "#"-prefixed, correctly-sized
// string contains a non-hex digit.
func ParseColor(s string) (color.RGBA, error) {
	if s == "transparent" {
		return color.RGBA{}, nil
	}
	if len(s) == 0 || s[0] != '#' {
		return opaqueBlack, nil
	}
	hex := s[1:]
	switch len(hex) {
	case 6:
		r, okR := parseHexByte(hex[0:2])
		g, okG := parseHexByte(hex[2:4])
		b, okB := parseHexByte(hex[4:6])
		if !okR || !okG || !okB {
			return color.RGBA{}, fmt.Errorf("colorutil: malformed hex digits in %q", s)
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	case 8:
		r, okR := parseHexByte(hex[0:2])
		g, okG := parseHexByte(hex[2:4])
		b, okB := parseHexByte(hex[4:6])
		a, okA := parseHexByte(hex[6:8])
		if !okR || !okG || !okB || !okA {
			return color.RGBA{}, fmt.Errorf("colorutil: malformed hex digits in %q", s)
		}
		return color.RGBA{R: r, G: g, B: b, A: a}, nil
	default:
		return opaqueBlack, nil
	}
}

var opaqueBlack = color.RGBA{R: 0, G: 0, B: 0, A: 255}

func parseHexByte(s string) (byte, bool) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return byte(v), true
}

// QuantizeSize implements size*100 truncated to an integer, the
// contract that makes cache keys identical iff two sizes are visibly
// identical.
func QuantizeSize(size float64) int {
	return int(size * 100)
}

// Point is a device-space position, used only to describe glyph
// placement for bounding-box computation.
type Point struct {
	X, Y float64
}

// PositionedGlyph is the minimal shape BBox needs from a glyph record:
// its pen position and horizontal advance.
type PositionedGlyph struct {
	X, Y    float64
	Advance float64
}

// BBox is an axis-aligned bounding box in device units.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width reports the box's horizontal extent.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height reports the box's vertical extent.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

const defaultLineHeight = 100.0
const heightEpsilon = 1e-3

// CombineBBox computes the smallest axis-aligned box covering each
// glyph's (x, y) to (x+advance, y). Empty input yields the zero box.
// When the computed vertical extent collapses to (near) zero, a
// default line height is substituted so a baseline-only result still
// has area.
func CombineBBox(glyphs []PositionedGlyph) BBox {
	if len(glyphs) == 0 {
		return BBox{}
	}
	box := BBox{
		MinX: glyphs[0].X,
		MaxX: glyphs[0].X + glyphs[0].Advance,
		MinY: glyphs[0].Y,
		MaxY: glyphs[0].Y,
	}
	for _, g := range glyphs[1:] {
		if g.X < box.MinX {
			box.MinX = g.X
		}
		right := g.X + g.Advance
		if right > box.MaxX {
			box.MaxX = right
		}
		if g.Y < box.MinY {
			box.MinY = g.Y
		}
		if g.Y > box.MaxY {
			box.MaxY = g.Y
		}
	}
	if box.MaxY-box.MinY < heightEpsilon {
		box.MaxY = box.MinY + defaultLineHeight
	}
	return box
}
