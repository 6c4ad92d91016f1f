// Package rasterizer turns a shaping result into rasterized pixels:
// outline extraction, path rasterization to an alpha mask, and
// compositing onto a target canvas under a requested text color (spec
// component 4.F).
package rasterizer

import (
	"image/color"
	"math"

	"github.com/fontlaborg/gorender/colorutil"
	"github.com/fontlaborg/gorender/fontcache"
	"github.com/fontlaborg/gorender/parsedface"
	"github.com/fontlaborg/gorender/shaper"
)

// Format selects the top-level output a render call produces.
type Format int

const (
	FormatRaw Format = iota
	FormatPNG
	FormatSVG
)

// ParseFormat maps a render-options format name to a Format, defaulting
// to FormatRaw for an unrecognized value.
func ParseFormat(s string) Format {
	switch s {
	case "png":
		return FormatPNG
	case "svg":
		return FormatSVG
	default:
		return FormatRaw
	}
}

// Options configures one render call.
type Options struct {
	Format       Format
	TextColorHex string
	Background   string // "transparent" or a #RRGGBB[AA] hex string
	Antialias    string
	Hinting      string
	DPI          float64
	Padding      float64
}

// Output is the result of RenderOutput: exactly one of Canvas or SVG is
// populated, selected by Format.
type Output struct {
	Format Format
	Canvas Canvas // valid when Format is FormatRaw or FormatPNG
	SVG    string // valid when Format is FormatSVG
	BBox   colorutil.BBox
}

// RenderOutput is the top-level render entry point: it dispatches on
// opts.Format, producing a rasterized Canvas for FormatRaw/FormatPNG via
// Render (consulting masks), or an SVG document for FormatSVG via
// EncodeSVG (bypassing rasterization and masks entirely — per format,
// SVG is built straight from result's glyph positions and outlines,
// never from rasterized pixels).
func RenderOutput(result shaper.Result, face *parsedface.Face, size float64, opts Options, masks *Masks) (Output, error) {
	if opts.Format == FormatSVG {
		svg, bbox, err := EncodeSVG(result, face, size, opts)
		if err != nil {
			return Output{}, err
		}
		return Output{Format: FormatSVG, SVG: svg, BBox: bbox}, nil
	}

	canvas, bbox, err := Render(result, face, size, opts, masks)
	if err != nil {
		return Output{}, err
	}
	return Output{Format: opts.Format, Canvas: canvas, BBox: bbox}, nil
}

// Canvas is a straightforward premultiplied RGBA pixel buffer; package
// rsurface converts it to other formats and encodes it.
type Canvas struct {
	Width, Height int
	Pix           []byte // premultiplied RGBA, row-major
}

// Masks is the glyph-mask cache: bounded LRU, single-flighted,
// default capacity matching the shape cache (spec component 4.C map 4).
type Masks = fontcache.LRU[fontcache.GlyphKey, Mask]

// NewMaskCache constructs a glyph-mask cache with the default
// capacity.
func NewMaskCache() *Masks {
	return fontcache.NewLRU[fontcache.GlyphKey, Mask](fontcache.DefaultShapeCacheCapacity, fontcache.GlyphKey.String)
}

// Render composites result onto a newly allocated canvas sized to its
// bounding box plus padding, returning the canvas and the union of the
// placed glyph masks' rectangles in canvas pixels. That box is built
// from mask rectangles, not from scanning pixels, so it can include
// transparent mask pixels and is not clipped to the canvas; it is the
// zero box when no glyph has a mask.
//
// Empty input (no glyphs) returns a 1x1 transparent bitmap.
func Render(result shaper.Result, face *parsedface.Face, size float64, opts Options, masks *Masks) (Canvas, colorutil.BBox, error) {
	if len(result.Glyphs) == 0 {
		return Canvas{Width: 1, Height: 1, Pix: make([]byte, 4)}, colorutil.BBox{}, nil
	}

	aa := ParseAntialias(opts.Antialias)
	padding := opts.Padding

	width := int(math.Ceil(result.BBox.Width() + 2*padding))
	height := int(math.Ceil(result.BBox.Height() + 2*padding))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	scale := size / face.UnitsPerEm()
	baselineY := padding + face.Ascent()*scale

	canvas := Canvas{Width: width, Height: height, Pix: make([]byte, width*height*4)}

	bg, err := colorutil.ParseColor(opts.Background)
	if err != nil {
		return Canvas{}, colorutil.BBox{}, err
	}
	if opts.Background != "transparent" {
		fillBackground(&canvas, bg)
	}

	textColor, err := colorutil.ParseColor(opts.TextColorHex)
	if err != nil {
		return Canvas{}, colorutil.BBox{}, err
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64

	for _, g := range result.Glyphs {
		key := fontcache.GlyphKey{
			FontKey:   result.FontKey,
			FaceIndex: 0,
			GlyphID:   uint32(g.GlyphID),
			SizeQ:     colorutil.QuantizeSize(size),
		}
		mask, err := masks.GetOrProduce(key, func() (Mask, error) {
			return RasterizeGlyph(face, g.GlyphID, size, aa)
		})
		if err != nil {
			return Canvas{}, colorutil.BBox{}, err
		}
		if mask.Width == 0 || mask.Height == 0 {
			continue
		}

		destX := int(math.Floor(g.X + padding + float64(mask.Left)))
		destY := int(math.Floor(baselineY + float64(mask.Top)))
		compositeMask(&canvas, mask, destX, destY, textColor)

		if destX < minX {
			minX = float64(destX)
		}
		if destY < minY {
			minY = float64(destY)
		}
		if right := float64(destX + mask.Width); right > maxX {
			maxX = right
		}
		if bottom := float64(destY + mask.Height); bottom > maxY {
			maxY = bottom
		}
	}

	actual := colorutil.BBox{}
	if minX <= maxX && minY <= maxY {
		actual = colorutil.BBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	}

	return canvas, actual, nil
}

func fillBackground(c *Canvas, bg color.RGBA) {
	a := uint32(bg.A)
	pr := byte(uint32(bg.R) * a / 255)
	pg := byte(uint32(bg.G) * a / 255)
	pb := byte(uint32(bg.B) * a / 255)
	for i := 0; i < len(c.Pix); i += 4 {
		c.Pix[i+0] = pr
		c.Pix[i+1] = pg
		c.Pix[i+2] = pb
		c.Pix[i+3] = bg.A
	}
}

// compositeMask performs a standard premultiplied "over" blend of
// mask, tinted by color, onto c at integer destination (x, y).
func compositeMask(c *Canvas, mask Mask, x, y int, tint color.RGBA) {
	for my := 0; my < mask.Height; my++ {
		dy := y + my
		if dy < 0 || dy >= c.Height {
			continue
		}
		for mx := 0; mx < mask.Width; mx++ {
			dx := x + mx
			if dx < 0 || dx >= c.Width {
				continue
			}
			a := uint32(mask.Alpha[my*mask.Width+mx])
			if a == 0 {
				continue
			}
			srcA := uint32(tint.A) * a / 255
			srcR := uint32(tint.R) * srcA / 255
			srcG := uint32(tint.G) * srcA / 255
			srcB := uint32(tint.B) * srcA / 255

			idx := (dy*c.Width + dx) * 4
			inv := 255 - srcA
			c.Pix[idx+0] = byte((srcR*255 + uint32(c.Pix[idx+0])*inv) / 255)
			c.Pix[idx+1] = byte((srcG*255 + uint32(c.Pix[idx+1])*inv) / 255)
			c.Pix[idx+2] = byte((srcB*255 + uint32(c.Pix[idx+2])*inv) / 255)
			c.Pix[idx+3] = byte((srcA*255 + uint32(c.Pix[idx+3])*inv) / 255)
		}
	}
}
