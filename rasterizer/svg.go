package rasterizer

import (
	"fmt"
	"math"
	"strings"

	"github.com/fontlaborg/gorender/colorutil"
	"github.com/fontlaborg/gorender/parsedface"
	"github.com/fontlaborg/gorender/shaper"
)

// EncodeSVG produces an SVG document directly from result's glyph
// positions and outlines, sized the same way Render sizes its canvas
// and using the same baseline. Unlike Render, it applies each glyph's
// vertical offset (Glyph.Y) and does not snap positions to whole
// pixels. It never rasterizes
// to pixels and never consults or populates the glyph-mask cache: each
// glyph's outline is emitted as one <path> built straight from
// parsedface.Face.Outline.
//
// Empty input (no glyphs) returns a minimal empty <svg> document.
func EncodeSVG(result shaper.Result, face *parsedface.Face, size float64, opts Options) (string, colorutil.BBox, error) {
	if len(result.Glyphs) == 0 {
		return `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`, colorutil.BBox{}, nil
	}

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

	fill, err := colorutil.ParseColor(opts.TextColorHex)
	if err != nil {
		return "", colorutil.BBox{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	b.WriteByte('\n')

	if opts.Background != "transparent" {
		bg, err := colorutil.ParseColor(opts.Background)
		if err != nil {
			return "", colorutil.BBox{}, err
		}
		fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="rgba(%d,%d,%d,%s)"/>`, width, height, bg.R, bg.G, bg.B, alphaFraction(bg.A))
		b.WriteByte('\n')
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64

	for _, g := range result.Glyphs {
		outline, err := face.Outline(g.GlyphID)
		if err != nil {
			return "", colorutil.BBox{}, err
		}
		if len(outline) == 0 {
			continue
		}

		originX := g.X + padding
		originY := baselineY - g.Y

		d, left, top, right, bottom := outlineToPath(outline, scale, originX, originY)
		if d == "" {
			continue
		}
		fmt.Fprintf(&b, `<path d="%s" fill="rgba(%d,%d,%d,%s)"/>`, d, fill.R, fill.G, fill.B, alphaFraction(fill.A))
		b.WriteByte('\n')

		if left < minX {
			minX = left
		}
		if top < minY {
			minY = top
		}
		if right > maxX {
			maxX = right
		}
		if bottom > maxY {
			maxY = bottom
		}
	}

	b.WriteString("</svg>")

	actual := colorutil.BBox{}
	if minX <= maxX && minY <= maxY {
		actual = colorutil.BBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	}

	return b.String(), actual, nil
}

// outlineToPath converts one glyph outline, in font units, into an SVG
// path data string positioned at (originX, originY) in device space.
// Font outlines are y-up; SVG is y-down, so Y is negated before
// translation.
func outlineToPath(outline []parsedface.OutlineCommand, scale, originX, originY float64) (d string, minX, minY, maxX, maxY float64) {
	var b strings.Builder
	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY = -math.MaxFloat64, -math.MaxFloat64

	track := func(x, y float64) {
		if x < minX {
			minX = x
		}
		if y < minY {
			minY = y
		}
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
	}
	point := func(i int, args [3]struct{ X, Y float64 }) (float64, float64) {
		x := originX + args[i].X*scale
		y := originY - args[i].Y*scale
		track(x, y)
		return x, y
	}

	for _, cmd := range outline {
		switch cmd.Op {
		case parsedface.OpMoveTo:
			x, y := point(0, cmd.Args)
			fmt.Fprintf(&b, "M%.2f,%.2f ", x, y)
		case parsedface.OpLineTo:
			x, y := point(0, cmd.Args)
			fmt.Fprintf(&b, "L%.2f,%.2f ", x, y)
		case parsedface.OpQuadTo:
			cx, cy := point(0, cmd.Args)
			x, y := point(1, cmd.Args)
			fmt.Fprintf(&b, "Q%.2f,%.2f %.2f,%.2f ", cx, cy, x, y)
		case parsedface.OpCubeTo:
			c1x, c1y := point(0, cmd.Args)
			c2x, c2y := point(1, cmd.Args)
			x, y := point(2, cmd.Args)
			fmt.Fprintf(&b, "C%.2f,%.2f %.2f,%.2f %.2f,%.2f ", c1x, c1y, c2x, c2y, x, y)
		case parsedface.OpClose:
			b.WriteString("Z ")
		}
	}

	if minX > maxX || minY > maxY {
		return "", 0, 0, 0, 0
	}
	return strings.TrimSpace(b.String()), minX, minY, maxX, maxY
}

// alphaFraction renders an 8-bit alpha channel as the [0,1] fraction
// rgba() expects.
func alphaFraction(a uint8) string {
	return fmt.Sprintf("%.3f", float64(a)/255.0)
}
