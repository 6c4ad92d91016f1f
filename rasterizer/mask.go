package rasterizer

import (
	"image"
	"math"

	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"

	"github.com/fontlaborg/gorender/parsedface"
)

// Mask is an alpha-only 8-bit glyph mask plus its placement relative
// to the glyph origin. A glyph with no outline is represented by a
// zero-sized mask.
type Mask struct {
	Width, Height int
	Left, Top     int
	Alpha         []byte
}

// Antialias selects mask generation fidelity.
type Antialias int

const (
	AAGrayscale Antialias = iota
	AANone
	AASubpixel
)

// ParseAntialias maps the render-options antialias name to an
// Antialias mode, defaulting to grayscale for an unrecognized value.
func ParseAntialias(s string) Antialias {
	switch s {
	case "none":
		return AANone
	case "subpixel":
		// Subpixel rendering is advisory; this backend degrades it to
		// grayscale, matching the spec's own allowance.
		return AAGrayscale
	default:
		return AAGrayscale
	}
}

// RasterizeGlyph extracts glyphID's outline from face, scales it to
// size (scale = size / units-per-em), and rasterizes it into an alpha
// mask sized to the outline's tight bounding box.
func RasterizeGlyph(face *parsedface.Face, glyphID uint16, size float64, aa Antialias) (Mask, error) {
	outline, err := face.Outline(glyphID)
	if err != nil {
		return Mask{}, err
	}
	if len(outline) == 0 {
		return Mask{}, nil
	}

	scale := float32(size / face.UnitsPerEm())

	type pt struct{ x, y float32 }
	pts := make([]pt, 0, len(outline)*3)
	for _, cmd := range outline {
		n := argCount(cmd.Op)
		for i := 0; i < n; i++ {
			pts = append(pts, pt{
				x: float32(cmd.Args[i].X) * scale,
				y: -float32(cmd.Args[i].Y) * scale,
			})
		}
	}
	if len(pts) == 0 {
		return Mask{}, nil
	}

	minX, minY := pts[0].x, pts[0].y
	maxX, maxY := pts[0].x, pts[0].y
	for _, p := range pts {
		minX = float32(math.Min(float64(minX), float64(p.x)))
		minY = float32(math.Min(float64(minY), float64(p.y)))
		maxX = float32(math.Max(float64(maxX), float64(p.x)))
		maxY = float32(math.Max(float64(maxY), float64(p.y)))
	}

	left := int(math.Floor(float64(minX)))
	top := int(math.Floor(float64(minY)))
	width := int(math.Ceil(float64(maxX))) - left
	height := int(math.Ceil(float64(maxY))) - top
	if width <= 0 || height <= 0 {
		return Mask{}, nil
	}

	r := vector.NewRasterizer(width, height)
	offX, offY := float32(-left), float32(-top)
	for _, cmd := range outline {
		switch cmd.Op {
		case parsedface.OpMoveTo:
			r.MoveTo(f32.Vec2{float32(cmd.Args[0].X)*scale + offX, -float32(cmd.Args[0].Y)*scale + offY})
		case parsedface.OpLineTo:
			r.LineTo(f32.Vec2{float32(cmd.Args[0].X)*scale + offX, -float32(cmd.Args[0].Y)*scale + offY})
		case parsedface.OpQuadTo:
			r.QuadTo(
				f32.Vec2{float32(cmd.Args[0].X)*scale + offX, -float32(cmd.Args[0].Y)*scale + offY},
				f32.Vec2{float32(cmd.Args[1].X)*scale + offX, -float32(cmd.Args[1].Y)*scale + offY},
			)
		case parsedface.OpCubeTo:
			r.CubeTo(
				f32.Vec2{float32(cmd.Args[0].X)*scale + offX, -float32(cmd.Args[0].Y)*scale + offY},
				f32.Vec2{float32(cmd.Args[1].X)*scale + offX, -float32(cmd.Args[1].Y)*scale + offY},
				f32.Vec2{float32(cmd.Args[2].X)*scale + offX, -float32(cmd.Args[2].Y)*scale + offY},
			)
		case parsedface.OpClose:
			r.ClosePath()
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	alpha := dst.Pix
	if aa == AANone {
		alpha = make([]byte, len(dst.Pix))
		copy(alpha, dst.Pix)
		for i, a := range alpha {
			if a > 127 {
				alpha[i] = 255
			} else {
				alpha[i] = 0
			}
		}
	}

	return Mask{Width: width, Height: height, Left: left, Top: top, Alpha: alpha}, nil
}

func argCount(op parsedface.OutlineOp) int {
	switch op {
	case parsedface.OpMoveTo, parsedface.OpLineTo:
		return 1
	case parsedface.OpQuadTo:
		return 2
	case parsedface.OpCubeTo:
		return 3
	default:
		return 0
	}
}
