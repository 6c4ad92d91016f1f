// Package parsedface wraps golang.org/x/image/font/sfnt to provide the
// "parsed face" view over font bytes described by the data model: a
// units-per-em grid, ascent/descent metrics, code-point coverage
// testing, and glyph outline extraction as move/line/quad/cubic/close
// commands in font units.
package parsedface

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/fontlaborg/gorender/ferrors"
)

// OutlineOp identifies one drawing command in a glyph outline.
type OutlineOp int

const (
	OpMoveTo OutlineOp = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
	OpClose
)

// OutlineCommand is one step of a glyph outline, in font units. Args
// holds up to three control/end points depending on Op: MoveTo/LineTo
// use Args[0], QuadTo uses Args[0] (control) and Args[1] (end), CubeTo
// uses all three, Close uses none.
type OutlineCommand struct {
	Op   OutlineOp
	Args [3]struct{ X, Y float64 }
}

// Face is a parsed sfnt face bound to face index 0 (the formats this
// engine accepts do not nest multiple faces within one byte buffer
// beyond what golang.org/x/image/font/sfnt itself resolves).
type Face struct {
	path string

	mu         sync.Mutex
	buf        sfnt.Buffer
	font       *sfnt.Font
	unitsPerEm float64
	ascent     float64
	descent    float64
}

// Parse parses font bytes into a Face, computing and caching its
// units-per-em and ascent/descent metrics.
func Parse(data []byte, path string) (*Face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, &ferrors.InvalidFontData{Path: path, Reason: err.Error()}
	}
	face := &Face{path: path, font: f}

	upem, err := f.UnitsPerEm()
	if err != nil {
		return nil, &ferrors.InvalidFontData{Path: path, Reason: err.Error()}
	}
	face.unitsPerEm = float64(upem)

	// Querying metrics at ppem == unitsPerEm yields values expressed
	// directly in font units (scale factor of 1), which is exactly
	// what the rasterizer's baseline-placement formula needs before
	// it applies size/upem itself.
	m, err := f.Metrics(&face.buf, fixed.I(int(upem)), font.HintingNone)
	if err != nil {
		return nil, &ferrors.InvalidFontData{Path: path, Reason: err.Error()}
	}
	face.ascent = fixedToFloat(m.Ascent)
	face.descent = fixedToFloat(m.Descent)

	return face, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// UnitsPerEm reports the font's internal coordinate grid size.
func (f *Face) UnitsPerEm() float64 { return f.unitsPerEm }

// Ascent reports the font's ascent in font units, above the baseline.
func (f *Face) Ascent() float64 { return f.ascent }

// Descent reports the font's descent in font units, below the
// baseline (as a positive magnitude).
func (f *Face) Descent() float64 { return f.descent }

// Path returns the canonical path this face was parsed from.
func (f *Face) Path() string { return f.path }

// CoversRune reports whether r maps to a non-.notdef glyph.
func (f *Face) CoversRune(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	gi, err := f.font.GlyphIndex(&f.buf, r)
	return err == nil && gi != 0
}

// GlyphIndex returns the glyph id for r, or 0 (.notdef) if unmapped.
func (f *Face) GlyphIndex(r rune) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	gi, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return uint16(gi)
}

// Outline returns the move/line/quad/cubic/close command sequence for
// glyphID, in font units. A glyph with no outline (e.g. space) returns
// an empty, non-nil slice.
func (f *Face) Outline(glyphID uint16) ([]OutlineCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ppem := fixed.I(int(f.unitsPerEm))
	segs, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(glyphID), ppem, nil)
	if err != nil {
		return nil, &ferrors.RasterizationFailed{GlyphID: uint32(glyphID), Path: f.path, Reason: err.Error()}
	}

	out := make([]OutlineCommand, 0, len(segs))
	for _, seg := range segs {
		cmd := OutlineCommand{}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			cmd.Op = OpMoveTo
			cmd.Args[0].X, cmd.Args[0].Y = fixedToFloat(seg.Args[0].X), fixedToFloat(seg.Args[0].Y)
		case sfnt.SegmentOpLineTo:
			cmd.Op = OpLineTo
			cmd.Args[0].X, cmd.Args[0].Y = fixedToFloat(seg.Args[0].X), fixedToFloat(seg.Args[0].Y)
		case sfnt.SegmentOpQuadTo:
			cmd.Op = OpQuadTo
			cmd.Args[0].X, cmd.Args[0].Y = fixedToFloat(seg.Args[0].X), fixedToFloat(seg.Args[0].Y)
			cmd.Args[1].X, cmd.Args[1].Y = fixedToFloat(seg.Args[1].X), fixedToFloat(seg.Args[1].Y)
		case sfnt.SegmentOpCubeTo:
			cmd.Op = OpCubeTo
			cmd.Args[0].X, cmd.Args[0].Y = fixedToFloat(seg.Args[0].X), fixedToFloat(seg.Args[0].Y)
			cmd.Args[1].X, cmd.Args[1].Y = fixedToFloat(seg.Args[1].X), fixedToFloat(seg.Args[1].Y)
			cmd.Args[2].X, cmd.Args[2].Y = fixedToFloat(seg.Args[2].X), fixedToFloat(seg.Args[2].Y)
		}
		out = append(out, cmd)
	}
	// sfnt represents glyph outlines as one or more closed contours;
	// each contour after the first begins with its own MoveTo, so a
	// trailing Close is implicit at end-of-contour in its model. This
	// engine's compositor wants an explicit Close per contour.
	closed := make([]OutlineCommand, 0, len(out)+4)
	for i, cmd := range out {
		if cmd.Op == OpMoveTo && i != 0 {
			closed = append(closed, OutlineCommand{Op: OpClose})
		}
		closed = append(closed, cmd)
	}
	if len(closed) > 0 {
		closed = append(closed, OutlineCommand{Op: OpClose})
	}
	return closed, nil
}
