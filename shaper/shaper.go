// Package shaper positions glyphs for one text run given a resolved
// font: the shape–rasterize–cache pipeline's shaping stage (spec
// component 4.E), backed by a complex-script shaping engine.
package shaper

import (
	"bytes"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/fontlaborg/gorender/colorutil"
	"github.com/fontlaborg/gorender/ferrors"
	"github.com/fontlaborg/gorender/parsedface"
	"github.com/fontlaborg/gorender/textlayout"
)

// Face bundles the two parsed views over one set of font bytes this
// engine needs: the metrics/outline/coverage view ([parsedface.Face])
// used for font-resolution coverage checks and rasterization, and the
// complex-script shaping view from go-text/typesetting.
type Face struct {
	Key     string
	Metrics *parsedface.Face
	shape   *gotext.Face
}

// NewFace parses data once for shaping purposes. Metrics must be the
// already-parsed metrics view over the same bytes (callers typically
// obtain both from one fontcache.FaceCache entry).
func NewFace(data []byte, key string, metrics *parsedface.Face) (*Face, error) {
	f, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &ferrors.InvalidFontData{Path: key, Reason: err.Error()}
	}
	return &Face{Key: key, Metrics: metrics, shape: f}, nil
}

// Covers reports whether every rune in text maps to a non-absent
// glyph, the coverage test used by the font-resolution-for-shaping
// steps in spec component 4.E.
func (f *Face) Covers(text string) bool {
	for _, r := range text {
		if !f.Metrics.CoversRune(r) {
			return false
		}
	}
	return true
}

// Glyph is one positioned glyph in device units, relative to the run's
// pen origin.
type Glyph struct {
	GlyphID uint16
	Cluster int
	X, Y    float64
	Advance float64
}

// Result is the shaping result for one run: its text, ordered
// positioned glyphs, total advance, bounding box, resolved font key,
// and direction.
type Result struct {
	Text      string
	Glyphs    []Glyph
	Advance   float64
	BBox      colorutil.BBox
	FontKey   string
	Direction textlayout.Direction
}

// scriptTags maps the long-form script names textlayout emits to the
// four-letter ISO-15924 tags the shaping engine expects. Unmapped
// scripts default to Latin, matching fontdb.Fallbacks, which returns
// the Latin list for unknown scripts.
var scriptTags = map[string]string{
	"Latin":      "Latn",
	"Arabic":     "Arab",
	"Hebrew":     "Hebr",
	"Cyrillic":   "Cyrl",
	"Greek":      "Grek",
	"Han":        "Hani",
	"Hiragana":   "Hira",
	"Katakana":   "Kana",
	"Thai":       "Thai",
	"Devanagari": "Deva",
}

func scriptTag(script string) string {
	if tag, ok := scriptTags[script]; ok {
		return tag
	}
	return "Latn"
}

// Shape positions glyphs for run using face at size (device units).
// Direction, script, and language are taken from run. Shape always
// uses face; choosing between a run font, the requested face, and
// fallback faces is done separately by [Resolve].
func Shape(run textlayout.Run, face *Face, size float64) (Result, error) {
	if len(run.Text) == 0 {
		return Result{Text: run.Text, FontKey: face.Key, Direction: run.Direction}, nil
	}

	runes := []rune(run.Text)
	dir := di.DirectionLTR
	if run.Direction == textlayout.DirRTL {
		dir = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      face.shape,
		Size:      fixed.I(int(size)),
		Script:    language.Script(scriptTag(run.Script)),
		Language:  language.NewLanguage(run.Language),
	}

	shaped := (&shaping.HarfbuzzShaper{}).Shape(input)
	if len(shaped.Glyphs) == 0 {
		return Result{}, &ferrors.ShapingFailed{Text: run.Text, Path: face.Key, Reason: "shaper produced zero glyphs"}
	}

	scale := size / face.Metrics.UnitsPerEm()
	glyphs := make([]Glyph, 0, len(shaped.Glyphs))
	bboxGlyphs := make([]colorutil.PositionedGlyph, 0, len(shaped.Glyphs))

	pen := 0.0
	for _, g := range shaped.Glyphs {
		x := pen + fixedToFloat(g.XOffset)*scale
		y := fixedToFloat(g.YOffset) * scale
		advance := fixedToFloat(g.XAdvance) * scale

		glyphs = append(glyphs, Glyph{
			GlyphID: uint16(g.GlyphID),
			Cluster: g.ClusterIndex,
			X:       x,
			Y:       y,
			Advance: advance,
		})
		bboxGlyphs = append(bboxGlyphs, colorutil.PositionedGlyph{X: x, Y: y, Advance: advance})
		pen += advance
	}

	return Result{
		Text:      run.Text,
		Glyphs:    glyphs,
		Advance:   pen,
		BBox:      colorutil.CombineBBox(bboxGlyphs),
		FontKey:   face.Key,
		Direction: run.Direction,
	}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// Resolve picks which face to shape run with, following the
// font-resolution-for-shaping policy: an explicit run font wins if it
// covers every code point, else the requested face if it covers,
// else the first fallback-list face (by script) that covers, else the
// requested face with a logged warning.
func Resolve(run textlayout.Run, requested *Face, runFace *Face, fallbacks []*Face) (*Face, bool) {
	if runFace != nil && runFace.Covers(run.Text) {
		return runFace, true
	}
	if requested.Covers(run.Text) {
		return requested, true
	}
	for _, fb := range fallbacks {
		if fb.Covers(run.Text) {
			return fb, true
		}
	}
	return requested, false
}
