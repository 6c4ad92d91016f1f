package shaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"

	"github.com/fontlaborg/gorender/textlayout"
)

func TestScriptTagKnownScripts(t *testing.T) {
	assert.Equal(t, "Arab", scriptTag("Arabic"))
	assert.Equal(t, "Deva", scriptTag("Devanagari"))
	assert.Equal(t, "Latn", scriptTag("Latin"))
}

func TestScriptTagUnknownDefaultsLatin(t *testing.T) {
	assert.Equal(t, "Latn", scriptTag("Klingon"))
}

func TestFixedToFloat(t *testing.T) {
	assert.InDelta(t, 48.0, fixedToFloat(fixed.I(48)), 1e-9)
}

func TestShapeEmptyRunReturnsEmptyResult(t *testing.T) {
	// An empty run never reaches the shaping engine, so this is safe
	// to exercise without a parsed face fixture.
	face := &Face{Key: "noop"}
	run := textlayout.Run{Text: "", Script: "Common", Direction: textlayout.DirLTR}
	result, err := Shape(run, face, 48)
	assert.NoError(t, err)
	assert.Empty(t, result.Glyphs)
}
