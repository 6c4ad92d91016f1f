package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorHex6(t *testing.T) {
	c, err := ParseColor("#112233")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 255}, c)
}

func TestParseColorHex8(t *testing.T) {
	c, err := ParseColor("#11223344")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, c)
}

func TestParseColorTransparent(t *testing.T) {
	c, err := ParseColor("transparent")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, c)
}

func TestParseColorOtherwiseOpaqueBlack(t *testing.T) {
	for _, s := range []string{"", "blue", "#fff", "#1234567"} {
		c, err := ParseColor(s)
		require.NoError(t, err, s)
		assert.Equal(t, opaqueBlack, c, s)
	}
}

func TestParseColorMalformedHexFails(t *testing.T) {
	_, err := ParseColor("#gggggg")
	assert.Error(t, err)
}

func TestQuantizeSize(t *testing.T) {
	assert.Equal(t, 4800, QuantizeSize(48.0))
	assert.Equal(t, 4805, QuantizeSize(48.05))
}

func TestCombineBBoxEmpty(t *testing.T) {
	assert.Equal(t, BBox{}, CombineBBox(nil))
}

func TestCombineBBoxSubstitutesDefaultHeight(t *testing.T) {
	glyphs := []PositionedGlyph{{X: 0, Y: 0, Advance: 10}, {X: 10, Y: 0, Advance: 5}}
	box := CombineBBox(glyphs)
	assert.InDelta(t, 15.0, box.Width(), 1e-9)
	assert.InDelta(t, defaultLineHeight, box.Height(), 1e-9)
}

func TestCombineBBoxRealHeight(t *testing.T) {
	glyphs := []PositionedGlyph{{X: 0, Y: -20, Advance: 10}, {X: 0, Y: 5, Advance: 10}}
	box := CombineBBox(glyphs)
	assert.InDelta(t, 25.0, box.Height(), 1e-9)
}
