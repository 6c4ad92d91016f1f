package rasterizer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fontlaborg/gorender/shaper"
)

func TestRenderEmptyResultReturnsOnePixelTransparent(t *testing.T) {
	canvas, bbox, err := Render(shaper.Result{}, nil, 48, Options{}, NewMaskCache())
	assert.NoError(t, err)
	assert.Equal(t, 1, canvas.Width)
	assert.Equal(t, 1, canvas.Height)
	assert.Equal(t, []byte{0, 0, 0, 0}, canvas.Pix)
	assert.Equal(t, float64(0), bbox.Width())
}

func TestFillBackgroundPremultipliesOpaque(t *testing.T) {
	c := Canvas{Width: 2, Height: 1, Pix: make([]byte, 8)}
	fillBackground(&c, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	assert.Equal(t, byte(200), c.Pix[0])
	assert.Equal(t, byte(100), c.Pix[1])
	assert.Equal(t, byte(50), c.Pix[2])
	assert.Equal(t, byte(255), c.Pix[3])
	// second pixel filled identically
	assert.Equal(t, c.Pix[0:4], c.Pix[4:8])
}

func TestCompositeMaskFullyOpaqueOverwritesBackground(t *testing.T) {
	c := Canvas{Width: 1, Height: 1, Pix: []byte{10, 20, 30, 255}}
	mask := Mask{Width: 1, Height: 1, Alpha: []byte{255}}
	compositeMask(&c, mask, 0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	assert.Equal(t, byte(1), c.Pix[0])
	assert.Equal(t, byte(2), c.Pix[1])
	assert.Equal(t, byte(3), c.Pix[2])
	assert.Equal(t, byte(255), c.Pix[3])
}

func TestCompositeMaskZeroAlphaLeavesBackgroundUnchanged(t *testing.T) {
	c := Canvas{Width: 1, Height: 1, Pix: []byte{10, 20, 30, 255}}
	mask := Mask{Width: 1, Height: 1, Alpha: []byte{0}}
	compositeMask(&c, mask, 0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	assert.Equal(t, []byte{10, 20, 30, 255}, c.Pix)
}

func TestParseFormatModes(t *testing.T) {
	assert.Equal(t, FormatRaw, ParseFormat("raw"))
	assert.Equal(t, FormatPNG, ParseFormat("png"))
	assert.Equal(t, FormatSVG, ParseFormat("svg"))
	assert.Equal(t, FormatRaw, ParseFormat("unknown"))
}

func TestRenderOutputDispatchesSVGWithoutMaskCache(t *testing.T) {
	out, err := RenderOutput(shaper.Result{}, nil, 48, Options{Format: FormatSVG}, nil)
	assert.NoError(t, err)
	assert.Equal(t, FormatSVG, out.Format)
	assert.Contains(t, out.SVG, "<svg")
}

func TestRenderOutputDispatchesRawThroughRender(t *testing.T) {
	out, err := RenderOutput(shaper.Result{}, nil, 48, Options{Format: FormatRaw}, NewMaskCache())
	assert.NoError(t, err)
	assert.Equal(t, FormatRaw, out.Format)
	assert.Equal(t, 1, out.Canvas.Width)
}

func TestCompositeMaskOutOfBoundsIsIgnored(t *testing.T) {
	c := Canvas{Width: 1, Height: 1, Pix: []byte{0, 0, 0, 0}}
	mask := Mask{Width: 1, Height: 1, Alpha: []byte{255}}
	assert.NotPanics(t, func() {
		compositeMask(&c, mask, 5, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	})
	assert.Equal(t, []byte{0, 0, 0, 0}, c.Pix)
}
