package rasterizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fontlaborg/gorender/parsedface"
	"github.com/fontlaborg/gorender/shaper"
)

func TestEncodeSVGEmptyResultReturnsMinimalDocument(t *testing.T) {
	svg, bbox, err := EncodeSVG(shaper.Result{}, nil, 48, Options{})
	assert.NoError(t, err)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, `width="1" height="1"`)
	assert.Equal(t, float64(0), bbox.Width())
}

func TestOutlineToPathMoveLineClose(t *testing.T) {
	outline := []parsedface.OutlineCommand{
		{Op: parsedface.OpMoveTo, Args: [3]struct{ X, Y float64 }{{X: 0, Y: 0}}},
		{Op: parsedface.OpLineTo, Args: [3]struct{ X, Y float64 }{{X: 100, Y: 0}}},
		{Op: parsedface.OpLineTo, Args: [3]struct{ X, Y float64 }{{X: 100, Y: 100}}},
		{Op: parsedface.OpClose},
	}
	d, minX, minY, maxX, maxY := outlineToPath(outline, 1.0, 10, 20)
	assert.True(t, strings.HasPrefix(d, "M10.00,20.00"))
	assert.Contains(t, d, "L110.00,20.00")
	assert.Contains(t, d, "L110.00,-80.00")
	assert.Contains(t, d, "Z")
	// font outlines are y-up; SVG is y-down, so a positive font-unit Y
	// moves the path above the origin (smaller SVG Y).
	assert.Equal(t, 10.0, minX)
	assert.Equal(t, 110.0, maxX)
	assert.Equal(t, -80.0, minY)
	assert.Equal(t, 20.0, maxY)
}

func TestOutlineToPathQuadAndCube(t *testing.T) {
	outline := []parsedface.OutlineCommand{
		{Op: parsedface.OpMoveTo, Args: [3]struct{ X, Y float64 }{{X: 0, Y: 0}}},
		{Op: parsedface.OpQuadTo, Args: [3]struct{ X, Y float64 }{{X: 10, Y: 10}, {X: 20, Y: 0}}},
		{Op: parsedface.OpCubeTo, Args: [3]struct{ X, Y float64 }{{X: 25, Y: 5}, {X: 30, Y: 5}, {X: 35, Y: 0}}},
	}
	d, _, _, _, _ := outlineToPath(outline, 2.0, 0, 0)
	assert.Contains(t, d, "Q20.00,-20.00 40.00,0.00")
	assert.Contains(t, d, "C50.00,-10.00 60.00,-10.00 70.00,0.00")
}

func TestOutlineToPathEmptyOutlineReturnsEmptyPath(t *testing.T) {
	d, _, _, _, _ := outlineToPath(nil, 1.0, 0, 0)
	assert.Equal(t, "", d)
}

func TestAlphaFractionFormatsUnitInterval(t *testing.T) {
	assert.Equal(t, "1.000", alphaFraction(255))
	assert.Equal(t, "0.000", alphaFraction(0))
}
