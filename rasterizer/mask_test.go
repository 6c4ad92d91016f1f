package rasterizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fontlaborg/gorender/parsedface"
)

func TestParseAntialiasModes(t *testing.T) {
	assert.Equal(t, AANone, ParseAntialias("none"))
	assert.Equal(t, AAGrayscale, ParseAntialias("grayscale"))
	assert.Equal(t, AAGrayscale, ParseAntialias("subpixel"))
	assert.Equal(t, AAGrayscale, ParseAntialias("unknown"))
}

func TestArgCount(t *testing.T) {
	assert.Equal(t, 1, argCount(parsedface.OpMoveTo))
	assert.Equal(t, 1, argCount(parsedface.OpLineTo))
	assert.Equal(t, 2, argCount(parsedface.OpQuadTo))
	assert.Equal(t, 3, argCount(parsedface.OpCubeTo))
	assert.Equal(t, 0, argCount(parsedface.OpClose))
}
