package parsedface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

func TestParseRejectsGarbageData(t *testing.T) {
	_, err := Parse([]byte("not a font"), "bogus.ttf")
	assert.Error(t, err)
}

func TestFixedToFloatRoundTrip(t *testing.T) {
	assert.InDelta(t, 12.5, fixedToFloat(fixed.I(12)+fixed.Int26_6(32)), 1e-6)
}
