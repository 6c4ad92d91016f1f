package fontdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExplicitPath(t *testing.T) {
	path := writeTempFont(t)
	db := New()
	h, err := db.Resolve(Spec{Source: path})
	require.NoError(t, err)
	assert.Equal(t, path, h.Path)
	assert.NotNil(t, h.Bytes)
}

func TestResolveMissingFontFails(t *testing.T) {
	db := New()
	_, err := db.Resolve(Spec{Source: "/definitely/not/here/Missing-Regular"})
	assert.Error(t, err)
}

func TestFallbacksUnknownScriptIsLatin(t *testing.T) {
	assert.Equal(t, Fallbacks("Latin"), Fallbacks("Klingon"))
}

func TestFallbacksArabic(t *testing.T) {
	list := Fallbacks("Arabic")
	assert.Contains(t, list, "NotoNaskhArabic-Regular")
}

func TestValidateCoordinatesUnknownAxis(t *testing.T) {
	axes := []Axis{{Tag: "wght", Min: 100, Def: 400, Max: 900}}
	_, diags := ValidateCoordinates(axes, map[string]float64{"wdth": 100})
	require.Len(t, diags, 1)
}

func TestValidateCoordinatesClampsOutOfRange(t *testing.T) {
	axes := []Axis{{Tag: "wght", Min: 100, Def: 400, Max: 900}}
	out, diags := ValidateCoordinates(axes, map[string]float64{"wght": 1200})
	require.Len(t, diags, 1)
	assert.Equal(t, 900.0, out["wght"])
}

func TestValidateCoordinatesInRangePassesThrough(t *testing.T) {
	axes := []Axis{{Tag: "wght", Min: 100, Def: 400, Max: 900}}
	out, diags := ValidateCoordinates(axes, map[string]float64{"wght": 550})
	assert.Empty(t, diags)
	assert.Equal(t, 550.0, out["wght"])
}

func writeTempFont(t *testing.T) string {
	t.Helper()
	f, err := newTempFile(t, "*.ttf")
	require.NoError(t, err)
	_, err = f.Write(minimalSfntHeader())
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}
