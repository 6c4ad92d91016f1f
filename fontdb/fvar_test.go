package fontdb

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFvarFont(axes []Axis) []byte {
	fvarHeaderLen := 16
	axisSize := 20
	fvar := make([]byte, fvarHeaderLen+axisSize*len(axes))
	binary.BigEndian.PutUint16(fvar[4:6], uint16(fvarHeaderLen))
	binary.BigEndian.PutUint16(fvar[8:10], uint16(len(axes)))
	binary.BigEndian.PutUint16(fvar[10:12], uint16(axisSize))
	for i, a := range axes {
		rec := fvar[fvarHeaderLen+i*axisSize:]
		copy(rec[0:4], a.Tag)
		binary.BigEndian.PutUint32(rec[4:8], uint32(int32(a.Min*65536)))
		binary.BigEndian.PutUint32(rec[8:12], uint32(int32(a.Def*65536)))
		binary.BigEndian.PutUint32(rec[12:16], uint32(int32(a.Max*65536)))
	}

	headerLen := 12 + 16 // sfnt header + one table record
	tableOffset := headerLen
	out := make([]byte, tableOffset+len(fvar))
	binary.BigEndian.PutUint32(out[0:4], 0x00010000)
	binary.BigEndian.PutUint16(out[4:6], 1) // numTables
	rec := out[12:28]
	copy(rec[0:4], "fvar")
	binary.BigEndian.PutUint32(rec[8:12], uint32(tableOffset))
	binary.BigEndian.PutUint32(rec[12:16], uint32(len(fvar)))
	copy(out[tableOffset:], fvar)
	return out
}

func TestReadAxesParsesFvarTable(t *testing.T) {
	want := []Axis{{Tag: "wght", Min: 100, Def: 400, Max: 900}}
	data := buildFvarFont(want)

	axes, err := ReadAxes(data)
	require.NoError(t, err)
	require.Len(t, axes, 1)
	assert.Equal(t, "wght", axes[0].Tag)
	assert.InDelta(t, 100, axes[0].Min, 0.01)
	assert.InDelta(t, 400, axes[0].Def, 0.01)
	assert.InDelta(t, 900, axes[0].Max, 0.01)
}

func TestReadAxesNoFvarReturnsEmpty(t *testing.T) {
	axes, err := ReadAxes(minimalSfntHeader())
	require.NoError(t, err)
	assert.Empty(t, axes)
}
