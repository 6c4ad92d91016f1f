package fontdb

import (
	"encoding/binary"
	"fmt"
)

// ReadAxes enumerates the variable-font axes declared in an sfnt
// container's "fvar" table, if present. A font with no "fvar" table
// (i.e. not a variable font) returns an empty slice and no error.
//
// Neither golang.org/x/image/font/sfnt nor the shaping engine used
// elsewhere in this module exposes variation-axis metadata, so the
// table directory and fvar table are walked directly here; both are
// small, stable, well-documented binary layouts (OpenType spec
// "Font Variations Common Table Formats").
func ReadAxes(data []byte) ([]Axis, error) {
	offset, err := findTable(data, "fvar")
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, nil
	}
	if len(data) < offset+16 {
		return nil, fmt.Errorf("fontdb: fvar table truncated")
	}

	axesArrayOffset := int(binary.BigEndian.Uint16(data[offset+4 : offset+6]))
	axisCount := int(binary.BigEndian.Uint16(data[offset+8 : offset+10]))
	axisSize := int(binary.BigEndian.Uint16(data[offset+10 : offset+12]))

	axes := make([]Axis, 0, axisCount)
	base := offset + axesArrayOffset
	for i := 0; i < axisCount; i++ {
		rec := base + i*axisSize
		if len(data) < rec+20 {
			return nil, fmt.Errorf("fontdb: fvar axis record %d truncated", i)
		}
		tag := string(data[rec : rec+4])
		min := fixed16dot16(binary.BigEndian.Uint32(data[rec+4 : rec+8]))
		def := fixed16dot16(binary.BigEndian.Uint32(data[rec+8 : rec+12]))
		max := fixed16dot16(binary.BigEndian.Uint32(data[rec+12 : rec+16]))
		axes = append(axes, Axis{Tag: tag, Min: min, Def: def, Max: max})
	}
	return axes, nil
}

func fixed16dot16(v uint32) float64 {
	return float64(int32(v)) / 65536.0
}

// findTable returns the byte offset of the named table within an sfnt
// container, or -1 if absent. It understands both plain sfnt
// containers and TrueType collections (using the first font in the
// collection).
func findTable(data []byte, tag string) (int, error) {
	if len(data) < 12 {
		return -1, fmt.Errorf("fontdb: font data too small")
	}

	base := 0
	magic := binary.BigEndian.Uint32(data[0:4])
	if magic == 0x74746366 { // "ttcf"
		if len(data) < 16 {
			return -1, fmt.Errorf("fontdb: truncated ttc header")
		}
		base = int(binary.BigEndian.Uint32(data[12:16]))
		if len(data) < base+12 {
			return -1, fmt.Errorf("fontdb: ttc offset table out of range")
		}
	}

	numTables := int(binary.BigEndian.Uint16(data[base+4 : base+6]))
	recBase := base + 12
	for i := 0; i < numTables; i++ {
		rec := recBase + i*16
		if len(data) < rec+16 {
			return -1, fmt.Errorf("fontdb: table directory truncated")
		}
		if string(data[rec:rec+4]) == tag {
			offset := int(binary.BigEndian.Uint32(data[rec+8 : rec+12]))
			return offset, nil
		}
	}
	return -1, nil
}
