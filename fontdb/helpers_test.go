package fontdb

import (
	"os"
	"testing"
)

func newTempFile(t *testing.T, pattern string) (*os.File, error) {
	t.Helper()
	return os.CreateTemp(t.TempDir(), pattern)
}

// minimalSfntHeader returns a tiny, syntactically valid sfnt header
// with zero tables, enough for resolution tests that never parse
// glyph data.
func minimalSfntHeader() []byte {
	return []byte{
		0x00, 0x01, 0x00, 0x00, // sfnt version 1.0
		0x00, 0x00, // numTables = 0
		0x00, 0x00, // searchRange
		0x00, 0x00, // entrySelector
		0x00, 0x00, // rangeShift
	}
}
