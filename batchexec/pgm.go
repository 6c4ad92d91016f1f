package batchexec

import (
	"encoding/base64"
	"fmt"

	"github.com/fontlaborg/gorender/rsurface"
)

// encodePGM renders bmp as a binary (P5) grayscale PGM: luminance from
// the non-premultiplied RGBA8 bitmap's red channel, since text masks
// here are always neutral gray or black ink.
func encodePGM(bmp rsurface.Bitmap) []byte {
	header := fmt.Sprintf("P5\n%d %d\n255\n", bmp.Width, bmp.Height)
	out := make([]byte, 0, len(header)+bmp.Width*bmp.Height)
	out = append(out, header...)
	for i := 0; i+3 < len(bmp.Data); i += 4 {
		out = append(out, bmp.Data[i])
	}
	return out
}

// encodeOutputBytes applies the job's requested transport encoding.
// "base64" is standard (RFC 4648) base64; anything else (including
// "binary") passes the bytes through as a Latin-1-safe string, which
// is only meaningful when the caller consumes the result as raw
// bytes rather than JSON text.
func encodeOutputBytes(encoding string, data []byte) string {
	if encoding == "base64" {
		return base64.StdEncoding.EncodeToString(data)
	}
	return string(data)
}
