// Package rsurface converts a backend-produced pixel buffer into a
// canonical RGBA8 representation and encodes it, the format
// conversion and output-encoding stage of spec component 4.G.
package rsurface

import (
	"bytes"
	"image"
	"image/png"

	"github.com/fontlaborg/gorender/ferrors"
)

// Format identifies a surface's raw pixel layout.
type Format int

const (
	FormatRGBA Format = iota
	FormatBGRA
	FormatGray
)

// Surface is a raw pixel buffer produced by the rasterizer, prior to
// format conversion or encoding.
type Surface struct {
	Width, Height int
	Format        Format
	Premultiplied bool
	Data          []byte
}

// FromRGBA wraps an RGBA (or premultiplied RGBA) buffer.
func FromRGBA(width, height int, data []byte, premultiplied bool) Surface {
	return Surface{Width: width, Height: height, Format: FormatRGBA, Premultiplied: premultiplied, Data: data}
}

// FromBGRA wraps a BGRA (or premultiplied BGRA) buffer.
func FromBGRA(width, height int, data []byte, premultiplied bool) Surface {
	return Surface{Width: width, Height: height, Format: FormatBGRA, Premultiplied: premultiplied, Data: data}
}

// FromGray wraps an alpha-only grayscale buffer, as produced for
// glyph-mask diagnostics; grayscale surfaces are never premultiplied.
func FromGray(width, height int, data []byte) Surface {
	return Surface{Width: width, Height: height, Format: FormatGray, Data: data}
}

// OutputFormat selects the surface's encoding.
type OutputFormat int

const (
	OutputRaw OutputFormat = iota
	OutputPNG
	OutputSVG
)

// Bitmap is width/height plus non-premultiplied RGBA8 pixel data.
type Bitmap struct {
	Width, Height int
	Data          []byte
}

// Encode converts s to canonical non-premultiplied RGBA8 and encodes
// it per format. SVG is always rejected: a raster surface carries no
// path information to re-emit as vector output.
func Encode(s Surface, format OutputFormat) (Bitmap, []byte, error) {
	if format == OutputSVG {
		return Bitmap{}, nil, &ferrors.RenderError{Reason: "surface cannot be converted to SVG output"}
	}

	rgba, err := s.toRGBA()
	if err != nil {
		return Bitmap{}, nil, err
	}
	bmp := Bitmap{Width: s.Width, Height: s.Height, Data: rgba}

	if format == OutputRaw {
		return bmp, nil, nil
	}

	png, err := encodePNG(bmp)
	if err != nil {
		return Bitmap{}, nil, err
	}
	return bmp, png, nil
}

// toRGBA normalizes s to non-premultiplied RGBA8 byte order.
func (s Surface) toRGBA() ([]byte, error) {
	switch s.Format {
	case FormatGray:
		return expandGray(s.Data), nil
	case FormatRGBA:
		data := append([]byte(nil), s.Data...)
		if s.Premultiplied {
			unpremultiply(data)
		}
		return data, nil
	case FormatBGRA:
		data := append([]byte(nil), s.Data...)
		bgraToRGBA(data)
		if s.Premultiplied {
			unpremultiply(data)
		}
		return data, nil
	default:
		return nil, &ferrors.RenderError{Reason: "unknown surface format"}
	}
}

func expandGray(data []byte) []byte {
	out := make([]byte, 0, len(data)*4)
	for _, v := range data {
		out = append(out, v, v, v, 255)
	}
	return out
}

func bgraToRGBA(data []byte) {
	for i := 0; i+3 < len(data); i += 4 {
		data[i], data[i+2] = data[i+2], data[i]
	}
}

// unpremultiply divides each RGB channel by alpha/255, clamped, in
// place. Fully transparent or fully opaque pixels are left untouched
// (division would be a no-op or undefined).
func unpremultiply(data []byte) {
	for i := 0; i+3 < len(data); i += 4 {
		a := data[i+3]
		if a == 0 || a == 255 {
			continue
		}
		af := float64(a) / 255.0
		for c := 0; c < 3; c++ {
			v := float64(data[i+c]) / af
			if v > 255 {
				v = 255
			}
			if v < 0 {
				v = 0
			}
			data[i+c] = byte(v)
		}
	}
}

func encodePNG(bmp Bitmap) ([]byte, error) {
	img := &image.NRGBA{
		Pix:    bmp.Data,
		Stride: bmp.Width * 4,
		Rect:   image.Rect(0, 0, bmp.Width, bmp.Height),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &ferrors.ImageEncodeError{Cause: err}
	}
	return buf.Bytes(), nil
}
