// Package ferrors defines the closed set of tagged error values used
// throughout the rendering engine. Errors are plain values: every
// function that can fail returns an error rather than panicking, and
// callers discriminate kinds with [errors.As].
package ferrors

import (
	"fmt"
	"time"
)

// FontNotFound is returned when no font database entry, explicit path,
// or fallback family resolves a font specification.
type FontNotFound struct {
	Name string
}

func (e *FontNotFound) Error() string {
	return fmt.Sprintf("font not found: %q", e.Name)
}

// FontLoad wraps a failure to read or memory-map a font file.
type FontLoad struct {
	Path  string
	Cause error
}

func (e *FontLoad) Error() string {
	return fmt.Sprintf("failed to load font %q: %v", e.Path, e.Cause)
}

func (e *FontLoad) Unwrap() error { return e.Cause }

// InvalidFontData is returned when font bytes fail to parse as a
// recognized sfnt container.
type InvalidFontData struct {
	Path   string
	Reason string
}

func (e *InvalidFontData) Error() string {
	return fmt.Sprintf("invalid font data %q: %s", e.Path, e.Reason)
}

// UnknownAxis is returned when a caller supplies a variation coordinate
// for an axis tag the font does not declare.
type UnknownAxis struct {
	Axis      string
	Available []string
}

func (e *UnknownAxis) Error() string {
	return fmt.Sprintf("unknown variation axis %q (available: %v)", e.Axis, e.Available)
}

// CoordinateOutOfBounds records an out-of-range axis coordinate. The
// caller clamps the value and logs a diagnostic rather than treating
// this as fatal; the type exists so the clamp can be reported uniformly.
type CoordinateOutOfBounds struct {
	Axis     string
	Value    float64
	Min, Max float64
}

func (e *CoordinateOutOfBounds) Error() string {
	return fmt.Sprintf("axis %q coordinate %g out of bounds [%g, %g]", e.Axis, e.Value, e.Min, e.Max)
}

// GlyphNotFound marks a glyph id absent from a face; not fatal on its
// own, the rasterizer substitutes an empty mask and continues.
type GlyphNotFound struct {
	GlyphID uint32
	Path    string
}

func (e *GlyphNotFound) Error() string {
	return fmt.Sprintf("glyph %d not found in %q", e.GlyphID, e.Path)
}

// ShapingFailed is returned when the shaper produces zero glyphs for a
// non-empty run.
type ShapingFailed struct {
	Text   string
	Path   string
	Reason string
}

func (e *ShapingFailed) Error() string {
	return fmt.Sprintf("shaping failed for %q using %q: %s", e.Text, e.Path, e.Reason)
}

// RasterizationFailed is returned when a glyph outline cannot be
// rasterized into an alpha mask.
type RasterizationFailed struct {
	GlyphID uint32
	Path    string
	Reason  string
}

func (e *RasterizationFailed) Error() string {
	return fmt.Sprintf("rasterization failed for glyph %d in %q: %s", e.GlyphID, e.Path, e.Reason)
}

// RenderError covers canvas-allocation and compositing failures.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: %s", e.Reason)
}

// InvalidJobSpec is returned for malformed or out-of-bound batch job
// specifications.
type InvalidJobSpec struct {
	Reason string
}

func (e *InvalidJobSpec) Error() string {
	return fmt.Sprintf("invalid job spec: %s", e.Reason)
}

// InvalidRenderParams covers bad rendering configuration, including
// phase timeouts (see [TimeoutPhase]).
type InvalidRenderParams struct {
	Reason string
}

func (e *InvalidRenderParams) Error() string {
	return fmt.Sprintf("invalid render params: %s", e.Reason)
}

// IoError wraps any filesystem or stream failure not covered above.
type IoError struct {
	Cause error
}

func (e *IoError) Error() string { return fmt.Sprintf("io error: %v", e.Cause) }
func (e *IoError) Unwrap() error { return e.Cause }

// JsonParseError wraps a JSON decode failure.
type JsonParseError struct {
	Cause error
}

func (e *JsonParseError) Error() string { return fmt.Sprintf("json parse error: %v", e.Cause) }
func (e *JsonParseError) Unwrap() error { return e.Cause }

// ImageEncodeError wraps a PNG/PGM encode failure.
type ImageEncodeError struct {
	Cause error
}

func (e *ImageEncodeError) Error() string { return fmt.Sprintf("image encode error: %v", e.Cause) }
func (e *ImageEncodeError) Unwrap() error { return e.Cause }

// Internal marks a condition that should be unreachable given the
// contracts of the surrounding packages.
type Internal struct {
	Reason string
}

func (e *Internal) Error() string { return fmt.Sprintf("internal error: %s", e.Reason) }

// TimeoutPhase builds the InvalidRenderParams the batch executor emits
// when a per-job deadline guard trips at a phase boundary.
func TimeoutPhase(phase string, elapsed time.Duration) *InvalidRenderParams {
	return &InvalidRenderParams{Reason: fmt.Sprintf("Operation '%s' timed out after %s", phase, elapsed)}
}
