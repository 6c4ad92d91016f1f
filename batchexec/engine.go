package batchexec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fontlaborg/gorender/colorutil"
	"github.com/fontlaborg/gorender/diagnostics"
	"github.com/fontlaborg/gorender/ferrors"
	"github.com/fontlaborg/gorender/fontcache"
	"github.com/fontlaborg/gorender/fontdb"
	"github.com/fontlaborg/gorender/parsedface"
	"github.com/fontlaborg/gorender/rasterizer"
	"github.com/fontlaborg/gorender/rsurface"
	"github.com/fontlaborg/gorender/shaper"
	"github.com/fontlaborg/gorender/textlayout"
)

// face bundles the two parsed views a job needs over one set of font
// bytes: metrics/outline for rasterization, shaping engine data for
// positioning.
type face struct {
	metrics *parsedface.Face
	shape   *shaper.Face
	raw     []byte // shares the cache's own Bytes entry; never reread from disk
}

// Engine executes validated jobs, sharing one font cache and resolver
// across every job it processes (spec component 4.H over 4.B/4.C).
type Engine struct {
	fonts *fontdb.Database
	cache *fontcache.Cache[*face, shaper.Result, rasterizer.Mask]
	opts  ExecutionOptions
	log   *diagnostics.Logger
}

// NewEngine constructs an Engine whose font-bytes, parsed-face, shape,
// and glyph-mask caches are all shared across every job it runs.
func NewEngine(opts ExecutionOptions) *Engine {
	capacity := opts.CacheSize
	if capacity <= 0 {
		capacity = fontcache.DefaultShapeCacheCapacity
	}
	bytes := fontcache.NewBytesCache(os.ReadFile)
	return &Engine{
		fonts: fontdb.NewWithBytesCache(bytes),
		cache: &fontcache.Cache[*face, shaper.Result, rasterizer.Mask]{
			Bytes:  bytes,
			Faces:  fontcache.NewFaceCache[*face](),
			Shapes: fontcache.NewLRU[fontcache.ShapeKey, shaper.Result](capacity, fontcache.ShapeKey.String),
			Glyphs: fontcache.NewLRU[fontcache.GlyphKey, rasterizer.Mask](capacity, fontcache.GlyphKey.String),
		},
		opts: opts,
		log:  diagnostics.New(nil),
	}
}

// Stats exposes the shared cache's live entry counts.
func (e *Engine) Stats() fontcache.Stats { return e.cache.Stats() }

// resolveFace sanitizes path, loads and parses it once, and caches the
// parsed pair for reuse by every later job requesting the same file.
func (e *Engine) resolveFace(path string) (*face, error) {
	canonical, err := SanitizePath(path, e.opts.BaseDir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return nil, &ferrors.FontNotFound{Name: path}
	}
	if err := ValidateFontSize(info.Size()); err != nil {
		return nil, err
	}

	handle, err := e.fonts.Resolve(fontdb.Spec{Source: canonical})
	if err != nil {
		return nil, err
	}

	key := fontcache.FaceKey{Path: handle.Path, Index: handle.FaceIndex}
	return e.cache.Faces.GetOrLoad(key, func() (*face, error) {
		metrics, err := parsedface.Parse(handle.Bytes.Data, handle.Path)
		if err != nil {
			return nil, err
		}
		shapeFace, err := shaper.NewFace(handle.Bytes.Data, handle.Path, metrics)
		if err != nil {
			return nil, err
		}
		return &face{metrics: metrics, shape: shapeFace, raw: handle.Bytes.Data}, nil
	})
}

// RunJob validates and executes one job, always returning a JobResult:
// every failure, including a structurally invalid job, is reported as
// an "error" status, not a Go error.
func (e *Engine) RunJob(job Job) JobResult {
	start := time.Now()
	if err := job.Validate(); err != nil {
		return errorResult(job.ID, err, start)
	}

	timeout := time.Duration(e.opts.TimeoutMs) * time.Millisecond
	deadline := time.Time{}
	if e.opts.TimeoutMs > 0 {
		deadline = start.Add(timeout)
	}
	checkDeadline := func(phase string) error {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return ferrors.TimeoutPhase(phase, timeout)
		}
		return nil
	}

	f, err := e.resolveFace(job.Font.Path)
	if err != nil {
		return errorResult(job.ID, err, start)
	}

	if len(job.Font.Variations) > 0 {
		axes, err := fontdb.ReadAxes(f.raw)
		if err == nil && len(axes) > 0 {
			_, diags := fontdb.ValidateCoordinates(axes, job.Font.Variations)
			for _, d := range diags {
				var unknown *ferrors.UnknownAxis
				if errors.As(d, &unknown) {
					return errorResult(job.ID, d, start)
				}
				slog.Warn("clamped variation coordinate", "job", job.ID, "error", d)
			}
		}
	}

	if err := checkDeadline("pre-shape"); err != nil {
		return errorResult(job.ID, err, start)
	}

	shapeScope := diagnostics.StartScope("shape")
	result, err := e.shapeJob(job, f)
	shapeMs := shapeScope.ElapsedMillis()
	if err != nil {
		return errorResult(job.ID, err, start)
	}

	if err := checkDeadline("post-shape"); err != nil {
		return errorResult(job.ID, err, start)
	}

	renderScope := diagnostics.StartScope("render")
	canvas, actual, err := rasterizer.Render(result, f.metrics, float64(job.Font.Size), rasterizer.Options{
		TextColorHex: "#000000",
		Background:   "transparent",
		Antialias:    "grayscale",
		DPI:          72,
		Padding:      4,
	}, e.cache.Glyphs)
	renderMs := renderScope.ElapsedMillis()
	if err != nil {
		return errorResult(job.ID, err, start)
	}

	e.log.Render(context.Background(), diagnostics.RenderRecord{
		Backend:    "gorender",
		GlyphCount: len(result.Glyphs),
		Format:     job.Rendering.Format,
		Antialias:  "grayscale",
		Font:       f.shape.Key,
		DPI:        72,
		Padding:    4,
		Color:      "#000000",
		Background: "transparent",
	})

	if err := checkDeadline("post-render"); err != nil {
		return errorResult(job.ID, err, start)
	}

	output, err := e.encodeOutput(job, canvas, actual)
	if err != nil {
		return errorResult(job.ID, err, start)
	}

	return JobResult{
		ID:        job.ID,
		Status:    "success",
		Rendering: &output,
		Timing: TimingInfo{
			ShapeMs:  shapeMs,
			RenderMs: renderMs,
			TotalMs:  float64(time.Since(start)) / float64(time.Millisecond),
		},
	}
}

func (e *Engine) shapeJob(job Job, f *face) (shaper.Result, error) {
	opts := textlayout.Options{
		ScriptItemize: true,
		BidiResolve:   true,
		Language:      "en",
	}
	runs := textlayout.Analyze(job.Text.Content, opts)

	combined := shaper.Result{FontKey: f.shape.Key}
	pen := 0.0
	for _, run := range runs {
		if job.Text.Script != "" {
			run.Script = job.Text.Script
		}
		key := fontcache.ShapeKey{
			TextHash:    fontcache.HashText(run.Text),
			FontKey:     f.shape.Key,
			SizeQ:       colorutil.QuantizeSize(float64(job.Font.Size)),
			FeatureHash: 0,
		}
		runResult, err := e.cache.Shapes.GetOrProduce(key, func() (shaper.Result, error) {
			return shaper.Shape(run, f.shape, float64(job.Font.Size))
		})
		if err != nil {
			return shaper.Result{}, err
		}
		for _, g := range runResult.Glyphs {
			g.X += pen
			combined.Glyphs = append(combined.Glyphs, g)
		}
		pen += runResult.Advance
	}
	combined.Advance = pen
	bboxGlyphs := make([]colorutil.PositionedGlyph, 0, len(combined.Glyphs))
	for _, g := range combined.Glyphs {
		bboxGlyphs = append(bboxGlyphs, colorutil.PositionedGlyph{X: g.X, Y: g.Y, Advance: g.Advance})
	}
	combined.BBox = colorutil.CombineBBox(bboxGlyphs)
	return combined, nil
}

func (e *Engine) encodeOutput(job Job, canvas rasterizer.Canvas, actual colorutil.BBox) (RenderingOutput, error) {
	surface := rsurface.FromRGBA(canvas.Width, canvas.Height, canvas.Pix, true)

	var data string
	switch job.Rendering.Format {
	case "pgm":
		bmp, _, err := rsurface.Encode(surface, rsurface.OutputRaw)
		if err != nil {
			return RenderingOutput{}, err
		}
		pgm := encodePGM(bmp)
		data = encodeOutputBytes(job.Rendering.Encoding, pgm)
	case "png":
		_, png, err := rsurface.Encode(surface, rsurface.OutputPNG)
		if err != nil {
			return RenderingOutput{}, err
		}
		data = encodeOutputBytes(job.Rendering.Encoding, png)
	default:
		return RenderingOutput{}, &ferrors.InvalidRenderParams{Reason: fmt.Sprintf("unsupported output format %q", job.Rendering.Format)}
	}

	return RenderingOutput{
		Format:   job.Rendering.Format,
		Encoding: job.Rendering.Encoding,
		Data:     data,
		Width:    canvas.Width,
		Height:   canvas.Height,
		ActualBBox: [4]int{
			int(actual.MinX), int(actual.MinY),
			int(actual.Width()), int(actual.Height()),
		},
	}, nil
}

func errorResult(id string, err error, start time.Time) JobResult {
	return JobResult{
		ID:     id,
		Status: "error",
		Error:  err.Error(),
		Timing: TimingInfo{TotalMs: float64(time.Since(start)) / float64(time.Millisecond)},
	}
}
