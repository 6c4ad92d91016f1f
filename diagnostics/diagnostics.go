// Package diagnostics emits a single structured debug-level record per
// render call, mirroring the teacher's use of log/slog for ambient
// logging throughout the wider codebase.
package diagnostics

import (
	"context"
	"log/slog"
	"time"
)

// RenderRecord captures the fields of one render call. Callers build it
// unconditionally; [Logger.Render] only logs it when debug logging is
// enabled.
type RenderRecord struct {
	Backend    string
	GlyphCount int
	Format     string
	Antialias  string
	Hinting    string
	DPI        float64
	Padding    float64
	Color      string
	Background string
	Font       string
}

// Logger wraps an *slog.Logger and gates render-record construction on
// whether debug logging is enabled.
type Logger struct {
	slog *slog.Logger
}

// New wraps the given slog.Logger, or the default logger if nil.
func New(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}
	return &Logger{slog: l}
}

// Render logs rec as a single structured debug line. The record is
// built by the caller regardless, but the log call itself is skipped
// entirely when debug level is disabled, matching the "zero cost
// beyond a level check" contract.
func (l *Logger) Render(ctx context.Context, rec RenderRecord) {
	if !l.slog.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.slog.DebugContext(ctx, "render",
		slog.String("backend", rec.Backend),
		slog.Int("glyph_count", rec.GlyphCount),
		slog.String("format", rec.Format),
		slog.String("antialias", rec.Antialias),
		slog.String("hinting", rec.Hinting),
		slog.Float64("dpi", rec.DPI),
		slog.Float64("padding", rec.Padding),
		slog.String("color", rec.Color),
		slog.String("background", rec.Background),
		slog.String("font", rec.Font),
	)
}

// Scope measures elapsed wall time for a named phase. It is the only
// performance-telemetry contract in scope: "measure elapsed wall time
// for named phases."
type Scope struct {
	name  string
	start time.Time
}

// StartScope begins timing a named phase (e.g. "shape", "render").
func StartScope(name string) Scope {
	return Scope{name: name, start: time.Now()}
}

// Name reports the phase name this scope is timing.
func (s Scope) Name() string { return s.name }

// ElapsedMillis returns the elapsed wall time in fractional
// milliseconds since the scope started.
func (s Scope) ElapsedMillis() float64 {
	return float64(time.Since(s.start)) / float64(time.Millisecond)
}
