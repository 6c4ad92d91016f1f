// Package batchexec implements the batch execution and validation
// layer described by spec component 4.H: JSON/JSONL job specs in,
// JSONL results out, run over a worker pool sharing one font cache.
package batchexec

// JobSpec is the top-level input to batch mode: a versioned list of
// rendering jobs.
type JobSpec struct {
	Version string `json:"version"`
	Jobs    []Job  `json:"jobs"`
}

// Job is a single rendering request.
type Job struct {
	ID        string          `json:"id"`
	Font      FontConfig      `json:"font"`
	Text      TextConfig      `json:"text"`
	Rendering RenderingConfig `json:"rendering"`
}

// FontConfig names the font and size a job renders with.
type FontConfig struct {
	Path       string             `json:"path"`
	Size       int                `json:"size"`
	Variations map[string]float64 `json:"variations,omitempty"`
}

// TextConfig is the text content of a job, plus an optional script
// hint that bypasses itemization.
type TextConfig struct {
	Content string `json:"content"`
	Script  string `json:"script,omitempty"`
}

// RenderingConfig is a job's output parameters.
type RenderingConfig struct {
	Format   string `json:"format"` // "pgm" or "png"
	Encoding string `json:"encoding"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// JobResult is one JSONL output line.
type JobResult struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"` // "success" or "error"
	Rendering *RenderingOutput `json:"rendering,omitempty"`
	Error     string           `json:"error,omitempty"`
	Timing    TimingInfo       `json:"timing"`
}

// RenderingOutput is the encoded image payload of a successful job.
type RenderingOutput struct {
	Format     string `json:"format"`
	Encoding   string `json:"encoding"`
	Data       string `json:"data"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ActualBBox [4]int `json:"actual_bbox"` // x, y, w, h
}

// TimingInfo carries per-phase timing for one job, in milliseconds.
type TimingInfo struct {
	ShapeMs  float64 `json:"shape_ms"`
	RenderMs float64 `json:"render_ms"`
	TotalMs  float64 `json:"total_ms"`
}

// ExecutionOptions configures one batch/stream run.
type ExecutionOptions struct {
	BaseDir   string
	TimeoutMs int64 // 0 disables per-job timeout
	CacheSize int
	Workers   int
}
