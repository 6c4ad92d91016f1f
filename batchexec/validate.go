package batchexec

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fontlaborg/gorender/ferrors"
)

const (
	MaxJSONSize      = 10 * 1024 * 1024
	MaxJobsPerSpec   = 1000
	MaxTextLength    = 10_000
	MaxFontSize      = 50 * 1024 * 1024
	DefaultTimeoutMs = 30_000
)

// ValidateJSONSize rejects oversized request bodies before they are
// even parsed.
func ValidateJSONSize(payload []byte) error {
	if len(payload) > MaxJSONSize {
		return &ferrors.InvalidJobSpec{Reason: fmt.Sprintf("JSON input too large: %d bytes (max: %d bytes)", len(payload), MaxJSONSize)}
	}
	return nil
}

// Validate checks the spec as a whole: version gate, non-empty job
// list, job-count ceiling, then each job individually.
func (s JobSpec) Validate() error {
	if s.Version != "1.0" {
		return &ferrors.InvalidJobSpec{Reason: fmt.Sprintf("Unsupported API version '%s', expected '1.0'", s.Version)}
	}
	if len(s.Jobs) == 0 {
		return &ferrors.InvalidJobSpec{Reason: "Jobs array is empty"}
	}
	if len(s.Jobs) > MaxJobsPerSpec {
		return &ferrors.InvalidJobSpec{Reason: fmt.Sprintf("Too many jobs in spec: %d (max: %d)", len(s.Jobs), MaxJobsPerSpec)}
	}
	for _, job := range s.Jobs {
		if err := job.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks one job's fields against spec bounds. It does not
// touch the filesystem; path sanitization happens separately once a
// base directory (if any) is known.
func (j Job) Validate() error {
	if j.ID == "" {
		return &ferrors.InvalidJobSpec{Reason: "Job ID is empty"}
	}
	if j.Font.Size <= 0 || j.Font.Size > 10000 {
		return &ferrors.InvalidRenderParams{Reason: fmt.Sprintf("Font size %d out of bounds (1-10000)", j.Font.Size)}
	}
	if j.Text.Content == "" {
		return &ferrors.InvalidJobSpec{Reason: "Text content is empty"}
	}
	if len(j.Text.Content) > MaxTextLength {
		return &ferrors.InvalidJobSpec{Reason: fmt.Sprintf("Text content too long (%d chars, max %d)", len(j.Text.Content), MaxTextLength)}
	}
	if err := validateTextInput(j.Text.Content); err != nil {
		return err
	}
	if j.Rendering.Format != "pgm" && j.Rendering.Format != "png" {
		return &ferrors.InvalidRenderParams{Reason: fmt.Sprintf("Invalid output format '%s', expected 'pgm' or 'png'", j.Rendering.Format)}
	}
	if j.Rendering.Width <= 0 || j.Rendering.Height <= 0 || j.Rendering.Width > 10000 || j.Rendering.Height > 10000 {
		return &ferrors.InvalidRenderParams{Reason: fmt.Sprintf("Canvas dimensions %d×%d out of bounds (1-10000)", j.Rendering.Width, j.Rendering.Height)}
	}
	return nil
}

// validateTextInput rejects control characters other than whitespace
// (tab, newline, etc. remain legal).
func validateTextInput(text string) error {
	for _, r := range text {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return &ferrors.InvalidJobSpec{Reason: "Text contains invalid control characters"}
		}
	}
	return nil
}

// ValidateFontSize rejects font files above the size ceiling before
// they are mapped into the bytes cache.
func ValidateFontSize(sizeBytes int64) error {
	if sizeBytes > MaxFontSize {
		return &ferrors.InvalidJobSpec{Reason: fmt.Sprintf("Font file too large: %d bytes (max: %d bytes)", sizeBytes, MaxFontSize)}
	}
	return nil
}

// SanitizePath resolves path to a canonical absolute path, rejecting
// any path containing ".." or "~" components and, when baseDir is
// set, any path that resolves outside it.
func SanitizePath(path, baseDir string) (string, error) {
	if strings.Contains(path, "..") || strings.Contains(path, "~") {
		return "", &ferrors.InvalidJobSpec{Reason: "Path contains invalid components (.. or ~)"}
	}

	abs := path
	if !filepath.IsAbs(abs) {
		if baseDir != "" {
			abs = filepath.Join(baseDir, abs)
		} else {
			var err error
			abs, err = filepath.Abs(abs)
			if err != nil {
				return "", &ferrors.Internal{Reason: fmt.Sprintf("failed to resolve current directory: %s", err)}
			}
		}
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &ferrors.InvalidJobSpec{Reason: fmt.Sprintf("Cannot resolve path %s: %s", abs, err)}
	}

	if baseDir != "" {
		baseCanonical, err := filepath.EvalSymlinks(baseDir)
		if err != nil {
			return "", &ferrors.InvalidJobSpec{Reason: fmt.Sprintf("Cannot resolve base path %s: %s", baseDir, err)}
		}
		if !strings.HasPrefix(canonical, baseCanonical) {
			return "", &ferrors.InvalidJobSpec{Reason: fmt.Sprintf("Path %s is outside allowed base directory %s", canonical, baseCanonical)}
		}
	}

	return canonical, nil
}
