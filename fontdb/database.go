package fontdb

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/fontlaborg/gorender/fontcache"
	"github.com/fontlaborg/gorender/ferrors"
)

// EnvSearchPath is the environment variable holding a colon-separated
// list of additional font search directories.
const EnvSearchPath = "GORENDER_FONT_PATH"

func platformDefaultRoots() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts"}
	case "windows":
		return []string{`C:\Windows\Fonts`}
	default:
		return []string{"/usr/share/fonts", "/usr/local/share/fonts"}
	}
}

func expandHome(dir string) string {
	if !strings.HasPrefix(dir, "~") {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~"))
}

// SearchRoots returns the platform default font directories followed
// by any directories named in the EnvSearchPath environment variable.
// "~" is expanded for these directory entries only, never for
// job-supplied font paths.
func SearchRoots() []string {
	roots := platformDefaultRoots()
	if v := os.Getenv(EnvSearchPath); v != "" {
		for _, p := range strings.Split(v, ":") {
			if p == "" {
				continue
			}
			roots = append(roots, expandHome(p))
		}
	}
	return roots
}

// Database is a process-wide, thread-safe font database: it resolves
// font specifications to handles, backed by a shared bytes cache, and
// exposes the script fallback table.
type Database struct {
	bytes *fontcache.BytesCache
	roots []string

	mu       sync.Mutex
	rootsSet bool
}

// New constructs a Database. Search roots are computed lazily on first
// resolution that needs them (global state with initialization on
// first use).
func New() *Database {
	return &Database{
		bytes: fontcache.NewBytesCache(os.ReadFile),
	}
}

// NewWithBytesCache lets callers share one BytesCache between a
// Database and other consumers (e.g. a shaper backend reusing the same
// cache instance).
func NewWithBytesCache(bytes *fontcache.BytesCache) *Database {
	return &Database{bytes: bytes}
}

func (d *Database) ensureRoots() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.rootsSet {
		d.roots = SearchRoots()
		d.rootsSet = true
	}
	return d.roots
}

// Resolve turns a font specification into a handle. Resolution order:
// 1. If Source is a path and the file exists, load it.
// 2. Otherwise treat Source as a bare family name and search each
//    configured root for family.{ttf,otf,ttc}.
// 3. Fail with *ferrors.FontNotFound.
func (d *Database) Resolve(spec Spec) (Handle, error) {
	if spec.Source == "" {
		return Handle{}, &ferrors.FontNotFound{Name: spec.Source}
	}

	if info, err := os.Stat(spec.Source); err == nil && !info.IsDir() {
		return d.load(spec.Source)
	}

	for _, root := range d.ensureRoots() {
		for _, ext := range []string{"ttf", "otf", "ttc"} {
			candidate := filepath.Join(root, fmt.Sprintf("%s.%s", spec.Source, ext))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return d.load(candidate)
			}
		}
	}

	return Handle{}, &ferrors.FontNotFound{Name: spec.Source}
}

func (d *Database) load(path string) (Handle, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	b, err := d.bytes.GetOrLoad(abs)
	if err != nil {
		return Handle{}, &ferrors.FontLoad{Path: abs, Cause: err}
	}
	return Handle{Key: abs, Path: abs, Bytes: b, FaceIndex: 0}, nil
}

// Fallbacks returns the ordered list of family names to try for
// script. Unknown scripts return the Latin list.
func (d *Database) Fallbacks(script string) []string {
	return Fallbacks(script)
}

// Axis describes one variable-font axis: its four-character tag and
// its declared minimum, default, and maximum values.
type Axis struct {
	Tag            string
	Min, Def, Max float64
}

// ValidateCoordinates checks a caller-supplied variation map against a
// font's declared axes. A coordinate for a missing axis fails with
// *ferrors.UnknownAxis. An in-range coordinate passes through
// unchanged; an out-of-range coordinate is clamped to [min, max] and
// returned alongside a *ferrors.CoordinateOutOfBounds diagnostic (not
// fatal — callers log it and proceed with the clamped value).
func ValidateCoordinates(axes []Axis, requested map[string]float64) (map[string]float64, []error) {
	byTag := make(map[string]Axis, len(axes))
	names := make([]string, 0, len(axes))
	for _, a := range axes {
		byTag[a.Tag] = a
		names = append(names, a.Tag)
	}

	out := make(map[string]float64, len(requested))
	var diagnostics []error
	for tag, v := range requested {
		axis, ok := byTag[tag]
		if !ok {
			return nil, []error{&ferrors.UnknownAxis{Axis: tag, Available: names}}
		}
		clamped := v
		if v < axis.Min-clampTolerance || v > axis.Max+clampTolerance {
			diagnostics = append(diagnostics, &ferrors.CoordinateOutOfBounds{
				Axis: tag, Value: v, Min: axis.Min, Max: axis.Max,
			})
		}
		if clamped < axis.Min {
			clamped = axis.Min
		}
		if clamped > axis.Max {
			clamped = axis.Max
		}
		out[tag] = clamped
	}
	return out, diagnostics
}

// clampTolerance matches the 0.001 tolerance used by the original
// renderer's axis-coordinate validation so boundary values aren't
// flagged as out-of-range due to floating-point noise.
const clampTolerance = 0.001

// ParseWeight parses a CSS-style numeric weight string ("400", "700")
// falling back to 400 (normal) on malformed input.
func ParseWeight(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 1000 {
		return 400
	}
	return v
}
