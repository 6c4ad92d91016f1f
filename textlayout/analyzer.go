// Package textlayout segments UTF-8 text into runs by grapheme
// cluster, script, bidirectional direction, and line/word boundary,
// the text analysis pipeline described in spec component 4.D.
package textlayout

import (
	"sort"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the resolved direction of a run or bidi slice.
type Direction int

const (
	DirLTR Direction = iota
	DirRTL
	DirAuto
)

func (d Direction) String() string {
	switch d {
	case DirRTL:
		return "RTL"
	case DirAuto:
		return "Auto"
	default:
		return "LTR"
	}
}

// Options configures analysis. Language defaults to "en" when empty.
type Options struct {
	ScriptItemize bool
	FontFallback  bool
	BidiResolve   bool
	Language      string
}

// Run is a contiguous byte range of the original text plus its
// resolved script, language, and direction.
type Run struct {
	Text      string
	Start     int
	End       int
	Script    string
	Language  string
	Direction Direction
}

// Analyze segments text into runs covering the whole input without
// gaps or overlaps, per the algorithm in spec component 4.D.
func Analyze(text string, opts Options) []Run {
	lang := opts.Language
	if lang == "" {
		lang = "en"
	}

	clusters := graphemeClusters(text)
	if len(clusters) < 2 {
		return []Run{{Text: text, Start: 0, End: len(text), Script: "Common", Language: lang, Direction: DirLTR}}
	}

	lineBoundaries := mandatoryLineBreaks(text)
	var wordBoundaries map[int]bool
	if opts.FontFallback {
		wordBoundaries = wordBreaks(text)
	}

	slices := bidiSlices(text, opts.BidiResolve)

	var runs []Run
	for _, sl := range slices {
		runs = append(runs, itemizeSlice(text, sl, clusters, lineBoundaries, wordBoundaries, opts, lang)...)
	}
	return runs
}

type bidiSlice struct {
	start, end int
	direction  Direction
}

func bidiSlices(text string, resolve bool) []bidiSlice {
	if !resolve {
		return []bidiSlice{{start: 0, end: len(text), direction: DirLTR}}
	}

	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return []bidiSlice{{start: 0, end: len(text), direction: DirLTR}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []bidiSlice{{start: 0, end: len(text), direction: DirLTR}}
	}

	var slices []bidiSlice
	pos := 0
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		runText := run.String()
		if len(runText) == 0 {
			continue
		}
		start := pos
		end := pos + len(runText)
		dir := DirLTR
		if run.Direction() == bidi.RightToLeft {
			dir = DirRTL
		}
		slices = append(slices, bidiSlice{start: start, end: end, direction: dir})
		pos = end
	}
	if len(slices) == 0 {
		return []bidiSlice{{start: 0, end: len(text), direction: DirLTR}}
	}
	return slices
}

func itemizeSlice(text string, sl bidiSlice, clusters []clusterRange, lineBoundaries map[int]bool, wordBoundaries map[int]bool, opts Options, lang string) []Run {
	var runs []Run
	runStart := -1
	runScript := "Common"

	flush := func(end int) {
		if runStart < 0 || end <= runStart {
			return
		}
		runs = append(runs, Run{
			Text:      text[runStart:end],
			Start:     runStart,
			End:       end,
			Script:    runScript,
			Language:  lang,
			Direction: sl.direction,
		})
		runStart = -1
	}

	for _, c := range clusters {
		if c.end <= sl.start || c.start >= sl.end {
			continue
		}
		start, end := c.start, c.end
		if start < sl.start {
			start = sl.start
		}
		if end > sl.end {
			end = sl.end
		}

		script := clusterScript(text[start:end])
		if runStart < 0 {
			runStart = start
			if opts.ScriptItemize {
				runScript = script
			}
		} else if opts.ScriptItemize && script != runScript && script != "Common" && script != "Inherited" {
			flush(start)
			runStart = start
			runScript = script
		}

		if lineBoundaries[end] || (opts.FontFallback && wordBoundaries[end]) {
			flush(end)
		}
	}
	flush(sl.end)
	return runs
}

type clusterRange struct{ start, end int }

func graphemeClusters(text string) []clusterRange {
	var out []clusterRange
	state := -1
	rest := text
	pos := 0
	for len(rest) > 0 {
		cluster, r, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, clusterRange{start: pos, end: pos + len(cluster)})
		pos += len(cluster)
		rest = r
		state = newState
	}
	return out
}

func mandatoryLineBreaks(text string) map[int]bool {
	bounds := make(map[int]bool)
	state := -1
	rest := text
	pos := 0
	for len(rest) > 0 {
		segment, r, mustBreak, newState := uniseg.FirstLineSegmentInString(rest, state)
		pos += len(segment)
		if mustBreak {
			bounds[pos] = true
		}
		rest = r
		state = newState
	}
	bounds[len(text)] = true
	return bounds
}

func wordBreaks(text string) map[int]bool {
	bounds := make(map[int]bool)
	state := -1
	rest := text
	pos := 0
	for len(rest) > 0 {
		word, r, newState := uniseg.FirstWordInString(rest, state)
		pos += len(word)
		bounds[pos] = true
		rest = r
		state = newState
	}
	return bounds
}

// priorityScripts is checked before falling back to a full scan of
// unicode.Scripts, both for speed and because it lists the scripts
// this engine's fallback table (see package fontdb) knows about, plus
// Common and Inherited.
var priorityScripts = []string{
	"Latin", "Arabic", "Devanagari", "Han", "Hiragana", "Katakana",
	"Hebrew", "Thai", "Greek", "Cyrillic", "Common", "Inherited",
}

var remainingScripts = func() []string {
	seen := make(map[string]bool, len(priorityScripts))
	for _, s := range priorityScripts {
		seen[s] = true
	}
	var out []string
	for name := range unicode.Scripts {
		if !seen[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}()

func scriptOfRune(r rune) string {
	for _, name := range priorityScripts {
		if unicode.Is(unicode.Scripts[name], r) {
			return name
		}
	}
	for _, name := range remainingScripts {
		if unicode.Is(unicode.Scripts[name], r) {
			return name
		}
	}
	return "Unknown"
}

// clusterScript returns the script of the first rune in a grapheme
// cluster whose script is not Common, Inherited, or Unknown, or
// "Common" if every rune in the cluster is one of those.
func clusterScript(cluster string) string {
	for _, r := range cluster {
		name := scriptOfRune(r)
		if name != "Common" && name != "Inherited" && name != "Unknown" {
			return name
		}
	}
	return "Common"
}
