package fontdb

// fallbackTable maps a long-form script name to an ordered list of
// family names to try when a requested font doesn't cover a run's
// code points. Unknown scripts fall back to the Latin list.
var fallbackTable = map[string][]string{
	"Latin":      {"NotoSans-Regular", "DejaVuSans", "Arial"},
	"Arabic":     {"NotoNaskhArabic-Regular", "NotoSansArabic-Regular"},
	"Devanagari": {"NotoSansDevanagari-Regular"},
	"Han":        {"NotoSansCJK-Regular", "NotoSansCJKsc-Regular"},
	"Hiragana":   {"NotoSansCJK-Regular"},
	"Katakana":   {"NotoSansCJK-Regular"},
	"Hebrew":     {"NotoSansHebrew-Regular"},
	"Thai":       {"NotoSansThai-Regular"},
	"Greek":      {"NotoSans-Regular"},
	"Cyrillic":   {"NotoSans-Regular"},
}

// Fallbacks returns the ordered list of family names to try for script.
// Unknown scripts return the Latin list.
func Fallbacks(script string) []string {
	if list, ok := fallbackTable[script]; ok {
		out := make([]string, len(list))
		copy(out, list)
		return out
	}
	out := make([]string, len(fallbackTable["Latin"]))
	copy(out, fallbackTable["Latin"])
	return out
}
