package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// foldRune lowercases a rune and strips combining marks from its canonical
// decomposition. Runes without a decomposed base form are returned lowercased.
func foldRune(r rune) rune {
	r = unicode.ToLower(r)
	if r < utf8.RuneSelf {
		return r
	}
	decomposed := norm.NFD.String(string(r))
	for _, d := range decomposed {
		if unicode.Is(unicode.Mn, d) {
			continue
		}
		return unicode.ToLower(d)
	}
	return r
}

// FoldString returns text lowercased with diacritics stripped, whether they
// arrive precomposed or as standalone combining marks. The result may hold
// fewer runes than the input.
func FoldString(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(foldRune(r))
	}
	return b.String()
}

// IndexFold reports the byte offset in text of the first occurrence of
// marker, comparing accent-folded lowercase runes. The marker itself is
// folded before matching. Returns -1 when absent.
func IndexFold(text, marker string) int {
	if marker == "" {
		return 0
	}
	needle := []rune(FoldString(marker))
	if len(needle) == 0 {
		return -1
	}

	// Combining marks are dropped from the haystack; offsets track each kept
	// rune's position in the original bytes so window slicing stays exact.
	var haystack []rune
	var offsets []int
	for i, r := range text {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		haystack = append(haystack, foldRune(r))
		offsets = append(offsets, i)
	}

	for start := 0; start+len(needle) <= len(haystack); start++ {
		match := true
		for i, r := range needle {
			if haystack[start+i] != r {
				match = false
				break
			}
		}
		if match {
			return offsets[start]
		}
	}
	return -1
}
