package render

import (
	"strings"
	"unicode/utf8"
)

// Wrap greedily packs words into lines of at most width runes. Whitespace
// runs collapse to single spaces. A word longer than width gets a line of its
// own and is never split.
func Wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	curLen := 0

	for _, w := range strings.Fields(text) {
		wl := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	if curLen > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
