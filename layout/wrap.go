// Package layout turns generated text into positioned lines on fixed-size pages.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultWidth is the maximum display width of a body line.
const DefaultWidth = 80

// Wrap splits text into display lines no wider than width cells.
//
// Every original line is wrapped on its own, so paragraph breaks and blank
// lines survive. A line that already fits is returned unchanged. A single
// word wider than width is emitted as-is on its own line.
func Wrap(text string, width int) []string {
	if text == "" {
		return nil
	}
	if width <= 0 {
		width = DefaultWidth
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	for _, group := range strings.Split(text, "\n") {
		if runewidth.StringWidth(group) <= width {
			out = append(out, group)
			continue
		}
		out = append(out, wrapGroup(group, width)...)
	}
	return out
}

func wrapGroup(group string, width int) []string {
	words := strings.Fields(group)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	for _, w := range words {
		ww := runewidth.StringWidth(w)
		if curW > 0 && curW+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(w)
		curW += ww
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
