package layout

import (
	"strings"
	"unicode"
)

// Line is a piece of paragraph that fits into given width.
type Line struct {
	Text     string
	Width    float64
	Consumed int  // runes of paragraph taken by this line, including skipped spaces
	Last     bool // ends the paragraph
}

// BreakLines greedily fills lines breaking at spaces. Words wider than a line
// are split between runes. Empty text produces one empty line. Every line
// except for an empty paragraph consumes at least one rune.
func BreakLines(text []rune, maxWidth float64, m Metrics) []Line {
	var lines []Line
	i := 0
	for {
		start := i
		for i < len(text) && unicode.IsSpace(text[i]) {
			i++
		}
		if i >= len(text) {
			if len(lines) == 0 {
				lines = append(lines, Line{Consumed: i - start, Last: true})
			} else {
				lines[len(lines)-1].Consumed += i - start
				lines[len(lines)-1].Last = true
			}
			return lines
		}

		lineStart, end, lastBreak := i, len(text), -1
		var w float64
		for j := i; j < len(text); j++ {
			rw := m.RuneWidth(text[j])
			if w+rw > maxWidth && j > lineStart {
				end = j
				if lastBreak > lineStart {
					end = lastBreak
				}
				break
			}
			if unicode.IsSpace(text[j]) {
				lastBreak = j
			}
			w += rw
		}

		s := strings.TrimRightFunc(string(text[lineStart:end]), unicode.IsSpace)
		i = end
		lines = append(lines, Line{
			Text:     s,
			Width:    m.StringWidth(s),
			Consumed: end - start,
		})
	}
}
