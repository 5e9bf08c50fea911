package layout

import "strings"

// wrap breaks text into lines no wider than width at the canvas' current
// font. Words are kept whole where possible; a word wider than the line is
// broken between characters. The result always holds at least one line.
func wrap(c Canvas, text string, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, w := range words {
		if line != "" {
			candidate := line + " " + w
			if c.StringWidth(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = ""
		}
		if c.StringWidth(w) <= width {
			line = w
			continue
		}
		pieces := breakWord(c, w, width)
		lines = append(lines, pieces[:len(pieces)-1]...)
		line = pieces[len(pieces)-1]
	}
	return append(lines, line)
}

// breakWord splits a single word into pieces that each fit width. A piece
// always holds at least one character so the loop makes progress even when a
// lone glyph is wider than the line.
func breakWord(c Canvas, word string, width float64) []string {
	var pieces []string
	runes := []rune(word)
	for len(runes) > 0 {
		n := 1
		for n < len(runes) && c.StringWidth(string(runes[:n+1])) <= width {
			n++
		}
		pieces = append(pieces, string(runes[:n]))
		runes = runes[n:]
	}
	return pieces
}

// fitCell shortens text to at most maxChars runes, marking the cut with an
// ellipsis, then trims further until it fits width at the current font.
func fitCell(c Canvas, text string, maxChars int, width float64) string {
	const ellipsis = "…"

	runes := []rune(text)
	cut := false
	if maxChars > 0 && len(runes) > maxChars {
		runes = runes[:maxChars-1]
		cut = true
	}
	for {
		s := string(runes)
		if cut {
			s += ellipsis
		}
		if len(runes) == 0 || c.StringWidth(s) <= width {
			return s
		}
		runes = runes[:len(runes)-1]
		cut = true
	}
}
