package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns the display width of s in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width cells, ending in "..." when cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// Wrap folds every line of text so no line exceeds width cells. Lines are
// broken between words; a word wider than width is split across lines.
// Blank lines are kept, so the paragraph structure of rendered markup
// survives.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if StringWidth(line) <= width {
			out = append(out, line)
			continue
		}
		wrapped := wrapLine(line, width)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		out = append(out, wrapped...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	var lines []string
	var current strings.Builder
	currentWidth := 0

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
		currentWidth = 0
	}

	for _, word := range strings.Fields(line) {
		wordWidth := StringWidth(word)
		switch {
		case currentWidth > 0 && currentWidth+1+wordWidth <= width:
			current.WriteByte(' ')
			current.WriteString(word)
			currentWidth += 1 + wordWidth
			continue
		case currentWidth > 0:
			flush()
		}

		if wordWidth <= width {
			current.WriteString(word)
			currentWidth = wordWidth
			continue
		}
		pieces := breakWord(word, width)
		lines = append(lines, pieces[:len(pieces)-1]...)
		last := pieces[len(pieces)-1]
		current.WriteString(last)
		currentWidth = StringWidth(last)
	}
	if currentWidth > 0 {
		flush()
	}
	return lines
}

// breakWord splits word into pieces of at most width cells. A rune wider
// than width gets a piece of its own.
func breakWord(word string, width int) []string {
	var pieces []string
	var piece strings.Builder
	pieceWidth := 0
	for _, r := range word {
		w := runewidth.RuneWidth(r)
		if pieceWidth > 0 && pieceWidth+w > width {
			pieces = append(pieces, piece.String())
			piece.Reset()
			pieceWidth = 0
		}
		piece.WriteRune(r)
		pieceWidth += w
	}
	if piece.Len() > 0 {
		pieces = append(pieces, piece.String())
	}
	return pieces
}
