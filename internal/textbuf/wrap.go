// Package textbuf implements the editable text buffer used by every input
// dialog: a codepoint-indexed cursor kept consistent with a word-wrapped
// display.
//
// Wrap is the only line-breaking algorithm. Drawing, cursor mapping and
// vertical movement all consume its output, so the drawn cursor always lands
// on the codepoint the logical cursor points at.
package textbuf

import "unicode"

// Line is one display line, expressed as a half-open range of rune offsets
// into the wrapped text. A hard line break is not part of any Line: the line
// before it ends at the newline's offset and the next starts one past it.
type Line struct {
	Start int
	End   int
}

// Len returns the number of runes on the line.
func (l Line) Len() int { return l.End - l.Start }

// Text returns the runes of the line within text.
func (l Line) Text(text []rune) string { return string(text[l.Start:l.End]) }

// Wrap breaks text into display lines of at most width runes.
//
// Words are whitespace-delimited and carry their trailing whitespace rune.
// They are packed greedily; a word longer than width is broken at rune
// boundaries. A newline always ends the current line. The result always holds
// at least one line, and text ending in a newline yields a trailing empty line.
func Wrap(text string, width int) []Line {
	return wrapRunes([]rune(text), width)
}

func wrapRunes(rs []rune, width int) []Line {
	if width < 1 {
		width = 1
	}

	var lines []Line
	start, used := 0, 0

	for i := 0; i < len(rs); {
		j := i
		for j < len(rs) && !unicode.IsSpace(rs[j]) {
			j++
		}
		if j < len(rs) {
			j++ // the delimiter belongs to the word
		}

		hardBreak := rs[j-1] == '\n'
		bodyEnd := j
		if hardBreak {
			bodyEnd--
		}

		if w := bodyEnd - i; w > 0 {
			if used > 0 && used+w > width {
				lines = append(lines, Line{Start: start, End: i})
				start, used = i, 0
			}
			if w > width {
				for k := i; k < bodyEnd; k++ {
					if used >= width {
						lines = append(lines, Line{Start: start, End: k})
						start, used = k, 0
					}
					used++
				}
			} else {
				used += w
			}
		}

		if hardBreak {
			lines = append(lines, Line{Start: start, End: j - 1})
			start, used = j, 0
		}
		i = j
	}

	return append(lines, Line{Start: start, End: len(rs)})
}

// Locate maps a rune offset to a (line, column) display coordinate within
// lines. An offset sitting exactly on a soft wrap resolves to the start of
// the following line.
func Locate(lines []Line, offset int) (line, col int) {
	if len(lines) == 0 {
		return 0, 0
	}
	for i, ln := range lines {
		if offset > ln.End {
			continue
		}
		if offset == ln.End && i+1 < len(lines) && lines[i+1].Start == offset {
			continue
		}
		if offset < ln.Start {
			offset = ln.Start
		}
		return i, offset - ln.Start
	}
	last := len(lines) - 1
	return last, lines[last].Len()
}

// softWrapped reports whether line i continues on line i+1 without a newline.
func softWrapped(lines []Line, i int) bool {
	return i+1 < len(lines) && lines[i+1].Start == lines[i].End
}

// offsetAt converts a display coordinate back to a rune offset, clamping col
// so that it never lands on a soft-wrap boundary (which Locate would report
// as the next line).
func offsetAt(lines []Line, line, col int) int {
	ln := lines[line]
	maxCol := ln.Len()
	if softWrapped(lines, line) && maxCol > 0 {
		maxCol--
	}
	if col > maxCol {
		col = maxCol
	}
	if col < 0 {
		col = 0
	}
	return ln.Start + col
}

// Window returns the first visible display line for a viewport of height
// rows, scrolled as little as possible from offset to keep cursorLine visible.
func Window(cursorLine, height, offset int) int {
	if height < 1 {
		height = 1
	}
	if cursorLine < offset {
		offset = cursorLine
	}
	if cursorLine >= offset+height {
		offset = cursorLine - height + 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
