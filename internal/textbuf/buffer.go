package textbuf

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotANumber is returned when committed numeric input does not parse.
var ErrNotANumber = errors.New("not a number")

// Filter reports whether a candidate text is acceptable for a buffer.
// It is evaluated on the text that an edit would produce, so rejected edits
// leave the buffer untouched.
type Filter func(candidate string) bool

var (
	decimalPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)
	integerPattern = regexp.MustCompile(`^[0-9]*$`)
)

// Numeric accepts digits with at most one decimal point.
func Numeric(candidate string) bool { return decimalPattern.MatchString(candidate) }

// Integer accepts digits only.
func Integer(candidate string) bool { return integerPattern.MatchString(candidate) }

type wrapCache struct {
	text  string
	width int
	lines []Line
}

// Buffer is an editable text with a cursor expressed as a rune index.
// The cursor is always within [0, RuneLen()].
type Buffer struct {
	runes    []rune
	cursor   int
	maxLines int // logical line cap; 1 for single-line buffers
	filter   Filter
	cache    wrapCache
}

// NewSingleLine creates a buffer that rejects line breaks. filter may be nil.
func NewSingleLine(text string, filter Filter) *Buffer {
	b := &Buffer{maxLines: 1, filter: filter}
	b.reset(text)
	return b
}

// NewMultiLine creates a buffer holding at most maxLines logical lines.
// A maxLines below 1 means no cap.
func NewMultiLine(text string, maxLines int) *Buffer {
	b := &Buffer{maxLines: maxLines}
	b.reset(text)
	return b
}

func (b *Buffer) reset(text string) {
	b.runes = []rune(sanitize(text))
	b.cursor = len(b.runes)
}

// Value returns the buffer text.
func (b *Buffer) Value() string { return string(b.runes) }

// RuneLen returns the length of the text in codepoints.
func (b *Buffer) RuneLen() int { return len(b.runes) }

// Offset returns the cursor as a codepoint index.
func (b *Buffer) Offset() int { return b.cursor }

// MultiLine reports whether the buffer accepts line breaks.
func (b *Buffer) MultiLine() bool { return b.maxLines != 1 }

// SetOffset moves the cursor, clamped to the buffer bounds.
func (b *Buffer) SetOffset(n int) {
	b.cursor = clamp(n, 0, len(b.runes))
}

// Lines returns the display lines of the buffer at width. The result is
// memoized per (text, width) and recomputed whenever either changes.
func (b *Buffer) Lines(width int) []Line {
	text := string(b.runes)
	if b.cache.lines == nil || b.cache.text != text || b.cache.width != width {
		b.cache = wrapCache{text: text, width: width, lines: wrapRunes(b.runes, width)}
	}
	return b.cache.lines
}

// DisplayLines returns the text of each display line at width.
func (b *Buffer) DisplayLines(width int) []string {
	lines := b.Lines(width)
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = ln.Text(b.runes)
	}
	return out
}

// Cursor returns the display coordinate of the cursor at width.
func (b *Buffer) Cursor(width int) (line, col int) {
	return Locate(b.Lines(width), b.cursor)
}

// Insert inserts s at the cursor and advances the cursor past it. The edit
// is rejected without mutation when it would exceed the line cap or fail the
// buffer's filter.
func (b *Buffer) Insert(s string) bool {
	ins := []rune(sanitize(s))
	if len(ins) == 0 {
		return false
	}

	candidate := make([]rune, 0, len(b.runes)+len(ins))
	candidate = append(candidate, b.runes[:b.cursor]...)
	candidate = append(candidate, ins...)
	candidate = append(candidate, b.runes[b.cursor:]...)

	if b.maxLines > 0 && logicalLines(candidate) > b.maxLines {
		return false
	}
	if b.filter != nil && !b.filter(string(candidate)) {
		return false
	}

	b.runes = candidate
	b.cursor += len(ins)
	return true
}

// InsertNewline inserts a hard line break, subject to the line cap.
func (b *Buffer) InsertNewline() bool {
	return b.Insert("\n")
}

// DeleteBackward removes the codepoint before the cursor.
func (b *Buffer) DeleteBackward() bool {
	if b.cursor == 0 {
		return false
	}
	return b.deleteAt(b.cursor - 1)
}

// DeleteForward removes the codepoint under the cursor.
func (b *Buffer) DeleteForward() bool {
	if b.cursor >= len(b.runes) {
		return false
	}
	return b.deleteAt(b.cursor)
}

func (b *Buffer) deleteAt(i int) bool {
	candidate := append(append([]rune(nil), b.runes[:i]...), b.runes[i+1:]...)
	if b.filter != nil && !b.filter(string(candidate)) {
		return false
	}
	b.runes = candidate
	b.cursor = i
	return true
}

// MoveLeft moves the cursor one codepoint left.
func (b *Buffer) MoveLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

// MoveRight moves the cursor one codepoint right.
func (b *Buffer) MoveRight() bool {
	if b.cursor >= len(b.runes) {
		return false
	}
	b.cursor++
	return true
}

// MoveUp moves the cursor to the previous display line at width, keeping
// the closest column. No-op on the first display line.
func (b *Buffer) MoveUp(width int) bool {
	lines := b.Lines(width)
	line, col := Locate(lines, b.cursor)
	if line == 0 {
		return false
	}
	b.cursor = offsetAt(lines, line-1, col)
	return true
}

// MoveDown moves the cursor to the next display line at width, keeping the
// closest column. No-op on the last display line.
func (b *Buffer) MoveDown(width int) bool {
	lines := b.Lines(width)
	line, col := Locate(lines, b.cursor)
	if line >= len(lines)-1 {
		return false
	}
	b.cursor = offsetAt(lines, line+1, col)
	return true
}

// Home moves the cursor to the start of the current logical line.
func (b *Buffer) Home() bool {
	i := b.cursor
	for i > 0 && b.runes[i-1] != '\n' {
		i--
	}
	moved := i != b.cursor
	b.cursor = i
	return moved
}

// End moves the cursor to the end of the current logical line.
func (b *Buffer) End() bool {
	i := b.cursor
	for i < len(b.runes) && b.runes[i] != '\n' {
		i++
	}
	moved := i != b.cursor
	b.cursor = i
	return moved
}

// HandleKey applies a named editing key and reports whether the buffer
// changed. Printable input goes through Insert instead.
func (b *Buffer) HandleKey(key string, width int) bool {
	switch key {
	case "left", "ctrl+b":
		return b.MoveLeft()
	case "right", "ctrl+f":
		return b.MoveRight()
	case "up":
		return b.MultiLine() && b.MoveUp(width)
	case "down":
		return b.MultiLine() && b.MoveDown(width)
	case "home", "ctrl+a":
		return b.Home()
	case "end":
		return b.End()
	case "backspace", "ctrl+h":
		return b.DeleteBackward()
	case "delete", "ctrl+d":
		return b.DeleteForward()
	case "ctrl+j", "alt+enter":
		return b.MultiLine() && b.InsertNewline()
	}
	return false
}

// Number parses committed numeric input. Empty input clears the field and
// returns nil.
func Number(text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, ErrNotANumber
	}
	return &v, nil
}

// Int parses committed integer input. Empty input clears the field and
// returns nil.
func Int(text string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil, ErrNotANumber
	}
	return &v, nil
}

// sanitize drops carriage returns and expands tabs, keeping one column per rune.
var sanitize = strings.NewReplacer("\r", "", "\t", "    ").Replace

func logicalLines(rs []rune) int {
	n := 1
	for _, r := range rs {
		if r == '\n' {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
