package textbuf

import (
	"math/rand"
	"strings"
	"testing"
)

func lineTexts(text string, width int) []string {
	rs := []rune(text)
	var out []string
	for _, ln := range Wrap(text, width) {
		out = append(out, ln.Text(rs))
	}
	return out
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 5, []string{""}},
		{"fits", "abc", 5, []string{"abc"}},
		{"long word broken", "abcdefgh", 5, []string{"abcde", "fgh"}},
		{"words packed", "the quick brown fox", 10, []string{"the quick ", "brown fox"}},
		{"hard break", "ab\ncd", 10, []string{"ab", "cd"}},
		{"trailing newline", "ab\n", 10, []string{"ab", ""}},
		{"blank line", "a\n\nb", 10, []string{"a", "", "b"}},
		{"exact width", "abcde", 5, []string{"abcde"}},
		{"word after long word", "abcdefg hi", 5, []string{"abcde", "fg hi"}},
		{"multibyte", "héllo wörld", 6, []string{"héllo ", "wörld"}},
		{"zero width treated as one", "ab", 0, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lineTexts(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestLocateScenario(t *testing.T) {
	lines := Wrap("abcdefgh", 5)
	line, col := Locate(lines, 6)
	if line != 1 || col != 1 {
		t.Errorf("Locate(6) = (%d,%d), want (1,1)", line, col)
	}
}

func TestLocateWrapBoundary(t *testing.T) {
	lines := Wrap("abcdefgh", 5)
	line, col := Locate(lines, 5)
	if line != 1 || col != 0 {
		t.Errorf("cursor on wrap boundary = (%d,%d), want (1,0)", line, col)
	}

	lines = Wrap("abcde", 5)
	line, col = Locate(lines, 5)
	if line != 0 || col != 5 {
		t.Errorf("cursor at end of text = (%d,%d), want (0,5)", line, col)
	}
}

func TestLocateHardBreak(t *testing.T) {
	lines := Wrap("ab\ncd", 10)
	if l, c := Locate(lines, 2); l != 0 || c != 2 {
		t.Errorf("before newline = (%d,%d), want (0,2)", l, c)
	}
	if l, c := Locate(lines, 3); l != 1 || c != 0 {
		t.Errorf("after newline = (%d,%d), want (1,0)", l, c)
	}
}

// Every offset maps to the display position that holds its codepoint.
func TestWrapCursorConsistency(t *testing.T) {
	alphabet := []rune("ab cdé\nxyz  ü")
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		n := rng.Intn(40)
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = alphabet[rng.Intn(len(alphabet))]
		}
		text := string(rs)

		for width := 1; width <= 12; width++ {
			lines := Wrap(text, width)
			drawn := make([][]rune, len(lines))
			for i, ln := range lines {
				drawn[i] = []rune(ln.Text(rs))
				if len(drawn[i]) > width {
					t.Fatalf("Wrap(%q,%d) line %d overflows: %q", text, width, i, string(drawn[i]))
				}
			}

			for off := 0; off <= len(rs); off++ {
				line, col := Locate(lines, off)
				if line < 0 || line >= len(lines) || col < 0 || col > len(drawn[line]) {
					t.Fatalf("Locate(%q,%d,%d) = (%d,%d) out of range", text, width, off, line, col)
				}
				if off < len(rs) && rs[off] != '\n' {
					if col >= len(drawn[line]) || drawn[line][col] != rs[off] {
						t.Fatalf("Wrap(%q,%d): offset %d maps to (%d,%d), which does not hold %q",
							text, width, off, line, col, rs[off])
					}
				}
			}
		}
	}
}

func TestWrapCoversText(t *testing.T) {
	text := "one two\nthree fourfivesix seven"
	rs := []rune(text)
	var rebuilt strings.Builder
	lines := Wrap(text, 4)
	for i, ln := range lines {
		rebuilt.WriteString(ln.Text(rs))
		if i+1 < len(lines) && lines[i+1].Start != ln.End {
			rebuilt.WriteString("\n")
		}
	}
	if rebuilt.String() != text {
		t.Errorf("lines do not reconstruct text: %q", rebuilt.String())
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		cursor, height, offset, want int
	}{
		{0, 3, 0, 0},
		{2, 3, 0, 0},
		{3, 3, 0, 1},
		{1, 3, 2, 1},
		{5, 0, 0, 5},
	}
	for _, tt := range tests {
		if got := Window(tt.cursor, tt.height, tt.offset); got != tt.want {
			t.Errorf("Window(%d,%d,%d) = %d, want %d", tt.cursor, tt.height, tt.offset, got, tt.want)
		}
	}
}
