package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papadavis47/mountains-tui/internal/config"
)

func TestPagerViewFillsScreen(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark"})
	m := pagerModel{
		content: "Line 1\nLine 2\nLine 3\nLine 4\nLine 5",
		theme:   theme,
	}

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(pagerModel)

	lines := strings.Split(stripANSI(m.View()), "\n")
	if len(lines) != 24 {
		t.Errorf("expected 24 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) < 80 {
			t.Errorf("line %d: expected min width 80, got %d", i, len(line))
		}
	}
}

func TestPagerViewWithMaxWidth(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "dracula"})
	m := pagerModel{
		content:  "## Food\n- Oatmeal",
		maxWidth: 60,
		theme:    theme,
	}

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = sized.(pagerModel)

	if m.viewport.Width != 60 {
		t.Errorf("viewport width = %d, want 60", m.viewport.Width)
	}
	out := stripANSI(m.View())
	if !strings.Contains(out, "Oatmeal") || !strings.Contains(out, "scroll") {
		t.Errorf("expected content and footer, got:\n%s", out)
	}
}

func TestPagerQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := pagerModel{}.Update(key)
		if cmd == nil {
			t.Errorf("%q: expected quit command", key.String())
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: expected tea.QuitMsg", key.String())
		}
	}
}

func TestOutputOrPageWriter(t *testing.T) {
	var buf bytes.Buffer
	theme := ResolveTheme(config.ThemeConfig{})
	if err := OutputOrPage(&buf, "plain text\n", 80, theme); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "plain text\n" {
		t.Errorf("got %q", buf.String())
	}
}
