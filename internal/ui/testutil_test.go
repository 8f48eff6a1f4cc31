package ui

import (
	"regexp"
	"strings"
	"testing"
)

// ansiSeq matches CSI sequences: colours, erase-line and cursor moves.
var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// assertContains fails for each want missing from the plain text of view.
func assertContains(t *testing.T, view string, wants ...string) {
	t.Helper()
	plain := stripANSI(view)
	for _, want := range wants {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q:\n%s", want, plain)
		}
	}
}
