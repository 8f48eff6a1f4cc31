package mcptools

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

func parseDate(s string) (time.Time, error) {
	t, err := daylog.ParseKey(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: want YYYY-MM-DD", storage.ErrValidation, s)
	}
	return t, nil
}

// preview returns the first line of the notes cut to maxLen cells.
func preview(s *string, maxLen int) string {
	if s == nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(*s), "\n")
	return truncate.StringWithTail(line, uint(maxLen), "...")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
