package cmd

import (
	"fmt"
	"time"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

// parseDay resolves a day argument: empty or "today", "yesterday", or YYYY-MM-DD.
func parseDay(s string, now time.Time) (time.Time, error) {
	switch s {
	case "", "today":
		return daylog.NormalizeDate(now), nil
	case "yesterday":
		return daylog.NormalizeDate(now).AddDate(0, 0, -1), nil
	}
	t, err := daylog.ParseKey(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (use YYYY-MM-DD)", storage.ErrValidation, s)
	}
	return t, nil
}
