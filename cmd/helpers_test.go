package cmd

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/papadavis47/mountains-tui/internal/config"
	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
	"github.com/papadavis47/mountains-tui/internal/storage/markdown"
)

func init() {
	color.NoColor = true
}

// testNow is a Saturday.
var testNow = time.Date(2024, 3, 9, 10, 0, 0, 0, time.Local)

func setupTestStore(t *testing.T, dir string) storage.DayStore {
	t.Helper()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func setupTestEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	store = setupTestStore(t, dir)
	appConfig = &config.Config{
		Storage:   "markdown",
		DataDir:   dir,
		BackupDir: filepath.Join(dir, "backups"),
		MaxWidth:  80,
		Sync:      config.SyncConfig{QuitTimeout: 5 * time.Second},
		Shell: config.ShellConfig{
			CacheTTL:    "5m",
			TodayIcon:   "✓",
			NoTodayIcon: "✗",
			StreakIcon:  "⛰",
		},
	}
	jsonOutput = false
}

func ptr[T any](v T) *T { return &v }

// seedStore writes days straight to the store, bypassing the write queue.
func seedStore(t *testing.T, days ...daylog.DailyEntry) {
	t.Helper()
	for _, d := range days {
		if err := store.UpsertDay(context.Background(), d); err != nil {
			t.Fatalf("seeding %s: %v", d.Key(), err)
		}
	}
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
