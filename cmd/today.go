package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/backup"
	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
	"github.com/papadavis47/mountains-tui/internal/ui"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print today's log",
	Long: `Print today's log as plain backup text.

This is also what mountains prints when stdout is not a terminal. A day that
has not been logged yet prints as an empty record.`,
	Example: `  mountains today
  mountains today --json
  mountains | head`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return todayRun(cmd.OutOrStdout(), time.Now())
	},
}

func todayRun(w io.Writer, now time.Time) error {
	date := daylog.NormalizeDate(now)
	d, err := store.GetDay(context.Background(), date)
	if errors.Is(err, storage.ErrNotFound) {
		d, err = daylog.New(date), nil
	}
	if err != nil {
		return fmt.Errorf("getting today's log: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummary(d))
	}
	_, err = fmt.Fprint(w, backup.Render(d))
	return err
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

// exitOnError prints err and exits with the code used across commands:
// 1 for a missing day or bad input, 2 for storage failures.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrValidation) {
		os.Exit(1)
	}
	os.Exit(2)
}
