package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/ui"
)

var (
	listFrom  string
	listTo    string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged days",
	Long:  "List logged days as a table, newest first.",
	Example: `  mountains list
  mountains list --from 2024-03-01 --to 2024-03-31
  mountains list --limit 7 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var buf bytes.Buffer
		if err := listRun(&buf, time.Now()); err != nil {
			exitOnError(err)
		}
		if jsonOutput {
			_, err := io.Copy(os.Stdout, &buf)
			return err
		}
		return ui.OutputOrPage(os.Stdout, buf.String(), appConfig.MaxWidth, ui.ResolveTheme(appConfig.Theme))
	},
}

func listRun(w io.Writer, now time.Time) error {
	var from, to string
	if listFrom != "" {
		t, err := parseDay(listFrom, now)
		if err != nil {
			return err
		}
		from = daylog.KeyFor(t)
	}
	if listTo != "" {
		t, err := parseDay(listTo, now)
		if err != nil {
			return err
		}
		to = daylog.KeyFor(t)
	}

	days, err := store.LoadAllDays(context.Background())
	if err != nil {
		return fmt.Errorf("loading days: %w", err)
	}
	filtered := days[:0]
	for _, d := range days {
		key := d.Key()
		if (from != "" && key < from) || (to != "" && key > to) {
			continue
		}
		filtered = append(filtered, d)
	}
	if listLimit > 0 && len(filtered) > listLimit {
		filtered = filtered[:listLimit]
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(filtered))
	}
	ui.FormatDayList(w, filtered)
	return nil
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "first day to include (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "last day to include (YYYY-MM-DD)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of days (0 = all)")
	rootCmd.AddCommand(listCmd)
}
