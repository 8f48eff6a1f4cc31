package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/ui"
)

var statsDate string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mileage, vert and streak totals",
	Long:  "Show yearly and monthly mileage, elevation, 1000+ ft vert days and the current vert streak.",
	Example: `  mountains stats
  mountains stats --date 2024-03-31
  mountains stats --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := statsRun(cmd.OutOrStdout(), time.Now()); err != nil {
			exitOnError(err)
		}
		return nil
	},
}

func statsRun(w io.Writer, now time.Time) error {
	ref, err := parseDay(statsDate, now)
	if err != nil {
		return err
	}
	days, err := store.LoadAllDays(context.Background())
	if err != nil {
		return fmt.Errorf("loading days: %w", err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.ComputeStats(days, ref))
	}
	ui.FormatStats(w, days, ref)
	return nil
}

func init() {
	statsCmd.Flags().StringVar(&statsDate, "date", "", "reference day for monthly and yearly totals")
	rootCmd.AddCommand(statsCmd)
}
