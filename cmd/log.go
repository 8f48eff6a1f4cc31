package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/state"
	"github.com/papadavis47/mountains-tui/internal/storage"
	"github.com/papadavis47/mountains-tui/internal/ui"
)

var logDate string

// logFields lists the fields accepted by log, in help order.
var logFields = []string{"weight", "waist", "miles", "elevation", "food", "sokay", "strength", "notes"}

var logCmd = &cobra.Command{
	Use:   "log <field> <value...>",
	Short: "Log a value without opening the TUI",
	Long: `Log one value for a day without opening the interactive log.

Fields:
  weight, waist, miles   decimal numbers; an empty value clears the field
  elevation              whole feet; an empty value clears the field
  food, sokay            appends an item
  strength, notes        appends a line to the text

The write goes through the same queue as the TUI: the day is stored, its
backup file rewritten and, when a remote is configured, pushed.`,
	Example: `  mountains log miles 8.4
  mountains log elevation 2300 --date yesterday
  mountains log food "Oatmeal with blueberries"
  mountains log notes "Felt strong on the climbs"`,
	Args:     cobra.MinimumNArgs(1),
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDay(logDate, time.Now())
		if err != nil {
			exitOnError(err)
		}
		value := strings.Join(args[1:], " ")
		if err := logRun(cmd.Context(), cmd.OutOrStdout(), args[0], value, date); err != nil {
			exitOnError(err)
		}
		return nil
	},
}

func logRun(ctx context.Context, w io.Writer, field, value string, date time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var days []daylog.DailyEntry
	existing, err := store.GetDay(ctx, date)
	switch {
	case err == nil:
		days = append(days, existing)
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("loading %s: %w", daylog.KeyFor(date), err)
	}
	app := state.New(days, date)

	snap, changed, err := applyLog(app, existing, field, value)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("%w: nothing to log for %s", storage.ErrValidation, field)
	}

	wr, err := newWriter(nil)
	if err != nil {
		return err
	}
	defer wr.close()
	wr.coord.SaveDay(snap)

	commitCtx, cancel := context.WithTimeout(ctx, appConfig.Sync.QuitTimeout+time.Minute)
	defer cancel()
	if err := wr.commit(commitCtx); err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummary(snap))
	}
	fmt.Fprintf(w, "Logged %s for %s\n", field, snap.Date.Format("January 02, 2006"))
	return nil
}

func applyLog(app *state.AppState, existing daylog.DailyEntry, field, value string) (daylog.DailyEntry, bool, error) {
	switch field {
	case "weight":
		return app.SetMeasurement(state.Weight, value)
	case "waist":
		return app.SetMeasurement(state.Waist, value)
	case "miles":
		return app.SetMeasurement(state.Miles, value)
	case "elevation", "vert":
		return app.SetMeasurement(state.Elevation, value)
	case "food":
		snap, changed := app.AddFood(value)
		return snap, changed, nil
	case "sokay":
		snap, changed := app.AddSokay(value)
		return snap, changed, nil
	case "strength":
		snap, changed := app.SetLongText(state.StrengthMobility, appendLine(existing.StrengthMobility, value))
		return snap, changed && strings.TrimSpace(value) != "", nil
	case "notes":
		snap, changed := app.SetLongText(state.Notes, appendLine(existing.Notes, value))
		return snap, changed && strings.TrimSpace(value) != "", nil
	}
	return daylog.DailyEntry{}, false, fmt.Errorf("%w: unknown field %q (one of %s)",
		storage.ErrValidation, field, strings.Join(logFields, ", "))
}

func appendLine(text *string, line string) string {
	if text == nil || *text == "" {
		return line
	}
	return *text + "\n" + line
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "day to log (YYYY-MM-DD, today, yesterday)")
	rootCmd.AddCommand(logCmd)
}
