package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/ui"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete one day's log",
	Long:  "Permanently delete a day's log and its backup file. Requires confirmation unless --force is used.",
	Example: `  mountains delete 2024-03-09
  mountains delete yesterday --force`,
	Args:     cobra.ExactArgs(1),
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deleteRun(cmd.Context(), os.Stdout, args[0], time.Now(), !forceDelete); err != nil {
			exitOnError(err)
		}
		return nil
	},
}

func deleteRun(ctx context.Context, w io.Writer, arg string, now time.Time, confirm bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	date, err := parseDay(arg, now)
	if err != nil {
		return err
	}
	d, err := store.GetDay(ctx, date)
	if err != nil {
		return fmt.Errorf("no log for %s: %w", date.Format("2006-01-02"), err)
	}

	if confirm {
		fmt.Fprintf(w, "Day: %s\n", d.Date.Format("January 02, 2006"))
		fmt.Fprintf(w, "Food: %d  Sokay: %d  Notes: %s\n\n", len(d.Food), len(d.Sokay), ui.Preview(d.Notes, 60))

		ok, err := ui.Confirm("Delete this day? This cannot be undone.", ui.ResolveTheme(appConfig.Theme), nil, nil)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	wr, err := newWriter(nil)
	if err != nil {
		return err
	}
	defer wr.close()
	wr.coord.DeleteDay(date)

	commitCtx, cancel := context.WithTimeout(ctx, appConfig.Sync.QuitTimeout+time.Minute)
	defer cancel()
	if err := wr.commit(commitCtx); err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, map[string]any{"date": d.Key(), "deleted": true})
	}
	fmt.Fprintf(w, "Deleted %s\n", d.Date.Format("January 02, 2006"))
	return nil
}

func init() {
	deleteCmd.Flags().BoolVar(&forceDelete, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
