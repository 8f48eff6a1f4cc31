package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/cloudsync"
	"github.com/papadavis47/mountains-tui/internal/ui"
)

// syncTimeout bounds a full push.
const syncTimeout = 2 * time.Minute

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local days to the cloud replica",
	Long: `Connect to the configured Turso replica and push local days to it.

Every locally stored day is pushed. The remote keeps whichever version was
pushed last.`,
	Example: `  mountains sync
  mountains sync --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := syncRun(cmd.Context(), cmd.OutOrStdout()); err != nil {
			exitOnError(err)
		}
		return nil
	},
}

func syncRun(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	syncer := newSyncer()
	defer func() {
		if err := syncer.Close(); err != nil {
			fmt.Fprintf(w, "Warning: closing replica: %v\n", err)
		}
	}()

	if !syncer.Enabled() {
		return report(w, syncer.State(), 0)
	}

	days, err := store.LoadAllDays(ctx)
	if err != nil {
		return fmt.Errorf("loading days: %w", err)
	}
	for _, d := range days {
		syncer.MarkDirty(d.Key())
	}

	syncCtx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()
	st, err := syncer.Sync(syncCtx, store.GetDay)
	if err != nil {
		return err
	}
	return report(w, st, len(days))
}

func report(w io.Writer, st cloudsync.State, pushed int) error {
	if jsonOutput {
		return ui.FormatJSON(w, map[string]any{
			"enabled": !st.Offline(),
			"status":  st.String(),
			"pushed":  pushed,
		})
	}
	if st.Offline() {
		fmt.Fprintln(w, "Sync is not configured (set sync.url in the config file).")
		return nil
	}
	fmt.Fprintf(w, "%s: pushed %d days\n", st.Status(), pushed)
	return nil
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
