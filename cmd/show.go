package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/backup"
	"github.com/papadavis47/mountains-tui/internal/ui"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show one day's log",
	Long:  "Display one day's log rendered as markdown. The date defaults to today.",
	Example: `  mountains show
  mountains show 2024-03-09
  mountains show yesterday --raw
  mountains show 2024-03-09 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		var buf bytes.Buffer
		if err := showRun(&buf, arg, time.Now()); err != nil {
			exitOnError(err)
		}
		if jsonOutput || showRaw {
			_, err := io.Copy(os.Stdout, &buf)
			return err
		}
		return ui.OutputOrPage(os.Stdout, buf.String(), appConfig.MaxWidth, ui.ResolveTheme(appConfig.Theme))
	},
}

func showRun(w io.Writer, arg string, now time.Time) error {
	date, err := parseDay(arg, now)
	if err != nil {
		return err
	}
	d, err := store.GetDay(context.Background(), date)
	if err != nil {
		return fmt.Errorf("no log for %s: %w", date.Format("2006-01-02"), err)
	}

	switch {
	case jsonOutput:
		return ui.FormatJSON(w, ui.ToSummary(d))
	case showRaw:
		_, err = fmt.Fprint(w, backup.Render(d))
		return err
	}
	theme := ui.ResolveTheme(appConfig.Theme)
	ui.FormatDay(w, d, appConfig.MaxWidth, theme.MarkdownStyle)
	return nil
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the plain backup text")
	rootCmd.AddCommand(showCmd)
}
