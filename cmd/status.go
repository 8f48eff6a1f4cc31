package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/shell"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

// statusData holds the template data for status formatting.
type statusData struct {
	TodayIcon  string
	Streak     int
	StreakIcon string
	Backend    string
	HasToday   bool
}

var (
	statusEnv     bool
	statusRefresh bool
	statusFormat  string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show training log prompt status",
	Long: `Show training log status for shell prompt integration.

Outputs whether today has been logged and the current vert streak (consecutive
days with at least 1000 ft of climbing). Reads from cache when fresh and
queries storage when stale.

Use --env to output shell environment variable assignments.
Use --refresh to force a cache refresh.
Use --format with a Go template for custom output.`,
	Example: `  mountains status
  mountains status --env
  mountains status --refresh
  mountains status --format "{{.TodayIcon}} {{.Streak}}{{.StreakIcon}}"`,
	Annotations: map[string]string{noStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := statusRun(cmd.Context(), time.Now())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error computing status:", err)
			os.Exit(2)
		}
		out := cmd.OutOrStdout()
		switch {
		case statusEnv:
			return outputEnv(out, data)
		case statusFormat != "":
			return outputTemplate(out, data, statusFormat)
		}
		return outputDefault(out, data)
	},
}

// statusRun resolves the prompt status. The store is opened only when the
// cache is stale, so a warm prompt never touches the database.
func statusRun(ctx context.Context, now time.Time) (statusData, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ttl, err := time.ParseDuration(appConfig.Shell.CacheTTL)
	if err != nil {
		ttl = 5 * time.Minute
	}

	cache := shell.OpenCache(appConfig.DataDir)
	if statusRefresh {
		if err := cache.Invalidate(); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: could not clear cache:", err)
		}
	}
	pc, err := shell.Status(ctx, cache, ttl, appConfig.Storage, now, func() (storage.DayStore, error) {
		return openStore(appConfig)
	})
	if err != nil {
		return statusData{}, err
	}
	return buildStatusData(pc), nil
}

func buildStatusData(pc *shell.PromptCache) statusData {
	icon := appConfig.Shell.NoTodayIcon
	if pc.Today {
		icon = appConfig.Shell.TodayIcon
	}
	return statusData{
		TodayIcon:  icon,
		Streak:     pc.Streak,
		StreakIcon: appConfig.Shell.StreakIcon,
		Backend:    pc.StorageBackend,
		HasToday:   pc.Today,
	}
}

func outputEnv(w io.Writer, data statusData) error {
	fmt.Fprintf(w, "export MOUNTAINS_TODAY=%q\n", data.TodayIcon)
	fmt.Fprintf(w, "export MOUNTAINS_STREAK=%q\n", fmt.Sprintf("%d", data.Streak))
	fmt.Fprintf(w, "export MOUNTAINS_STREAK_ICON=%q\n", data.StreakIcon)
	if data.Backend != "" {
		fmt.Fprintf(w, "export MOUNTAINS_BACKEND=%q\n", data.Backend)
	}
	return nil
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return fmt.Errorf("invalid format template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func outputDefault(w io.Writer, data statusData) error {
	parts := []string{data.TodayIcon}
	if data.Streak > 0 {
		parts = append(parts, fmt.Sprintf("%d%s", data.Streak, data.StreakIcon))
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
	return nil
}

func init() {
	statusCmd.Flags().BoolVar(&statusEnv, "env", false, "output shell environment variable assignments")
	statusCmd.Flags().BoolVar(&statusRefresh, "refresh", false, "force cache refresh")
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
