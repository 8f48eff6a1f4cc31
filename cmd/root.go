package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papadavis47/mountains-tui/internal/config"
	"github.com/papadavis47/mountains-tui/internal/persist"
	"github.com/papadavis47/mountains-tui/internal/state"
	"github.com/papadavis47/mountains-tui/internal/storage"
	"github.com/papadavis47/mountains-tui/internal/storage/markdown"
	"github.com/papadavis47/mountains-tui/internal/storage/sqlite"
	"github.com/papadavis47/mountains-tui/internal/ui"
)

// LogFile receives log output while the TUI owns the terminal.
const LogFile = "mountains.log"

// noStore marks commands that run without opening the day store.
const noStore = "no-store"

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	appConfig      *config.Config
	store          storage.DayStore
)

var rootCmd = &cobra.Command{
	Use:   "mountains",
	Short: "A trail running training log",
	Long: `mountains is a keyboard-driven training and nutrition log for the terminal.

Run it without arguments to open the interactive log. Days are stored locally
(sqlite or markdown), mirrored to plain-text backups and optionally synced to a
Turso replica.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}
		if cmd.Annotations[noStore] != "" {
			return nil
		}

		store, err = openStore(appConfig)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: print today's backup text instead
			return todayRun(os.Stdout, time.Now())
		}
		return runTUI(cmd.Context())
	},
}

// openStore initializes the configured storage backend.
func openStore(cfg *config.Config) (storage.DayStore, error) {
	switch cfg.Storage {
	case "markdown":
		s, err := markdown.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown storage: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
}

func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	days, err := store.LoadAllDays(ctx)
	if err != nil {
		return fmt.Errorf("loading days: %w", err)
	}

	results := make(chan persist.Result, 64)
	w, err := newWriter(func(r persist.Result) {
		// The TUI only needs to hear about failures, and must never block a worker.
		if r.Err == nil {
			return
		}
		select {
		case results <- r:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer w.close()

	deps := ui.Deps{
		State:   state.New(days, time.Now()),
		Writer:  w.coord,
		Syncer:  w.syncer,
		Loader:  w.loader(),
		Results: results,
	}
	tuiErr := ui.RunTUI(deps, ui.TUIConfig{
		Editor:       appConfig.Editor,
		MaxWidth:     appConfig.MaxWidth,
		Theme:        ui.ResolveTheme(appConfig.Theme),
		SyncInterval: appConfig.Sync.Interval,
		QuitTimeout:  appConfig.Sync.QuitTimeout,
	}, filepath.Join(appConfig.DataDir, LogFile))

	// Normally drained at quit already; this covers a program error.
	flushCtx, cancel := context.WithTimeout(context.Background(), appConfig.Sync.QuitTimeout)
	defer cancel()
	if err := w.coord.Flush(flushCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: pending writes not finished: %v\n", err)
	}
	invalidateCache()
	return tuiErr
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
