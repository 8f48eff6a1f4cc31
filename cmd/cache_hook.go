package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/shell"
)

// invalidateCachePostRun is a PostRunE hook that invalidates the prompt cache
// after mutating commands (log, delete, seed).
func invalidateCachePostRun(cmd *cobra.Command, args []string) error {
	invalidateCache()
	return nil
}

// invalidateCache drops the prompt cache. Best-effort: a stale prompt must
// never turn a successful command into a failure.
func invalidateCache() {
	if appConfig == nil {
		return
	}
	_ = shell.OpenCache(appConfig.DataDir).Invalidate()
}
