package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/papadavis47/mountains-tui/internal/backup"
	"github.com/papadavis47/mountains-tui/internal/cloudsync"
	"github.com/papadavis47/mountains-tui/internal/persist"
)

// writer bundles the write path shared by the TUI and the mutating
// commands: the per-day coordinator, its backup mirror and the cloud syncer.
type writer struct {
	coord  *persist.Coordinator
	syncer *cloudsync.Syncer

	mu   sync.Mutex
	errs []error
}

// newWriter wires a coordinator over the open store. onResult, if set, sees
// every job outcome.
func newWriter(onResult func(persist.Result)) (*writer, error) {
	bk, err := backup.New(appConfig.BackupDir)
	if err != nil {
		return nil, err
	}
	w := &writer{syncer: newSyncer()}
	w.coord = persist.New(store, bk,
		persist.WithDirtyMarker(w.syncer),
		persist.WithOnResult(func(r persist.Result) {
			if r.Err != nil {
				w.mu.Lock()
				w.errs = append(w.errs, fmt.Errorf("%s %s: %w", r.Op, r.Key, r.Err))
				w.mu.Unlock()
			}
			if onResult != nil {
				onResult(r)
			}
		}),
	)
	return w, nil
}

// newSyncer returns a syncer for the configured remote, or an offline one.
// Days not yet pushed are kept in the data directory across runs.
func newSyncer() *cloudsync.Syncer {
	pending := cloudsync.WithPending(cloudsync.OpenPending(appConfig.DataDir))
	creds := cloudsync.Credentials{URL: appConfig.Sync.URL, AuthToken: appConfig.Sync.AuthToken}
	if !creds.Configured() {
		return cloudsync.New(nil, pending)
	}
	return cloudsync.New(cloudsync.NewTursoRemote(appConfig.DataDir, creds), pending)
}

func (w *writer) loader() cloudsync.Loader {
	return store.GetDay
}

// commit waits for queued writes and pushes them when a remote is
// configured. Write failures are returned; a failed push only warns since
// the days stay on disk for the next sync.
func (w *writer) commit(ctx context.Context) error {
	if err := w.coord.Flush(ctx); err != nil {
		return fmt.Errorf("waiting for writes: %w", err)
	}
	w.mu.Lock()
	err := errors.Join(w.errs...)
	w.errs = nil
	w.mu.Unlock()
	if err != nil {
		return err
	}

	if w.syncer.Enabled() {
		if _, serr := w.syncer.Sync(ctx, w.loader()); serr != nil {
			fmt.Fprintf(os.Stderr, "Warning: sync failed, changes will sync later: %v\n", serr)
		}
	}
	return nil
}

func (w *writer) close() {
	if err := w.syncer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing replica: %v\n", err)
	}
}
