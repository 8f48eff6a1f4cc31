// Package cloudsync pushes locally changed days to a remote replica. The
// interactive loop never blocks on it: Connect and Sync run as background
// commands and only the resulting State is shown.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

// ErrSync is wrapped by errors from the remote.
var ErrSync = errors.New("sync error")

// Change is one day to reconcile remotely. A nil Day deletes the day.
type Change struct {
	Key string
	Day *daylog.DailyEntry
}

// Remote is a cloud replica of the day store.
type Remote interface {
	Connect(ctx context.Context) error
	Push(ctx context.Context, changes []Change) error
	Close() error
}

// Loader reads the current local version of a day. It returns
// storage.ErrNotFound for deleted days.
type Loader func(ctx context.Context, date time.Time) (daylog.DailyEntry, error)

// Syncer tracks the connection state and the set of days changed since the
// last successful push. It is safe for concurrent use.
//
// Connect and Sync return once their context ends even when the remote
// ignores it. The abandoned call keeps the remote busy until it returns, and
// a Close issued meanwhile is deferred until then.
type Syncer struct {
	remote  Remote
	pending Pending

	mu         sync.Mutex
	state      State
	dirty      map[string]struct{}
	closeLater bool

	busy chan struct{} // one remote operation at a time
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithPending keeps the dirty set in p so it survives restarts. Keys saved
// by an earlier session are loaded immediately.
func WithPending(p Pending) Option {
	return func(s *Syncer) { s.pending = p }
}

// New creates a Syncer. A nil remote means no credentials are configured:
// the Syncer stays Disconnected and Sync is a no-op, but dirty days are
// still recorded.
func New(remote Remote, opts ...Option) *Syncer {
	s := &Syncer{
		remote: remote,
		dirty:  make(map[string]struct{}),
		busy:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pending != nil {
		keys, err := s.pending.Load()
		if err != nil {
			log.Printf("sync: loading pending days: %v", err)
		}
		for _, k := range keys {
			s.dirty[k] = struct{}{}
		}
	}
	return s
}

// Enabled reports whether a remote is configured.
func (s *Syncer) Enabled() bool { return s.remote != nil }

// State returns the current connection state.
func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Syncer) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// MarkDirty records that the day with key changed locally.
func (s *Syncer) MarkDirty(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dirty[key]; ok {
		return
	}
	s.dirty[key] = struct{}{}
	s.savePendingLocked()
}

// Dirty returns the pending day keys in ascending order.
func (s *Syncer) Dirty() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirtyLocked()
}

func (s *Syncer) dirtyLocked() []string {
	keys := make([]string, 0, len(s.dirty))
	for k := range s.dirty {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Syncer) savePendingLocked() {
	if s.pending == nil {
		return
	}
	if err := s.pending.Save(s.dirtyLocked()); err != nil {
		log.Printf("sync: saving pending days: %v", err)
	}
}

// acquire takes the remote, giving up when ctx ends first.
func (s *Syncer) acquire(ctx context.Context) bool {
	select {
	case s.busy <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

// release frees the remote, running a Close that arrived while it was busy.
func (s *Syncer) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeLater {
		s.closeLater = false
		if err := s.remote.Close(); err != nil {
			log.Printf("sync: closing remote: %v", err)
		}
	}
	<-s.busy
}

// timedOut records and reports an operation abandoned at ctx's end.
func (s *Syncer) timedOut(ctx context.Context) (State, error) {
	st := Error("timed out")
	s.setState(st)
	return st, fmt.Errorf("%w: %v", ErrSync, ctx.Err())
}

type outcome struct {
	state State
	err   error
}

// run executes op on the remote in the background and waits for it or for
// ctx, whichever ends first.
func (s *Syncer) run(ctx context.Context, op func() (State, error)) (State, error) {
	if !s.acquire(ctx) {
		return s.timedOut(ctx)
	}
	done := make(chan outcome, 1)
	go func() {
		defer s.release()
		st, err := op()
		done <- outcome{st, err}
	}()
	select {
	case o := <-done:
		return o.state, o.err
	case <-ctx.Done():
		select {
		case o := <-done:
			return o.state, o.err
		default:
			return s.timedOut(ctx)
		}
	}
}

// Connect opens the remote, moving through Connecting to Connected or Failed.
func (s *Syncer) Connect(ctx context.Context) State {
	if s.remote == nil {
		return s.State()
	}
	st, _ := s.run(ctx, func() (State, error) {
		return s.connectLocked(ctx), nil
	})
	return st
}

func (s *Syncer) connectLocked(ctx context.Context) State {
	s.setState(State{Phase: Connecting})
	if err := s.remote.Connect(ctx); err != nil {
		st := Error(err.Error())
		s.setState(st)
		return st
	}
	st := State{Phase: Connected}
	s.setState(st)
	return st
}

// Sync pushes every dirty day to the remote, connecting first if needed.
// The dirty set is cleared only for keys that were pushed successfully; keys
// marked during the push stay pending.
func (s *Syncer) Sync(ctx context.Context, load Loader) (State, error) {
	if s.remote == nil {
		return s.State(), nil
	}
	return s.run(ctx, func() (State, error) {
		return s.syncLocked(ctx, load)
	})
}

func (s *Syncer) syncLocked(ctx context.Context, load Loader) (State, error) {
	if s.State().Phase != Connected {
		if st := s.connectLocked(ctx); st.Phase != Connected {
			return st, fmt.Errorf("%w: %s", ErrSync, st.Reason)
		}
	}

	keys := s.Dirty()
	if len(keys) == 0 {
		return s.State(), nil
	}

	changes := make([]Change, 0, len(keys))
	for _, key := range keys {
		date, err := daylog.ParseKey(key)
		if err != nil {
			return s.fail(fmt.Errorf("%w: bad day key %q: %v", ErrSync, key, err))
		}
		day, err := load(ctx, date)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			changes = append(changes, Change{Key: key})
		case err != nil:
			return s.fail(fmt.Errorf("%w: loading %s: %v", ErrSync, key, err))
		default:
			changes = append(changes, Change{Key: key, Day: &day})
		}
	}

	if err := s.remote.Push(ctx, changes); err != nil {
		return s.fail(fmt.Errorf("%w: %v", ErrSync, err))
	}

	s.mu.Lock()
	for _, key := range keys {
		delete(s.dirty, key)
	}
	s.savePendingLocked()
	s.state = State{Phase: Connected}
	s.mu.Unlock()
	return s.State(), nil
}

func (s *Syncer) fail(err error) (State, error) {
	st := Error(err.Error())
	s.setState(st)
	return st, err
}

// Close releases the remote. When an abandoned Connect or Sync still holds
// it, the remote is closed as soon as that call returns.
func (s *Syncer) Close() error {
	if s.remote == nil {
		return nil
	}
	s.mu.Lock()
	select {
	case s.busy <- struct{}{}:
	default:
		s.closeLater = true
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	defer func() { <-s.busy }()
	return s.remote.Close()
}
