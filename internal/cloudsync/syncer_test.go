package cloudsync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/papadavis47/mountains-tui/internal/cloudsync"
	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

type fakeRemote struct {
	connectErr error
	pushErr    error
	connects   int
	pushed     [][]cloudsync.Change
}

func (f *fakeRemote) Connect(ctx context.Context) error {
	f.connects++
	return f.connectErr
}

func (f *fakeRemote) Push(ctx context.Context, changes []cloudsync.Change) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, changes)
	return nil
}

func (f *fakeRemote) Close() error { return nil }

func loaderOf(days ...daylog.DailyEntry) cloudsync.Loader {
	byKey := map[string]daylog.DailyEntry{}
	for _, d := range days {
		byKey[d.Key()] = d
	}
	return func(ctx context.Context, date time.Time) (daylog.DailyEntry, error) {
		d, ok := byKey[daylog.KeyFor(date)]
		if !ok {
			return daylog.DailyEntry{}, storage.ErrNotFound
		}
		return d, nil
	}
}

func TestStatusLabels(t *testing.T) {
	tests := []struct {
		state cloudsync.State
		want  string
	}{
		{cloudsync.State{}, "⚪ Offline"},
		{cloudsync.State{Phase: cloudsync.Connecting}, "… Connecting"},
		{cloudsync.State{Phase: cloudsync.Connected}, "✓ Synced"},
		{cloudsync.Error("dns"), "⚠️ Sync Error"},
	}
	for _, tt := range tests {
		if got := tt.state.Status(); got != tt.want {
			t.Errorf("Status() = %q, want %q", got, tt.want)
		}
	}
}

func TestOfflineSyncIsNoop(t *testing.T) {
	s := cloudsync.New(nil)
	s.MarkDirty("2024-03-09")

	st, err := s.Sync(context.Background(), loaderOf())
	if err != nil {
		t.Fatalf("Sync offline: %v", err)
	}
	if !st.Offline() || st.Status() != "⚪ Offline" {
		t.Errorf("state = %v, want offline", st)
	}
	if s.Connect(context.Background()).Phase != cloudsync.Disconnected {
		t.Error("Connect without remote left Disconnected")
	}
}

func TestConnectFailure(t *testing.T) {
	s := cloudsync.New(&fakeRemote{connectErr: errors.New("no route to host")})
	st := s.Connect(context.Background())
	if st.Phase != cloudsync.Failed || st.Reason != "no route to host" {
		t.Errorf("state = %+v", st)
	}
}

func TestSyncPushesDirtyDays(t *testing.T) {
	remote := &fakeRemote{}
	s := cloudsync.New(remote)

	kept := daylog.New(time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local))
	kept.AddFood("Oatmeal")
	s.MarkDirty(kept.Key())
	s.MarkDirty("2024-03-08") // deleted locally

	st, err := s.Sync(context.Background(), loaderOf(kept))
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if st.Phase != cloudsync.Connected {
		t.Errorf("state = %v, want connected", st)
	}
	if remote.connects != 1 {
		t.Errorf("connects = %d, want 1", remote.connects)
	}
	if len(remote.pushed) != 1 || len(remote.pushed[0]) != 2 {
		t.Fatalf("pushed = %+v", remote.pushed)
	}
	changes := remote.pushed[0]
	if changes[0].Key != "2024-03-08" || changes[0].Day != nil {
		t.Errorf("first change = %+v, want delete of 2024-03-08", changes[0])
	}
	if changes[1].Day == nil || len(changes[1].Day.Food) != 1 {
		t.Errorf("second change = %+v, want upsert with food", changes[1])
	}
	if len(s.Dirty()) != 0 {
		t.Errorf("dirty after sync = %v", s.Dirty())
	}

	if _, err := s.Sync(context.Background(), loaderOf(kept)); err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if len(remote.pushed) != 1 {
		t.Error("clean sync pushed again")
	}
}

func TestPushFailureKeepsDirty(t *testing.T) {
	remote := &fakeRemote{pushErr: errors.New("401 unauthorized")}
	s := cloudsync.New(remote)
	s.MarkDirty("2024-03-09")

	st, err := s.Sync(context.Background(), loaderOf())
	if !errors.Is(err, cloudsync.ErrSync) {
		t.Fatalf("Sync err = %v, want ErrSync", err)
	}
	if st.Status() != "⚠️ Sync Error" {
		t.Errorf("status = %q", st.Status())
	}
	if len(s.Dirty()) != 1 {
		t.Error("failed push cleared the dirty set")
	}
}

// blockingRemote holds every call until released and ignores its context.
type blockingRemote struct {
	release chan struct{}
	closed  chan struct{}
}

func newBlockingRemote() *blockingRemote {
	return &blockingRemote{release: make(chan struct{}), closed: make(chan struct{})}
}

func (r *blockingRemote) Connect(ctx context.Context) error {
	<-r.release
	return nil
}

func (r *blockingRemote) Push(ctx context.Context, changes []cloudsync.Change) error {
	<-r.release
	return nil
}

func (r *blockingRemote) Close() error {
	close(r.closed)
	return nil
}

func TestSyncReturnsWhenRemoteHangs(t *testing.T) {
	remote := newBlockingRemote()
	s := cloudsync.New(remote)
	s.MarkDirty("2024-03-09")

	// first call holds the remote
	go s.Sync(context.Background(), loaderOf())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	st, err := s.Sync(ctx, loaderOf())
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Sync returned after %v", elapsed)
	}
	if !errors.Is(err, cloudsync.ErrSync) || st.Phase != cloudsync.Failed {
		t.Errorf("Sync = %v, %v; want timed-out failure", st, err)
	}
	if len(s.Dirty()) != 1 {
		t.Error("timed-out sync cleared the dirty set")
	}

	// Close while the remote is stuck is deferred until the call returns.
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-remote.closed:
		t.Fatal("remote closed while a call was in flight")
	default:
	}
	close(remote.release)
	select {
	case <-remote.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("remote never closed after the call returned")
	}
}

func TestConnectReturnsWhenRemoteHangs(t *testing.T) {
	remote := newBlockingRemote()
	t.Cleanup(func() { close(remote.release) })
	s := cloudsync.New(remote)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if st := s.Connect(ctx); st.Phase != cloudsync.Failed {
		t.Errorf("Connect = %v, want timed-out failure", st)
	}
}

func TestPendingSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := cloudsync.New(nil, cloudsync.WithPending(cloudsync.OpenPending(dir)))
	first.MarkDirty("2024-03-09")
	first.MarkDirty("2024-03-08")

	remote := &fakeRemote{}
	day := daylog.New(time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local))
	second := cloudsync.New(remote, cloudsync.WithPending(cloudsync.OpenPending(dir)))
	if got := second.Dirty(); len(got) != 2 {
		t.Fatalf("reloaded dirty = %v", got)
	}
	if _, err := second.Sync(context.Background(), loaderOf(day)); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(remote.pushed) != 1 || len(remote.pushed[0]) != 2 {
		t.Fatalf("pushed = %+v", remote.pushed)
	}

	third := cloudsync.New(remote, cloudsync.WithPending(cloudsync.OpenPending(dir)))
	if got := third.Dirty(); len(got) != 0 {
		t.Errorf("pushed days still pending after restart: %v", got)
	}
}
