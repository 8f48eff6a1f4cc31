package persist_test

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/papadavis47/mountains-tui/internal/backup"
	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/persist"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

// mockStore records writes and can be slowed down or made to fail.
type mockStore struct {
	mu      sync.Mutex
	days    map[string]daylog.DailyEntry
	log     []string
	delay   func(d daylog.DailyEntry) time.Duration
	fail    error
	panicOn string
	active  map[string]int
	overlap bool
}

func newMockStore() *mockStore {
	return &mockStore{days: map[string]daylog.DailyEntry{}, active: map[string]int{}}
}

func (m *mockStore) enter(key string) {
	m.mu.Lock()
	m.active[key]++
	if m.active[key] > 1 {
		m.overlap = true
	}
	m.mu.Unlock()
}

func (m *mockStore) leave(key string) {
	m.mu.Lock()
	m.active[key]--
	m.mu.Unlock()
}

func (m *mockStore) UpsertDay(ctx context.Context, d daylog.DailyEntry) error {
	m.enter(d.Key())
	defer m.leave(d.Key())
	if d.Key() == m.panicOn {
		panic("boom")
	}
	if m.delay != nil {
		time.Sleep(m.delay(d))
	}
	if m.fail != nil {
		return m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[d.Key()] = d.Clone()
	m.log = append(m.log, "save "+d.Key())
	return nil
}

func (m *mockStore) DeleteDay(ctx context.Context, date time.Time) error {
	key := daylog.KeyFor(date)
	m.enter(key)
	defer m.leave(key)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.days, key)
	m.log = append(m.log, "delete "+key)
	return nil
}

func (m *mockStore) GetDay(ctx context.Context, date time.Time) (daylog.DailyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.days[daylog.KeyFor(date)]
	if !ok {
		return daylog.DailyEntry{}, storage.ErrNotFound
	}
	return d, nil
}

func (m *mockStore) LoadAllDays(ctx context.Context) ([]daylog.DailyEntry, error) {
	return nil, nil
}

func (m *mockStore) Close() error { return nil }

type markRecorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *markRecorder) MarkDirty(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func flush(t *testing.T, c *persist.Coordinator) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func date(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.Local) }

func TestSameDayWritesKeepOrder(t *testing.T) {
	store := newMockStore()
	// The earlier write is slower, so overlapping jobs would let it land last.
	store.delay = func(d daylog.DailyEntry) time.Duration {
		if len(d.Food) == 1 {
			return 50 * time.Millisecond
		}
		return 0
	}
	dir, err := backup.New(t.TempDir())
	if err != nil {
		t.Fatalf("backup.New: %v", err)
	}
	c := persist.New(store, dir, persist.WithLogger(quietLogger()))

	d := daylog.New(date(9))
	d.AddFood("Oatmeal")
	c.SaveDay(d.Clone())
	d.AddFood("Banana")
	c.SaveDay(d.Clone())
	flush(t, c)

	got, _ := store.GetDay(context.Background(), d.Date)
	if len(got.Food) != 2 {
		t.Errorf("store holds %d food items, want 2 (stale write won)", len(got.Food))
	}
	text, err := dir.Read(d.Date)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if !strings.Contains(text, "- Banana\n") {
		t.Errorf("backup reflects only the earlier write:\n%s", text)
	}
	if store.overlap {
		t.Error("jobs for the same day overlapped")
	}
}

func TestSameDaySaveThenDelete(t *testing.T) {
	store := newMockStore()
	store.delay = func(daylog.DailyEntry) time.Duration { return 20 * time.Millisecond }
	c := persist.New(store, nil, persist.WithLogger(quietLogger()))

	d := daylog.New(date(10))
	c.SaveDay(d.Clone())
	c.DeleteDay(d.Date)
	flush(t, c)

	if _, err := store.GetDay(context.Background(), d.Date); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("day survived a later delete: %v", err)
	}
	if strings.Join(store.log, ",") != "save 2024-03-10,delete 2024-03-10" {
		t.Errorf("log = %v", store.log)
	}
}

func TestDifferentDaysRunConcurrently(t *testing.T) {
	store := newMockStore()
	store.delay = func(daylog.DailyEntry) time.Duration { return 100 * time.Millisecond }
	c := persist.New(store, nil, persist.WithLogger(quietLogger()))

	start := time.Now()
	for i := 1; i <= 5; i++ {
		c.SaveDay(daylog.New(date(i)))
	}
	flush(t, c)

	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("5 independent days took %v, expected concurrent execution", elapsed)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d after flush", c.Pending())
	}
}

func TestFailureIsReportedNotRetried(t *testing.T) {
	store := newMockStore()
	store.fail = errors.New("disk full")

	var mu sync.Mutex
	var results []persist.Result
	c := persist.New(store, nil,
		persist.WithLogger(quietLogger()),
		persist.WithOnResult(func(r persist.Result) {
			mu.Lock()
			defer mu.Unlock()
			results = append(results, r)
		}),
	)

	c.SaveDay(daylog.New(date(11)))
	flush(t, c)

	if len(results) != 1 {
		t.Fatalf("got %d results, want exactly 1 (no retry)", len(results))
	}
	if results[0].Err == nil || results[0].Key != "2024-03-11" || results[0].Op != persist.OpSave {
		t.Errorf("result = %+v", results[0])
	}
}

func TestPanicIsRecovered(t *testing.T) {
	store := newMockStore()
	store.panicOn = "2024-03-12"

	var got persist.Result
	done := make(chan struct{})
	c := persist.New(store, nil,
		persist.WithLogger(quietLogger()),
		persist.WithOnResult(func(r persist.Result) { got = r; close(done) }),
	)

	c.SaveDay(daylog.New(date(12)))
	flush(t, c)
	<-done

	if !errors.Is(got.Err, storage.ErrStorage) {
		t.Errorf("panic result err = %v, want ErrStorage", got.Err)
	}
}

func TestJobsMarkDirty(t *testing.T) {
	store := newMockStore()
	marks := &markRecorder{}
	c := persist.New(store, nil, persist.WithLogger(quietLogger()), persist.WithDirtyMarker(marks))

	c.SaveDay(daylog.New(date(13)))
	c.DeleteDay(date(14))
	flush(t, c)

	marks.mu.Lock()
	defer marks.mu.Unlock()
	if len(marks.keys) != 2 {
		t.Errorf("marked %v, want both days", marks.keys)
	}
}

func TestFlushHonorsContext(t *testing.T) {
	store := newMockStore()
	store.delay = func(daylog.DailyEntry) time.Duration { return time.Second }
	c := persist.New(store, nil, persist.WithLogger(quietLogger()))
	c.SaveDay(daylog.New(date(15)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := c.Flush(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Flush err = %v, want DeadlineExceeded", err)
	}
	flush(t, c)
}
