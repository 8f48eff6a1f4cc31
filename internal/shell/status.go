package shell

import (
	"context"
	"fmt"
	"time"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

// ComputeStatus loads every day and reports whether today has been logged
// and the current vert streak.
func ComputeStatus(ctx context.Context, store storage.DayStore, now time.Time) (todayExists bool, streak int, err error) {
	days, err := store.LoadAllDays(ctx)
	if err != nil {
		return false, 0, err
	}
	today := daylog.KeyFor(now)
	for _, d := range days {
		if d.Key() == today {
			todayExists = true
			break
		}
	}
	return todayExists, daylog.VertStreak(days), nil
}

// Status resolves the prompt status, serving it from cache while fresh and
// recomputing it from store otherwise.
func Status(ctx context.Context, cache *Cache, ttl time.Duration, backend string, now time.Time, store func() (storage.DayStore, error)) (*PromptCache, error) {
	if pc := cache.Read(); pc.IsFresh(ttl, now) {
		return pc, nil
	}
	s, err := store()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	today, streak, err := ComputeStatus(ctx, s, now)
	if err != nil {
		return nil, fmt.Errorf("computing status: %w", err)
	}
	pc := &PromptCache{
		Today:          today,
		Streak:         streak,
		TodayDate:      now.Format("2006-01-02"),
		StorageBackend: backend,
		UpdatedAt:      now,
	}
	// A cache that cannot be written only costs a recomputation next time.
	_ = cache.Write(pc)
	return pc, nil
}
