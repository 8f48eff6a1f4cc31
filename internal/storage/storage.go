package storage

import (
	"context"
	"errors"
	"time"

	"github.com/papadavis47/mountains-tui/internal/daylog"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("day not found")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// DayStore defines the durable local store for daily entries.
//
// UpsertDay replaces the stored day, including its food and sokay items,
// with the given entry. DeleteDay of an absent day is a no-op. GetDay
// returns ErrNotFound for an absent day. LoadAllDays returns every stored
// day, newest first.
type DayStore interface {
	UpsertDay(ctx context.Context, d daylog.DailyEntry) error
	DeleteDay(ctx context.Context, date time.Time) error
	GetDay(ctx context.Context, date time.Time) (daylog.DailyEntry, error)
	LoadAllDays(ctx context.Context) ([]daylog.DailyEntry, error)
	Close() error
}
