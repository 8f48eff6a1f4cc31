// Package state holds the in-memory application state. It is owned by the
// interactive loop: every mutator applies synchronously and returns a
// snapshot of the affected day that can be handed to a background writer.
package state

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/papadavis47/mountains-tui/internal/cloudsync"
	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/focus"
	"github.com/papadavis47/mountains-tui/internal/router"
	"github.com/papadavis47/mountains-tui/internal/storage"
	"github.com/papadavis47/mountains-tui/internal/textbuf"
)

// Measurement names a numeric field of a day.
type Measurement int

const (
	Weight Measurement = iota
	Waist
	Miles
	Elevation
)

// LongText names a free-text field of a day.
type LongText int

const (
	StrengthMobility LongText = iota
	Notes
)

// AppState is the aggregate in-memory cache of the session.
type AppState struct {
	days map[string]*daylog.DailyEntry

	Selected   time.Time
	Screen     router.Screen
	HelpReturn router.Screen
	Focus      focus.Model
	Home       focus.List

	// Buffer is the active editor, nil unless Screen is an edit screen.
	Buffer    *textbuf.Buffer
	EditIndex int
	// Pending is the item or day index a confirmation screen acts on.
	Pending int

	Sync cloudsync.State
}

// New builds the state from the bulk-loaded days, selecting today.
func New(days []daylog.DailyEntry, today time.Time) *AppState {
	s := &AppState{
		days:     make(map[string]*daylog.DailyEntry, len(days)),
		Selected: daylog.NormalizeDate(today),
		Screen:   router.Startup,
		Focus:    focus.New(),
	}
	for i := range days {
		d := days[i].Clone()
		s.days[d.Key()] = &d
	}
	return s
}

// Days returns every day, newest first. The entries are copies.
func (s *AppState) Days() []daylog.DailyEntry {
	out := make([]daylog.DailyEntry, 0, len(s.days))
	for _, d := range s.days {
		out = append(out, d.Clone())
	}
	daylog.SortNewestFirst(out)
	return out
}

// DayCount returns the number of days held.
func (s *AppState) DayCount() int { return len(s.days) }

// Day returns the day for date.
func (s *AppState) Day(date time.Time) (daylog.DailyEntry, bool) {
	d, ok := s.days[daylog.KeyFor(date)]
	if !ok {
		return daylog.DailyEntry{}, false
	}
	return d.Clone(), true
}

// Current returns the selected day.
func (s *AppState) Current() (daylog.DailyEntry, bool) {
	return s.Day(s.Selected)
}

// Select changes the selected day and resets item focus.
func (s *AppState) Select(date time.Time) {
	s.Selected = daylog.NormalizeDate(date)
	s.Focus.Reset()
}

// OpenHomeDay selects the day at index i of Days().
func (s *AppState) OpenHomeDay(i int) bool {
	days := s.Days()
	if i < 0 || i >= len(days) {
		return false
	}
	s.Select(days[i].Date)
	return true
}

// StepDay moves the selection to the adjacent logged day: older when delta
// is negative, newer when positive. It reports whether the selection moved.
func (s *AppState) StepDay(delta int) bool {
	days := s.Days()
	if len(days) == 0 {
		return false
	}
	key := daylog.KeyFor(s.Selected)
	// Days() is newest first, so older days have larger indices.
	idx := sort.Search(len(days), func(i int) bool { return days[i].Key() <= key })
	var target int
	if delta < 0 {
		target = idx
		if idx < len(days) && days[idx].Key() == key {
			target = idx + 1
		}
	} else {
		target = idx - 1
	}
	if target < 0 || target >= len(days) {
		return false
	}
	s.Select(days[target].Date)
	return true
}

// EnsureDay returns the selected day, creating an empty record when absent.
func (s *AppState) EnsureDay() (daylog.DailyEntry, bool) {
	_, created := s.ensure()
	return s.snapshot(), created
}

func (s *AppState) ensure() (*daylog.DailyEntry, bool) {
	key := daylog.KeyFor(s.Selected)
	if d, ok := s.days[key]; ok {
		return d, false
	}
	d := daylog.New(s.Selected)
	s.days[key] = &d
	return &d, true
}

func (s *AppState) snapshot() daylog.DailyEntry {
	d, _ := s.Current()
	return d
}

// AddFood appends a food item to the selected day. Blank names are ignored.
func (s *AppState) AddFood(name string) (daylog.DailyEntry, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.snapshot(), false
	}
	d, _ := s.ensure()
	d.AddFood(name)
	return s.snapshot(), true
}

// EditFood renames food item i of the selected day. Blank names are ignored.
func (s *AppState) EditFood(i int, name string) (daylog.DailyEntry, bool) {
	name = strings.TrimSpace(name)
	d, ok := s.days[daylog.KeyFor(s.Selected)]
	if !ok || name == "" || i < 0 || i >= len(d.Food) {
		return s.snapshot(), false
	}
	changed := d.UpdateFood(d.Food[i].ID, name)
	return s.snapshot(), changed
}

// DeleteFood removes food item i of the selected day and clamps item focus.
func (s *AppState) DeleteFood(i int) (daylog.DailyEntry, bool) {
	d, ok := s.days[daylog.KeyFor(s.Selected)]
	if !ok || i < 0 || i >= len(d.Food) {
		return s.snapshot(), false
	}
	d.RemoveFood(d.Food[i].ID)
	s.Focus.Clamp(focus.Food, len(d.Food))
	return s.snapshot(), true
}

// AddSokay appends a sokay item to the selected day. Blank names are ignored.
func (s *AppState) AddSokay(name string) (daylog.DailyEntry, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.snapshot(), false
	}
	d, _ := s.ensure()
	d.AddSokay(name)
	return s.snapshot(), true
}

// EditSokay renames sokay item i of the selected day.
func (s *AppState) EditSokay(i int, name string) (daylog.DailyEntry, bool) {
	name = strings.TrimSpace(name)
	d, ok := s.days[daylog.KeyFor(s.Selected)]
	if !ok || name == "" || i < 0 || i >= len(d.Sokay) {
		return s.snapshot(), false
	}
	changed := d.UpdateSokay(d.Sokay[i].ID, name)
	return s.snapshot(), changed
}

// DeleteSokay removes sokay item i of the selected day and clamps item focus.
func (s *AppState) DeleteSokay(i int) (daylog.DailyEntry, bool) {
	d, ok := s.days[daylog.KeyFor(s.Selected)]
	if !ok || i < 0 || i >= len(d.Sokay) {
		return s.snapshot(), false
	}
	d.RemoveSokay(d.Sokay[i].ID)
	s.Focus.Clamp(focus.Sokay, len(d.Sokay))
	return s.snapshot(), true
}

// SetMeasurement parses text into field. Empty text clears the field.
// Unparseable text is rejected with storage.ErrValidation and nothing changes.
func (s *AppState) SetMeasurement(field Measurement, text string) (daylog.DailyEntry, bool, error) {
	if field == Elevation {
		v, err := textbuf.Int(text)
		if err != nil {
			return s.snapshot(), false, fmt.Errorf("%w: elevation %q: %v", storage.ErrValidation, text, err)
		}
		d, _ := s.ensure()
		d.SetElevation(v)
		return s.snapshot(), true, nil
	}

	v, err := textbuf.Number(text)
	if err != nil {
		return s.snapshot(), false, fmt.Errorf("%w: %s %q: %v", storage.ErrValidation, field, text, err)
	}
	d, _ := s.ensure()
	switch field {
	case Weight:
		d.SetWeight(v)
	case Waist:
		d.SetWaist(v)
	case Miles:
		d.SetMiles(v)
	}
	return s.snapshot(), true, nil
}

func (m Measurement) String() string {
	switch m {
	case Weight:
		return "weight"
	case Waist:
		return "waist"
	case Miles:
		return "miles"
	case Elevation:
		return "elevation"
	}
	return "unknown"
}

// SetLongText sets or clears a free-text field of the selected day.
func (s *AppState) SetLongText(field LongText, text string) (daylog.DailyEntry, bool) {
	d, _ := s.ensure()
	if field == Notes {
		d.SetNotes(text)
	} else {
		d.SetStrengthMobility(text)
	}
	return s.snapshot(), true
}

// DeleteDay removes the day for date. It reports false when no such day
// exists. The home list focus is clamped to the remaining days.
func (s *AppState) DeleteDay(date time.Time) bool {
	key := daylog.KeyFor(date)
	if _, ok := s.days[key]; !ok {
		return false
	}
	delete(s.days, key)
	s.Home.Clamp(len(s.days))
	if key == daylog.KeyFor(s.Selected) {
		s.Focus.Reset()
	}
	return true
}

// FoodCount returns the number of food items of the selected day.
func (s *AppState) FoodCount() int {
	if d, ok := s.days[daylog.KeyFor(s.Selected)]; ok {
		return len(d.Food)
	}
	return 0
}

// SokayCount returns the number of sokay items of the selected day.
func (s *AppState) SokayCount() int {
	if d, ok := s.days[daylog.KeyFor(s.Selected)]; ok {
		return len(d.Sokay)
	}
	return 0
}

// View returns the read-only routing view of the state.
func (s *AppState) View() router.View {
	return router.View{
		Focus:      s.Focus,
		Home:       s.Home,
		FoodCount:  s.FoodCount(),
		SokayCount: s.SokayCount(),
		DayCount:   len(s.days),
		HelpReturn: s.HelpReturn,
	}
}
