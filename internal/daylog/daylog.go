// Package daylog provides the DailyEntry data structure: one record of
// measurements, running, food, sokay and free-text notes per calendar day.
package daylog

import (
	"time"
)

// KeyLayout is the date layout used for day keys.
const KeyLayout = "2006-01-02"

// FoodItem is one food line of a day.
type FoodItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SokayItem is one entry of the sokay accountability log.
type SokayItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DailyEntry is the unit of tracked data, keyed by calendar date.
// A DailyEntry with no fields set is still a valid, empty record.
type DailyEntry struct {
	// Date is the normalized date (midnight local time). It never changes
	// once the entry exists.
	Date time.Time

	Weight    *float64
	Waist     *float64
	Miles     *float64
	Elevation *int

	// Food and Sokay keep insertion order.
	Food  []FoodItem
	Sokay []SokayItem

	StrengthMobility *string
	Notes            *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// retired holds item IDs deleted during this session so they are never issued again.
	retired map[string]struct{}
}

// NormalizeDate normalizes a time.Time to midnight in the local timezone.
//
// Example:
//
//	input:  2024-01-15 14:30:45
//	output: 2024-01-15 00:00:00
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// ParseKey parses a YYYY-MM-DD key into a normalized local date.
func ParseKey(key string) (time.Time, error) {
	return time.ParseInLocation(KeyLayout, key, time.Local)
}

// KeyFor returns the day key for t.
func KeyFor(t time.Time) string {
	return t.Format(KeyLayout)
}

// New creates an empty entry for the given date.
func New(date time.Time) DailyEntry {
	now := time.Now().UTC()
	return DailyEntry{
		Date:      NormalizeDate(date),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Key returns the YYYY-MM-DD key of the entry.
func (d *DailyEntry) Key() string {
	return KeyFor(d.Date)
}

// IsEmpty reports whether no field of the entry is set.
func (d *DailyEntry) IsEmpty() bool {
	return d.Weight == nil && d.Waist == nil && d.Miles == nil && d.Elevation == nil &&
		len(d.Food) == 0 && len(d.Sokay) == 0 &&
		d.StrengthMobility == nil && d.Notes == nil
}

func (d *DailyEntry) touch() {
	d.UpdatedAt = time.Now().UTC()
}

func (d *DailyEntry) retire(id string) {
	if d.retired == nil {
		d.retired = make(map[string]struct{})
	}
	d.retired[id] = struct{}{}
}

// hasID reports whether id is in use or was used by an item of this day.
func (d *DailyEntry) hasID(id string) bool {
	if _, ok := d.retired[id]; ok {
		return true
	}
	for _, f := range d.Food {
		if f.ID == id {
			return true
		}
	}
	for _, s := range d.Sokay {
		if s.ID == id {
			return true
		}
	}
	return false
}

// AddFood appends a food item and returns it.
func (d *DailyEntry) AddFood(name string) FoodItem {
	item := FoodItem{ID: NewItemID(d.hasID), Name: name}
	d.Food = append(d.Food, item)
	d.touch()
	return item
}

// FindFood returns the index of the food item with the given ID, or -1.
func (d *DailyEntry) FindFood(id string) int {
	for i, f := range d.Food {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// UpdateFood renames a food item. Returns false if the item does not exist.
func (d *DailyEntry) UpdateFood(id, name string) bool {
	i := d.FindFood(id)
	if i == -1 {
		return false
	}
	d.Food[i].Name = name
	d.touch()
	return true
}

// RemoveFood removes a food item by ID. Removing an absent item is a no-op
// that returns false.
func (d *DailyEntry) RemoveFood(id string) bool {
	i := d.FindFood(id)
	if i == -1 {
		return false
	}
	d.Food = append(d.Food[:i], d.Food[i+1:]...)
	d.retire(id)
	d.touch()
	return true
}

// AddSokay appends a sokay item and returns it.
func (d *DailyEntry) AddSokay(name string) SokayItem {
	item := SokayItem{ID: NewItemID(d.hasID), Name: name}
	d.Sokay = append(d.Sokay, item)
	d.touch()
	return item
}

// FindSokay returns the index of the sokay item with the given ID, or -1.
func (d *DailyEntry) FindSokay(id string) int {
	for i, s := range d.Sokay {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// UpdateSokay renames a sokay item. Returns false if the item does not exist.
func (d *DailyEntry) UpdateSokay(id, name string) bool {
	i := d.FindSokay(id)
	if i == -1 {
		return false
	}
	d.Sokay[i].Name = name
	d.touch()
	return true
}

// RemoveSokay removes a sokay item by ID. Removing an absent item is a no-op
// that returns false.
func (d *DailyEntry) RemoveSokay(id string) bool {
	i := d.FindSokay(id)
	if i == -1 {
		return false
	}
	d.Sokay = append(d.Sokay[:i], d.Sokay[i+1:]...)
	d.retire(id)
	d.touch()
	return true
}

// SetWeight sets or clears (nil) the weight.
func (d *DailyEntry) SetWeight(v *float64) { d.Weight = copyPtr(v); d.touch() }

// SetWaist sets or clears (nil) the waist measurement.
func (d *DailyEntry) SetWaist(v *float64) { d.Waist = copyPtr(v); d.touch() }

// SetMiles sets or clears (nil) the miles covered.
func (d *DailyEntry) SetMiles(v *float64) { d.Miles = copyPtr(v); d.touch() }

// SetElevation sets or clears (nil) the elevation gain in feet.
func (d *DailyEntry) SetElevation(v *int) { d.Elevation = copyPtr(v); d.touch() }

// SetStrengthMobility sets or clears the strength & mobility text.
// Whitespace-only text clears the field.
func (d *DailyEntry) SetStrengthMobility(s string) {
	d.StrengthMobility = textOrNil(s)
	d.touch()
}

// SetNotes sets or clears the notes text. Whitespace-only text clears the field.
func (d *DailyEntry) SetNotes(s string) {
	d.Notes = textOrNil(s)
	d.touch()
}

// Clone returns a deep copy of the entry, safe to hand to a background job.
func (d DailyEntry) Clone() DailyEntry {
	c := d
	c.Weight = copyPtr(d.Weight)
	c.Waist = copyPtr(d.Waist)
	c.Miles = copyPtr(d.Miles)
	c.Elevation = copyPtr(d.Elevation)
	c.StrengthMobility = copyPtr(d.StrengthMobility)
	c.Notes = copyPtr(d.Notes)
	if d.Food != nil {
		c.Food = append([]FoodItem(nil), d.Food...)
	}
	if d.Sokay != nil {
		c.Sokay = append([]SokayItem(nil), d.Sokay...)
	}
	if d.retired != nil {
		c.retired = make(map[string]struct{}, len(d.retired))
		for k := range d.retired {
			c.retired[k] = struct{}{}
		}
	}
	return c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func textOrNil(s string) *string {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return &s
		}
	}
	return nil
}
