package daylog

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// VertThreshold is the elevation gain in feet that counts as a vert day.
const VertThreshold = 1000

// YearlyMiles sums miles for the year of ref, rounded to one decimal.
func YearlyMiles(days []DailyEntry, ref time.Time) float64 {
	var total float64
	for _, d := range days {
		if d.Date.Year() == ref.Year() && d.Miles != nil {
			total += *d.Miles
		}
	}
	return math.Round(total*10) / 10
}

// MonthlyMiles sums miles for the month of ref, rounded to one decimal.
func MonthlyMiles(days []DailyEntry, ref time.Time) float64 {
	var total float64
	for _, d := range days {
		if sameMonth(d.Date, ref) && d.Miles != nil {
			total += *d.Miles
		}
	}
	return math.Round(total*10) / 10
}

// MonthlyVertDays counts days in the month of ref with at least VertThreshold feet.
func MonthlyVertDays(days []DailyEntry, ref time.Time) int {
	n := 0
	for _, d := range days {
		if sameMonth(d.Date, ref) && d.Elevation != nil && *d.Elevation >= VertThreshold {
			n++
		}
	}
	return n
}

// YearlyElevation sums elevation gain for the year of ref.
func YearlyElevation(days []DailyEntry, ref time.Time) int {
	total := 0
	for _, d := range days {
		if d.Date.Year() == ref.Year() && d.Elevation != nil {
			total += *d.Elevation
		}
	}
	return total
}

// VertStreak counts consecutive vert days backwards from the most recent
// entry. A gap in the log or a day under the threshold ends the streak.
// Streaks shorter than two days report 0.
func VertStreak(days []DailyEntry) int {
	if len(days) == 0 {
		return 0
	}

	byKey := make(map[string]DailyEntry, len(days))
	var latest time.Time
	for _, d := range days {
		byKey[d.Key()] = d
		if d.Date.After(latest) {
			latest = d.Date
		}
	}

	streak := 0
	check := latest
	for {
		d, ok := byKey[KeyFor(check)]
		if !ok || d.Elevation == nil || *d.Elevation < VertThreshold {
			break
		}
		streak++
		check = check.AddDate(0, 0, -1)
	}

	if streak < 2 {
		return 0
	}
	return streak
}

// StreakMessage describes the current vert streak.
func StreakMessage(days []DailyEntry) string {
	if n := VertStreak(days); n > 0 {
		return fmt.Sprintf("You currently have %d consecutive days of 1000+ vert!", n)
	}
	return "Think about starting a streak of 1000+ feet of gain."
}

// SokayTotal counts sokay items on all days up to and including upTo.
func SokayTotal(days []DailyEntry, upTo time.Time) int {
	limit := NormalizeDate(upTo)
	n := 0
	for _, d := range days {
		if !d.Date.After(limit) {
			n += len(d.Sokay)
		}
	}
	return n
}

// SortNewestFirst orders entries in reverse chronological order.
func SortNewestFirst(days []DailyEntry) {
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
