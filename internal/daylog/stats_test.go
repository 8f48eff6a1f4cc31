package daylog_test

import (
	"testing"

	"github.com/papadavis47/mountains-tui/internal/daylog"
)

func withMiles(d daylog.DailyEntry, m float64) daylog.DailyEntry {
	d.Miles = &m
	return d
}

func withElevation(d daylog.DailyEntry, e int) daylog.DailyEntry {
	d.Elevation = &e
	return d
}

func TestYearlyMiles(t *testing.T) {
	ref := date(2025, 6, 1)
	days := []daylog.DailyEntry{
		withMiles(daylog.New(date(2025, 1, 1)), 7.64),
		withMiles(daylog.New(date(2025, 2, 1)), 30.476),
		withMiles(daylog.New(date(2024, 2, 1)), 10),
		daylog.New(date(2025, 3, 1)),
	}
	if got := daylog.YearlyMiles(days, ref); got != 38.1 {
		t.Errorf("YearlyMiles = %v, want 38.1", got)
	}
	if got := daylog.YearlyMiles(nil, ref); got != 0 {
		t.Errorf("YearlyMiles(nil) = %v, want 0", got)
	}
}

func TestMonthlyStats(t *testing.T) {
	ref := date(2025, 6, 15)
	days := []daylog.DailyEntry{
		withElevation(withMiles(daylog.New(date(2025, 6, 1)), 5.5), 1200),
		withElevation(daylog.New(date(2025, 6, 2)), 999),
		withElevation(daylog.New(date(2025, 6, 3)), 1000),
		withElevation(withMiles(daylog.New(date(2025, 5, 31)), 3), 3000),
	}

	if got := daylog.MonthlyMiles(days, ref); got != 5.5 {
		t.Errorf("MonthlyMiles = %v, want 5.5", got)
	}
	if got := daylog.MonthlyVertDays(days, ref); got != 2 {
		t.Errorf("MonthlyVertDays = %d, want 2", got)
	}
	if got := daylog.YearlyElevation(days, ref); got != 6199 {
		t.Errorf("YearlyElevation = %d, want 6199", got)
	}
}

func TestVertStreak(t *testing.T) {
	tests := []struct {
		name string
		days []daylog.DailyEntry
		want int
	}{
		{"empty", nil, 0},
		{
			name: "single day does not count",
			days: []daylog.DailyEntry{withElevation(daylog.New(date(2025, 6, 3)), 1500)},
			want: 0,
		},
		{
			name: "three consecutive",
			days: []daylog.DailyEntry{
				withElevation(daylog.New(date(2025, 6, 1)), 1500),
				withElevation(daylog.New(date(2025, 6, 2)), 1000),
				withElevation(daylog.New(date(2025, 6, 3)), 2500),
			},
			want: 3,
		},
		{
			name: "gap breaks streak",
			days: []daylog.DailyEntry{
				withElevation(daylog.New(date(2025, 6, 1)), 1500),
				withElevation(daylog.New(date(2025, 6, 3)), 1500),
				withElevation(daylog.New(date(2025, 6, 4)), 1500),
			},
			want: 2,
		},
		{
			name: "latest day under threshold",
			days: []daylog.DailyEntry{
				withElevation(daylog.New(date(2025, 6, 1)), 1500),
				withElevation(daylog.New(date(2025, 6, 2)), 1500),
				daylog.New(date(2025, 6, 3)),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daylog.VertStreak(tt.days); got != tt.want {
				t.Errorf("VertStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakMessage(t *testing.T) {
	days := []daylog.DailyEntry{
		withElevation(daylog.New(date(2025, 6, 1)), 1500),
		withElevation(daylog.New(date(2025, 6, 2)), 1500),
	}
	if got := daylog.StreakMessage(days); got != "You currently have 2 consecutive days of 1000+ vert!" {
		t.Errorf("StreakMessage = %q", got)
	}
	if got := daylog.StreakMessage(nil); got != "Think about starting a streak of 1000+ feet of gain." {
		t.Errorf("StreakMessage(nil) = %q", got)
	}
}

func TestSokayTotal(t *testing.T) {
	a := daylog.New(date(2025, 6, 1))
	a.AddSokay("one")
	b := daylog.New(date(2025, 6, 2))
	b.AddSokay("two")
	b.AddSokay("three")
	c := daylog.New(date(2025, 6, 3))
	c.AddSokay("four")

	days := []daylog.DailyEntry{a, b, c}
	if got := daylog.SokayTotal(days, date(2025, 6, 2)); got != 3 {
		t.Errorf("SokayTotal = %d, want 3", got)
	}
}

func TestSortNewestFirst(t *testing.T) {
	days := []daylog.DailyEntry{
		daylog.New(date(2025, 6, 1)),
		daylog.New(date(2025, 6, 3)),
		daylog.New(date(2025, 6, 2)),
	}
	daylog.SortNewestFirst(days)
	if days[0].Key() != "2025-06-03" || days[2].Key() != "2025-06-01" {
		t.Errorf("unexpected order: %s %s %s", days[0].Key(), days[1].Key(), days[2].Key())
	}
}
