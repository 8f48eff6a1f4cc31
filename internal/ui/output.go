package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"github.com/papadavis47/mountains-tui/internal/backup"
	"github.com/papadavis47/mountains-tui/internal/daylog"
)

const previewWidth = 40

// FormatDayList writes one table row per day, newest first as given.
func FormatDayList(w io.Writer, days []daylog.DailyEntry) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No training logs found.")
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Weight"), bold.Sprint("Miles"), bold.Sprint("Vert"),
		bold.Sprint("Food"), bold.Sprint("Sokay"), bold.Sprint("Notes"))
	for _, d := range days {
		tbl.AddRow(
			d.Key(),
			floatCell(d.Weight),
			floatCell(d.Miles),
			intCell(d.Elevation),
			strconv.Itoa(len(d.Food)),
			strconv.Itoa(len(d.Sokay)),
			Preview(d.Notes, previewWidth),
		)
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	tbl.RightAlign(3)
	fmt.Fprintln(w, tbl)
}

// Preview returns the first line of text cut to width cells, or "-".
func Preview(text *string, width int) string {
	if text == nil {
		return "-"
	}
	line, _, _ := strings.Cut(strings.TrimSpace(*text), "\n")
	return truncate.StringWithTail(line, uint(width), "…")
}

func floatCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return backup.FormatNumber(*v)
}

func intCell(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// Stats is the aggregate summary shown by the stats command and served
// over MCP.
type Stats struct {
	Year            int     `json:"year"`
	Month           string  `json:"month"`
	YearlyMiles     float64 `json:"yearly_miles"`
	MonthlyMiles    float64 `json:"monthly_miles"`
	YearlyElevation int     `json:"yearly_elevation"`
	MonthlyVertDays int     `json:"monthly_vert_days"`
	VertStreak      int     `json:"vert_streak"`
	SokayTotal      int     `json:"sokay_total"`
	Days            int     `json:"days"`
}

// ComputeStats summarizes days relative to ref.
func ComputeStats(days []daylog.DailyEntry, ref time.Time) Stats {
	return Stats{
		Year:            ref.Year(),
		Month:           ref.Month().String(),
		YearlyMiles:     daylog.YearlyMiles(days, ref),
		MonthlyMiles:    daylog.MonthlyMiles(days, ref),
		YearlyElevation: daylog.YearlyElevation(days, ref),
		MonthlyVertDays: daylog.MonthlyVertDays(days, ref),
		VertStreak:      daylog.VertStreak(days),
		SokayTotal:      daylog.SokayTotal(days, ref),
		Days:            len(days),
	}
}

// FormatStats writes the stats as a two-column table followed by the
// streak message.
func FormatStats(w io.Writer, days []daylog.DailyEntry, ref time.Time) {
	s := ComputeStats(days, ref)
	label := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(label.Sprint("Days logged"), s.Days)
	tbl.AddRow(label.Sprintf("Miles %d", s.Year), fmt.Sprintf("%.1f", s.YearlyMiles))
	tbl.AddRow(label.Sprintf("Miles %s", s.Month), fmt.Sprintf("%.1f", s.MonthlyMiles))
	tbl.AddRow(label.Sprintf("Vert %d", s.Year), fmt.Sprintf("%d ft", s.YearlyElevation))
	tbl.AddRow(label.Sprintf("1000+ ft days in %s", s.Month), s.MonthlyVertDays)
	tbl.AddRow(label.Sprint("Sokay total"), s.SokayTotal)
	tbl.RightAlign(1)
	fmt.Fprintln(w, tbl)
	fmt.Fprintln(w)
	color.New(color.FgGreen).Fprintln(w, daylog.StreakMessage(days))
}

// FormatDay renders one day as glamour-styled backup text.
func FormatDay(w io.Writer, day daylog.DailyEntry, width int, markdownStyle string) {
	fmt.Fprintln(w, RenderMarkdown(backup.Render(day), width, markdownStyle))
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DaySummary is the JSON form of one day.
type DaySummary struct {
	Date             string   `json:"date"`
	Weight           *float64 `json:"weight,omitempty"`
	Waist            *float64 `json:"waist,omitempty"`
	Miles            *float64 `json:"miles,omitempty"`
	Elevation        *int     `json:"elevation,omitempty"`
	Food             []string `json:"food"`
	Sokay            []string `json:"sokay"`
	StrengthMobility *string  `json:"strength_mobility,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

// ToSummary converts a day for JSON output.
func ToSummary(d daylog.DailyEntry) DaySummary {
	s := DaySummary{
		Date:             d.Key(),
		Weight:           d.Weight,
		Waist:            d.Waist,
		Miles:            d.Miles,
		Elevation:        d.Elevation,
		Food:             make([]string, len(d.Food)),
		Sokay:            make([]string, len(d.Sokay)),
		StrengthMobility: d.StrengthMobility,
		Notes:            d.Notes,
	}
	for i, f := range d.Food {
		s.Food[i] = f.Name
	}
	for i, c := range d.Sokay {
		s.Sokay[i] = c.Name
	}
	return s
}

// ToSummaries converts days for JSON list output.
func ToSummaries(days []daylog.DailyEntry) []DaySummary {
	out := make([]DaySummary, len(days))
	for i, d := range days {
		out[i] = ToSummary(d)
	}
	return out
}
