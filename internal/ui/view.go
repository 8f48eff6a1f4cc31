package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/papadavis47/mountains-tui/internal/backup"
	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/focus"
	"github.com/papadavis47/mountains-tui/internal/router"
	"github.com/papadavis47/mountains-tui/internal/textbuf"
)

const (
	longDate = "January 02, 2006"

	// compactLines is the height of an unfocused long-text section.
	compactLines = 4
	// listRows is the number of items a food or sokay box shows at once.
	listRows = 5
)

const (
	homeHelp  = " ↑/k: Up | ↓/j: Down | Enter: Select/Today | Esc: Unfocus | D: Delete Day | S: Startup Screen | q: Quit "
	dailyHelp = " Shift+J/K: Section | Tab: Field | Enter: Add | j/k: List | E: Edit Item | D: Delete Item | Space: Shortcuts | S: Startup Screen | Esc: Back "
	startHelp = " n: Today's Log | l: Training Logs | Space: Shortcuts | q: Quit "
)

func (m Model) View() string {
	if !m.ready {
		// No PaintScreen here: dimensions are unknown until the first WindowSizeMsg.
		return "Loading..."
	}

	screen := m.app.Screen
	switch {
	case screen.IsEdit():
		return m.overlay(m.editModal())
	case screen == router.ConfirmDeleteFood || screen == router.ConfirmDeleteSokay:
		return m.overlay(m.confirmItemModal())
	case screen == router.Help:
		return m.overlay(m.helpModal())
	case screen == router.Syncing:
		return m.overlay(m.syncingModal())
	}

	var result string
	switch screen {
	case router.Startup:
		result = m.startupView()
	case router.Home:
		result = m.homeView()
	case router.Daily:
		result = m.dailyView()
	case router.ConfirmDeleteDay:
		result = m.confirmDayView()
	}
	if m.notice != "" {
		result += "\n" + m.cfg.Theme.DangerStyle().Render(m.notice)
	}
	return m.cfg.Theme.PaintScreen(result, m.width, m.height, m.contentWidth())
}

// overlay centers a modal on a blank themed screen.
func (m Model) overlay(box string) string {
	placed := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(m.cfg.Theme.Background))
	return m.cfg.Theme.ClearLineEnds(placed)
}

// contentWidth returns the effective content width, respecting MaxWidth configuration.
func (m Model) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m Model) title(text string) string {
	status := m.app.Sync.Status()
	return m.cfg.Theme.HeaderStyle().Render(text) + " " + m.cfg.Theme.HelpStyle().Render(status)
}

// titledBox draws body in style's border with title set into the top edge.
// height is the minimum body height; 0 leaves it natural.
func (m Model) titledBox(style lipgloss.Style, title, body string, width, height int) string {
	inner := max(width-2, 1)
	label := "─ " + title + " "
	if lipgloss.Width(label) > inner {
		label = truncate.StringWithTail(label, uint(inner), "…")
	}
	fill := max(inner-lipgloss.Width(label), 0)
	edge := lipgloss.NewStyle().
		Foreground(style.GetBorderTopForeground()).
		Background(m.cfg.Theme.Background)
	top := edge.Render("╭" + label + strings.Repeat("─", fill) + "╮")

	style = style.BorderTop(false).Width(inner)
	if height > 0 {
		style = style.Height(height)
	}
	return top + "\n" + style.Render(body)
}

func (m Model) section(s focus.Section, title, body string, width, height int) string {
	focused := m.app.Screen == router.Daily && m.app.Focus.Section() == s
	return m.titledBox(m.cfg.Theme.SectionStyle(s, focused), title, body, width, height)
}

// bodyHeight measures body once wrapped inside a box of width.
func bodyHeight(body string, width int) int {
	return lipgloss.Height(lipgloss.NewStyle().Width(max(width-4, 1)).Render(body))
}

func (m Model) startupView() string {
	days := m.app.Days()
	now := m.now()
	cw := m.contentWidth()

	var b strings.Builder
	b.WriteString(m.cfg.Theme.AccentStyle().Render("For Inspiration and Mindfulness"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "You have %d days of 1000+ feet vert in the month of %s.\n",
		daylog.MonthlyVertDays(days, now), now.Month())
	fmt.Fprintf(&b, "You have %d feet for %d.\n", daylog.YearlyElevation(days, now), now.Year())
	b.WriteString("\n")
	b.WriteString(daylog.StreakMessage(days))

	box := m.cfg.Theme.BorderStyle().Padding(1, 2).Width(max(cw-2, 1)).Render(b.String())
	return m.title("Mountains - A Trail Running Training Log") + "\n\n" +
		box + "\n" + m.cfg.Theme.HelpStyle().Render(startHelp)
}

// homeRows is how many days the home list shows at once.
func (m Model) homeRows() int {
	return max(m.height-7, 1)
}

func (m Model) homeView() string {
	cw := m.contentWidth()
	days := m.app.Days()
	inner := max(cw-4, 1)

	var body string
	if len(days) == 0 {
		body = "No training logs yet. Press Enter to create one for today."
	} else {
		sel, focused := m.app.Home.Selected()
		rows := m.homeRows()
		start := 0
		if focused {
			start = textbuf.Window(sel, rows, 0)
		}
		end := min(start+rows, len(days))

		lines := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			line := truncate.StringWithTail(daySummaryLine(days[i]), uint(inner), "…")
			if focused && i == sel {
				line = m.cfg.Theme.SelectedStyle().Render(line)
			}
			lines = append(lines, line)
		}
		body = strings.Join(lines, "\n")
	}

	style := m.cfg.Theme.BorderStyle().BorderForeground(m.cfg.Theme.Accent).Padding(0, 1)
	box := m.titledBox(style, "Daily Training Logs", body, cw, 0)
	return m.title("Mountains - A Trail Running Training Log") + "\n\n" +
		box + "\n" + m.cfg.Theme.HelpStyle().Render(homeHelp)
}

func daySummaryLine(d daylog.DailyEntry) string {
	parts := []string{d.Date.Format(longDate)}
	if d.Miles != nil {
		parts = append(parts, backup.FormatNumber(*d.Miles)+" mi")
	}
	if d.Elevation != nil {
		parts = append(parts, strconv.Itoa(*d.Elevation)+" ft")
	}
	return strings.Join(parts, "  ")
}

func (m Model) dailyView() string {
	cw := m.contentWidth()
	left := cw / 2
	right := cw - left
	day, _ := m.app.Current()
	now := m.now()
	days := m.app.Days()

	measure := m.fieldLine(focus.Measurements, focus.First, "Weight", numberUnit(day.Weight, "lbs")) + "\n" +
		m.fieldLine(focus.Measurements, focus.Second, "Waist Size", numberUnit(day.Waist, "in"))

	running := m.fieldLine(focus.Running, focus.First, "Miles", numberUnit(day.Miles, "mi")) + "\n" +
		m.fieldLine(focus.Running, focus.Second, "Elevation", intUnit(day.Elevation, "ft")) + "\n\n" +
		fmt.Sprintf("You have %.1f miles covered for %d", daylog.YearlyMiles(days, now), now.Year()) + "\n"
	if monthly := daylog.MonthlyMiles(days, now); monthly == 0 {
		running += fmt.Sprintf("No miles covered yet for the month of %s", now.Month())
	} else {
		running += fmt.Sprintf("%.1f miles covered for the month of %s", monthly, now.Month())
	}

	top := m.pair(focus.Measurements, "Measurements", measure, left, focus.Running, "Running", running, right)

	food := m.listBody(focus.Food, foodNames(day), left-4, "No food entries yet. Press 'f' to add one.")
	sokay := m.listBody(focus.Sokay, sokayNames(day), right-4, "No sokay entries yet. Press 'c' to add one.")
	sokayTitle := fmt.Sprintf("Sokay (Total: %d)", daylog.SokayTotal(days, m.app.Selected))
	lists := m.pair(focus.Food, focus.Food.String(), food, left, focus.Sokay, sokayTitle, sokay, right)

	strength := m.longTextBody(focus.StrengthMobility, "No exercises recorded yet. Press 't' to add training info.")
	notes := m.longTextBody(focus.Notes, "No notes for this day yet. Press 'n' to add notes.")

	parts := []string{
		m.title("Mountains Training Log - " + m.app.Selected.Format(longDate)),
		top,
		lists,
		m.section(focus.StrengthMobility, focus.StrengthMobility.String(), strength, cw, 0),
		m.section(focus.Notes, focus.Notes.String(), notes, cw, 0),
		m.cfg.Theme.HelpStyle().Render(dailyHelp),
	}
	return strings.Join(parts, "\n")
}

// pair lays two sections side by side at equal height.
func (m Model) pair(ls focus.Section, ltitle, lbody string, lw int, rs focus.Section, rtitle, rbody string, rw int) string {
	h := max(bodyHeight(lbody, lw), bodyHeight(rbody, rw))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.section(ls, ltitle, lbody, lw, h),
		m.section(rs, rtitle, rbody, rw, h))
}

func (m Model) fieldLine(s focus.Section, f focus.Field, label, value string) string {
	prefix := "  "
	if m.app.Screen == router.Daily && m.app.Focus.Section() == s && m.app.Focus.Field(s) == f {
		prefix = "► "
	}
	return prefix + label + ": " + value
}

func (m Model) listBody(s focus.Section, items []string, width int, empty string) string {
	if len(items) == 0 {
		return empty
	}
	list := m.app.Focus.List(s)
	sel, focused := list.Selected()
	start := 0
	if focused {
		start = textbuf.Window(sel, listRows, 0)
	}
	end := min(start+listRows, len(items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := truncate.StringWithTail("- "+items[i], uint(max(width, 1)), "…")
		if focused && i == sel {
			line = m.cfg.Theme.SelectedStyle().Render(line)
		}
		lines = append(lines, line)
	}
	if len(items) > end {
		lines = append(lines, m.cfg.Theme.HelpStyle().Render(fmt.Sprintf("  … %d more", len(items)-end)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) longTextBody(s focus.Section, empty string) string {
	text := m.longText(s)
	if strings.TrimSpace(text) == "" {
		return empty
	}
	rs := []rune(text)
	lines := textbuf.Wrap(text, m.textWidth())
	st := m.app.Focus.Text(s)
	visible := m.visibleLines(s)
	start := min(st.Scroll, max(len(lines)-visible, 0))
	end := min(start+visible, len(lines))

	out := make([]string, 0, visible)
	for _, ln := range lines[start:end] {
		out = append(out, ln.Text(rs))
	}
	if end < len(lines) && len(out) > 0 {
		out[len(out)-1] = truncate.StringWithTail(out[len(out)-1]+" …", uint(m.textWidth()), "…")
	}
	return strings.Join(out, "\n")
}

// textWidth is the wrap width inside a full-width section box.
func (m Model) textWidth() int {
	return max(m.contentWidth()-4, 1)
}

func (m Model) longText(s focus.Section) string {
	day, _ := m.app.Current()
	if s == focus.StrengthMobility {
		return deref(day.StrengthMobility)
	}
	return deref(day.Notes)
}

// fits reports whether section s shows whole at the compact height.
func (m Model) fits(s focus.Section) bool {
	return len(textbuf.Wrap(m.longText(s), m.textWidth())) <= compactLines
}

func (m Model) expandedLines() int {
	return max(compactLines, m.height*60/100)
}

func (m Model) visibleLines(s focus.Section) int {
	if m.app.Focus.Text(s).Expanded {
		return m.expandedLines()
	}
	return compactLines
}

func (m Model) maxScroll(s focus.Section) int {
	if !s.IsLongText() {
		return 0
	}
	return max(len(textbuf.Wrap(m.longText(s), m.textWidth()))-m.visibleLines(s), 0)
}

func (m Model) confirmDayView() string {
	cw := m.contentWidth()
	days := m.app.Days()
	date := ""
	if m.app.Pending >= 0 && m.app.Pending < len(days) {
		date = days[m.app.Pending].Date.Format(longDate)
	}

	body := fmt.Sprintf("You are about to delete the training log for %s.\n\n", date) +
		"This will permanently delete:\n" +
		"• Weight and waist measurements\n" +
		"• Miles and elevation\n" +
		"• All food and sokay entries\n" +
		"• Strength & mobility and notes\n\n" +
		"Type 'Y' to confirm deletion or 'N' to cancel."

	style := m.cfg.Theme.BorderStyle().BorderForeground(m.cfg.Theme.Danger).Padding(0, 1)
	box := m.titledBox(style, "Warning: Permanent Deletion", body, cw, 0)
	return m.cfg.Theme.DangerStyle().Bold(true).Render("Delete Day - Confirmation Required") + "\n\n" +
		box + "\n" + m.cfg.Theme.HelpStyle().Render(" Y: Delete Day | N/Esc: Cancel ")
}

// modalWidth is the outer width of the edit dialog for the active screen.
func (m Model) modalWidth() int {
	screen := m.app.Screen
	var w int
	switch {
	case screen.IsLongText():
		w = m.width * 60 / 100
	case screen.IsNumeric():
		w = max(m.width*12/100, 20)
	default:
		w = m.width * 50 / 100
	}
	return min(max(w, 20), max(m.width, 1))
}

// editorWidth is the wrap width of the active text buffer. It is one cell
// narrower than the modal's content so a cursor after a full line stays on
// the row Wrap produced.
func (m Model) editorWidth() int {
	return max(m.modalWidth()-5, 1)
}

func (m Model) editorHeight() int {
	if m.app.Screen.IsLongText() {
		return max(m.height*40/100-6, 3)
	}
	return 3
}

func (m Model) modalTitle() string {
	date := m.app.Selected.Format(longDate)
	switch m.app.Screen {
	case router.AddFood:
		return "Add Food - " + date
	case router.EditFood:
		return "Edit Food - " + date
	case router.AddSokay:
		return "Add Sokay Entry - " + date
	case router.EditSokay:
		return "Edit Sokay Entry - " + date
	case router.EditWeight:
		return "Edit Weight"
	case router.EditWaist:
		return "Edit Waist Size"
	case router.EditMiles:
		return "Edit Miles"
	case router.EditElevation:
		return "Edit Elevation"
	case router.EditStrength:
		return "Edit Strength & Mobility - " + date
	case router.EditNotes:
		return "Edit Notes - " + date
	}
	return ""
}

func (m Model) editModal() string {
	hint := "Enter: Save | Esc: Cancel"
	if m.app.Screen.IsLongText() {
		hint = "Alt+Enter: New Line | Enter: Save | Esc: Cancel"
	}

	var b strings.Builder
	b.WriteString(m.cfg.Theme.HeaderStyle().Render(m.modalTitle()))
	b.WriteString("\n\n")
	if m.app.Buffer != nil {
		b.WriteString(m.renderBuffer(m.app.Buffer))
	}
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(m.cfg.Theme.DangerStyle().Render(m.notice) + "\n")
	}
	b.WriteString(m.cfg.Theme.HelpStyle().Render(hint))

	return m.cfg.Theme.BorderStyle().
		BorderForeground(m.cfg.Theme.Accent).
		Padding(0, 1).
		Width(m.modalWidth() - 2).
		Render(b.String())
}

// renderBuffer draws the visible window of buf with a block cursor.
func (m Model) renderBuffer(buf *textbuf.Buffer) string {
	width, height := m.editorWidth(), m.editorHeight()
	lines := buf.DisplayLines(width)
	cl, cc := buf.Cursor(width)
	start := textbuf.Window(cl, height, m.editOffset)
	end := min(start+height, len(lines))
	cursor := lipgloss.NewStyle().Reverse(true)

	out := make([]string, 0, height)
	for i := start; i < end; i++ {
		line := lines[i]
		if i == cl {
			rs := []rune(line)
			if cc < len(rs) {
				line = string(rs[:cc]) + cursor.Render(string(rs[cc])) + string(rs[cc+1:])
			} else {
				line += cursor.Render(" ")
			}
		}
		out = append(out, line)
	}
	if m.app.Screen.IsLongText() {
		for len(out) < height {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

func (m Model) confirmItemModal() string {
	day, _ := m.app.Current()
	kind, name := "food item", ""
	if m.app.Screen == router.ConfirmDeleteSokay {
		kind = "sokay entry"
		if m.app.Pending >= 0 && m.app.Pending < len(day.Sokay) {
			name = day.Sokay[m.app.Pending].Name
		}
	} else if m.app.Pending >= 0 && m.app.Pending < len(day.Food) {
		name = day.Food[m.app.Pending].Name
	}

	body := fmt.Sprintf("Delete this %s?\n\n%q\n\nPress 'Y' to confirm or 'N' to cancel.", kind, name)
	return m.cfg.Theme.BorderStyle().
		BorderForeground(m.cfg.Theme.Danger).
		Padding(1, 2).
		Width(max(m.width/2, 30)).
		Render(m.cfg.Theme.DangerStyle().Bold(true).Render("Confirm Deletion") + "\n\n" + body)
}

func (m Model) helpModal() string {
	return m.cfg.Theme.BorderStyle().
		Padding(1, 2).
		Width(52).
		Render(`Shortcuts

Measurements
  w          edit weight
  s          edit waist size

Activity
  m          edit miles
  l          edit elevation

Nutrition
  f          add food
  c          add sokay entry

Training
  t          edit strength & mobility
  n          edit notes
  ctrl+e     open notes in $EDITOR
  alt+enter  new line while editing

Press any key to close`)
}

func (m Model) syncingModal() string {
	title, note := "Syncing", "Saving your changes before exit"
	if !m.syncer.Enabled() {
		title, note = "Offline", "Changes are kept locally and sync once a remote is configured"
	}
	return m.cfg.Theme.BorderStyle().
		Padding(1, 3).
		Render(m.spinner.View() + " " + m.cfg.Theme.HeaderStyle().Render(title) + "\n\n" +
			m.cfg.Theme.HelpStyle().Render(note))
}

func foodNames(d daylog.DailyEntry) []string {
	out := make([]string, len(d.Food))
	for i, f := range d.Food {
		out[i] = f.Name
	}
	return out
}

func sokayNames(d daylog.DailyEntry) []string {
	out := make([]string, len(d.Sokay))
	for i, c := range d.Sokay {
		out[i] = c.Name
	}
	return out
}

func numberUnit(v *float64, unit string) string {
	if v == nil {
		return "Not set"
	}
	return backup.FormatNumber(*v) + " " + unit
}

func intUnit(v *int, unit string) string {
	if v == nil {
		return "Not set"
	}
	return strconv.Itoa(*v) + " " + unit
}

func numberText(v *float64) string {
	if v == nil {
		return ""
	}
	return backup.FormatNumber(*v)
}

func intText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
