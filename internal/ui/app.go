package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papadavis47/mountains-tui/internal/cloudsync"
	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/editor"
	"github.com/papadavis47/mountains-tui/internal/focus"
	"github.com/papadavis47/mountains-tui/internal/persist"
	"github.com/papadavis47/mountains-tui/internal/router"
	"github.com/papadavis47/mountains-tui/internal/state"
	"github.com/papadavis47/mountains-tui/internal/storage"
	"github.com/papadavis47/mountains-tui/internal/textbuf"
)

const (
	connectTimeout = 15 * time.Second
	syncTimeout    = 30 * time.Second
)

// Writer queues durable writes off the interactive loop.
// *persist.Coordinator implements it.
type Writer interface {
	SaveDay(snapshot daylog.DailyEntry)
	DeleteDay(date time.Time)
	Flush(ctx context.Context) error
}

// Syncer drives the cloud replica. *cloudsync.Syncer implements it.
type Syncer interface {
	Enabled() bool
	State() cloudsync.State
	Connect(ctx context.Context) cloudsync.State
	Sync(ctx context.Context, load cloudsync.Loader) (cloudsync.State, error)
}

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	Editor       string        // editor command; empty resolves from the environment
	MaxWidth     int           // maximum content width (0 = no limit)
	Theme        Theme         // resolved theme
	SyncInterval time.Duration // periodic sync period; 0 disables it
	QuitTimeout  time.Duration // bound on the flush and sync at quit
}

// Deps are the collaborators of the TUI.
type Deps struct {
	State  *state.AppState
	Writer Writer
	Syncer Syncer           // nil means offline
	Loader cloudsync.Loader // reads committed days for sync
	// Results delivers write outcomes from the background writer. Optional.
	Results <-chan persist.Result
	Now     func() time.Time
}

// Model is the Bubble Tea model of the interactive log.
type Model struct {
	cfg     TUIConfig
	app     *state.AppState
	writer  Writer
	syncer  Syncer
	loader  cloudsync.Loader
	results <-chan persist.Result
	now     func() time.Time

	spinner    spinner.Model
	notice     string // last error shown to the user, cleared on the next key
	editOffset int    // first visible line of the active editor

	width  int
	height int
	ready  bool
}

type syncedMsg struct {
	state cloudsync.State
	err   error
}

type quitSyncedMsg struct {
	state cloudsync.State
	err   error
}

type syncTickMsg time.Time

type writeResultMsg persist.Result

type editorDoneMsg struct {
	field   state.LongText
	date    time.Time
	text    string
	changed bool
	err     error
}

// NewModel creates the TUI model on the startup screen.
func NewModel(deps Deps, cfg TUIConfig) Model {
	if deps.Syncer == nil {
		deps.Syncer = cloudsync.New(nil)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if cfg.QuitTimeout <= 0 {
		cfg.QuitTimeout = 5 * time.Second
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	deps.State.Screen = router.Startup
	deps.State.Sync = deps.Syncer.State()
	if deps.Syncer.Enabled() {
		deps.State.Sync = cloudsync.State{Phase: cloudsync.Connecting}
	}

	return Model{
		cfg:     cfg,
		app:     deps.State,
		writer:  deps.Writer,
		syncer:  deps.Syncer,
		loader:  deps.Loader,
		results: deps.Results,
		now:     deps.Now,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.connectCmd(), m.tickCmd(), m.waitForResult())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case spinner.TickMsg:
		if m.app.Screen != router.Syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case syncTickMsg:
		cmds := []tea.Cmd{m.tickCmd()}
		if !m.app.Screen.IsEdit() && m.app.Screen != router.Syncing {
			cmds = append(cmds, m.syncCmd())
		}
		return m, tea.Batch(cmds...)

	case syncedMsg:
		m.app.Sync = msg.state
		if msg.err != nil {
			log.Printf("sync: %v", msg.err)
		}
		return m, nil

	case quitSyncedMsg:
		m.app.Sync = msg.state
		if msg.err != nil {
			log.Printf("sync at quit: %v", msg.err)
		}
		return m, tea.Quit

	case writeResultMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("Could not %s %s: %v", msg.Op, msg.Key, msg.Err)
		}
		return m, m.waitForResult()

	case editorDoneMsg:
		m.finishExternalEdit(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.notice = ""
	t := router.Dispatch(m.app.Screen, msg.String(), m.app.View())

	switch t.Kind {
	case router.Stay:
		return nil
	case router.Mutate:
		return m.mutate(t.Action, msg)
	}

	cmd, ok := m.perform(t)
	if !ok {
		return nil
	}
	m.enter(t)
	return cmd
}

// mutate applies an in-place action on the current screen.
func (m *Model) mutate(a router.Action, msg tea.KeyMsg) tea.Cmd {
	f := &m.app.Focus
	switch a {
	case router.ListDown:
		f.Down(m.listLen(f.Section()))
	case router.ListUp:
		f.Up(m.listLen(f.Section()))
	case router.ListUnfocus:
		f.Escape()
	case router.ScrollDown:
		f.ScrollDown(m.maxScroll(f.Section()))
	case router.ScrollUp:
		f.ScrollUp()
	case router.NextSection:
		f.Next(m.fits)
	case router.PrevSection:
		f.Prev(m.fits)
	case router.ToggleField:
		f.ToggleField()
	case router.HomeDown:
		m.app.Home.Down(m.app.DayCount())
	case router.HomeUp:
		m.app.Home.Up(m.app.DayCount())
	case router.HomeUnfocus:
		m.app.Home.Escape()
	case router.PrevDay:
		m.app.StepDay(-1)
	case router.NextDay:
		m.app.StepDay(1)
	case router.EditBuffer:
		m.editBuffer(msg)
	case router.ExternalEditor:
		return m.openExternalEditor()
	}
	return nil
}

// perform runs the action carried by a Switch before the screen changes.
// It reports false when the switch must be cancelled.
func (m *Model) perform(t router.Transition) (tea.Cmd, bool) {
	switch t.Action {
	case router.OpenDay:
		m.app.OpenHomeDay(t.Index)
	case router.OpenToday:
		m.app.Select(m.now())
		m.app.EnsureDay()
	case router.Commit:
		return nil, m.commit()
	case router.Confirm:
		m.confirm()
	case router.Quit:
		return tea.Batch(m.spinner.Tick, m.quitCmd()), true
	}
	return nil, true
}

// enter switches to the transition's screen and prepares it.
func (m *Model) enter(t router.Transition) {
	next := t.Screen
	if next == router.Help {
		m.app.HelpReturn = m.app.Screen
	}
	m.app.Buffer = nil
	m.editOffset = 0
	switch {
	case next.IsEdit():
		m.app.Buffer = m.newBuffer(next, t.Index)
	case next.IsConfirm():
		m.app.Pending = t.Index
	}
	m.app.Screen = next
}

func (m *Model) newBuffer(screen router.Screen, index int) *textbuf.Buffer {
	cur, _ := m.app.Current()
	m.app.EditIndex = index
	switch screen {
	case router.EditFood:
		if index >= 0 && index < len(cur.Food) {
			return textbuf.NewSingleLine(cur.Food[index].Name, nil)
		}
	case router.EditSokay:
		if index >= 0 && index < len(cur.Sokay) {
			return textbuf.NewSingleLine(cur.Sokay[index].Name, nil)
		}
	case router.EditWeight:
		return textbuf.NewSingleLine(numberText(cur.Weight), textbuf.Numeric)
	case router.EditWaist:
		return textbuf.NewSingleLine(numberText(cur.Waist), textbuf.Numeric)
	case router.EditMiles:
		return textbuf.NewSingleLine(numberText(cur.Miles), textbuf.Numeric)
	case router.EditElevation:
		return textbuf.NewSingleLine(intText(cur.Elevation), textbuf.Integer)
	case router.EditStrength:
		return textbuf.NewMultiLine(deref(cur.StrengthMobility), 0)
	case router.EditNotes:
		return textbuf.NewMultiLine(deref(cur.Notes), 0)
	}
	return textbuf.NewSingleLine("", nil)
}

func (m *Model) editBuffer(msg tea.KeyMsg) {
	b := m.app.Buffer
	if b == nil {
		return
	}
	switch {
	case msg.Type == tea.KeyRunes && !msg.Alt:
		b.Insert(string(msg.Runes))
	case msg.Type == tea.KeySpace:
		b.Insert(" ")
	default:
		b.HandleKey(msg.String(), m.editorWidth())
	}
	line, _ := b.Cursor(m.editorWidth())
	m.editOffset = textbuf.Window(line, m.editorHeight(), m.editOffset)
}

// commit applies the active editor to the selected day. A rejected numeric
// value keeps the editor open.
func (m *Model) commit() bool {
	if m.app.Buffer == nil {
		return true
	}
	text := m.app.Buffer.Value()

	var (
		snap    daylog.DailyEntry
		changed bool
		err     error
	)
	switch m.app.Screen {
	case router.AddFood:
		snap, changed = m.app.AddFood(text)
	case router.EditFood:
		snap, changed = m.app.EditFood(m.app.EditIndex, text)
	case router.AddSokay:
		snap, changed = m.app.AddSokay(text)
	case router.EditSokay:
		snap, changed = m.app.EditSokay(m.app.EditIndex, text)
	case router.EditWeight:
		snap, changed, err = m.app.SetMeasurement(state.Weight, text)
	case router.EditWaist:
		snap, changed, err = m.app.SetMeasurement(state.Waist, text)
	case router.EditMiles:
		snap, changed, err = m.app.SetMeasurement(state.Miles, text)
	case router.EditElevation:
		snap, changed, err = m.app.SetMeasurement(state.Elevation, text)
	case router.EditStrength:
		snap, changed = m.app.SetLongText(state.StrengthMobility, text)
	case router.EditNotes:
		snap, changed = m.app.SetLongText(state.Notes, text)
	}
	if err != nil {
		if errors.Is(err, storage.ErrValidation) {
			m.notice = "Please enter a valid number"
		} else {
			m.notice = err.Error()
		}
		return false
	}
	if changed {
		m.writer.SaveDay(snap)
	}
	if m.app.Screen.IsLongText() {
		m.refit()
	}
	return true
}

// refit recomputes expansion of the focused long text after its content changed.
func (m *Model) refit() {
	if s := m.app.Focus.Section(); s.IsLongText() {
		m.app.Focus.Focus(s, m.fits)
	}
}

func (m *Model) confirm() {
	switch m.app.Screen {
	case router.ConfirmDeleteDay:
		days := m.app.Days()
		if m.app.Pending < 0 || m.app.Pending >= len(days) {
			return
		}
		date := days[m.app.Pending].Date
		if m.app.DeleteDay(date) {
			m.writer.DeleteDay(date)
		}
	case router.ConfirmDeleteFood:
		if snap, changed := m.app.DeleteFood(m.app.Pending); changed {
			m.writer.SaveDay(snap)
		}
	case router.ConfirmDeleteSokay:
		if snap, changed := m.app.DeleteSokay(m.app.Pending); changed {
			m.writer.SaveDay(snap)
		}
	}
}

func (m *Model) openExternalEditor() tea.Cmd {
	field := state.Notes
	if m.app.Focus.Section() == focus.StrengthMobility {
		field = state.StrengthMobility
	}
	cur, _ := m.app.Current()
	initial := deref(cur.Notes)
	if field == state.StrengthMobility {
		initial = deref(cur.StrengthMobility)
	}

	sess, err := editor.Prepare(initial)
	if err != nil {
		m.notice = err.Error()
		return nil
	}
	c, err := sess.Command(editor.ResolveEditor(m.cfg.Editor))
	if err != nil {
		sess.Discard()
		m.notice = err.Error()
		return nil
	}
	date := m.app.Selected
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			sess.Discard()
			return editorDoneMsg{field: field, date: date, err: err}
		}
		text, changed, err := sess.Result()
		return editorDoneMsg{field: field, date: date, text: text, changed: changed, err: err}
	})
}

func (m *Model) finishExternalEdit(msg editorDoneMsg) {
	if msg.err != nil {
		m.notice = "Editor: " + msg.err.Error()
		return
	}
	if !msg.changed || !msg.date.Equal(m.app.Selected) {
		return
	}
	if snap, changed := m.app.SetLongText(msg.field, msg.text); changed {
		m.writer.SaveDay(snap)
	}
	m.refit()
}

func (m Model) connectCmd() tea.Cmd {
	if !m.syncer.Enabled() {
		return nil
	}
	syncer, load := m.syncer, m.loader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if st := syncer.Connect(ctx); st.Phase != cloudsync.Connected {
			return syncedMsg{state: st}
		}
		// push days left pending by an earlier session
		sctx, scancel := context.WithTimeout(context.Background(), syncTimeout)
		defer scancel()
		st, err := syncer.Sync(sctx, load)
		return syncedMsg{state: st, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	if m.cfg.SyncInterval <= 0 || !m.syncer.Enabled() {
		return nil
	}
	return tea.Tick(m.cfg.SyncInterval, func(t time.Time) tea.Msg { return syncTickMsg(t) })
}

func (m Model) syncCmd() tea.Cmd {
	syncer, load := m.syncer, m.loader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		st, err := syncer.Sync(ctx, load)
		return syncedMsg{state: st, err: err}
	}
}

// quitCmd drains pending writes and pushes them. It answers within
// QuitTimeout whether or not the work finished.
func (m Model) quitCmd() tea.Cmd {
	writer, syncer, load, timeout := m.writer, m.syncer, m.loader, m.cfg.QuitTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		done := make(chan quitSyncedMsg, 1)
		go func() {
			if err := writer.Flush(ctx); err != nil {
				log.Printf("quit: flushing writes: %v", err)
			}
			if !syncer.Enabled() {
				done <- quitSyncedMsg{state: syncer.State()}
				return
			}
			st, err := syncer.Sync(ctx, load)
			done <- quitSyncedMsg{state: st, err: err}
		}()

		select {
		case msg := <-done:
			return msg
		case <-ctx.Done():
			return quitSyncedMsg{state: cloudsync.Error("timed out"), err: ctx.Err()}
		}
	}
}

func (m Model) waitForResult() tea.Cmd {
	if m.results == nil {
		return nil
	}
	results := m.results
	return func() tea.Msg {
		r, ok := <-results
		if !ok {
			return nil
		}
		return writeResultMsg(r)
	}
}

func (m Model) listLen(s focus.Section) int {
	switch s {
	case focus.Food:
		return m.app.FoodCount()
	case focus.Sokay:
		return m.app.SokayCount()
	}
	return 0
}

// RunTUI launches the interactive log. Log output goes to logPath while the
// program owns the terminal.
func RunTUI(deps Deps, cfg TUIConfig, logPath string) error {
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "mountains")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	}
	p := tea.NewProgram(NewModel(deps, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
