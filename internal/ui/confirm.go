package ui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel is a one-line y/N prompt for CLI commands.
type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
	theme     Theme
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "enter", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	promptStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	return fmt.Sprintf("%s %s ",
		promptStyle.Render(m.prompt),
		m.theme.DangerStyle().Render("[y/N]"),
	)
}

// Confirm shows an interactive confirmation prompt and returns true if the
// user confirms. in and out default to the terminal when nil.
func Confirm(prompt string, theme Theme, in io.Reader, out io.Writer) (bool, error) {
	var opts []tea.ProgramOption
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	result, err := tea.NewProgram(confirmModel{prompt: prompt, theme: theme}, opts...).Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed, nil
}
