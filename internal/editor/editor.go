// Package editor hands long text off to the user's external editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when the resolved editor command is blank.
var ErrNoEditor = errors.New("empty editor command")

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Session is a temp file prepared for one editor run.
type Session struct {
	Path    string
	initial string
}

// Prepare writes initial to a fresh temp file.
func Prepare(initial string) (*Session, error) {
	tmp, err := os.CreateTemp("", "mountains-*.md")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.WriteString(initial); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	return &Session{Path: tmp.Name(), initial: initial}, nil
}

// Command builds the editor process for the session without starting it.
// Quoted arguments are not supported; the command is split on whitespace.
func (s *Session) Command(editorCmd string) (*exec.Cmd, error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return nil, ErrNoEditor
	}
	args := append(parts[1:], s.Path)
	return exec.Command(parts[0], args...), nil
}

// Result reads the edited text and removes the temp file. changed is false
// when the text is unchanged apart from surrounding whitespace.
func (s *Session) Result() (content string, changed bool, err error) {
	defer os.Remove(s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}
	content = strings.TrimRight(string(data), "\n")
	if strings.TrimSpace(content) == strings.TrimSpace(s.initial) {
		return s.initial, false, nil
	}
	return content, true, nil
}

// Discard removes the temp file without reading it.
func (s *Session) Discard() {
	os.Remove(s.Path)
}

// Edit opens initialContent in the editor attached to the current terminal
// and returns the edited text. Emptying the file clears the text.
func Edit(editorCmd string, initialContent string) (content string, changed bool, err error) {
	s, err := Prepare(initialContent)
	if err != nil {
		return "", false, err
	}
	cmd, err := s.Command(editorCmd)
	if err != nil {
		s.Discard()
		return "", false, err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		s.Discard()
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}
	return s.Result()
}
