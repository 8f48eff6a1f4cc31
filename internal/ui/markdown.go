package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// mdCache keeps one glamour renderer per (width, style) pair in use.
var mdCache = struct {
	sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}{}

func markdownRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}
	if mdCache.renderer != nil && mdCache.width == width && mdCache.style == style {
		return mdCache.renderer, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	mdCache.renderer, mdCache.width, mdCache.style = r, width, style
	return r, nil
}

// RenderMarkdown renders a backup-format day for the terminal. It returns
// content unchanged when rendering fails.
func RenderMarkdown(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	mdCache.Lock()
	defer mdCache.Unlock()

	r, err := markdownRenderer(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
