package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for terminal display. Falls back to the
// raw text when the renderer cannot be constructed (e.g. dumb terminals).
func RenderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}
