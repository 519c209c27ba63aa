// Package ui holds terminal presentation helpers: lipgloss styles for the
// summary and menus, glamour markdown rendering and the linux console
// heuristics.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Styles for wizard output
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// ShowError prints a validation or runtime error inline
func ShowError(msg string) {
	pterm.Error.Println(msg)
}

// ShowWarning prints a non-fatal warning
func ShowWarning(msg string) {
	pterm.Warning.Println(msg)
}

// ShowInfo prints an informational line
func ShowInfo(msg string) {
	pterm.Info.Println(msg)
}

// RenderSummary applies display styling to a prepared summary text.
// The summary text itself stays plain so it remains byte-deterministic;
// styling is layered on only at display time.
func RenderSummary(text string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Render(text)
}
