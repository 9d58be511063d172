package view

import "github.com/charmbracelet/lipgloss"

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	Width      int
	StatusText string
	HelpText   string
	Status     lipgloss.Style
	Help       lipgloss.Style
}

// RenderFooter renders the status and help lines.
func RenderFooter(state FooterViewState) string {
	status := state.Status.Width(state.Width).MaxWidth(state.Width).Render(state.StatusText)
	help := state.Help.Width(state.Width).MaxWidth(state.Width).Render(state.HelpText)
	return status + "\n" + help
}
