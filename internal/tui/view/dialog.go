package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles of a dialog frame and its buttons.
type ModalStyles struct {
	Frame        lipgloss.Style
	Header       lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Footer       lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

// Button rows shared by the schedule dialogs.
var (
	FormButtons    = []string{"[Enter] Save", "[Tab] Next", "[Esc] Cancel"}
	ConfirmButtons = []string{"[y/Enter] Confirm", "[n/Esc] Cancel"}
	ChoiceButtons  = []string{"[Enter] Apply", "[Esc] Cancel"}
)

// Dialog is a framed box drawn over the wallpaper.
type Dialog struct {
	Title string
	Body  string
	// Buttons are drawn in one row; the first is the default action.
	Buttons []string
	// Hint replaces the button row when Buttons is empty.
	Hint    string
	Compact bool
}

// Render draws the dialog.
func (d Dialog) Render(s ModalStyles) string {
	sections := []string{s.Header.Render(s.Title.Render(d.Title))}
	if d.Body != "" {
		sections = append(sections, d.Body)
	}
	footer := d.Hint
	if len(d.Buttons) > 0 {
		footer = buttonRow(s, d.Compact, d.Buttons)
	}
	if footer != "" {
		sections = append(sections, s.Footer.Render(footer))
	}
	return s.Frame.Render(strings.Join(sections, "\n\n"))
}

func buttonRow(s ModalStyles, compact bool, labels []string) string {
	normal, active := s.Button, s.ButtonActive
	if compact {
		normal = normal.Padding(0, 1)
		active = active.Padding(0, 1)
	}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == 0 {
			parts[i] = active.Render(label)
		} else {
			parts[i] = normal.Render(label)
		}
	}
	return strings.Join(parts, s.Body.Render(" "))
}
