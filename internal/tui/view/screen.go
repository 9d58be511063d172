// Package view renders the wallpaper screen and its dialogs.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Screen is one frame of the app: the wallpaper layer plus an optional dialog
// centered on top of it.
type Screen struct {
	Width, Height int
	Base          string
	Dialog        string
	// DialogBackground is restored after every reset inside the dialog so
	// nested styles do not punch holes into it.
	DialogBackground lipgloss.Color
}

// Render composes the frame. Before the first window size arrives it shows a
// placeholder.
func (s Screen) Render() string {
	if s.Width == 0 || s.Height == 0 {
		return "Loading..."
	}
	if s.Dialog == "" {
		return s.Base
	}
	return Overlay(s.Base, s.Dialog, s.Width, s.Height, s.DialogBackground)
}

// FillBlock pads content to exactly width x height cells, painting the gap
// with bg. Lines wider than width are left alone.
func FillBlock(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if gap := width - lipgloss.Width(line); gap > 0 {
			line += fill.Render(strings.Repeat(" ", gap))
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// Overlay splices dialog into the middle of base.
func Overlay(base, dialog string, width, height int, bg lipgloss.Color) string {
	boxW := min(lipgloss.Width(dialog), width)
	if boxW == 0 {
		return base
	}
	box := strings.Split(dialog, "\n")
	top := max(0, (height-len(box))/2)
	left := max(0, (width-boxW)/2)

	rows := strings.Split(FillBlock(base, width, height, ""), "\n")
	for i, line := range box {
		row := top + i
		if row >= len(rows) {
			break
		}
		rows[row] = ansi.Cut(rows[row], 0, left) +
			dialogLine(line, boxW, bg) +
			ansi.Cut(rows[row], left+boxW, width)
	}
	return strings.Join(rows, "\n")
}

func dialogLine(line string, width int, bg lipgloss.Color) string {
	if w := lipgloss.Width(line); w > width {
		line = ansi.Cut(line, 0, width)
	} else if w < width {
		line += lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", width-w))
	}
	if bg != "" {
		seq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
		for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
			line = strings.ReplaceAll(line, reset, reset+seq)
		}
	}
	return line + ansi.ResetStyle
}
