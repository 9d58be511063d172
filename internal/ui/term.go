package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Subjects: bold cyan so the class names stand out
	colorSubject = color.New(color.FgCyan, color.Bold)

	// Days and section titles
	colorHeader = color.New(color.Bold)

	// Warnings: skipped or overwritten classes
	colorWarn = color.New(color.FgYellow)

	// Success lines
	colorOK = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output, lipgloss rendering included.
func DisableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

func formatSubject(s string) string { return colorSubject.Sprint(s) }

func formatHeader(s string) string { return colorHeader.Sprint(s) }

func formatWarn(s string) string { return colorWarn.Sprint(s) }

func formatOK(s string) string { return colorOK.Sprint(s) }

func formatMuted(s string) string { return colorMuted.Sprint(s) }
