package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormField is one labelled input of a modal form.
type FormField struct {
	Label   string
	Value   string // rendered input, cursor included
	Focused bool
}

// FormStyles groups styles for form bodies.
type FormStyles struct {
	BodyStyle         lipgloss.Style
	TagStyle          lipgloss.Style
	SectionTitleStyle lipgloss.Style
	FocusTitleStyle   lipgloss.Style
	HintStyle         lipgloss.Style
}

// RenderFormBody renders tag chips followed by the labelled fields.
func RenderFormBody(tags []string, fields []FormField, hint string, styles FormStyles) string {
	var body strings.Builder
	sep := styles.BodyStyle.Render(" ")

	if len(tags) > 0 {
		chips := make([]string, 0, len(tags))
		for _, t := range tags {
			chips = append(chips, styles.TagStyle.Render(t))
		}
		body.WriteString(strings.Join(chips, sep) + "\n\n")
	}

	for i, f := range fields {
		title := styles.SectionTitleStyle
		if f.Focused {
			title = styles.FocusTitleStyle
		}
		body.WriteString(title.Render(strings.ToUpper(f.Label)) + "\n")
		body.WriteString(f.Value + "\n")
		if i < len(fields)-1 {
			body.WriteString("\n")
		}
	}
	if hint != "" {
		body.WriteString("\n" + styles.HintStyle.Render(hint))
	}
	return body.String()
}

// RenderConfirmBody renders a confirmation question.
func RenderConfirmBody(message string, style lipgloss.Style) string {
	return style.Render(message)
}

// RenderChoiceBody renders a vertical list of options with the active one
// marked.
func RenderChoiceBody(options []string, active int, body, highlight lipgloss.Style) string {
	lines := make([]string, 0, len(options))
	for i, o := range options {
		if i == active {
			lines = append(lines, highlight.Render("> "+o))
			continue
		}
		lines = append(lines, body.Render("  "+o))
	}
	return strings.Join(lines, "\n")
}
