package view

import "github.com/charmbracelet/lipgloss"

// ModalStyleSet groups modal styles to reduce call-site verbosity.
type ModalStyleSet struct {
	BodyStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	FocusTitleStyle   lipgloss.Style
	TagStyle          lipgloss.Style
	HintStyle         lipgloss.Style
	HighlightStyle    lipgloss.Style
}

// FormStyles returns the modal styles needed for forms.
func (s ModalStyleSet) FormStyles() FormStyles {
	return FormStyles{
		BodyStyle:         s.BodyStyle,
		TagStyle:          s.TagStyle,
		SectionTitleStyle: s.SectionTitleStyle,
		FocusTitleStyle:   s.FocusTitleStyle,
		HintStyle:         s.HintStyle,
	}
}
