package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jy-crnz/SchedulerDesigner/internal/tui/theme"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg     lipgloss.Color
	colorAccent lipgloss.Color

	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	DayHeaderStyle lipgloss.Style
	SlotLabelStyle lipgloss.Style

	CardStyle    lipgloss.Style
	CardAltStyle lipgloss.Style
	StarStyle    lipgloss.Style
	VacantStyle  lipgloss.Style
	CursorStyle  lipgloss.Style
	MarkedStyle  lipgloss.Style
	BorderStyle  lipgloss.Style

	// Prompt box
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style
	SuggestionStyle    lipgloss.Style

	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style

	// Modal styles
	ModalBgColor           lipgloss.Color
	ModalStyle             lipgloss.Style
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalSectionTitleStyle lipgloss.Style
	ModalFocusTitleStyle   lipgloss.Style
	ModalTagStyle          lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalHintStyle         lipgloss.Style
	ModalHighlightStyle    lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	p := theme.NewPalette(t)

	s.colorBg = p.Bg
	s.colorAccent = p.Accent

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.Bg)

	s.SubtitleStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg).
		Background(p.BgHighlight)

	s.SlotLabelStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg)

	s.CardStyle = lipgloss.NewStyle().
		Background(p.Card).
		Foreground(p.CardText).
		Bold(true)

	s.CardAltStyle = s.CardStyle.
		Background(p.CardAlt)

	s.StarStyle = lipgloss.NewStyle().
		Foreground(p.Star).
		Background(p.Bg)

	s.VacantStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.CursorStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.Accent).
		Bold(true)

	// source cell of a pending move or copy
	s.MarkedStyle = lipgloss.NewStyle().
		Background(p.Warning).
		Foreground(p.TextOnWarning).
		Bold(true)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg)

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.FgMuted).
		BorderBackground(p.Bg).
		Background(p.BgHighlight).
		Foreground(p.Fg).
		Padding(0, 1)

	s.PromptFocusedStyle = s.PromptStyle.
		BorderForeground(p.Accent).
		Background(p.BgSelection).
		Bold(true)

	s.SuggestionStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Background(p.Bg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	modal := p.Modal
	modalBg := modal.Panel
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(52).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg).
		Padding(0, 1)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalSectionTitleStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Bold(true).
		PaddingLeft(1).
		Background(modalBg)

	s.ModalFocusTitleStyle = s.ModalSectionTitleStyle.
		Foreground(modal.Highlight)

	s.ModalTagStyle = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Bold(true).
		Padding(0, 1)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(modal.Text).
		Padding(0, 2)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(p.TextOnAccent).
		Padding(0, 2).
		Underline(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalHighlightStyle = lipgloss.NewStyle().
		Foreground(modal.Highlight).
		Background(modalBg).
		Bold(true)

	s.AppStyle = lipgloss.NewStyle().
		Background(p.Bg).
		Padding(1, 2)

	return s
}

// Wallpaper returns the styles used to paint the schedule.
func (s *Styles) Wallpaper() view.WallpaperStyles {
	return view.WallpaperStyles{
		Title:     s.TitleStyle,
		Subtitle:  s.SubtitleStyle,
		DayHeader: s.DayHeaderStyle,
		SlotLabel: s.SlotLabelStyle,
		Card:      s.CardStyle,
		CardAlt:   s.CardAltStyle,
		Star:      s.StarStyle,
		Vacant:    s.VacantStyle,
		Cursor:    s.CursorStyle,
		Marked:    s.MarkedStyle,
		Border:    s.BorderStyle,
	}
}

func (s *Styles) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		Frame:        s.ModalStyle,
		Header:       s.ModalHeaderStyle,
		Title:        s.ModalTitleStyle,
		Body:         s.ModalBodyStyle,
		Footer:       s.ModalFooterStyle,
		Button:       s.ModalButtonStyle,
		ButtonActive: s.ModalButtonActiveStyle,
	}
}

func (s *Styles) modalStyleSet() view.ModalStyleSet {
	return view.ModalStyleSet{
		BodyStyle:         s.ModalBodyStyle,
		SectionTitleStyle: s.ModalSectionTitleStyle,
		FocusTitleStyle:   s.ModalFocusTitleStyle,
		TagStyle:          s.ModalTagStyle,
		HintStyle:         s.ModalHintStyle,
		HighlightStyle:    s.ModalHighlightStyle,
	}
}
