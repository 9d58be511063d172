package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jy-crnz/SchedulerDesigner/internal/tui/input"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/view"
)

const (
	helpNormal = "hjkl move · enter edit · s star · d delete · m/c move/copy · w weekend · t theme · / commands · ? help · q quit"
	helpPick   = "hjkl choose target · enter apply · esc cancel"
	helpPrompt = "tab complete · enter run · esc cancel"
)

// View renders the UI.
func (m Model) View() string {
	screen := view.Screen{
		Width:            m.width,
		Height:           m.height,
		DialogBackground: m.styles.ModalBgColor,
	}
	if m.width == 0 || m.height == 0 {
		return screen.Render()
	}
	screen.Base = m.renderBase()
	if m.mode == ModeModal {
		screen.Dialog = m.renderModal()
	}
	return screen.Render()
}

func (m Model) renderBase() string {
	innerW := max(0, m.width-m.styles.AppStyle.GetHorizontalFrameSize())
	innerH := max(0, m.height-m.styles.AppStyle.GetVerticalFrameSize())

	wm := view.WallpaperModel{
		Grid:       m.grid,
		Width:      innerW,
		ShowCursor: m.mode != ModeModal,
		Cursor:     m.cursor,
	}
	if m.mode == ModePick {
		src := m.pickSrc
		wm.Marked = &src
	}
	wallpaper := view.RenderWallpaper(wm, m.styles.Wallpaper())

	footer := m.renderFooter(innerW)
	top := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, wallpaper,
		lipgloss.WithWhitespaceBackground(m.styles.colorBg))
	top = view.FillBlock(top, innerW, max(0, innerH-lipgloss.Height(footer)), m.styles.colorBg)

	return m.styles.AppStyle.Render(top + "\n" + footer)
}

func (m Model) renderFooter(width int) string {
	if m.mode == ModePrompt {
		return m.renderPrompt(width)
	}

	help := helpNormal
	if m.mode == ModePick {
		help = "pick " + m.pickOp.String() + " target · " + helpPick
	}
	return view.RenderFooter(view.FooterViewState{
		Width:      width,
		StatusText: m.statusMsg,
		HelpText:   help,
		Status:     m.styles.StatusStyle,
		Help:       m.styles.HelpStyle,
	})
}

func (m Model) renderPrompt(width int) string {
	var lines []string
	for _, c := range input.PromptMatchingCommands(m.prompt.Value(), promptCommands) {
		lines = append(lines, m.styles.SuggestionStyle.Render(c.Usage()+"  "+c.Description))
	}
	box := m.styles.PromptFocusedStyle.Width(max(10, width-2)).Render(m.prompt.View())
	lines = append(lines, box, m.styles.HelpStyle.Width(width).Render(helpPrompt))
	return strings.Join(lines, "\n")
}
