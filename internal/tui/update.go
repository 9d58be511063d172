package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jy-crnz/SchedulerDesigner/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.GridMsg:
		m.setGrid(msg)
		if msg.Status == "" {
			return m, nil
		}
		cmd := m.setStatus(msg.Status)
		return m, cmd

	case commands.ScanStartedMsg:
		cmd := m.setStatus("Scanning " + msg.Path + "...")
		return m, cmd

	case commands.ScanDoneMsg:
		m.setGrid(commands.GridMsg{Grid: msg.Grid})
		status := fmt.Sprintf("Placed %d classes", len(msg.Result.Placed))
		if n := len(msg.Result.Skipped); n > 0 {
			status += fmt.Sprintf(" (%d skipped)", n)
		}
		cmd := m.setStatus(status)
		return m, cmd

	case commands.ErrMsg:
		m.err = msg.Err
		LogError("command", msg.Err)
		cmd := m.setStatus(errorStatus(msg.Err))
		return m, cmd

	case commands.StatusMsgCmd:
		cmd := m.setStatus(msg.Msg)
		return m, cmd

	case commands.ClearStatusMsg:
		// A newer status may have arrived since the tick was scheduled.
		if m.statusTime.IsZero() || !nowFunc().Before(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil
	}

	// Forward everything else (cursor blink) to the focused input.
	var cmd tea.Cmd
	switch {
	case m.mode == ModePrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case m.mode == ModeModal && len(m.form) > 0:
		m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	}
	return m, cmd
}

func (m *Model) setGrid(msg commands.GridMsg) {
	if msg.Grid == nil {
		return
	}
	m.grid = msg.Grid
	m.applyTheme()
	m.clampCursor()
}
