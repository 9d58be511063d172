package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/commands"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/input"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/theme"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModePick:
		return m.handlePickKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// moveCursor handles navigation keys shared by normal and pick mode.
func (m *Model) moveCursor(key string) bool {
	days := m.grid.Layout().ActiveDays()
	idx := slices.Index(days, m.cursor.Day)

	switch key {
	case "h", "left":
		if idx > 0 {
			m.cursor.Day = days[idx-1]
		}
	case "l", "right":
		if idx < len(days)-1 {
			m.cursor.Day = days[idx+1]
		}
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "j", "down":
		if m.cursor.Row < grid.Rows-1 {
			m.cursor.Row++
		}
	case "home", "0":
		m.cursor.Day = days[0]
	case "end", "$":
		m.cursor.Day = days[len(days)-1]
	default:
		return false
	}
	LogCursorMove(m.cursor, key)
	return true
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.moveCursor(key) {
		return m, nil
	}

	k := m.cursor
	switch key {
	case "q":
		return m, tea.Quit

	case "enter", "e":
		m.openCellForm()
		return m, textinput.Blink

	case "s", "*":
		return m, commands.Mutate(m.sess, "", func(c context.Context) error {
			return m.sess.ToggleStar(c, k)
		})

	case "d", "x", "delete", "backspace":
		if !m.grid.Cell(k).IsOccupied() {
			cmd := m.setStatus("Nothing to delete")
			return m, cmd
		}
		return m, commands.Mutate(m.sess, "Deleted", func(c context.Context) error {
			return m.sess.Delete(c, k)
		})

	case "m", "c":
		if !m.grid.Cell(k).IsOccupied() {
			cmd := m.setStatus("Select a class card first")
			return m, cmd
		}
		m.pickOp = pickMove
		if key == "c" {
			m.pickOp = pickCopy
		}
		m.pickSrc = k
		m.setMode(ModePick, "start "+m.pickOp.String())
		return m, nil

	case "w":
		cmd := m.toggleWeekend()
		return m, cmd

	case "t":
		m.themeChoice = max(0, slices.Index(theme.Available(), theme.Normalize(m.grid.Header().Theme)))
		m.openModal(ModalTheme)
		return m, nil

	case "H":
		m.openHeaderForm()
		return m, textinput.Blink

	case "C":
		m.openModal(ModalConfirmClear)
		return m, nil

	case "y":
		cmd := m.copyCell()
		return m, cmd

	case "/", ":":
		m.prompt.SetValue("/")
		m.prompt.CursorEnd()
		m.prompt.Focus()
		m.setMode(ModePrompt, "open prompt")
		return m, textinput.Blink

	case "?":
		m.openModal(ModalHelp)
		return m, nil
	}
	return m, nil
}

// toggleWeekend switches between Monday to Friday and the full week.
func (m Model) toggleWeekend() tea.Cmd {
	columns := grid.DaysPerWeek
	status := "Weekend shown"
	if m.grid.Layout().Columns() == grid.DaysPerWeek {
		columns = grid.DefaultColumns
		status = "Weekend hidden"
	}
	return commands.Mutate(m.sess, status, func(c context.Context) error {
		return m.sess.Resize(c, columns, nil)
	})
}

func (m *Model) copyCell() tea.Cmd {
	f, ok := m.grid.Cell(m.cursor).Fields()
	if !ok {
		return m.setStatus("Nothing to copy")
	}
	text := strings.TrimSpace(strings.Join([]string{f.Subject, f.Time, f.Room}, " "))
	return func() tea.Msg {
		if err := m.copyText(text); err != nil {
			return commands.ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return commands.StatusMsgCmd{Msg: "Copied " + f.Subject}
	}
}

// handlePickKeys handles keys while choosing a move or copy target.
func (m Model) handlePickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.moveCursor(key) {
		return m, nil
	}

	switch key {
	case "esc", "q":
		m.setMode(ModeNormal, "cancel "+m.pickOp.String())
		cmd := m.setStatus("Cancelled")
		return m, cmd

	case "enter", " ", "m", "c":
		src, dst, op := m.pickSrc, m.cursor, m.pickOp
		m.setMode(ModeNormal, "apply "+op.String())
		if src == dst {
			cmd := m.setStatus("Pick a different cell")
			return m, cmd
		}
		if op == pickCopy {
			return m, commands.Mutate(m.sess, "Copied", func(c context.Context) error {
				return m.sess.Copy(c, src, dst)
			})
		}
		return m, commands.Mutate(m.sess, "Moved", func(c context.Context) error {
			return m.sess.Move(c, src, dst)
		})
	}
	return m, nil
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt("cancel prompt")
		return m, nil

	case "tab":
		if completed, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(completed)
			m.prompt.CursorEnd()
		}
		return m, nil

	case "enter":
		line := m.prompt.Value()
		m.closePrompt("submit prompt")
		return m.runPrompt(line)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt(reason string) {
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.setMode(ModeNormal, reason)
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalCellForm, ModalHeaderForm:
		return m.handleFormKeys(msg)
	case ModalConfirmClear:
		switch msg.String() {
		case "y", "enter":
			m.closeModal("confirm clear")
			return m, commands.Mutate(m.sess, "Schedule cleared", m.sess.ClearAll)
		case "n", "esc", "q":
			m.closeModal("cancel clear")
		}
		return m, nil
	case ModalTheme:
		return m.handleThemeKeys(msg)
	default:
		m.closeModal("close")
		return m, nil
	}
}

func (m Model) handleThemeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := theme.Available()
	switch msg.String() {
	case "j", "down", "tab":
		m.themeChoice = (m.themeChoice + 1) % len(names)
	case "k", "up", "shift+tab":
		m.themeChoice = (m.themeChoice + len(names) - 1) % len(names)
	case "esc", "q":
		m.closeModal("cancel theme")
	case "enter":
		name := names[m.themeChoice]
		m.closeModal("apply theme")
		return m, commands.Mutate(m.sess, "Theme "+name, func(c context.Context) error {
			return m.sess.UpdateHeader(c, func(h *grid.Header) { h.Theme = name })
		})
	}
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal("cancel form")
		return m, nil
	case "tab", "down":
		m.focusField((m.formFocus + 1) % len(m.form))
		return m, nil
	case "shift+tab", "up":
		m.focusField((m.formFocus + len(m.form) - 1) % len(m.form))
		return m, nil
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	values := make([]string, len(m.form))
	for i, f := range m.form {
		values[i] = strings.TrimSpace(f.Value())
	}
	kind := m.modalType
	m.closeModal("submit form")

	if kind == ModalHeaderForm {
		start, end, term := values[0], values[1], strings.ToUpper(values[2])
		return m, commands.Mutate(m.sess, "Header saved", func(c context.Context) error {
			return m.sess.UpdateHeader(c, func(h *grid.Header) {
				if start != "" {
					h.StartYear = start
				}
				if end != "" {
					h.EndYear = end
				}
				if term != "" {
					h.Term = term
				}
			})
		})
	}

	k := m.cursor
	subject, when, room := strings.ToUpper(values[0]), values[1], strings.ToUpper(values[2])
	if subject == "" {
		if !m.grid.Cell(k).IsOccupied() {
			return m, nil
		}
		return m, commands.Mutate(m.sess, "Deleted", func(c context.Context) error {
			return m.sess.Delete(c, k)
		})
	}
	return m, commands.Mutate(m.sess, "Saved "+subject, func(c context.Context) error {
		return m.sess.Place(c, k, subject, when, room)
	})
}

func (m *Model) openModal(t ModalType) {
	m.modalType = t
	m.setMode(ModeModal, "open modal")
}

func (m *Model) closeModal(reason string) {
	m.modalType = ModalNone
	m.form = nil
	m.formFocus = 0
	m.setMode(ModeNormal, reason)
}

func (m *Model) newField(placeholder, value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.SetValue(value)
	ti.PlaceholderStyle = m.styles.ModalPlaceholderStyle
	ti.TextStyle = m.styles.ModalInputTextStyle
	ti.PromptStyle = m.styles.ModalInputTextStyle
	ti.Cursor.Style = m.styles.ModalInputCursorStyle
	ti.Cursor.TextStyle = m.styles.ModalInputTextStyle
	return ti
}

func (m *Model) openCellForm() {
	f, _ := m.grid.Cell(m.cursor).Fields()
	m.form = []textinput.Model{
		m.newField("e.g. CALCULUS", f.Subject, 120),
		m.newField("e.g. 08:00AM-09:00AM", f.Time, 40),
		m.newField("e.g. RM 204", f.Room, 60),
	}
	m.focusField(0)
	m.openModal(ModalCellForm)
}

func (m *Model) openHeaderForm() {
	h := m.grid.Header()
	m.form = []textinput.Model{
		m.newField("2025", h.StartYear, 4),
		m.newField("2026", h.EndYear, 4),
		m.newField("TERM 1", h.Term, 24),
	}
	m.focusField(0)
	m.openModal(ModalHeaderForm)
}

func (m *Model) focusField(i int) {
	for j := range m.form {
		if j == i {
			m.form[j].Focus()
		} else {
			m.form[j].Blur()
		}
	}
	m.formFocus = i
}

// errorStatus turns an operation error into a short status line.
func errorStatus(err error) string {
	switch {
	case errors.Is(err, grid.ErrInvalidTarget):
		return "Pick a different cell"
	case errors.Is(err, grid.ErrOutOfRange):
		return "That day is hidden"
	default:
		return "Error: " + err.Error()
	}
}
