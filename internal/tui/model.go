// Package tui provides the terminal wallpaper editor.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jy-crnz/SchedulerDesigner/internal/config"
	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/session"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/commands"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePick        // choosing the target of a move or copy
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalCellForm
	ModalHeaderForm
	ModalConfirmClear
	ModalTheme
	ModalHelp
)

type pickOp int

const (
	pickMove pickOp = iota
	pickCopy
)

func (p pickOp) String() string {
	if p == pickCopy {
		return "copy"
	}
	return "move"
}

const statusDuration = 3 * time.Second

var nowFunc = time.Now

// Model is the main TUI model.
type Model struct {
	// Dependencies
	sess      *session.Session
	config    *config.Config
	scanner   commands.Scanner
	exportDir string
	copyText  func(string) error

	// Theme and styles follow the header of the grid being edited.
	theme  *theme.Theme
	styles *Styles

	grid   *grid.Grid
	cursor grid.Key
	mode   Mode

	// Pick mode
	pickOp  pickOp
	pickSrc grid.Key

	// Modal state
	modalType   ModalType
	form        []textinput.Model
	formFocus   int
	themeChoice int

	prompt textinput.Model

	width  int
	height int

	statusMsg  string
	statusTime time.Time
	err        error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithScanner enables the /scan prompt command.
func WithScanner(s commands.Scanner) ModelOption {
	return func(m *Model) { m.scanner = s }
}

// WithExportDir sets where /export writes files.
func WithExportDir(dir string) ModelOption {
	return func(m *Model) { m.exportDir = dir }
}

// New creates a new TUI model for sess.
func New(sess *session.Session, cfg *config.Config, opts ...ModelOption) *Model {
	prompt := textinput.New()
	prompt.Placeholder = "/scan ~/Pictures/schedule.png"
	prompt.CharLimit = 512

	m := &Model{
		sess:      sess,
		config:    cfg,
		exportDir: ".",
		copyText:  clipboard.WriteAll,
		grid:      sess.Grid(),
		mode:      ModeNormal,
		prompt:    prompt,
	}
	m.applyTheme()
	m.cursor = m.firstVisibleKey()

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// applyTheme reloads styles for the theme stored in the grid header.
func (m *Model) applyTheme() {
	name := m.grid.Header().Theme
	if !theme.IsAvailable(name) && m.config != nil {
		name = m.config.UI.Theme
	}
	t, err := theme.Load(name)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	if m.theme != nil && m.theme.Name == t.Name {
		return
	}
	m.theme = t
	m.styles = NewStyles(t)
	m.prompt.TextStyle = m.styles.ModalInputTextStyle
}

func (m Model) firstVisibleKey() grid.Key {
	days := m.grid.Layout().ActiveDays()
	return grid.Key{Row: 0, Day: days[0]}
}

// clampCursor keeps the cursor on a visible day after the layout changes.
func (m *Model) clampCursor() {
	layout := m.grid.Layout()
	if layout.Contains(m.cursor.Day) {
		return
	}
	days := layout.ActiveDays()
	best := days[len(days)-1]
	for _, d := range days {
		if d >= m.cursor.Day {
			best = d
			break
		}
	}
	m.cursor.Day = best
}

func (m *Model) setMode(mode Mode, reason string) {
	if m.mode != mode {
		LogModeChange(m.mode, mode, reason)
	}
	m.mode = mode
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = nowFunc().Add(statusDuration)
	return commands.ClearStatusAfter(statusDuration)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI.
func Run(sess *session.Session, cfg *config.Config, opts ...ModelOption) error {
	return RunWithDebug(sess, cfg, false, opts...)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(sess *session.Session, cfg *config.Config, debug bool, opts ...ModelOption) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(sess, cfg, opts...)
	p := tea.NewProgram(*model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
