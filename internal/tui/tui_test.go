package tui

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/session"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/commands"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStore) LoadSnapshot(_ context.Context, p string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[p], nil
}

func (m *memStore) SaveSnapshot(_ context.Context, p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[p] = data
	return nil
}

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	sess, err := session.Open(context.Background(), &memStore{data: map[string][]byte{}}, "test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	m := New(sess, nil)
	m.copyText = func(string) error { return nil }
	return *m, sess
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

// apply runs a session command and feeds its message back into the model.
func apply(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if e, ok := msg.(commands.ErrMsg); ok {
		t.Fatalf("command failed: %v", e.Err)
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestCursorNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, "h", "k")
	if m.cursor != (grid.Key{Row: 0, Day: 0}) {
		t.Fatalf("cursor moved past the edge: %v", m.cursor)
	}

	m, _ = press(t, m, "l", "l", "j")
	if m.cursor != (grid.Key{Row: 1, Day: 2}) {
		t.Fatalf("cursor = %v, want 1:2", m.cursor)
	}

	m, _ = press(t, m, "$")
	if m.cursor.Day != 4 {
		t.Fatalf("end should land on Friday, got day %d", m.cursor.Day)
	}
	m, _ = press(t, m, "l")
	if m.cursor.Day != 4 {
		t.Fatalf("cursor left the visible days: %d", m.cursor.Day)
	}
}

func TestToggleStar(t *testing.T) {
	m, sess := newTestModel(t)
	k := grid.Key{Row: 0, Day: 0}

	m, cmd := press(t, m, "s")
	m = apply(t, m, cmd)

	if !m.grid.Cell(k).IsEmpty() {
		t.Fatalf("expected star removed, got %v", m.grid.Cell(k))
	}
	if !sess.Grid().Cell(k).IsEmpty() {
		t.Fatal("session was not updated")
	}
}

func TestCellForm_PlaceAndClear(t *testing.T) {
	m, sess := newTestModel(t)
	k := grid.Key{Row: 0, Day: 0}

	m, _ = press(t, m, "enter")
	if m.mode != ModeModal || m.modalType != ModalCellForm {
		t.Fatalf("expected cell form, got mode %v modal %v", m.mode, m.modalType)
	}
	m, _ = press(t, m, "m", "a", "t", "h", "tab", "8", "A", "M", "tab", "r", "1")
	m, cmd := press(t, m, "enter")
	if m.mode != ModeNormal {
		t.Fatalf("form should close on save, mode %v", m.mode)
	}
	m = apply(t, m, cmd)

	f, ok := sess.Grid().Cell(k).Fields()
	if !ok {
		t.Fatal("expected occupied cell")
	}
	if f.Subject != "MATH" || f.Time != "8AM" || f.Room != "R1" {
		t.Fatalf("unexpected fields %+v", f)
	}
	if !strings.Contains(m.statusMsg, "MATH") {
		t.Fatalf("status = %q", m.statusMsg)
	}

	// reopening prefills, and saving without a subject deletes
	m, _ = press(t, m, "e")
	if got := m.form[0].Value(); got != "MATH" {
		t.Fatalf("form prefill = %q", got)
	}
	m.form[0].SetValue("")
	m, cmd = press(t, m, "enter")
	apply(t, m, cmd)
	if !sess.Grid().Cell(k).IsStarred() {
		t.Fatalf("cleared cell should be starred, got %v", sess.Grid().Cell(k))
	}
}

func TestCellForm_Cancel(t *testing.T) {
	m, sess := newTestModel(t)

	m, _ = press(t, m, "enter", "x", "esc")
	if m.mode != ModeNormal || m.form != nil {
		t.Fatal("esc should close the form")
	}
	if !sess.Grid().Equal(grid.New()) {
		t.Fatal("cancelled form changed the grid")
	}
}

func TestPickMoveAndCopy(t *testing.T) {
	m, sess := newTestModel(t)
	src := grid.Key{Row: 0, Day: 0}
	if err := sess.Place(context.Background(), src, "ART", "", ""); err != nil {
		t.Fatal(err)
	}
	m.grid = sess.Grid()

	m, _ = press(t, m, "c")
	if m.mode != ModePick || m.pickOp != pickCopy {
		t.Fatalf("expected copy pick, got mode %v", m.mode)
	}
	m, cmd := press(t, m, "l", "enter")
	m = apply(t, m, cmd)
	if !m.grid.Cell(grid.Key{Row: 0, Day: 1}).IsOccupied() || !m.grid.Cell(src).IsOccupied() {
		t.Fatal("copy should keep the source and fill the target")
	}

	m, _ = press(t, m, "h", "m", "j", "j")
	m, cmd = press(t, m, "enter")
	m = apply(t, m, cmd)
	if m.grid.Cell(src).IsOccupied() {
		t.Fatal("move should vacate the source")
	}
	if !m.grid.Cell(grid.Key{Row: 2, Day: 0}).IsOccupied() {
		t.Fatal("move target is empty")
	}
}

func TestPick_RequiresCard(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "m")
	if m.mode != ModeNormal {
		t.Fatal("pick should not start on a starred cell")
	}
	if m.statusMsg == "" {
		t.Fatal("expected a status hint")
	}
}

func TestWeekendToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(t, m, "w")
	m = apply(t, m, cmd)
	if got := m.grid.Layout().Columns(); got != 7 {
		t.Fatalf("columns = %d, want 7", got)
	}

	m.cursor = grid.Key{Row: 0, Day: 6}
	m, cmd = press(t, m, "w")
	m = apply(t, m, cmd)
	if got := m.grid.Layout().Columns(); got != 5 {
		t.Fatalf("columns = %d, want 5", got)
	}
	if m.cursor.Day != 4 {
		t.Fatalf("cursor should clamp to Friday, got %d", m.cursor.Day)
	}
}

func TestConfirmClear(t *testing.T) {
	m, sess := newTestModel(t)
	_ = sess.Place(context.Background(), grid.Key{Row: 1, Day: 1}, "BIO", "", "")

	m, _ = press(t, m, "C")
	if m.modalType != ModalConfirmClear {
		t.Fatal("expected confirm modal")
	}
	m, _ = press(t, m, "n")
	if m.mode != ModeNormal || !sess.Grid().Cell(grid.Key{Row: 1, Day: 1}).IsOccupied() {
		t.Fatal("n should cancel")
	}

	m, _ = press(t, m, "C")
	m, cmd := press(t, m, "y")
	apply(t, m, cmd)
	if !sess.Grid().Equal(grid.New()) {
		t.Fatal("schedule not cleared")
	}
}

func TestThemeModal(t *testing.T) {
	m, sess := newTestModel(t)

	m, _ = press(t, m, "t", "j")
	m, cmd := press(t, m, "enter")
	m = apply(t, m, cmd)

	if got := sess.Grid().Header().Theme; got != "dark" {
		t.Fatalf("theme = %q, want dark", got)
	}
	if m.theme.Name != "dark" {
		t.Fatalf("styles not reloaded, theme %q", m.theme.Name)
	}
}

func TestHeaderForm(t *testing.T) {
	m, sess := newTestModel(t)

	m, _ = press(t, m, "H", "tab", "tab")
	m.form[2].SetValue("term 2")
	m, cmd := press(t, m, "enter")
	apply(t, m, cmd)

	h := sess.Grid().Header()
	if h.Term != "TERM 2" || h.StartYear != "2025" {
		t.Fatalf("header = %+v", h)
	}
}

func TestPromptDays(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, "/")
	if m.mode != ModePrompt {
		t.Fatal("expected prompt mode")
	}
	m.prompt.SetValue("/days mon,wed,sat")
	m, cmd := press(t, m, "enter")
	m = apply(t, m, cmd)

	if got := m.grid.Layout().ActiveDays(); !slices.Equal(got, []int{0, 2, 5}) {
		t.Fatalf("active days = %v", got)
	}
}

func TestPromptUnknownCommand(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "/")
	m.prompt.SetValue("/dance")
	m, _ = press(t, m, "enter")
	if !strings.Contains(m.statusMsg, "Unknown command") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestPromptScanWithoutScanner(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "/")
	m.prompt.SetValue("/scan shot.png")
	m, _ = press(t, m, "enter")
	if m.statusMsg != "Scanning is not configured" {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestPromptAutocomplete(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "/")
	m.prompt.SetValue("/ex")
	m, _ = press(t, m, "tab")
	if got := m.prompt.Value(); got != "/export " {
		t.Fatalf("autocomplete = %q", got)
	}
}

func TestParseDays(t *testing.T) {
	cols, days, err := parseDays("7")
	if err != nil || cols != 7 || days != nil {
		t.Fatalf("parseDays(7) = %d %v %v", cols, days, err)
	}

	cols, days, err = parseDays("fri, mon,,mon")
	if err != nil || cols != 2 || !slices.Equal(days, []int{0, 4}) {
		t.Fatalf("parseDays(list) = %d %v %v", cols, days, err)
	}

	if _, _, err := parseDays("funday"); err == nil {
		t.Fatal("expected error for unknown day")
	}
}

func TestErrMsgSetsStatus(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(commands.ErrMsg{Err: errors.New("boom")})
	m = next.(Model)
	if m.statusMsg != "Error: boom" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	next, _ = m.Update(commands.ErrMsg{Err: grid.ErrInvalidTarget})
	if got := next.(Model).statusMsg; got != "Pick a different cell" {
		t.Fatalf("status = %q", got)
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	if got := m.View(); got != "Loading..." {
		t.Fatalf("view before size = %q", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	out := ansi.Strip(m.View())
	for _, want := range []string{"CLASS SCHEDULE", "MON", "FRI", "BEFORE 9", "hjkl move"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}

	m, _ = press(t, m, "?")
	if out := ansi.Strip(m.View()); !strings.Contains(out, "Keys") {
		t.Fatal("help modal not rendered")
	}
	m, _ = press(t, m, "x")
	if m.mode != ModeNormal {
		t.Fatal("any key should close help")
	}
}
