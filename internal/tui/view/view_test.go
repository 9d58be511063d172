package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
)

func TestDialog_Render(t *testing.T) {
	styles := ModalStyles{Body: lipgloss.NewStyle().Foreground(lipgloss.Color("5"))}

	out := Dialog{Title: "Theme", Body: "> dark", Buttons: ChoiceButtons}.Render(styles)
	for _, want := range []string{"Theme", "> dark", "[Enter] Apply", "[Esc] Cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dialog:\n%s", want, out)
		}
	}
	if !strings.Contains(out, styles.Body.Render(" ")) {
		t.Error("buttons should be separated with the body style")
	}

	out = Dialog{Title: "Keys", Hint: "press any key"}.Render(styles)
	if !strings.Contains(out, "press any key") {
		t.Errorf("hint missing:\n%s", out)
	}
}

func TestScreen_Placeholder(t *testing.T) {
	if got := (Screen{Base: "grid"}).Render(); got != "Loading..." {
		t.Fatalf("got %q", got)
	}
	if got := (Screen{Width: 4, Height: 1, Base: "grid"}).Render(); got != "grid" {
		t.Fatalf("got %q", got)
	}
}

func TestOverlay_CentersDialog(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	out := ansi.Strip(Overlay(base, "ab\ncd", 10, 5, ""))

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d", len(lines))
	}
	if lines[1] != "....ab...." || lines[2] != "....cd...." {
		t.Fatalf("dialog not centered:\n%s", out)
	}
	if lines[0] != ".........." || lines[4] != ".........." {
		t.Fatalf("base rows changed:\n%s", out)
	}
}

func TestFillBlock(t *testing.T) {
	out := ansi.Strip(FillBlock("ab", 4, 2, ""))
	if out != "ab  \n    " {
		t.Fatalf("got %q", out)
	}
}

func TestRenderWallpaper(t *testing.T) {
	g := grid.New()
	if err := g.Place(grid.Key{Row: 0, Day: 1}, "CALCULUS", "8:00AM", "RM 101"); err != nil {
		t.Fatalf("Place: %v", err)
	}
	g.SetHeader(grid.Header{StartYear: "2025", EndYear: "2026", Term: "TERM 2", Theme: "dark"})

	out := ansi.Strip(RenderWallpaper(WallpaperModel{Grid: g}, WallpaperStyles{}))

	for _, want := range []string{"CLASS SCHEDULE", "2025-2026", "TERM 2", "MON", "FRI", "CALCULUS", "RM 101", StarGlyph} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in wallpaper:\n%s", want, out)
		}
	}
	if strings.Contains(out, "SAT") {
		t.Errorf("hidden day rendered:\n%s", out)
	}
}

func TestRenderWallpaper_Weekend(t *testing.T) {
	g := grid.New()
	if err := g.Resize(7, nil); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	out := ansi.Strip(RenderWallpaper(WallpaperModel{Grid: g}, WallpaperStyles{}))
	if !strings.Contains(out, "SUN") {
		t.Fatalf("expected Sunday column:\n%s", out)
	}
}

func TestCellLines(t *testing.T) {
	lines := CellLines(grid.Occupied("INTRODUCTION TO ALGORITHMS", "9AM", ""), 8)
	if len(lines) != 2 {
		t.Fatalf("expected subject and time lines, got %v", lines)
	}
	if w := ansi.StringWidth(lines[0]); w > 8 {
		t.Errorf("subject not truncated: %q (%d)", lines[0], w)
	}
	if got := CellLines(grid.Starred(), 8); got[0] != StarGlyph {
		t.Errorf("starred cell = %v", got)
	}
	if got := CellLines(grid.Empty(), 8); got[0] != "" {
		t.Errorf("empty cell = %v", got)
	}
}

func TestCellWidth(t *testing.T) {
	if got := CellWidth(0, 5); got != maxCellWidth {
		t.Errorf("natural width = %d", got)
	}
	if got := CellWidth(20, 7); got != minCellWidth {
		t.Errorf("narrow width = %d, want %d", got, minCellWidth)
	}
	if got := CellWidth(100, 5); got != (100-slotColumnWidth-5-2)/5 {
		t.Errorf("width = %d", got)
	}
}

func TestBuildTableContent_CursorAndMarked(t *testing.T) {
	g := grid.New()
	cursor := grid.Key{Row: 1, Day: 2}
	marked := grid.Key{Row: 3, Day: 0}
	styles := WallpaperStyles{
		Cursor: lipgloss.NewStyle().Bold(true),
		Marked: lipgloss.NewStyle().Underline(true),
	}

	content := BuildTableContent(WallpaperModel{Grid: g, ShowCursor: true, Cursor: cursor, Marked: &marked}, styles)

	if len(content.Rows) != grid.Rows {
		t.Fatalf("rows = %d", len(content.Rows))
	}
	if len(content.Headers) != 6 || content.Headers[1] != "MON" {
		t.Fatalf("headers = %v", content.Headers)
	}
	// column 0 holds the slot labels
	if !content.styleAt(1, 3).GetBold() {
		t.Error("cursor cell should use cursor style")
	}
	if !content.styleAt(3, 1).GetUnderline() {
		t.Error("marked cell should use marked style")
	}
	if content.styleAt(-1, 1).GetBold() || content.styleAt(9, 9).GetBold() {
		t.Error("out of range coordinates should get a plain style")
	}
}

func TestRenderFormBody(t *testing.T) {
	body := RenderFormBody(
		[]string{"TUE", "9-11"},
		[]FormField{{Label: "Subject", Value: "MATH", Focused: true}, {Label: "Room", Value: ""}},
		"Esc to cancel",
		FormStyles{},
	)
	for _, want := range []string{"TUE", "SUBJECT", "MATH", "ROOM", "Esc to cancel"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body: %q", want, body)
		}
	}
}

func TestRenderChoiceBody(t *testing.T) {
	out := RenderChoiceBody([]string{"classic", "dark"}, 1, lipgloss.NewStyle(), lipgloss.NewStyle())
	if !strings.Contains(out, "> dark") || !strings.Contains(out, "  classic") {
		t.Fatalf("unexpected choice body: %q", out)
	}
}
