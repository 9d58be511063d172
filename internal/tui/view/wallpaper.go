package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
)

// StarGlyph marks a free slot.
const StarGlyph = "★"

const (
	slotColumnWidth = 9
	minCellWidth    = 6
	maxCellWidth    = 22
)

// WallpaperModel is the data shown on the wallpaper.
type WallpaperModel struct {
	Grid  *grid.Grid
	Width int // total width available, 0 for natural size

	ShowCursor bool
	Cursor     grid.Key
	// Marked is the source of a pending move or copy.
	Marked *grid.Key
}

// WallpaperStyles groups the styles used to paint the wallpaper.
type WallpaperStyles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	DayHeader lipgloss.Style
	SlotLabel lipgloss.Style
	Card      lipgloss.Style
	CardAlt   lipgloss.Style
	Star      lipgloss.Style
	Vacant    lipgloss.Style
	Cursor    lipgloss.Style
	Marked    lipgloss.Style
	Border    lipgloss.Style
}

// Title returns the wallpaper headline for h.
func Title(h grid.Header) (string, string) {
	return "CLASS SCHEDULE", fmt.Sprintf("S.Y. %s-%s · %s", h.StartYear, h.EndYear, h.Term)
}

// CellWidth returns the width of one day column when the wallpaper has
// columns days and width total columns of space.
func CellWidth(width, columns int) int {
	if width <= 0 || columns <= 0 {
		return maxCellWidth
	}
	// one border per column plus the outer edges
	w := (width - slotColumnWidth - columns - 2) / columns
	return max(minCellWidth, min(maxCellWidth, w))
}

// CellLines returns the text lines of a cell truncated to width.
func CellLines(c grid.Content, width int) []string {
	switch c.Kind {
	case grid.KindOccupied:
		lines := []string{ansi.Truncate(c.Class.Subject, width, "…")}
		if c.Class.Time != "" {
			lines = append(lines, ansi.Truncate(c.Class.Time, width, "…"))
		}
		if c.Class.Room != "" {
			lines = append(lines, ansi.Truncate(c.Class.Room, width, "…"))
		}
		return lines
	case grid.KindStarred:
		return []string{StarGlyph}
	default:
		return []string{""}
	}
}

// BuildTableContent lays the visible cells out as table rows.
func BuildTableContent(m WallpaperModel, s WallpaperStyles) TableContent {
	layout := m.Grid.Layout()
	cellW := CellWidth(m.Width, layout.Columns())
	slot := s.SlotLabel.Width(slotColumnWidth)

	header := []lipgloss.Style{slot}
	content := TableContent{Headers: []string{""}}
	for _, d := range layout.ActiveDays() {
		content.Headers = append(content.Headers, strings.ToUpper(grid.DayName(d)[:3]))
		header = append(header, s.DayHeader.Width(cellW).Align(lipgloss.Center))
	}
	content.Styles = append(content.Styles, header)

	for r, row := range m.Grid.Visible() {
		texts := []string{reconcile.RowLabel(r)}
		styles := []lipgloss.Style{slot}
		for _, cell := range row {
			texts = append(texts, strings.Join(CellLines(cell.Content, cellW), "\n"))
			styles = append(styles, cellStyle(m, s, cell, r).Width(cellW).Align(lipgloss.Center))
		}
		content.Rows = append(content.Rows, texts)
		content.Styles = append(content.Styles, styles)
	}
	return content
}

func cellStyle(m WallpaperModel, s WallpaperStyles, cell grid.Cell, row int) lipgloss.Style {
	switch {
	case m.ShowCursor && cell.Key == m.Cursor:
		return s.Cursor
	case m.Marked != nil && cell.Key == *m.Marked:
		return s.Marked
	}
	switch cell.Content.Kind {
	case grid.KindOccupied:
		if row%2 == 1 {
			return s.CardAlt
		}
		return s.Card
	case grid.KindStarred:
		return s.Star
	default:
		return s.Vacant
	}
}

// RenderWallpaper renders the title block and the schedule table.
func RenderWallpaper(m WallpaperModel, s WallpaperStyles) string {
	tbl := BuildTableContent(m, s).Render(s.Border)

	title, subtitle := Title(m.Grid.Header())
	w := lipgloss.Width(tbl)
	block := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Width(w).Align(lipgloss.Center).Render(title),
		s.Subtitle.Width(w).Align(lipgloss.Center).Render(subtitle),
		tbl,
	)
	return block
}
