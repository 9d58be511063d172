package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableContent is the schedule laid out as text rows, with one style per
// cell. Styles[0] belongs to the header row and Styles[i+1] to Rows[i].
type TableContent struct {
	Headers []string
	Rows    [][]string
	Styles  [][]lipgloss.Style
}

// styleAt maps a lipgloss/table coordinate to its cell style.
func (c TableContent) styleAt(row, col int) lipgloss.Style {
	i := row + 1 // table.HeaderRow is -1
	if i < 0 || i >= len(c.Styles) || col < 0 || col >= len(c.Styles[i]) {
		return lipgloss.NewStyle()
	}
	return c.Styles[i][col]
}

// Render draws the grid with rounded borders between every row and column.
// The table sizes itself to its content.
func (c TableContent) Render(border lipgloss.Style) string {
	return table.New().
		Headers(c.Headers...).
		Rows(c.Rows...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(true).
		StyleFunc(c.styleAt).
		Render()
}
