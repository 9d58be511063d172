// Package grid holds the weekly schedule grid: stable cell keys, the content
// variants a cell can hold, and the operations that mutate the grid.
package grid

import (
	"errors"
	"fmt"
	"slices"
)

// Grid errors.
var (
	ErrConfig        = errors.New("invalid grid configuration")
	ErrOutOfRange    = errors.New("cell out of range")
	ErrInvalidTarget = errors.New("invalid move target")
	ErrNotFound      = errors.New("cell not found")
	ErrEmptySubject  = errors.New("subject cannot be empty")
)

// Header is the wallpaper metadata persisted next to the grid.
type Header struct {
	StartYear string
	EndYear   string
	Term      string
	Theme     string
}

// DefaultHeader returns the header of a fresh wallpaper.
func DefaultHeader() Header {
	return Header{
		StartYear: "2025",
		EndYear:   "2026",
		Term:      "TERM 1",
		Theme:     "classic",
	}
}

// Layout describes which days are currently visible.
type Layout struct {
	activeDays []int
}

// NewLayout builds a layout from an arbitrary day set.
func NewLayout(days []int) (Layout, error) {
	norm, err := NormalizeDays(days)
	if err != nil {
		return Layout{}, err
	}
	return Layout{activeDays: norm}, nil
}

// DefaultLayout returns the Monday to Friday layout.
func DefaultLayout() Layout {
	days, _ := DefaultDays(DefaultColumns)
	return Layout{activeDays: days}
}

// ActiveDays returns a copy of the visible days in ascending order.
func (l Layout) ActiveDays() []int {
	return slices.Clone(l.activeDays)
}

// Columns returns the number of visible days.
func (l Layout) Columns() int {
	return len(l.activeDays)
}

// Contains reports whether day is visible.
func (l Layout) Contains(day int) bool {
	return slices.Contains(l.activeDays, day)
}

// Cell pairs a key with its content.
type Cell struct {
	Key     Key
	Content Content
}

// Grid is the full schedule state: every stable key's content, the visible
// layout and the header. Content of hidden days is kept untouched.
// A Grid is not safe for concurrent use; session.Session serializes access.
type Grid struct {
	cells  map[Key]Content
	layout Layout
	header Header
}

// New returns a default grid: Monday to Friday, every cell starred.
func New() *Grid {
	g := &Grid{
		cells:  make(map[Key]Content, Rows*DaysPerWeek),
		layout: DefaultLayout(),
		header: DefaultHeader(),
	}
	g.DeriveVacancy()
	return g
}

// Restore builds a grid from decoded parts. Keys outside the key space are
// dropped. No vacancy derivation is applied.
func Restore(cells map[Key]Content, layout Layout, header Header) *Grid {
	if layout.Columns() == 0 {
		layout = DefaultLayout()
	}
	g := &Grid{
		cells:  make(map[Key]Content, Rows*DaysPerWeek),
		layout: layout,
		header: header,
	}
	for k, c := range cells {
		if k.Valid() {
			g.cells[k] = c
		}
	}
	return g
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		cells:  make(map[Key]Content, len(g.cells)),
		layout: Layout{activeDays: slices.Clone(g.layout.activeDays)},
		header: g.header,
	}
	for k, v := range g.cells {
		c.cells[k] = v
	}
	return c
}

// Layout returns the current layout.
func (g *Grid) Layout() Layout {
	return Layout{activeDays: slices.Clone(g.layout.activeDays)}
}

// Header returns the header metadata.
func (g *Grid) Header() Header {
	return g.header
}

// SetHeader replaces the header metadata.
func (g *Grid) SetHeader(h Header) {
	g.header = h
}

// Cell returns the content at key. Keys never written read as Empty.
func (g *Grid) Cell(k Key) Content {
	return g.cells[k]
}

// Cells returns every non-empty cell in row-major key order, hidden days
// included.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, 0, len(g.cells))
	for _, k := range AllKeys() {
		if c, ok := g.cells[k]; ok && !c.IsEmpty() {
			out = append(out, Cell{Key: k, Content: c})
		}
	}
	return out
}

// Visible returns the visible grid as rows x columns.
func (g *Grid) Visible() [][]Cell {
	rows := make([][]Cell, Rows)
	for row := range rows {
		rows[row] = make([]Cell, 0, g.layout.Columns())
		for _, day := range g.layout.activeDays {
			k := Key{Row: row, Day: day}
			rows[row] = append(rows[row], Cell{Key: k, Content: g.cells[k]})
		}
	}
	return rows
}

// CellAt returns the cell shown at a visible position.
func (g *Grid) CellAt(pos int) (Cell, error) {
	k, err := KeyAt(pos, g.layout.activeDays)
	if err != nil {
		return Cell{}, err
	}
	return Cell{Key: k, Content: g.cells[k]}, nil
}

// PositionOf returns the visible position of key.
func (g *Grid) PositionOf(k Key) (int, error) {
	return VisiblePosition(k.Row, k.Day, g.layout.activeDays)
}

// isVisible reports whether key is inside the key space and on an active day.
func (g *Grid) isVisible(k Key) bool {
	return k.Valid() && g.layout.Contains(k.Day)
}

// Place puts a subject card at key.
func (g *Grid) Place(k Key, subject, time, room string) error {
	if !g.isVisible(k) {
		return fmt.Errorf("%w: %s", ErrOutOfRange, k)
	}
	if subject == "" {
		return ErrEmptySubject
	}
	g.cells[k] = Occupied(subject, time, room)
	g.DeriveVacancy()
	return nil
}

// Move swaps the contents of src and dst.
func (g *Grid) Move(src, dst Key) error {
	if err := g.checkPair(src, dst); err != nil {
		return err
	}
	g.cells[src], g.cells[dst] = g.cells[dst], g.cells[src]
	g.DeriveVacancy()
	return nil
}

// Copy sets dst to the content of src, leaving src unchanged.
func (g *Grid) Copy(src, dst Key) error {
	if err := g.checkPair(src, dst); err != nil {
		return err
	}
	g.cells[dst] = g.cells[src]
	g.DeriveVacancy()
	return nil
}

func (g *Grid) checkPair(src, dst Key) error {
	if src == dst {
		return fmt.Errorf("%w: source and target are both %s", ErrInvalidTarget, src)
	}
	if !g.isVisible(src) {
		return fmt.Errorf("%w: source %s is not visible", ErrInvalidTarget, src)
	}
	if !g.isVisible(dst) {
		return fmt.Errorf("%w: target %s is not visible", ErrInvalidTarget, dst)
	}
	return nil
}

// Delete clears key. Vacancy derivation turns it into a starred cell.
func (g *Grid) Delete(k Key) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %s", ErrNotFound, k)
	}
	g.cells[k] = Empty()
	g.DeriveVacancy()
	return nil
}

// ToggleStar flips Empty and Starred. Occupied cells are left as they are.
// The toggle is not followed by vacancy derivation, which would undo it.
func (g *Grid) ToggleStar(k Key) error {
	if !g.isVisible(k) {
		return fmt.Errorf("%w: %s", ErrOutOfRange, k)
	}
	switch c := g.cells[k]; c.Kind {
	case KindOccupied:
	case KindStarred:
		g.cells[k] = Empty()
	default:
		g.cells[k] = Starred()
	}
	return nil
}

// Resize changes the visible days. With no explicit days the first columns
// days of the week are shown. Content of hidden days is kept.
func (g *Grid) Resize(columns int, days []int) error {
	if columns < 1 || columns > DaysPerWeek {
		return fmt.Errorf("%w: column count %d", ErrConfig, columns)
	}
	var (
		active []int
		err    error
	)
	if days == nil {
		active, err = DefaultDays(columns)
	} else {
		active, err = NormalizeDays(days)
	}
	if err != nil {
		return err
	}
	if len(active) != columns {
		return fmt.Errorf("%w: %d columns requested for %d days", ErrConfig, columns, len(active))
	}
	g.layout = Layout{activeDays: active}
	g.DeriveVacancy()
	return nil
}

// ClearAll empties every cell and resets the layout to Monday to Friday.
func (g *Grid) ClearAll() {
	clear(g.cells)
	g.layout = DefaultLayout()
	g.DeriveVacancy()
}

// DeriveVacancy stars every non-occupied cell in the key space.
func (g *Grid) DeriveVacancy() {
	for _, k := range AllKeys() {
		g.cells[k] = DeriveVacant(g.cells[k])
	}
}

// Equal reports whether two grids hold the same cells, layout and header.
// Empty and missing cells compare equal.
func (g *Grid) Equal(o *Grid) bool {
	if g.header != o.header || !slices.Equal(g.layout.activeDays, o.layout.activeDays) {
		return false
	}
	for _, k := range AllKeys() {
		if g.cells[k] != o.cells[k] {
			return false
		}
	}
	return true
}
