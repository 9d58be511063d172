// Package export writes finished schedules out of the session.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
	"github.com/jy-crnz/SchedulerDesigner/internal/snapshot"
)

// FilePrefix starts every exported file name.
const FilePrefix = "MySchedule-"

// FileName returns the export name for t, e.g. MySchedule-1718000000000.json.
func FileName(t time.Time, ext string) string {
	return fmt.Sprintf("%s%d%s", FilePrefix, t.UnixMilli(), ext)
}

// JSONFile writes the snapshot record to a file in Dir.
type JSONFile struct {
	Dir string
	Now func() time.Time

	// Path is set after a successful export.
	Path string
}

// Export implements session.Exporter.
func (e *JSONFile) Export(ctx context.Context, g *grid.Grid) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := snapshot.Marshal(g)
	if err != nil {
		return err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now(), ".json"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	e.Path = path
	return nil
}

// Clipboard copies the visible schedule to the system clipboard, either as
// plain text or as the snapshot record.
type Clipboard struct {
	JSON bool
	// write replaces the clipboard in tests
	write func(string) error
}

// Export implements session.Exporter.
func (c Clipboard) Export(ctx context.Context, g *grid.Grid) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := PlainText(g)
	if c.JSON {
		data, err := snapshot.Marshal(g)
		if err != nil {
			return err
		}
		text = string(data)
	}

	write := clipboard.WriteAll
	if c.write != nil {
		write = c.write
	}
	if err := write(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// PlainText lists the visible classes day by day.
func PlainText(g *grid.Grid) string {
	var b strings.Builder
	h := g.Header()
	fmt.Fprintf(&b, "CLASS SCHEDULE S.Y. %s-%s %s\n", h.StartYear, h.EndYear, h.Term)

	visible := g.Visible()
	for col, day := range g.Layout().ActiveDays() {
		var lines []string
		for row := range visible {
			c := visible[row][col].Content
			f, ok := c.Fields()
			if !ok {
				continue
			}
			line := fmt.Sprintf("  [%s] %s", reconcile.RowLabel(row), f.Subject)
			if f.Time != "" {
				line += " " + f.Time
			}
			if f.Room != "" {
				line += " @ " + f.Room
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString("\n" + strings.ToUpper(grid.DayName(day)) + "\n")
		b.WriteString(strings.Join(lines, "\n") + "\n")
	}
	return b.String()
}
