// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
	"github.com/jy-crnz/SchedulerDesigner/internal/scan"
	"github.com/jy-crnz/SchedulerDesigner/internal/session"
)

// GridMsg carries the grid after a committed change.
type GridMsg struct {
	Grid   *grid.Grid
	Status string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ScanStartedMsg is sent when a scan is queued.
type ScanStartedMsg struct {
	Path string
}

// ScanDoneMsg is sent when scanned classes were merged into the grid.
type ScanDoneMsg struct {
	Grid   *grid.Grid
	Result reconcile.Result
}

// Scanner extracts classes from an image.
type Scanner interface {
	Scan(ctx context.Context, data []byte) (scan.Response, error)
}

// Mutate runs fn against the session and reports the new grid.
func Mutate(sess *session.Session, status string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return ErrMsg{Err: err}
		}
		return GridMsg{Grid: sess.Grid(), Status: status}
	}
}

// Scan reads the image at path, extracts its classes and reconciles them
// into the session.
func Scan(scanner Scanner, sess *session.Session, path string, opts reconcile.Options) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("reading image: %w", err)}
		}

		ctx := context.Background()
		resp, err := scanner.Scan(ctx, data)
		if err != nil {
			return ErrMsg{Err: err}
		}
		res, err := sess.Reconcile(ctx, resp.Entries(), opts)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ScanDoneMsg{Grid: sess.Grid(), Result: res}
	}
}

// Export hands the grid to e and reports status on success.
func Export(sess *session.Session, e session.Exporter, status func() string) tea.Cmd {
	return func() tea.Msg {
		if err := sess.Export(context.Background(), e); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsgCmd{Msg: status()}
	}
}

// ClearStatusAfter schedules a ClearStatusMsg.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
