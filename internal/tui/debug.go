package tui

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
)

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "schedwall-debug.log"

var (
	debugLog  = slog.New(slog.DiscardHandler)
	debugFile *os.File
)

// InitDebugLogger initializes the debug logger if debug mode is enabled.
// Entries are JSON lines so they can be filtered with jq.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = slog.New(slog.DiscardHandler)
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	debugFile = f
	debugLog = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	debugLog.Debug("debug start", "log_file", DebugLogPath)
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugFile == nil {
		return
	}
	debugLog.Debug("debug end")
	_ = debugFile.Close()
	debugFile = nil
	debugLog = slog.New(slog.DiscardHandler)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.Debug("key press", "key", msg.String())
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	debugLog.Debug("mode change", "from", from.String(), "to", to.String(), "reason", reason)
}

// LogCursorMove logs cursor movement.
func LogCursorMove(k grid.Key, reason string) {
	debugLog.Debug("cursor move", "cell", k.String(), "reason", reason)
}

// LogError logs an error.
func LogError(context string, err error) {
	debugLog.Debug("error", "context", context, "error", err)
}

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModePick:
		return "Pick"
	case ModePrompt:
		return "Prompt"
	case ModeModal:
		return "Modal"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}
