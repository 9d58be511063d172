package tui

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jy-crnz/SchedulerDesigner/internal/export"
	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/commands"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/input"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/theme"
)

var promptCommands = []input.PromptCommand{
	{Name: "/scan", Args: "<image> [--replace]", Description: "Read classes from a screenshot"},
	{Name: "/export", Description: "Save the schedule as JSON"},
	{Name: "/copy", Description: "Copy the schedule as text"},
	{Name: "/days", Args: "<5|7|mon,tue,...>", Description: "Choose visible days"},
	{Name: "/clear", Description: "Remove every class"},
	{Name: "/theme", Args: "[name]", Description: "Switch the wallpaper theme"},
	{Name: "/header", Description: "Edit school year and term"},
	{Name: "/help", Description: "Show key bindings"},
}

// runPrompt executes a submitted prompt line.
func (m Model) runPrompt(line string) (tea.Model, tea.Cmd) {
	name, args := input.ParsePrompt(line)
	switch name {
	case "":
		return m, nil

	case "/scan":
		cmd := m.promptScan(args)
		return m, cmd

	case "/export":
		e := &export.JSONFile{Dir: m.exportDir}
		return m, commands.Export(m.sess, e, func() string { return "Saved " + e.Path })

	case "/copy":
		return m, commands.Export(m.sess, export.Clipboard{}, func() string { return "Schedule copied" })

	case "/days":
		cmd := m.promptDays(args)
		return m, cmd

	case "/clear":
		m.openModal(ModalConfirmClear)
		return m, nil

	case "/theme":
		if len(args) == 0 {
			m.themeChoice = max(0, slices.Index(theme.Available(), theme.Normalize(m.grid.Header().Theme)))
			m.openModal(ModalTheme)
			return m, nil
		}
		n := theme.Normalize(args[0])
		if !theme.IsAvailable(n) {
			cmd := m.setStatus("Unknown theme " + args[0])
			return m, cmd
		}
		return m, commands.Mutate(m.sess, "Theme "+n, func(c context.Context) error {
			return m.sess.UpdateHeader(c, func(h *grid.Header) { h.Theme = n })
		})

	case "/header":
		m.openHeaderForm()
		return m, nil

	case "/help":
		m.openModal(ModalHelp)
		return m, nil
	}
	cmd := m.setStatus("Unknown command " + name)
	return m, cmd
}

func (m *Model) promptScan(args []string) tea.Cmd {
	if m.scanner == nil {
		return m.setStatus("Scanning is not configured")
	}
	var (
		path string
		opts reconcile.Options
	)
	for _, a := range args {
		if a == "--replace" {
			opts.Replace = true
			continue
		}
		path = a
	}
	if path == "" {
		return m.setStatus("Usage: /scan <image> [--replace]")
	}
	path = expandHome(path)

	started := func() tea.Msg { return commands.ScanStartedMsg{Path: path} }
	return tea.Sequence(started, commands.Scan(m.scanner, m.sess, path, opts))
}

func (m *Model) promptDays(args []string) tea.Cmd {
	if len(args) == 0 {
		return m.setStatus("Usage: /days <5|7|mon,tue,...>")
	}
	columns, days, err := parseDays(strings.Join(args, ","))
	if err != nil {
		return m.setStatus("Error: " + err.Error())
	}
	return commands.Mutate(m.sess, "Layout updated", func(c context.Context) error {
		return m.sess.Resize(c, columns, days)
	})
}

// parseDays accepts a column count or a list of day names.
func parseDays(s string) (int, []int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n, nil, nil
	}
	var days []int
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := reconcile.ParseDay(part)
		if err != nil {
			return 0, nil, err
		}
		days = append(days, d)
	}
	days, err := grid.NormalizeDays(days)
	if err != nil {
		return 0, nil, err
	}
	return len(days), days, nil
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
