package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jy-crnz/SchedulerDesigner/internal/config"
	"github.com/jy-crnz/SchedulerDesigner/internal/db"
	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/session"
	"github.com/jy-crnz/SchedulerDesigner/internal/snapshot"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "data", "schedwall.db")
	return cfg
}

func run(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	a := NewApp(cfg)
	var out bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetErr(&out)
	a.root.SetArgs(args)
	if err := a.Execute(); err != nil {
		t.Fatalf("schedwall %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func runErr(t *testing.T, cfg *config.Config, args ...string) error {
	t.Helper()
	a := NewApp(cfg)
	a.root.SetOut(&bytes.Buffer{})
	a.root.SetErr(&bytes.Buffer{})
	a.root.SetArgs(args)
	return a.Execute()
}

func TestCLI_EditAndShow(t *testing.T) {
	cfg := testConfig(t)

	out := run(t, cfg, "place", "tue@2", "calculus", "--time", "09:00AM-10:30AM", "--room", "rm 204")
	if !strings.Contains(out, "Placed CALCULUS on Tuesday 9-11") {
		t.Fatalf("place output = %q", out)
	}

	run(t, cfg, "copy", "1:1", "1:3")
	run(t, cfg, "move", "1:3", "thu@5")

	out = run(t, cfg, "show", "--text")
	if strings.Count(out, "CALCULUS") != 2 || !strings.Contains(out, "RM 204") {
		t.Fatalf("show --text = %q", out)
	}

	out = run(t, cfg, "show", "--no-color", "--width", "100")
	for _, want := range []string{"CLASS SCHEDULE", "TUE", "CALCULUS", "3 PM+"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show missing %q:\n%s", want, out)
		}
	}

	run(t, cfg, "delete", "1:1")
	out = run(t, cfg, "show", "--text")
	if strings.Count(out, "CALCULUS") != 1 {
		t.Fatalf("delete did not clear the card: %q", out)
	}
}

func TestCLI_LayoutHeaderTheme(t *testing.T) {
	cfg := testConfig(t)

	out := run(t, cfg, "resize", "--days", "mon,sat")
	if !strings.Contains(out, "Showing Monday, Saturday") {
		t.Fatalf("resize output = %q", out)
	}

	out = run(t, cfg, "header", "--term", "term 2")
	if !strings.Contains(out, "S.Y. 2025-2026 · TERM 2") {
		t.Fatalf("header output = %q", out)
	}

	run(t, cfg, "theme", "theme-neon")
	out = run(t, cfg, "theme")
	if !strings.Contains(out, "* neon") {
		t.Fatalf("theme list = %q", out)
	}

	if err := runErr(t, cfg, "theme", "sepia"); err == nil {
		t.Fatal("expected unknown theme error")
	}
	if err := runErr(t, cfg, "resize"); err == nil {
		t.Fatal("expected error without --days or --columns")
	}

	run(t, cfg, "clear", "--yes")
	out = run(t, cfg, "header")
	if !strings.Contains(out, "TERM 2") {
		t.Fatal("clear should keep the header")
	}
}

func TestCLI_InvalidMoveLeavesState(t *testing.T) {
	cfg := testConfig(t)
	run(t, cfg, "place", "0:0", "art")

	if err := runErr(t, cfg, "move", "0:0", "0:0"); err == nil {
		t.Fatal("expected error moving onto itself")
	}
	if err := runErr(t, cfg, "place", "sat@1", "art"); err == nil {
		t.Fatal("expected error placing on a hidden day")
	}
	out := run(t, cfg, "show", "--text")
	if !strings.Contains(out, "ART") {
		t.Fatalf("card lost after failed operations: %q", out)
	}
}

func TestCLI_ExportImportProfiles(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	run(t, cfg, "place", "wed@1", "physics")
	out := run(t, cfg, "export", "-o", dir)
	matches, _ := filepath.Glob(filepath.Join(dir, "MySchedule-*.json"))
	if len(matches) != 1 || !strings.Contains(out, matches[0]) {
		t.Fatalf("export wrote %v, output %q", matches, out)
	}

	run(t, cfg, "import", matches[0], "-p", "copy")
	out = run(t, cfg, "show", "--text", "--profile", "copy")
	if !strings.Contains(out, "PHYSICS") {
		t.Fatalf("imported profile = %q", out)
	}

	out = run(t, cfg, "profiles")
	if !strings.Contains(out, "* default") || !strings.Contains(out, "copy") {
		t.Fatalf("profiles = %q", out)
	}

	run(t, cfg, "profiles", "copy", "copy", "backup")
	if err := runErr(t, cfg, "profiles", "copy", "missing", "x"); err == nil {
		t.Fatal("expected error copying a missing profile")
	}
	if err := runErr(t, cfg, "import", cfg.Storage.DBPath); err == nil {
		t.Fatal("expected error importing the current profile onto itself")
	}
}

func TestImportSnapshot_FromDatabase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")

	source, err := db.New(sourcePath)
	if err != nil {
		t.Fatalf("creating source db: %v", err)
	}
	g := grid.New()
	if err := g.Place(grid.Key{Row: 2, Day: 4}, "CHEM", "11AM", "LAB"); err != nil {
		t.Fatal(err)
	}
	data, err := snapshot.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if err := source.SaveSnapshot(ctx, "work", data); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	_ = source.Close()

	dest, err := db.New(filepath.Join(dir, "dest.db"))
	if err != nil {
		t.Fatalf("creating dest db: %v", err)
	}
	defer func() { _ = dest.Close() }()
	sess, err := session.Open(ctx, dest, "default")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := importSnapshot(ctx, sess, sourcePath, "missing"); err == nil {
		t.Fatal("expected error for a missing profile")
	}
	if err := importSnapshot(ctx, sess, sourcePath, "work"); err != nil {
		t.Fatalf("importSnapshot: %v", err)
	}
	if !sess.Grid().Cell(grid.Key{Row: 2, Day: 4}).IsOccupied() {
		t.Fatal("imported card missing")
	}

	stored, err := dest.LoadSnapshot(ctx, "default")
	if err != nil || stored == nil {
		t.Fatalf("import was not persisted: %v", err)
	}
}

func TestImportSnapshot_CorruptJSON(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("[1,2]"), 0o644); err != nil {
		t.Fatal(err)
	}
	dest, err := db.New(filepath.Join(t.TempDir(), "dest.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = dest.Close() }()
	sess, err := session.Open(ctx, dest, "default")
	if err != nil {
		t.Fatal(err)
	}

	if err := importSnapshot(ctx, sess, path, ""); err == nil {
		t.Fatal("expected error for a corrupt export")
	}
}
