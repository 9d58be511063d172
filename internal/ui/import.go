package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jy-crnz/SchedulerDesigner/internal/db"
	"github.com/jy-crnz/SchedulerDesigner/internal/export"
	"github.com/jy-crnz/SchedulerDesigner/internal/session"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		dir      string
		toClip   bool
		clipJSON bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the schedule as JSON or copy it to the clipboard",
		Long: `Write the schedule record to MySchedule-<timestamp>.json, or copy it to
the clipboard as a plain list with --clipboard.

The JSON file can be loaded again with 'schedwall import'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if toClip {
				if err := sess.Export(cmd.Context(), export.Clipboard{JSON: clipJSON}); err != nil {
					return err
				}
				fmt.Fprintln(out, "Copied schedule to clipboard")
				return nil
			}

			e := &export.JSONFile{Dir: expandHome(dir)}
			if err := sess.Export(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %s\n", e.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "o", ".", "Directory to write the file to")
	cmd.Flags().BoolVar(&toClip, "clipboard", false, "Copy to the clipboard instead of writing a file")
	cmd.Flags().BoolVar(&clipJSON, "json", false, "Copy the JSON record instead of plain text (with --clipboard)")
	return cmd
}

func (a *App) importCmd() *cobra.Command {
	var fromProfile string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the schedule with an exported file or another database",
		Long: `Replace the current profile's schedule with one read from a JSON export
or from a profile of another schedwall database.

Example:
  schedwall import MySchedule-1760000000000.json
  schedwall import /path/to/other.db --from-profile default`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source path is a directory: %s", sourcePath)
			}

			if fromProfile == "" {
				fromProfile = a.profile
			}
			if !isJSON(sourcePath) {
				destPath, err := resolvePath(a.config.Storage.DBPath)
				if err != nil {
					return err
				}
				if sourcePath == destPath && fromProfile == a.profile {
					return errors.New("source matches the current profile")
				}
			}

			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := importSnapshot(cmd.Context(), sess, sourcePath, fromProfile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported schedule from %s\n", sourcePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromProfile, "from-profile", "", "Profile to read from a database source (default: current profile)")
	return cmd
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// importSnapshot loads a record from a JSON export or a database profile and
// replaces the session grid with it.
func importSnapshot(ctx context.Context, dest *session.Session, sourcePath, fromProfile string) error {
	var data []byte
	if isJSON(sourcePath) {
		raw, err := os.ReadFile(sourcePath)
		if err != nil {
			return fmt.Errorf("reading export: %w", err)
		}
		data = raw
	} else {
		source, err := db.New(sourcePath)
		if err != nil {
			return fmt.Errorf("opening source database: %w", err)
		}
		defer func() { _ = source.Close() }()

		data, err = source.LoadSnapshot(ctx, fromProfile)
		if err != nil {
			return err
		}
		if data == nil {
			return fmt.Errorf("profile %q not found in %s", fromProfile, sourcePath)
		}
	}
	return dest.Import(ctx, data)
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	absPath, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
