package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
	"github.com/jy-crnz/SchedulerDesigner/internal/scan"
)

func (a *App) scanCmd() *cobra.Command {
	var (
		serverURL string
		apply     bool
		replace   bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Read classes from a schedule screenshot",
		Long: `Send a screenshot of an enrollment page to the configured vision model
and list the classes it found. With --apply the classes are placed on the
grid of the current profile.

Example:
  schedwall scan ~/Pictures/enrollment.png --apply
  schedwall scan shot.jpg --server http://localhost:3000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := expandHome(args[0])
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}

			ctx := cmd.Context()
			resp, err := a.runScan(ctx, serverURL, path, data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			printClasses(out, resp)

			if !apply {
				return nil
			}
			sess, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			res, err := sess.Reconcile(ctx, resp.Entries(), reconcile.Options{Replace: replace})
			if err != nil {
				return err
			}
			printResult(out, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Scan through a running schedwall server instead of calling the model directly")
	cmd.Flags().BoolVar(&apply, "apply", false, "Place the classes on the grid")
	cmd.Flags().BoolVar(&replace, "replace", false, "Clear the grid before placing (with --apply)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw scan response")
	return cmd
}

func (a *App) runScan(ctx context.Context, serverURL, path string, data []byte) (scan.Response, error) {
	if serverURL != "" {
		timeout, err := a.config.ScanTimeout()
		if err != nil {
			return scan.Response{}, err
		}
		return scan.NewRemoteClient(serverURL, timeout).Scan(ctx, filepath.Base(path), data)
	}
	s, err := a.localScanner()
	if err != nil {
		return scan.Response{}, fmt.Errorf("setting up scanner: %w", err)
	}
	return s.Scan(ctx, data)
}

func printClasses(w io.Writer, resp scan.Response) {
	if len(resp.Schedule) == 0 {
		fmt.Fprintln(w, "No classes found.")
		return
	}
	fmt.Fprintln(w, formatHeader(fmt.Sprintf("Found %d classes (%d day columns)", len(resp.Schedule), resp.NumCols)))
	for _, c := range resp.Schedule {
		cell := formatMuted("  unplaced")
		if c.CellIndex >= 0 {
			cell = formatMuted(fmt.Sprintf("  cell %d", c.CellIndex))
		}
		fmt.Fprintf(w, "  %-10s %-18s %s %s%s\n", c.Day, c.Time, formatSubject(c.Subject), c.Room, cell)
	}
}

func printResult(w io.Writer, res reconcile.Result) {
	fmt.Fprintln(w, formatOK(fmt.Sprintf("Placed %d classes", len(res.Placed))))
	for _, sk := range res.Skipped {
		fmt.Fprintln(w, formatWarn("  skipped: "+sk.Error()))
	}
	for _, c := range res.Collisions {
		fmt.Fprintln(w, formatWarn(fmt.Sprintf("  %s %s: entry %d replaced entry %d",
			grid.DayName(c.Key.Day), reconcile.RowLabel(c.Key.Row), c.By, c.Replaced)))
	}
}
