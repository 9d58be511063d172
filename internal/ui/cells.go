package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
)

const cellHelp = `Cells are addressed either as "row:day" with zero-based indexes
(e.g. 0:1 for the first slot on Tuesday) or as "day@slot" with a
one-based slot (e.g. tue@1).`

// parseCellArg resolves a cell argument to a key.
func parseCellArg(s string) (grid.Key, error) {
	s = strings.TrimSpace(s)
	if day, slot, ok := strings.Cut(s, "@"); ok {
		d, err := reconcile.ParseDay(day)
		if err != nil {
			return grid.Key{}, err
		}
		n, err := strconv.Atoi(slot)
		if err != nil || n < 1 || n > grid.Rows {
			return grid.Key{}, fmt.Errorf("%w: slot %q must be 1-%d", grid.ErrNotFound, slot, grid.Rows)
		}
		return grid.Key{Row: n - 1, Day: d}, nil
	}
	return grid.ParseKey(s)
}

// parseDayList parses "mon,wed,fri" into sorted day indexes.
func parseDayList(s string) ([]int, error) {
	var days []int
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := reconcile.ParseDay(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return grid.NormalizeDays(days)
}

func describeCell(k grid.Key) string {
	label := reconcile.RowLabel(k.Row)
	return fmt.Sprintf("%s %s", grid.DayName(k.Day), label)
}

func (a *App) placeCmd() *cobra.Command {
	var when, room string

	cmd := &cobra.Command{
		Use:   "place <cell> <subject>",
		Short: "Put a class card on a cell",
		Long: `Put a class card on a cell, replacing whatever was there.

` + cellHelp + `

Example:
  schedwall place tue@2 "Calculus" --time "09:00AM-10:30AM" --room "RM 204"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseCellArg(args[0])
			if err != nil {
				return err
			}
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			subject := strings.ToUpper(strings.TrimSpace(args[1]))
			if err := sess.Place(cmd.Context(), k, subject, strings.TrimSpace(when), strings.ToUpper(strings.TrimSpace(room))); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Placed %s on %s\n", formatSubject(subject), describeCell(k))
			return nil
		},
	}

	cmd.Flags().StringVar(&when, "time", "", "Time range shown on the card")
	cmd.Flags().StringVar(&room, "room", "", "Room shown on the card")
	return cmd
}

func (a *App) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a class card, swapping with the target",
		Long:  "Move a class card. A card already on the target trades places with it.\n\n" + cellHelp,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pairOp(cmd, args, "Moved")
		},
	}
}

func (a *App) copyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <from> <to>",
		Short: "Copy a class card onto another cell",
		Long:  "Copy a class card onto another cell.\n\n" + cellHelp,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pairOp(cmd, args, "Copied")
		},
	}
}

func (a *App) pairOp(cmd *cobra.Command, args []string, verb string) error {
	src, err := parseCellArg(args[0])
	if err != nil {
		return err
	}
	dst, err := parseCellArg(args[1])
	if err != nil {
		return err
	}
	sess, err := a.openSession(cmd.Context())
	if err != nil {
		return err
	}
	if verb == "Copied" {
		err = sess.Copy(cmd.Context(), src, dst)
	} else {
		err = sess.Move(cmd.Context(), src, dst)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s to %s\n", verb, describeCell(src), describeCell(dst))
	return nil
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <cell>",
		Aliases: []string{"rm"},
		Short:   "Remove the class card from a cell",
		Long:    "Remove the class card from a cell. The slot becomes free again.\n\n" + cellHelp,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseCellArg(args[0])
			if err != nil {
				return err
			}
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.Delete(cmd.Context(), k); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", describeCell(k))
			return nil
		},
	}
}

func (a *App) starCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "star <cell>",
		Short: "Toggle the free-slot star on an empty cell",
		Long:  "Toggle the free-slot star. Cells holding a class are left alone.\n\n" + cellHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseCellArg(args[0])
			if err != nil {
				return err
			}
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.ToggleStar(cmd.Context(), k); err != nil {
				return err
			}
			state := "unstarred"
			if sess.Grid().Cell(k).IsStarred() {
				state = "starred"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", describeCell(k), state)
			return nil
		},
	}
}

func (a *App) resizeCmd() *cobra.Command {
	var (
		columns int
		days    string
	)

	cmd := &cobra.Command{
		Use:   "resize",
		Short: "Choose which days are shown",
		Long: `Choose which days are shown. Classes on hidden days are kept.

Example:
  schedwall resize --columns 7
  schedwall resize --days mon,wed,fri`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var active []int
			switch {
			case days != "":
				d, err := parseDayList(days)
				if err != nil {
					return err
				}
				active = d
				columns = len(d)
			case columns == 0:
				return errors.New("either --days or --columns is required")
			}

			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.Resize(cmd.Context(), columns, active); err != nil {
				return err
			}
			var names []string
			for _, d := range sess.Grid().Layout().ActiveDays() {
				names = append(names, grid.DayName(d))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Showing %s\n", strings.Join(names, ", "))
			return nil
		},
	}

	cmd.Flags().IntVar(&columns, "columns", 0, "Show the first N days of the week (1-7)")
	cmd.Flags().StringVar(&days, "days", "", "Comma-separated days to show, e.g. mon,wed,fri")
	cmd.MarkFlagsMutuallyExclusive("columns", "days")
	return cmd
}

func (a *App) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every class and reset to Monday to Friday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !promptYesNo("Remove every class from profile "+a.profile+"?") {
				return nil
			}
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schedule cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *App) headerCmd() *cobra.Command {
	var start, end, term string

	cmd := &cobra.Command{
		Use:   "header",
		Short: "Show or edit the school year and term",
		Long: `Show or edit the school year and term printed above the grid.

Example:
  schedwall header --start 2026 --end 2027 --term "term 2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("start") || flags.Changed("end") || flags.Changed("term") {
				err := sess.UpdateHeader(cmd.Context(), func(h *grid.Header) {
					if flags.Changed("start") {
						h.StartYear = strings.TrimSpace(start)
					}
					if flags.Changed("end") {
						h.EndYear = strings.TrimSpace(end)
					}
					if flags.Changed("term") {
						h.Term = strings.ToUpper(strings.TrimSpace(term))
					}
				})
				if err != nil {
					return err
				}
			}
			h := sess.Grid().Header()
			fmt.Fprintf(cmd.OutOrStdout(), "S.Y. %s-%s · %s\n", h.StartYear, h.EndYear, h.Term)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First year of the school year")
	cmd.Flags().StringVar(&end, "end", "", "Second year of the school year")
	cmd.Flags().StringVar(&term, "term", "", "Term label, e.g. TERM 1")
	return cmd
}
