package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jy-crnz/SchedulerDesigner/internal/export"
	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/theme"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/view"
)

func (a *App) showCmd() *cobra.Command {
	var (
		noColor bool
		text    bool
		width   int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the schedule wallpaper",
		Long: `Print the wallpaper of the current profile without opening the editor.

Use --text for a plain list of classes that pastes well into chats.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			g := sess.Grid()

			if text {
				fmt.Fprint(cmd.OutOrStdout(), export.PlainText(g))
				return nil
			}
			if width <= 0 {
				width = termWidth()
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderWallpaper(g, width))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&text, "text", false, "Print a plain list instead of the grid")
	cmd.Flags().IntVar(&width, "width", 0, "Render width (default: terminal width)")
	return cmd
}

// renderWallpaper paints g with the theme stored in its header.
func (a *App) renderWallpaper(g *grid.Grid, width int) string {
	name := g.Header().Theme
	if !theme.IsAvailable(name) {
		name = a.config.UI.Theme
	}
	t, err := theme.Load(name)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	return view.RenderWallpaper(view.WallpaperModel{Grid: g, Width: width}, tui.NewStyles(t).Wallpaper())
}

func (a *App) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [name]",
		Short: "List themes or switch the wallpaper theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				current := theme.Normalize(sess.Grid().Header().Theme)
				for _, name := range theme.Available() {
					if name == current {
						fmt.Fprintf(out, "* %s\n", formatHeader(name))
						continue
					}
					fmt.Fprintf(out, "  %s\n", formatMuted(name))
				}
				return nil
			}

			name := theme.Normalize(args[0])
			if !theme.IsAvailable(name) {
				return fmt.Errorf("unknown theme %q (available: %s)", args[0], strings.Join(theme.Available(), ", "))
			}
			if err := sess.UpdateHeader(cmd.Context(), func(h *grid.Header) { h.Theme = name }); err != nil {
				return err
			}
			fmt.Fprintf(out, "Theme set to %s\n", name)
			return nil
		},
	}
}
