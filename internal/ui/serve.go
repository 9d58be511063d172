package ui

import (
	"github.com/spf13/cobra"

	"github.com/jy-crnz/SchedulerDesigner/internal/server"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui/theme"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the web editor",
		Long: `Serve the schedule API: grid editing, screenshot scanning and a
websocket feed of grid updates. Stops on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.config.Server.Addr
			}

			var scanner server.Scanner
			if s, err := a.localScanner(); err == nil {
				scanner = s
			} else {
				a.log.Warn("scan endpoint disabled", "error", err)
			}

			srv := server.New(server.Config{
				Addr:           addr,
				AllowedOrigins: a.config.Server.AllowedOrigins,
				MaxUploadBytes: a.config.MaxUploadBytes(),
				Themes:         theme.Available(),
			}, sess, scanner, a.log)
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
