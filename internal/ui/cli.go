// Package ui implements the schedwall command line.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jy-crnz/SchedulerDesigner/internal/config"
	"github.com/jy-crnz/SchedulerDesigner/internal/db"
	"github.com/jy-crnz/SchedulerDesigner/internal/llm"
	"github.com/jy-crnz/SchedulerDesigner/internal/scan"
	"github.com/jy-crnz/SchedulerDesigner/internal/session"
	"github.com/jy-crnz/SchedulerDesigner/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	store  *db.SQLite
	sess   *session.Session
	root   *cobra.Command
	log    *slog.Logger

	profile string
	debug   bool // Enable debug logging
}

// NewApp creates a new CLI application for the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, log: slog.Default()}

	a.root = &cobra.Command{
		Use:   "schedwall",
		Short: "Design a weekly class schedule wallpaper",
		Long: `Schedwall lays your weekly classes out on a five-slot wallpaper grid.

Place classes by hand, or scan a screenshot of your enrollment page and
let a vision model fill the grid for you.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if a.debug {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			var opts []tui.ModelOption
			if s, err := a.localScanner(); err == nil {
				opts = append(opts, tui.WithScanner(s))
			} else {
				a.log.Debug("scanning disabled", "error", err)
			}
			return tui.RunWithDebug(sess, a.config, a.debug, opts...)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().StringVarP(&a.profile, "profile", "p", cfg.Storage.Profile, "Schedule profile to use")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.placeCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.copyCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.starCmd())
	a.root.AddCommand(a.resizeCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.headerCmd())
	a.root.AddCommand(a.themeCmd())
	a.root.AddCommand(a.scanCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.profilesCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "schedwall %s (commit: %s)\n", Version, Commit)
		},
	}
}

// openStore opens the configured database, creating its directory.
func (a *App) openStore() (*db.SQLite, error) {
	if a.store != nil {
		return a.store, nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	store, err := db.New(path)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// openSession loads the selected profile.
func (a *App) openSession(ctx context.Context) (*session.Session, error) {
	if a.sess != nil {
		return a.sess, nil
	}
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	sess, err := session.Open(ctx, store, a.profile, session.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	a.sess = sess
	return sess, nil
}

// localScanner builds the scan pipeline from the configured provider.
func (a *App) localScanner() (*scan.Scanner, error) {
	client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout, err := a.config.ScanTimeout()
	if err != nil {
		return nil, err
	}
	return scan.NewScanner(llm.NewExtractor(client),
		scan.WithMaxDimension(a.config.Scan.MaxImageDim),
		scan.WithTimeout(timeout),
		scan.WithLogger(a.log),
	), nil
}

// Execute runs the CLI application. Interrupts cancel the command context.
func (a *App) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer a.close()
	return a.root.ExecuteContext(ctx)
}

func (a *App) close() {
	if a.store != nil {
		_ = a.store.Close()
		a.store = nil
		a.sess = nil
	}
}
