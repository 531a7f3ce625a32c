package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
	"taskboard/internal/fetch"
	"taskboard/internal/store"
	"taskboard/internal/ui"
)

type App struct {
	ConfigPath string
	Route      string
	Endpoint   string
	Verbose    bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskboard",
		Short:        "Task dashboard and table in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the TUI on the dashboard
  taskboard

  # Open the table directly
  taskboard --route /table

  # Run the local task endpoint
  taskboard serve --delay 500ms
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", config.ResolveConfigPath(), "Path to config.toml")
	cmd.PersistentFlags().StringVar(&app.Endpoint, "endpoint", "", "Task endpoint URL (overrides config)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging")
	cmd.Flags().StringVar(&app.Route, "route", "", "Start page (/dashboard or /table)")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newTasksCmd(app))

	return cmd
}

func (app *App) loadConfig() error {
	cfg, err := config.LoadOrCreate(app.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if app.Endpoint != "" {
		cfg.Endpoint = app.Endpoint
	}
	app.cfg = cfg
	return nil
}

func (app *App) newStore(logger *slog.Logger) *store.Store {
	client := fetch.NewClient(app.cfg.Endpoint, app.cfg.RequestTimeout())
	return store.New(client, store.WithLogger(logger))
}

func runTUI(ctx context.Context, app *App) error {
	logger, closeLog, err := fileLogger(app.cfg.LogPath, app.level())
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("starting tui", "endpoint", app.cfg.Endpoint, "config", app.ConfigPath)
	return ui.Run(ctx, app.newStore(logger), app.cfg, ui.Options{
		Route:      app.Route,
		ConfigPath: app.ConfigPath,
		Logger:     logger,
	})
}

func (app *App) level() slog.Level {
	if app.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// fileLogger writes to path since the terminal belongs to the TUI.
func fileLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

func stderrLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
