package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/server"
	"taskboard/internal/storage"
)

const defaultSeedCount = 50

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task set over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := stderrLogger(cmd.ErrOrStderr(), app.level())
			if addr == "" {
				addr = app.cfg.ListenAddr
			}

			st, err := storage.Open(app.cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			seeded, err := st.SeedIfEmpty(ctx, defaultSeedCount, time.Now())
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			if seeded {
				logger.Info("seeded sample tasks", "count", defaultSeedCount, "db", app.cfg.DBPath)
			}

			srv := server.New(st, server.WithLogger(logger), server.WithDelay(delay))
			if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Artificial latency per task request")
	return cmd
}
