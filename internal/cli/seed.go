package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/storage"
)

func newSeedCmd(app *App) *cobra.Command {
	var count int
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write sample tasks to the local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("count must be >= 0, got %d", count)
			}
			st, err := storage.Open(app.cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			ctx := cmd.Context()
			if force {
				if err := st.ReplaceAll(ctx, storage.SampleTasks(count, time.Now())); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d tasks to %s\n", count, app.cfg.DBPath)
				return nil
			}
			seeded, err := st.SeedIfEmpty(ctx, count, time.Now())
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already has tasks; use --force to replace them\n", app.cfg.DBPath)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d tasks to %s\n", count, app.cfg.DBPath)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultSeedCount, "Number of sample tasks")
	cmd.Flags().BoolVar(&force, "force", false, "Replace existing tasks")
	return cmd
}
