// AngelaMos | 2026
// db.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prombirzha/marketplace/internal/billing"
	"github.com/prombirzha/marketplace/migrations"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect schema migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		_, logger, db, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // process exits right after

		if err := db.Migrate(cmd.Context(), migrations.FS, migrations.Dir, direction); err != nil {
			return err
		}

		logger.Info("migrations finished", "direction", direction)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default tariff plans",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, logger, db, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // process exits right after

		svc := billing.NewService(billing.NewRepository(db.DB))

		created, err := svc.SeedTariffs(cmd.Context())
		if err != nil {
			return fmt.Errorf("seed tariffs: %w", err)
		}

		logger.Info("tariffs seeded", "created", created)
		return nil
	},
}
