package cmd

import (
	"fmt"

	"mccraft/core/database"
	"mccraft/feature/recipes/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the recipe tables, indexes and foreign keys",
	Long: `Creates the recipe schema and re-adds any missing index or foreign key.
Run it after an import that failed while its constraints were dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		if err := db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("failed to migrate tables: %w", err)
		}
		restored, err := models.EnsureConstraints(db)
		if err != nil {
			return err
		}

		if len(restored) > 0 {
			logg.Info("Created constraints", zap.Strings("constraints", restored))
		}
		logg.Info("Schema is up to date", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
