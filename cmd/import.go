package cmd

import (
	"fmt"
	"os"

	"mccraft/core/database"
	"mccraft/core/storage"
	"mccraft/feature/importer"
	"mccraft/feature/recipes/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFromStorage bool
	importMigrate     bool
	importDryRun      bool
	importDump        bool
	importQuiet       bool
	importMetricsFile string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [jeiexporter-dir]",
	Short: "Import jeiexporter recipe exports into the database",
	Long: `Reads every file of <jeiexporter-dir>/exports, normalizes the recipes in memory
and writes them to the configured database.

While recipe rows are written, the foreign keys and indexes of the recipe tables are
dropped. If the import fails in that window, run 'mccraft migrate' to restore them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		src, err := importSource(cfg.Storage, cfg.Import, args)
		if err != nil {
			return err
		}
		if importMetricsFile != "" {
			defer writeMetrics(logg, importMetricsFile)
		}

		svc := importer.NewService(logg, cfg.Import)

		if importDryRun {
			staged, report, err := svc.Ingest(ctx, src)
			if err != nil {
				return err
			}
			if importDump {
				if err := staged.Dump(os.Stdout); err != nil {
					return err
				}
			}
			fmt.Printf("Ingested %d recipes\n", report.Recipes)
			return nil
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		if importMigrate {
			if err := models.Migrate(db); err != nil {
				return err
			}
		}

		progress := &flushProgress{cfg: newProgressConfig(importQuiet)}
		report, err := svc.Run(ctx, src, db, progress.Update)
		progress.Finish()
		if err != nil {
			return err
		}

		fmt.Printf("Ingested %d recipes\n", report.Recipes)
		return nil
	},
}

func importSource(storageCfg storage.Config, importCfg importer.Config, args []string) (importer.Source, error) {
	if importFromStorage {
		client, err := storage.NewClient(storageCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return importer.NewBucketSource(client, storageCfg.Bucket, importCfg.ExportsPrefix), nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("missing jeiexporter directory (or use --from-storage)")
	}
	return importer.NewDirSource(args[0]), nil
}

func writeMetrics(logg *zap.Logger, path string) {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		logg.Warn("Failed to write metrics file", zap.String("path", path), zap.Error(err))
	}
}

func init() {
	RootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importFromStorage, "from-storage", false, "Read export files from the storage bucket instead of a directory")
	importCmd.Flags().BoolVar(&importMigrate, "migrate", false, "Create or repair the recipe schema before importing")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Read and normalize exports without writing to the database")
	importCmd.Flags().BoolVar(&importDump, "dump", false, "Print the staged recipes (with --dry-run)")
	importCmd.Flags().BoolVarP(&importQuiet, "quiet", "q", false, "Disable the progress bar")
	importCmd.Flags().StringVar(&importMetricsFile, "metrics-file", "", "Write Prometheus metrics to this file when the import ends")
}
