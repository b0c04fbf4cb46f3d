package cmd

import (
	"fmt"

	"mccraft/core/storage"
	"mccraft/feature/importer"

	"github.com/spf13/cobra"
)

// exportsCmd groups commands for the export files kept in object storage.
var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "Manage exports in the storage bucket",
}

// pushCmd represents the exports push command
var pushCmd = &cobra.Command{
	Use:   "push <jeiexporter-dir>",
	Short: "Upload <jeiexporter-dir>/exports to the storage bucket",
	Long:  `Uploads every export file so that 'mccraft import --from-storage' can read it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		n, err := importer.UploadDir(cmd.Context(), client, cfg.Storage.Bucket, cfg.Import.ExportsPrefix, importer.NewDirSource(args[0]), logg)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %d files\n", n)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportsCmd)
	exportsCmd.AddCommand(pushCmd)
}
