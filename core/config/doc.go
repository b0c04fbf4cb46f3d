// Package config provides configuration management for mccraft.
//
// It uses Viper to load settings from environment variables and an optional
// .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key of the query API
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials and the exports bucket
//   - Log: logging level and format
//   - Import: bulk batch sizes and the exports prefix
//
// Environment keys are the upper-cased section and field joined by an
// underscore, e.g. DATABASE_HOST or IMPORT_RECIPE_BATCH_SIZE. LoadConfig
// rejects an unknown database driver and non-positive batch sizes.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Import.ItemBatchSize)
package config
