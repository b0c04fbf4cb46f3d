package importer

import "mccraft/feature/importer/bulk"

// Config holds the importer settings.
type Config struct {
	// ItemBatchSize is the number of item rows per insert statement.
	ItemBatchSize int `mapstructure:"item_batch_size" default:"5000"`
	// RecipeBatchSize is the number of recipe rows per insert statement.
	RecipeBatchSize int `mapstructure:"recipe_batch_size" default:"8192"`
	// ExportsPrefix is where export files live inside the storage bucket.
	ExportsPrefix string `mapstructure:"exports_prefix" default:"exports/"`
}

// BulkOptions converts the batch settings for the bulk loader.
func (c Config) BulkOptions(progress func(done, total int)) bulk.Options {
	return bulk.Options{
		ItemBatchSize:   c.ItemBatchSize,
		RecipeBatchSize: c.RecipeBatchSize,
		Progress:        progress,
	}
}
