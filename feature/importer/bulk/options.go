package bulk

const (
	DefaultItemBatchSize   = 5000
	DefaultRecipeBatchSize = 8192
)

// Options tunes a Loader. Batch sizes bound statement payloads and do not change the result.
type Options struct {
	ItemBatchSize   int
	RecipeBatchSize int
	// Progress is called after every recipe with the number written so far.
	Progress func(done, total int)
}

func (o Options) withDefaults() Options {
	if o.ItemBatchSize <= 0 {
		o.ItemBatchSize = DefaultItemBatchSize
	}
	if o.RecipeBatchSize <= 0 {
		o.RecipeBatchSize = DefaultRecipeBatchSize
	}
	return o
}
