package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"mccraft/core/database"
	"mccraft/core/logger"
	"mccraft/core/server"
	"mccraft/core/storage"
	"mccraft/feature/importer"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything an mccraft command can be configured with.
// Each section maps to an environment prefix, e.g. IMPORT_ITEM_BATCH_SIZE.
type Config struct {
	// Server is the HTTP listener of `mccraft serve`.
	Server server.Config `mapstructure:"server"`
	// Storage is the bucket holding jeiexporter exports.
	Storage storage.Config `mapstructure:"storage"`
	Log     logger.Config  `mapstructure:"log"`
	// Database receives the imported recipes.
	Database database.Config `mapstructure:"database"`
	// Import tunes the recipe importer.
	Import importer.Config `mapstructure:"import"`
}

// LoadConfig reads dir/.env, then the process environment, over the defaults
// declared in struct tags. Values in .env win over the environment so a
// checked-out working copy behaves the same on every machine.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal in containers.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	registerKeys(v, reflect.TypeOf(Config{}), "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the importer or the database layer cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", database.DriverMySQL, database.DriverSQLite, c.Database.Driver)
	}
	if c.Import.ItemBatchSize <= 0 {
		return fmt.Errorf("import.item_batch_size must be positive, got %d", c.Import.ItemBatchSize)
	}
	if c.Import.RecipeBatchSize <= 0 {
		return fmt.Errorf("import.recipe_batch_size must be positive, got %d", c.Import.RecipeBatchSize)
	}
	return nil
}

// registerKeys walks the mapstructure tags of t and registers every leaf key
// with its `default` tag. AutomaticEnv only resolves keys viper already knows,
// so leaves without a default are registered with an empty one.
func registerKeys(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			registerKeys(v, field.Type, key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
