package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, "jei-exports", cfg.Storage.Bucket)
	assert.Equal(t, 5000, cfg.Import.ItemBatchSize)
	assert.Equal(t, 8192, cfg.Import.RecipeBatchSize)
	assert.Equal(t, "exports/", cfg.Import.ExportsPrefix)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("IMPORT_RECIPE_BATCH_SIZE", "100")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 100, cfg.Import.RecipeBatchSize)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("IMPORT_ITEM_BATCH_SIZE=250\nLOG_FORMAT=console\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("IMPORT_ITEM_BATCH_SIZE")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Import.ItemBatchSize)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"Driver", "DATABASE_DRIVER", "postgres", `database.driver must be "mysql" or "sqlite", got "postgres"`},
		{"Item Batch", "IMPORT_ITEM_BATCH_SIZE", "0", "import.item_batch_size must be positive, got 0"},
		{"Recipe Batch", "IMPORT_RECIPE_BATCH_SIZE", "-5", "import.recipe_batch_size must be positive, got -5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig(t.TempDir())
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestLoadConfig_NotANumber(t *testing.T) {
	t.Setenv("IMPORT_ITEM_BATCH_SIZE", "lots")
	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "failed to decode config")
}
