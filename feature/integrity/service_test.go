package integrity

import (
	"context"
	"testing"

	"mccraft/core/database"
	"mccraft/core/storage/mocks"
	"mccraft/feature/recipes/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupTestDB creates a migrated in-memory recipe store.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

func TestService_Schema(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(new(mocks.Client), "jei", "exports/", zap.NewNop(), db)

	require.NoError(t, db.Exec("DROP INDEX idx_crafting_components_item").Error)

	report, err := svc.CheckSchema()
	require.NoError(t, err)
	assert.True(t, report.InterruptedImport)

	restored, err := svc.FixSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"idx_crafting_components_item"}, restored)

	report, err = svc.CheckSchema()
	require.NoError(t, err)
	assert.True(t, report.Matched)
}

func TestService_NoDatabase(t *testing.T) {
	svc := NewService(new(mocks.Client), "jei", "exports/", zap.NewNop(), nil)

	_, err := svc.CheckSchema()
	assert.Error(t, err)
	_, err = svc.FixSchema()
	assert.Error(t, err)
}

func TestService_Exports(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "jei", "exports/", zap.NewNop(), nil)

	mockClient.OnBucket("jei", true)
	mockClient.OnList("jei", "exports/")
	mockClient.On("PutObject", mock.Anything, "jei", "exports/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	report, err := svc.CheckExports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "error", report.Status)

	assert.NoError(t, svc.FixExports(context.Background()))
	mockClient.AssertExpectations(t)
}
