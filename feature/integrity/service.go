package integrity

import (
	"context"
	"fmt"

	"mccraft/core/storage"
	"mccraft/feature/integrity/checks"
	"mccraft/feature/recipes/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		db:     db,
	}
}

// CheckSchema validates the recipe tables and their named constraints.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// FixSchema re-adds missing indexes and foreign keys and returns their names.
func (s *Service) FixSchema() ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	restored, err := models.EnsureConstraints(s.db)
	if err != nil {
		return restored, err
	}
	if len(restored) > 0 {
		s.logger.Info("Restored missing constraints", zap.Strings("constraints", restored))
	}
	return restored, nil
}

// CheckExports verifies the export files in the storage bucket.
func (s *Service) CheckExports(ctx context.Context) (*checks.ExportsReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage client is nil")
	}
	return checks.CheckExports(ctx, s.client, s.bucket, s.prefix)
}

// FixExports creates the exports folder in the bucket.
func (s *Service) FixExports(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("storage client is nil")
	}
	return checks.FixExportsFolder(ctx, s.client, s.bucket, s.prefix, s.logger)
}
