package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"mccraft/core/logger"
	"mccraft/feature/importer/bulk"
	"mccraft/feature/importer/export"
	"mccraft/feature/importer/normalize"
	"mccraft/feature/importer/staging"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Report summarizes an import run.
type Report struct {
	Files      int
	Skipped    []string
	Tooltips   int
	Recipes    int
	Expansions int
	Flush      *bulk.Summary
}

// Service reads export folders into a staging database and flushes it.
type Service struct {
	logger *zap.Logger
	cfg    Config
}

// NewService creates a new import service.
func NewService(logger *zap.Logger, cfg Config) *Service {
	return &Service{
		logger: logger,
		cfg:    cfg,
	}
}

// Ingest reads every file of the source into a new staging database.
//
// Files that cannot be read or decoded are logged and skipped.
// Invariant violations stop the run and are returned.
func (s *Service) Ingest(ctx context.Context, src Source) (*staging.Database, *Report, error) {
	start := time.Now()
	s.logger.Info("Reading exports", zap.String("source", src.String()))

	names, err := src.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	db := staging.New()
	norm := normalize.New(db)
	report := &Report{}

	for _, name := range names {
		report.Files++
		l := logger.ForFile(s.logger, name)

		switch name {
		case export.LookupMapFile:
			l.Debug("Skipping lookup map")
			recordFile("ignored")
			continue
		case export.TooltipMapFile:
			tm, err := readFile(ctx, src, name, export.DecodeTooltipMap)
			if err != nil {
				l.Warn("Skipping tooltip map", zap.Error(err))
				report.Skipped = append(report.Skipped, name)
				recordFile("skipped")
				continue
			}
			n := normalize.ImportTooltips(db, tm)
			report.Tooltips += n
			recordTooltips(n)
			recordFile("tooltips")
			l.Info("Imported tooltips", zap.Int("names", n))
			continue
		}

		doc, err := readFile(ctx, src, name, export.DecodeCraftingInstance)
		if err != nil {
			l.Warn("Skipping export file", zap.Error(err))
			report.Skipped = append(report.Skipped, name)
			recordFile("skipped")
			continue
		}

		before := norm.Stats().Expansions
		added, err := norm.Normalize(doc)
		recordStaged(added, norm.Stats().Expansions-before)
		if err != nil {
			recordFile("failed")
			if errors.Is(err, normalize.ErrInvariant) || errors.Is(err, staging.ErrUnknownMachine) {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			return nil, nil, fmt.Errorf("failed to normalize %s: %w", name, err)
		}
		recordFile("recipes")
		l.Debug("Staged recipes", zap.String("category", doc.Category), zap.Int("recipes", added))
	}

	stats := norm.Stats()
	report.Recipes = db.NumRecipes()
	report.Expansions = stats.Expansions
	observeIngest(time.Since(start).Seconds())

	s.logger.Info("Processing completed successfully",
		zap.Int("files", report.Files),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("recipes", report.Recipes),
		zap.Int("expansions", report.Expansions),
		zap.Duration("duration", time.Since(start)))

	return db, report, nil
}

// Run ingests the source and flushes the result through a bulk loader on db.
func (s *Service) Run(ctx context.Context, src Source, db *gorm.DB, progress func(done, total int)) (*Report, error) {
	staged, report, err := s.Ingest(ctx, src)
	if err != nil {
		return nil, err
	}

	loader := bulk.NewLoader(db, s.logger, s.cfg.BulkOptions(progress))
	summary, err := loader.Flush(ctx, staged)
	if err != nil {
		return nil, fmt.Errorf("failed to flush recipes: %w", err)
	}
	report.Flush = summary

	s.logger.Info("Flush completed",
		zap.Int64("items", summary.Items),
		zap.Int("machines", summary.Machines),
		zap.Int("recipes", summary.Recipes),
		zap.Int("skipped_recipes", summary.SkippedRecipes),
		zap.Duration("duration", summary.Duration))

	return report, nil
}

func readFile[T any](ctx context.Context, src Source, name string, decode func(io.Reader) (*T, error)) (*T, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer rc.Close()
	return decode(rc)
}
