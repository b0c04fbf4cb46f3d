package bulk

import (
	"context"
	"fmt"
	"time"

	"mccraft/core/intern"
	"mccraft/feature/importer/staging"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Summary reports what a flush wrote.
type Summary struct {
	Items          int64
	Machines       int
	Recipes        int
	InputSlots     int
	Components     int
	Outputs        int
	SkippedRecipes int
	Duration       time.Duration
}

// Loader writes a staging database to the recipe tables.
// Statements are not wrapped in a transaction; each batch commits on its own.
type Loader struct {
	db     *gorm.DB
	logger *zap.Logger
	opts   Options
}

// NewLoader creates a loader writing through db.
func NewLoader(db *gorm.DB, logger *zap.Logger, opts Options) *Loader {
	return &Loader{
		db:     db,
		logger: logger,
		opts:   opts.withDefaults(),
	}
}

// Flush writes items, machines and recipes.
//
// Recipes are written while the relaxed foreign keys and indexes are dropped.
// A failure inside that window returns immediately and leaves them dropped.
func (l *Loader) Flush(ctx context.Context, staged *staging.Database) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	items, err := l.InsertItems(ctx, staged)
	if err != nil {
		return nil, err
	}
	summary.Items = items

	machineIDs, err := l.InsertMachines(ctx, staged)
	if err != nil {
		return nil, err
	}
	summary.Machines = len(machineIDs)

	recipes := make([]staging.Recipe, 0, staged.NumRecipes())
	for _, r := range staged.Recipes() {
		if len(r.Outputs) == 0 {
			summary.SkippedRecipes++
			continue
		}
		recipes = append(recipes, r)
	}
	if summary.SkippedRecipes > 0 {
		l.logger.Info("Skipping recipes without outputs", zap.Int("count", summary.SkippedRecipes))
	}

	if err := l.RelaxConstraints(ctx); err != nil {
		return nil, err
	}

	if err := l.writeRecipes(ctx, staged, recipes, machineIDs, summary); err != nil {
		l.logger.Error("Recipe insert failed with constraints dropped", zap.Error(err))
		return nil, err
	}

	phaseStart := time.Now()
	if err := l.RestoreConstraints(ctx); err != nil {
		return nil, err
	}
	observePhase("restore", time.Since(phaseStart).Seconds())

	summary.Duration = time.Since(start)
	return summary, nil
}

func (l *Loader) writeRecipes(ctx context.Context, staged *staging.Database, recipes []staging.Recipe, machineIDs map[intern.Symbol]uint, summary *Summary) error {
	phaseStart := time.Now()
	ids, err := l.insertRecipes(ctx, staged, recipes, machineIDs)
	if err != nil {
		return err
	}
	summary.Recipes = len(ids)
	observePhase("recipes", time.Since(phaseStart).Seconds())

	phaseStart = time.Now()
	cache := newItemCache(l.db, staged)
	total := len(recipes)
	step := total / 100
	if step == 0 {
		step = 1
	}

	for i, r := range recipes {
		counts, err := l.insertRecipeRows(ctx, ids[i], r, cache)
		if err != nil {
			return fmt.Errorf("recipe %d: %w", ids[i], err)
		}
		summary.InputSlots += counts.slots
		summary.Components += counts.components
		summary.Outputs += counts.outputs

		done := i + 1
		if l.opts.Progress != nil {
			l.opts.Progress(done, total)
		}
		if done%step == 0 || done == total {
			l.logger.Info("Inserting recipe contents",
				zap.Int("done", done),
				zap.Int("total", total),
				zap.Int("percent", done*100/total),
				zap.Int("cached_items", cache.len()))
		}
	}
	observePhase("contents", time.Since(phaseStart).Seconds())
	return nil
}
