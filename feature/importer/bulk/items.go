package bulk

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"mccraft/core/intern"
	"mccraft/feature/importer/staging"
	"mccraft/feature/recipes/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertItems writes every staged item and fluid, keeping rows that already exist.
// Items without a tooltip name are named after their minecraft id.
func (l *Loader) InsertItems(ctx context.Context, staged *staging.Database) (int64, error) {
	start := time.Now()

	rows := make([]models.Item, 0, len(staged.Kinds()))
	for sym, kind := range staged.Kinds() {
		id, ok := staged.Resolve(sym)
		if !ok {
			return 0, fmt.Errorf("item symbol %d was not interned", sym)
		}
		name, ok := staged.Name(sym)
		if !ok {
			name = id
		}
		rows = append(rows, models.Item{Type: kind, HumanName: name, MinecraftID: id})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].MinecraftID < rows[j].MinecraftID })

	l.logger.Info("Inserting items", zap.Int("count", len(rows)), zap.Int("batch_size", l.opts.ItemBatchSize))

	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, l.opts.ItemBatchSize)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert items: %w", result.Error)
	}

	recordRows("items", result.RowsAffected)
	observePhase("items", time.Since(start).Seconds())
	return result.RowsAffected, nil
}

// InsertMachines writes the staged machines and returns the database id of each machine symbol.
func (l *Loader) InsertMachines(ctx context.Context, staged *staging.Database) (map[intern.Symbol]uint, error) {
	bySymbol := staged.Machines()
	ids := make(map[intern.Symbol]uint, len(bySymbol))
	if len(bySymbol) == 0 {
		return ids, nil
	}

	rows := make([]models.Machine, 0, len(bySymbol))
	symbols := make(map[string]intern.Symbol, len(bySymbol))
	for sym, name := range bySymbol {
		id, ok := staged.Resolve(sym)
		if !ok {
			return nil, fmt.Errorf("machine symbol %d was not interned", sym)
		}
		rows = append(rows, models.Machine{HumanName: name, MinecraftID: id})
		symbols[id] = sym
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].MinecraftID < rows[j].MinecraftID })

	result := l.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to insert machines: %w", result.Error)
	}
	recordRows("machines", result.RowsAffected)

	// Ids are read back because existing rows keep the ids of a previous run.
	minecraftIDs := make([]string, 0, len(rows))
	for _, r := range rows {
		minecraftIDs = append(minecraftIDs, r.MinecraftID)
	}
	var stored []models.Machine
	if err := l.db.WithContext(ctx).Where("minecraft_id IN ?", minecraftIDs).Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve machine ids: %w", err)
	}
	for _, m := range stored {
		ids[symbols[m.MinecraftID]] = m.ID
	}
	for id, sym := range symbols {
		if _, ok := ids[sym]; !ok {
			return nil, fmt.Errorf("machine %q has no row after insert", id)
		}
	}

	l.logger.Info("Machines resolved", zap.Int("count", len(ids)))
	return ids, nil
}

// itemCache resolves item symbols to database ids, one point query per item.
type itemCache struct {
	db     *gorm.DB
	staged *staging.Database
	ids    map[intern.Symbol]uint
}

func newItemCache(db *gorm.DB, staged *staging.Database) *itemCache {
	return &itemCache{db: db, staged: staged, ids: make(map[intern.Symbol]uint)}
}

func (c *itemCache) lookup(ctx context.Context, sym intern.Symbol) (uint, error) {
	if id, ok := c.ids[sym]; ok {
		recordCacheLookup(true)
		return id, nil
	}
	recordCacheLookup(false)

	minecraftID, ok := c.staged.Resolve(sym)
	if !ok {
		return 0, fmt.Errorf("item symbol %d was not interned", sym)
	}

	var item models.Item
	err := c.db.WithContext(ctx).Select("id").Where("minecraft_id = ?", minecraftID).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("item %q has no row", minecraftID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up item %q: %w", minecraftID, err)
	}

	c.ids[sym] = item.ID
	return item.ID, nil
}

func (c *itemCache) len() int {
	return len(c.ids)
}
