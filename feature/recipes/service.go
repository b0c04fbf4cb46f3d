package recipes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mccraft/feature/recipes/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Service answers read-only recipe queries.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	sf     singleflight.Group
}

// NewService creates a new recipe query service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// GetItem returns a single item row.
func (s *Service) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err, "item", id)
	}
	return &item, nil
}

// ProducersOf returns the recipes that output the item.
func (s *Service) ProducersOf(ctx context.Context, itemID uint) ([]PartialRecipe, error) {
	var out []PartialRecipe
	err := s.producers(ctx).
		Where("outputs.item_id = ?", itemID).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query producers: %w", err)
	}
	return out, nil
}

// ProducersByName returns the recipes whose output's human name starts with name.
func (s *Service) ProducersByName(ctx context.Context, name string) ([]PartialRecipe, error) {
	var out []PartialRecipe
	err := s.producers(ctx).
		Joins("JOIN items ON items.id = outputs.item_id").
		Where("items.human_name LIKE ? ESCAPE '!'", prefixPattern(name)).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query producers: %w", err)
	}
	return out, nil
}

func (s *Service) producers(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("machines").
		Select("DISTINCT machines.id AS machine_id, machines.human_name AS machine_name, recipes.id AS recipe_id").
		Joins("JOIN recipes ON recipes.machine_id = machines.id").
		Joins("JOIN outputs ON outputs.recipe_id = recipes.id").
		Order("recipe_id")
}

// GetRecipe returns the full recipe. Concurrent requests for the same recipe share one query.
// The shared query does not inherit the cancellation of the request that started it;
// a cancelled caller returns ctx.Err() and the others still get the recipe.
func (s *Service) GetRecipe(ctx context.Context, id uint) (*Recipe, error) {
	ch := s.sf.DoChan(strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		return s.loadRecipe(context.WithoutCancel(ctx), id)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Recipe), nil
	}
}

type slotRow struct {
	SlotID uint
	ItemSpec
}

func (s *Service) loadRecipe(ctx context.Context, id uint) (*Recipe, error) {
	db := s.db.WithContext(ctx)

	var head PartialRecipe
	res := db.Table("recipes").
		Select("recipes.id AS recipe_id, machines.id AS machine_id, machines.human_name AS machine_name").
		Joins("JOIN machines ON machines.id = recipes.machine_id").
		Where("recipes.id = ?", id).
		Limit(1).
		Scan(&head)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to query recipe %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
	}

	recipe := &Recipe{
		ID:          head.RecipeID,
		MachineID:   head.MachineID,
		MachineName: head.MachineName,
		InputSlots:  []InputSlot{},
		Outputs:     []ItemSpec{},
	}

	err := db.Table("outputs").
		Select("items.id AS item_id, items.human_name AS item_name, items.minecraft_id, items.ty AS type, outputs.quantity").
		Joins("JOIN items ON items.id = outputs.item_id").
		Where("outputs.recipe_id = ?", id).
		Order("outputs.id").
		Scan(&recipe.Outputs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query outputs of recipe %d: %w", id, err)
	}

	var rows []slotRow
	err = db.Table("crafting_components").
		Select("input_slots.id AS slot_id, items.id AS item_id, items.human_name AS item_name, items.minecraft_id, items.ty AS type, crafting_components.quantity").
		Joins("JOIN input_slots ON input_slots.id = crafting_components.slot_id").
		Joins("JOIN items ON items.id = crafting_components.item_id").
		Where("input_slots.recipe_id = ?", id).
		Order("input_slots.id, crafting_components.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query inputs of recipe %d: %w", id, err)
	}

	// rows are ordered by slot
	var current uint
	for _, r := range rows {
		if len(recipe.InputSlots) == 0 || r.SlotID != current {
			recipe.InputSlots = append(recipe.InputSlots, InputSlot{})
			current = r.SlotID
		}
		last := &recipe.InputSlots[len(recipe.InputSlots)-1]
		last.Items = append(last.Items, r.ItemSpec)
	}

	return recipe, nil
}

// SearchItems returns a page of items whose human name starts with the query.
func (s *Service) SearchItems(ctx context.Context, q SearchQuery) ([]models.Item, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	items := []models.Item{}
	err := s.db.WithContext(ctx).
		Where("human_name LIKE ? ESCAPE '!'", prefixPattern(q.Q)).
		Order("human_name, id").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// prefixPattern escapes LIKE wildcards in the user input. Use with ESCAPE '!'.
func prefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("failed to query %s %d: %w", what, id, err)
}
