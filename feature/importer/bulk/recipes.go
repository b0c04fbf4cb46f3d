package bulk

import (
	"context"
	"fmt"

	"mccraft/core/intern"
	"mccraft/feature/importer/staging"
	"mccraft/feature/recipes/models"

	"go.uber.org/zap"
)

// insertRecipes writes one row per recipe and returns the new ids in input order.
func (l *Loader) insertRecipes(ctx context.Context, staged *staging.Database, recipes []staging.Recipe, machineIDs map[intern.Symbol]uint) ([]uint, error) {
	if len(recipes) == 0 {
		return nil, nil
	}

	rows := make([]models.Recipe, len(recipes))
	for i, r := range recipes {
		machineID, ok := machineIDs[r.Machine]
		if !ok {
			name, _ := staged.Resolve(r.Machine)
			return nil, fmt.Errorf("recipe %d references unresolved machine %q", i, name)
		}
		rows[i] = models.Recipe{MachineID: machineID}
	}

	l.logger.Info("Inserting recipes", zap.Int("count", len(rows)), zap.Int("batch_size", l.opts.RecipeBatchSize))
	if err := l.db.WithContext(ctx).CreateInBatches(&rows, l.opts.RecipeBatchSize).Error; err != nil {
		return nil, fmt.Errorf("failed to insert recipes: %w", err)
	}
	recordRows("recipes", int64(len(rows)))

	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids, nil
}

type rowCounts struct {
	slots      int
	components int
	outputs    int
}

// insertRecipeRows writes the input slots, their components and the outputs of one recipe.
func (l *Loader) insertRecipeRows(ctx context.Context, recipeID uint, r staging.Recipe, cache *itemCache) (rowCounts, error) {
	var counts rowCounts
	db := l.db.WithContext(ctx)

	if len(r.Inputs) > 0 {
		slots := make([]models.InputSlot, len(r.Inputs))
		for i := range slots {
			slots[i].RecipeID = recipeID
		}
		if err := db.Create(&slots).Error; err != nil {
			return counts, fmt.Errorf("failed to insert input slots: %w", err)
		}
		counts.slots = len(slots)

		var components []models.CraftingComponent
		for i, slot := range r.Inputs {
			for _, c := range slot.Allowed {
				itemID, err := cache.lookup(ctx, c.Name())
				if err != nil {
					return counts, err
				}
				components = append(components, models.CraftingComponent{
					SlotID:   slots[i].ID,
					ItemID:   itemID,
					Quantity: storedQuantity(c),
				})
			}
		}
		if len(components) > 0 {
			if err := db.Create(&components).Error; err != nil {
				return counts, fmt.Errorf("failed to insert crafting components: %w", err)
			}
		}
		counts.components = len(components)
	}

	outputs := make([]models.Output, 0, len(r.Outputs))
	for _, c := range r.Outputs {
		itemID, err := cache.lookup(ctx, c.Name())
		if err != nil {
			return counts, err
		}
		outputs = append(outputs, models.Output{RecipeID: recipeID, ItemID: itemID, Quantity: storedQuantity(c)})
	}
	if len(outputs) > 0 {
		if err := db.Create(&outputs).Error; err != nil {
			return counts, fmt.Errorf("failed to insert outputs: %w", err)
		}
	}
	counts.outputs = len(outputs)

	recordRows("input_slots", int64(counts.slots))
	recordRows("crafting_components", int64(counts.components))
	recordRows("outputs", int64(counts.outputs))
	return counts, nil
}

// storedQuantity reads a staged quantity back as the signed 32-bit value it was exported as.
func storedQuantity(c staging.Component) int {
	return int(int32(c.Quantity()))
}
