package bulk

import (
	"context"
	"testing"

	"mccraft/core/database"
	"mccraft/feature/importer/staging"
	"mccraft/feature/recipes/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

// stagedFurnace stages two smelting recipes, a bucket recipe and a recipe without outputs.
func stagedFurnace(t *testing.T) *staging.Database {
	s := staging.New()
	furnace := s.GetOrIntern("minecraft:furnace")
	s.AddMachine(furnace, "Smelting")

	item := func(id string) staging.Component {
		sym := s.GetOrIntern(id)
		s.AssociateKind(sym, models.ItemTypeItem)
		return staging.ItemStack{Count: 1, Item: sym}
	}
	fluid := func(id string, amount uint32) staging.Component {
		sym := s.GetOrIntern(id)
		s.AssociateKind(sym, models.ItemTypeFluid)
		return staging.Fluid{Amount: amount, Fluid: sym}
	}

	s.AssociateName(s.GetOrIntern("minecraft:iron_ingot"), "Iron Ingot")

	recipes := []staging.Recipe{
		{
			Machine: furnace,
			Inputs: []staging.CraftingSlot{
				{Allowed: []staging.Component{item("minecraft:iron_ore"), item("minecraft:deepslate_iron_ore")}},
				{Allowed: []staging.Component{item("minecraft:coal")}},
			},
			Outputs: []staging.Component{item("minecraft:iron_ingot")},
		},
		{
			Machine: furnace,
			Inputs:  []staging.CraftingSlot{{Allowed: []staging.Component{fluid("water", 1000)}}},
			Outputs: []staging.Component{item("minecraft:ice")},
		},
		{
			Machine: furnace,
			Inputs:  []staging.CraftingSlot{{Allowed: []staging.Component{item("minecraft:coal")}}},
		},
	}
	for _, r := range recipes {
		require.NoError(t, s.AddRecipe(r))
	}
	return s
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestFlush(t *testing.T) {
	db := setupTestDB(t)

	var progress [][2]int
	loader := NewLoader(db, zap.NewNop(), Options{
		ItemBatchSize:   2,
		RecipeBatchSize: 1,
		Progress: func(done, total int) {
			progress = append(progress, [2]int{done, total})
		},
	})

	summary, err := loader.Flush(context.Background(), stagedFurnace(t))
	require.NoError(t, err)

	assert.Equal(t, int64(6), summary.Items)
	assert.Equal(t, 1, summary.Machines)
	assert.Equal(t, 2, summary.Recipes)
	assert.Equal(t, 1, summary.SkippedRecipes)
	assert.Equal(t, 3, summary.InputSlots)
	assert.Equal(t, 4, summary.Components)
	assert.Equal(t, 2, summary.Outputs)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, progress)

	assert.Equal(t, int64(6), count(t, db, &models.Item{}))
	assert.Equal(t, int64(2), count(t, db, &models.Recipe{}))
	assert.Equal(t, int64(3), count(t, db, &models.InputSlot{}))
	assert.Equal(t, int64(4), count(t, db, &models.CraftingComponent{}))
	assert.Equal(t, int64(2), count(t, db, &models.Output{}))

	t.Run("Names", func(t *testing.T) {
		var ingot, ore, water models.Item
		require.NoError(t, db.Where("minecraft_id = ?", "minecraft:iron_ingot").Take(&ingot).Error)
		require.NoError(t, db.Where("minecraft_id = ?", "minecraft:iron_ore").Take(&ore).Error)
		require.NoError(t, db.Where("minecraft_id = ?", "water").Take(&water).Error)

		assert.Equal(t, "Iron Ingot", ingot.HumanName)
		assert.Equal(t, "minecraft:iron_ore", ore.HumanName)
		assert.Equal(t, models.ItemTypeFluid, water.Type)
	})

	t.Run("References", func(t *testing.T) {
		var machine models.Machine
		require.NoError(t, db.Take(&machine).Error)
		assert.Equal(t, "Smelting", machine.HumanName)

		var recipes []models.Recipe
		require.NoError(t, db.Order("id").Find(&recipes).Error)
		for _, r := range recipes {
			assert.Equal(t, machine.ID, r.MachineID)
		}

		var ingot models.Item
		require.NoError(t, db.Where("minecraft_id = ?", "minecraft:iron_ingot").Take(&ingot).Error)
		var out models.Output
		require.NoError(t, db.Where("recipe_id = ?", recipes[0].ID).Take(&out).Error)
		assert.Equal(t, ingot.ID, out.ItemID)
		assert.Equal(t, 1, out.Quantity)

		var water models.Item
		require.NoError(t, db.Where("minecraft_id = ?", "water").Take(&water).Error)
		var comp models.CraftingComponent
		require.NoError(t, db.Where("item_id = ?", water.ID).Take(&comp).Error)
		assert.Equal(t, 1000, comp.Quantity)
	})

	t.Run("Constraints Restored", func(t *testing.T) {
		for _, ix := range models.Indexes {
			names, err := database.GetTableIndexes(db, ix.Table)
			require.NoError(t, err)
			assert.Contains(t, names, ix.Name)
		}
	})
}

func TestFlush_ExistingRows(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Item{ID: 500, Type: models.ItemTypeItem, HumanName: "Old Ingot", MinecraftID: "minecraft:iron_ingot"}).Error)
	require.NoError(t, db.Create(&models.Machine{ID: 40, HumanName: "Old Furnace", MinecraftID: "minecraft:furnace"}).Error)

	loader := NewLoader(db, zap.NewNop(), Options{})
	summary, err := loader.Flush(context.Background(), stagedFurnace(t))
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.Items)

	var ingot models.Item
	require.NoError(t, db.First(&ingot, 500).Error)
	assert.Equal(t, "Old Ingot", ingot.HumanName)

	var outputs []models.Output
	require.NoError(t, db.Where("item_id = ?", 500).Find(&outputs).Error)
	assert.Len(t, outputs, 1)

	var recipes []models.Recipe
	require.NoError(t, db.Find(&recipes).Error)
	for _, r := range recipes {
		assert.Equal(t, uint(40), r.MachineID)
	}

	t.Run("Second Run", func(t *testing.T) {
		_, err := loader.Flush(context.Background(), stagedFurnace(t))
		require.NoError(t, err)
		assert.Equal(t, int64(6), count(t, db, &models.Item{}))
		assert.Equal(t, int64(1), count(t, db, &models.Machine{}))
		assert.Equal(t, int64(4), count(t, db, &models.Recipe{}))
	})
}

func TestFlush_UnknownItemLeavesWindowOpen(t *testing.T) {
	db := setupTestDB(t)

	s := staging.New()
	furnace := s.GetOrIntern("minecraft:furnace")
	s.AddMachine(furnace, "Smelting")
	// No kind registered, so no item row is written for it.
	ghost := s.GetOrIntern("minecraft:ghost")
	require.NoError(t, s.AddRecipe(staging.Recipe{
		Machine: furnace,
		Outputs: []staging.Component{staging.ItemStack{Count: 1, Item: ghost}},
	}))

	_, err := NewLoader(db, zap.NewNop(), Options{}).Flush(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `item "minecraft:ghost" has no row`)

	names, err := database.GetTableIndexes(db, "outputs")
	require.NoError(t, err)
	assert.NotContains(t, names, "idx_outputs_item")

	created, err := models.EnsureConstraints(db)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"idx_crafting_components_item", "idx_crafting_components_slot", "idx_outputs_item"}, created)
}

func TestFlush_Empty(t *testing.T) {
	db := setupTestDB(t)
	summary, err := NewLoader(db, zap.NewNop(), Options{}).Flush(context.Background(), staging.New())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Recipes)
	assert.Equal(t, int64(0), summary.Items)
}

// countItemQueries counts SELECTs against the items table issued through db.
func countItemQueries(t *testing.T, db *gorm.DB) *int {
	t.Helper()
	n := new(int)
	err := db.Callback().Query().After("gorm:query").Register("test:count_item_queries", func(tx *gorm.DB) {
		if tx.Statement.Table == "items" {
			*n++
		}
	})
	require.NoError(t, err)
	return n
}

func TestFlush_ItemLookupsAreCached(t *testing.T) {
	db := setupTestDB(t)

	s := staging.New()
	furnace := s.GetOrIntern("minecraft:furnace")
	s.AddMachine(furnace, "Smelting")
	item := func(id string) staging.Component {
		sym := s.GetOrIntern(id)
		s.AssociateKind(sym, models.ItemTypeItem)
		return staging.ItemStack{Count: 1, Item: sym}
	}
	coal := item("minecraft:coal")
	for _, pair := range [][2]string{
		{"minecraft:iron_ore", "minecraft:iron_ingot"},
		{"minecraft:gold_ore", "minecraft:gold_ingot"},
		{"minecraft:iron_ore", "minecraft:iron_nugget"},
	} {
		require.NoError(t, s.AddRecipe(staging.Recipe{
			Machine: furnace,
			Inputs: []staging.CraftingSlot{
				{Allowed: []staging.Component{item(pair[0])}},
				{Allowed: []staging.Component{coal}},
			},
			Outputs: []staging.Component{item(pair[1])},
		}))
	}

	queries := countItemQueries(t, db)
	summary, err := NewLoader(db, zap.NewNop(), Options{}).Flush(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Components)
	assert.Equal(t, 3, summary.Outputs)
	// Six distinct items across nine lookups.
	assert.Equal(t, 6, *queries)

	t.Run("Cache", func(t *testing.T) {
		*queries = 0
		cache := newItemCache(db, s)
		first, err := cache.lookup(context.Background(), coal.Name())
		require.NoError(t, err)
		second, err := cache.lookup(context.Background(), coal.Name())
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, *queries)
		assert.Equal(t, 1, cache.len())
	})
}

func TestFlush_NegativeQuantity(t *testing.T) {
	db := setupTestDB(t)

	s := staging.New()
	furnace := s.GetOrIntern("minecraft:furnace")
	s.AddMachine(furnace, "Smelting")
	barrier := s.GetOrIntern("minecraft:barrier")
	s.AssociateKind(barrier, models.ItemTypeItem)
	stone := s.GetOrIntern("minecraft:stone")
	s.AssociateKind(stone, models.ItemTypeItem)
	// An export amount of -1 is staged with its bits unchanged.
	require.NoError(t, s.AddRecipe(staging.Recipe{
		Machine: furnace,
		Inputs:  []staging.CraftingSlot{{Allowed: []staging.Component{staging.ItemStack{Count: 0xFFFFFFFF, Item: barrier}}}},
		Outputs: []staging.Component{staging.ItemStack{Count: 1, Item: stone}},
	}))

	_, err := NewLoader(db, zap.NewNop(), Options{}).Flush(context.Background(), s)
	require.NoError(t, err)

	var comp models.CraftingComponent
	require.NoError(t, db.Take(&comp).Error)
	assert.Equal(t, -1, comp.Quantity)
}

func TestFlush_ProgressLogging(t *testing.T) {
	db := setupTestDB(t)
	core, logs := observer.New(zapcore.InfoLevel)

	s := staging.New()
	furnace := s.GetOrIntern("minecraft:furnace")
	s.AddMachine(furnace, "Smelting")
	sand := s.GetOrIntern("minecraft:sand")
	s.AssociateKind(sand, models.ItemTypeItem)
	glass := s.GetOrIntern("minecraft:glass")
	s.AssociateKind(glass, models.ItemTypeItem)
	for i := 0; i < 250; i++ {
		require.NoError(t, s.AddRecipe(staging.Recipe{
			Machine: furnace,
			Inputs:  []staging.CraftingSlot{{Allowed: []staging.Component{staging.ItemStack{Count: 1, Item: sand}}}},
			Outputs: []staging.Component{staging.ItemStack{Count: 1, Item: glass}},
		}))
	}

	_, err := NewLoader(db, zap.New(core), Options{}).Flush(context.Background(), s)
	require.NoError(t, err)

	entries := logs.FilterMessage("Inserting recipe contents").All()
	// One line per 1%, rounded down to every second recipe.
	require.Len(t, entries, 125)
	for i, e := range entries {
		assert.Equal(t, int64(2*(i+1)), e.ContextMap()["done"])
		assert.Equal(t, int64(250), e.ContextMap()["total"])
	}
	last := entries[len(entries)-1].ContextMap()
	assert.Equal(t, int64(100), last["percent"])
	assert.Equal(t, int64(2), last["cached_items"])
}
