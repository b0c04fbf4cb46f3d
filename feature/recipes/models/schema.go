package models

import (
	"fmt"

	"mccraft/core/database"

	"gorm.io/gorm"
)

// ForeignKey is a named foreign key on a single column referencing another table's id.
type ForeignKey struct {
	Name       string
	Table      string
	Column     string
	References string
	// Relaxed keys are dropped by the bulk loader for the duration of a recipe import.
	Relaxed bool
}

// Index is a named secondary index on a single column.
type Index struct {
	Name    string
	Table   string
	Column  string
	Relaxed bool
}

// ForeignKeys lists the foreign keys of the recipe schema.
var ForeignKeys = []ForeignKey{
	{Name: "fk_recipes_machine", Table: "recipes", Column: "machine_id", References: "machines"},
	{Name: "fk_input_slots_recipe", Table: "input_slots", Column: "recipe_id", References: "recipes", Relaxed: true},
	{Name: "fk_crafting_components_slot", Table: "crafting_components", Column: "slot_id", References: "input_slots", Relaxed: true},
	{Name: "fk_crafting_components_item", Table: "crafting_components", Column: "item_id", References: "items", Relaxed: true},
	{Name: "fk_outputs_item", Table: "outputs", Column: "item_id", References: "items", Relaxed: true},
	{Name: "fk_outputs_recipe", Table: "outputs", Column: "recipe_id", References: "recipes", Relaxed: true},
}

// Indexes lists the secondary indexes of the recipe schema.
var Indexes = []Index{
	{Name: "idx_recipes_machine", Table: "recipes", Column: "machine_id"},
	{Name: "idx_input_slots_recipe", Table: "input_slots", Column: "recipe_id"},
	{Name: "idx_outputs_recipe", Table: "outputs", Column: "recipe_id"},
	{Name: "idx_crafting_components_item", Table: "crafting_components", Column: "item_id", Relaxed: true},
	{Name: "idx_crafting_components_slot", Table: "crafting_components", Column: "slot_id", Relaxed: true},
	{Name: "idx_outputs_item", Table: "outputs", Column: "item_id", Relaxed: true},
}

// ForeignKeysFor returns the foreign keys the dialect can declare by name.
// SQLite cannot add constraints to existing tables, so it gets none.
func ForeignKeysFor(dialect string) []ForeignKey {
	if dialect == database.DriverSQLite {
		return nil
	}
	return ForeignKeys
}

// AddSQL returns the statement creating the foreign key.
func (fk ForeignKey) AddSQL() string {
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(id)",
		fk.Table, fk.Name, fk.Column, fk.References)
}

// DropSQL returns the statement removing the foreign key.
func (fk ForeignKey) DropSQL() string {
	return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s", fk.Table, fk.Name)
}

// CreateSQL returns the statement creating the index.
func (ix Index) CreateSQL() string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s)", ix.Name, ix.Table, ix.Column)
}

// DropSQL returns the statement removing the index in the given dialect.
func (ix Index) DropSQL(dialect string) string {
	if dialect == database.DriverSQLite {
		return fmt.Sprintf("DROP INDEX %s", ix.Name)
	}
	return fmt.Sprintf("DROP INDEX %s ON %s", ix.Name, ix.Table)
}

// Migrate creates the recipe tables and any missing index or foreign key.
// Re-running it after an interrupted import restores the dropped constraints.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	if _, err := EnsureConstraints(db); err != nil {
		return err
	}
	return nil
}

// EnsureConstraints creates indexes first and foreign keys second, skipping the ones present.
// It returns the names it had to create.
func EnsureConstraints(db *gorm.DB) ([]string, error) {
	dialect := db.Dialector.Name()
	var created []string

	existing := make(map[string]map[string]bool)
	lookup := func(table string, fetch func(*gorm.DB, string) ([]string, error), kind string) (map[string]bool, error) {
		key := kind + ":" + table
		if set, ok := existing[key]; ok {
			return set, nil
		}
		names, err := fetch(db, table)
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[n] = true
		}
		existing[key] = set
		return set, nil
	}

	for _, ix := range Indexes {
		present, err := lookup(ix.Table, database.GetTableIndexes, "index")
		if err != nil {
			return created, err
		}
		if present[ix.Name] {
			continue
		}
		if err := db.Exec(ix.CreateSQL()).Error; err != nil {
			return created, fmt.Errorf("failed to create index %s: %w", ix.Name, err)
		}
		created = append(created, ix.Name)
	}

	for _, fk := range ForeignKeysFor(dialect) {
		present, err := lookup(fk.Table, database.GetTableForeignKeys, "fk")
		if err != nil {
			return created, err
		}
		if present[fk.Name] {
			continue
		}
		if err := db.Exec(fk.AddSQL()).Error; err != nil {
			return created, fmt.Errorf("failed to add foreign key %s: %w", fk.Name, err)
		}
		created = append(created, fk.Name)
	}

	return created, nil
}
