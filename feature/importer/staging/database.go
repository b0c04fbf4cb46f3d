package staging

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"mccraft/core/intern"
	"mccraft/feature/recipes/models"
)

// ErrUnknownMachine is returned when a recipe references a machine that was never registered.
var ErrUnknownMachine = errors.New("recipe references an unregistered machine")

// Database accumulates the normalized recipes of one import run.
// Side tables are first-writer-wins: later writes for a known symbol are ignored.
type Database struct {
	interner *intern.Interner
	recipes  []Recipe
	machines map[intern.Symbol]string
	kinds    map[intern.Symbol]models.ItemType
	names    map[intern.Symbol]string
}

// New creates an empty staging database with its own interner.
func New() *Database {
	return &Database{
		interner: intern.New(),
		machines: make(map[intern.Symbol]string),
		kinds:    make(map[intern.Symbol]models.ItemType),
		names:    make(map[intern.Symbol]string),
	}
}

// GetOrIntern interns a minecraft id.
func (db *Database) GetOrIntern(s string) intern.Symbol {
	return db.interner.GetOrIntern(s)
}

// Resolve returns the minecraft id behind a symbol.
func (db *Database) Resolve(sym intern.Symbol) (string, bool) {
	return db.interner.Resolve(sym)
}

// AddMachine registers a machine's human name.
func (db *Database) AddMachine(sym intern.Symbol, name string) {
	if _, ok := db.machines[sym]; !ok {
		db.machines[sym] = name
	}
}

// AssociateName records the human name of an item or fluid.
func (db *Database) AssociateName(sym intern.Symbol, name string) {
	if _, ok := db.names[sym]; !ok {
		db.names[sym] = name
	}
}

// AssociateKind records whether a symbol is an item or a fluid.
func (db *Database) AssociateKind(sym intern.Symbol, kind models.ItemType) {
	if _, ok := db.kinds[sym]; !ok {
		db.kinds[sym] = kind
	}
}

// AddRecipe commits a recipe. Its machine must be registered.
func (db *Database) AddRecipe(r Recipe) error {
	if _, ok := db.machines[r.Machine]; !ok {
		name, _ := db.Resolve(r.Machine)
		return fmt.Errorf("%w: %q", ErrUnknownMachine, name)
	}
	db.recipes = append(db.recipes, r)
	return nil
}

// Recipes returns the committed recipes in commit order.
func (db *Database) Recipes() []Recipe {
	return db.recipes
}

// NumRecipes returns the number of committed recipes.
func (db *Database) NumRecipes() int {
	return len(db.recipes)
}

// Machines returns the machine name table.
func (db *Database) Machines() map[intern.Symbol]string {
	return db.machines
}

// Kinds returns the item kind table. Every item or fluid referenced by a recipe has an entry.
func (db *Database) Kinds() map[intern.Symbol]models.ItemType {
	return db.kinds
}

// Name returns the human name of an item, if a tooltip provided one.
func (db *Database) Name(sym intern.Symbol) (string, bool) {
	name, ok := db.names[sym]
	return name, ok
}

// Dump writes a stable, human readable rendering of the staged state.
func (db *Database) Dump(w io.Writer) error {
	machines := make([]string, 0, len(db.machines))
	for sym, name := range db.machines {
		id, _ := db.Resolve(sym)
		machines = append(machines, fmt.Sprintf("machine %s %q", id, name))
	}
	sort.Strings(machines)

	items := make([]string, 0, len(db.kinds))
	for sym, kind := range db.kinds {
		id, _ := db.Resolve(sym)
		name, _ := db.Name(sym)
		items = append(items, fmt.Sprintf("%s %s %q", kind, id, name))
	}
	sort.Strings(items)

	for _, line := range append(machines, items...) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for i, r := range db.recipes {
		machine, _ := db.Resolve(r.Machine)
		if _, err := fmt.Fprintf(w, "recipe %d @ %s\n", i, machine); err != nil {
			return err
		}
		for _, slot := range r.Inputs {
			alts := make([]string, 0, len(slot.Allowed))
			for _, c := range slot.Allowed {
				alts = append(alts, describe(c, db.interner))
			}
			if _, err := fmt.Fprintf(w, "  in  %v\n", alts); err != nil {
				return err
			}
		}
		for _, c := range r.Outputs {
			if _, err := fmt.Fprintf(w, "  out %s\n", describe(c, db.interner)); err != nil {
				return err
			}
		}
	}
	return nil
}
