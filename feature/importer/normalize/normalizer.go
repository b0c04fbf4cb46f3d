package normalize

import (
	"errors"
	"fmt"

	"mccraft/core/intern"
	"mccraft/feature/importer/export"
	"mccraft/feature/importer/staging"
	"mccraft/feature/recipes/models"
)

// ErrInvariant marks export data the normalizer refuses to interpret.
// It is fatal for the whole import run.
var ErrInvariant = errors.New("export violates recipe invariant")

// Stats counts what a Normalizer has done so far.
type Stats struct {
	Documents  int
	Recipes    int
	Expansions int
}

// Normalizer turns export documents into staged recipes.
type Normalizer struct {
	db    *staging.Database
	stats Stats
}

// New creates a normalizer writing into db.
func New(db *staging.Database) *Normalizer {
	return &Normalizer{db: db}
}

// Stats returns the running counters.
func (n *Normalizer) Stats() Stats {
	return n.stats
}

// Normalize stages every recipe of a document and returns how many recipes it committed.
// The machine is named after the category and identified by the background texture.
func (n *Normalizer) Normalize(doc *export.CraftingInstance) (int, error) {
	machine := n.db.GetOrIntern(doc.Bg.Tex)
	n.db.AddMachine(machine, doc.Category)
	n.stats.Documents++

	before := n.db.NumRecipes()
	for i, raw := range doc.Recipes {
		if err := n.normalizeRecipe(machine, raw); err != nil {
			added := n.db.NumRecipes() - before
			n.stats.Recipes += added
			return added, fmt.Errorf("%s recipe %d: %w", doc.Category, i, err)
		}
	}

	added := n.db.NumRecipes() - before
	n.stats.Recipes += added
	return added, nil
}

func (n *Normalizer) normalizeRecipe(machine intern.Symbol, raw export.Recipe) error {
	r := staging.Recipe{Machine: machine}

	for _, slot := range raw.IngredientItems {
		if len(slot.Stacks) == 0 {
			continue
		}
		if !slot.IsInput && len(slot.Stacks) > 1 {
			// The expansion emits every variant, the direct recipe is dropped.
			return n.expand(machine, raw, len(slot.Stacks))
		}
		n.addItemSlot(&r, slot)
	}

	for _, slot := range raw.IngredientFluids {
		if err := n.addFluidSlot(&r, slot); err != nil {
			return err
		}
	}

	return n.db.AddRecipe(r)
}

// addItemSlot adds an input slot, or the single stack of an output slot.
func (n *Normalizer) addItemSlot(r *staging.Recipe, slot export.IngredientItem) {
	if !slot.IsInput {
		r.Outputs = append(r.Outputs, n.itemStack(slot.Stacks[0]))
		return
	}
	allowed := make([]staging.Component, 0, len(slot.Stacks))
	for _, s := range slot.Stacks {
		allowed = append(allowed, n.itemStack(s))
	}
	r.Inputs = append(r.Inputs, staging.CraftingSlot{Allowed: allowed})
}

func (n *Normalizer) addFluidSlot(r *staging.Recipe, slot export.IngredientFluid) error {
	if len(slot.Fluids) == 0 {
		return nil
	}
	if !slot.IsInput {
		if len(slot.Fluids) != 1 {
			return fmt.Errorf("%w: fluid output slot with %d fluids", ErrInvariant, len(slot.Fluids))
		}
		r.Outputs = append(r.Outputs, n.fluid(slot.Fluids[0]))
		return nil
	}
	allowed := make([]staging.Component, 0, len(slot.Fluids))
	for _, f := range slot.Fluids {
		allowed = append(allowed, n.fluid(f))
	}
	r.Inputs = append(r.Inputs, staging.CraftingSlot{Allowed: allowed})
	return nil
}

func (n *Normalizer) itemStack(s export.ItemStack) staging.Component {
	sym := n.db.GetOrIntern(s.Type)
	n.db.AssociateKind(sym, models.ItemTypeItem)
	return staging.ItemStack{Count: uint32(s.Amount), Item: sym}
}

func (n *Normalizer) fluid(f export.Fluid) staging.Component {
	sym := n.db.GetOrIntern(f.Type)
	n.db.AssociateKind(sym, models.ItemTypeFluid)
	return staging.Fluid{Amount: uint32(f.Amount), Fluid: sym}
}

// ImportTooltips records the human names of a tooltip map. It returns the number of entries.
func ImportTooltips(db *staging.Database, tm *export.TooltipMap) int {
	for id, name := range tm.Map {
		db.AssociateName(db.GetOrIntern(id), name)
	}
	return len(tm.Map)
}
