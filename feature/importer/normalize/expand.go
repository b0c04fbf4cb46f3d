package normalize

import (
	"fmt"

	"mccraft/core/intern"
	"mccraft/feature/importer/export"
	"mccraft/feature/importer/staging"
)

// expand splits a record whose slots are parallel arrays into count recipes.
//
// Item slots holding exactly count stacks are covariant: variant i takes stack i
// of every one of them. Every other slot goes into a template shared by all
// variants. Slots are matched by size only, so two unrelated slots that happen
// to have count stacks are zipped together as well.
func (n *Normalizer) expand(machine intern.Symbol, raw export.Recipe, count int) error {
	template := staging.Recipe{Machine: machine}
	var covariantInputs, covariantOutputs []export.IngredientItem

	for _, slot := range raw.IngredientItems {
		switch {
		case len(slot.Stacks) == 0:
			continue
		case len(slot.Stacks) == count && slot.IsInput:
			covariantInputs = append(covariantInputs, slot)
		case len(slot.Stacks) == count:
			covariantOutputs = append(covariantOutputs, slot)
		case !slot.IsInput && len(slot.Stacks) != 1:
			return fmt.Errorf("%w: output slot with %d stacks next to a %d-way covariant slot",
				ErrInvariant, len(slot.Stacks), count)
		default:
			n.addItemSlot(&template, slot)
		}
	}

	// Fluids never take part in covariance.
	for _, slot := range raw.IngredientFluids {
		if err := n.addFluidSlot(&template, slot); err != nil {
			return err
		}
	}

	n.stats.Expansions++
	for i := 0; i < count; i++ {
		variant := template.Clone()
		for _, slot := range covariantInputs {
			variant.Inputs = append(variant.Inputs, staging.CraftingSlot{
				Allowed: []staging.Component{n.itemStack(slot.Stacks[i])},
			})
		}
		for _, slot := range covariantOutputs {
			variant.Outputs = append(variant.Outputs, n.itemStack(slot.Stacks[i]))
		}
		if err := n.db.AddRecipe(variant); err != nil {
			return err
		}
	}
	return nil
}
