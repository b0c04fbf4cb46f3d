package staging

import (
	"fmt"

	"mccraft/core/intern"
	"mccraft/feature/recipes/models"
)

// Component is one concrete ingredient or output: an ItemStack or a Fluid.
// The interface is sealed; type switches over it cover exactly those two.
type Component interface {
	// Name is the interned minecraft id.
	Name() intern.Symbol
	// Quantity is the stack count or fluid amount.
	Quantity() uint32
	// Kind is the item type the component is stored as.
	Kind() models.ItemType
	isComponent()
}

// ItemStack is a count of a solid item.
type ItemStack struct {
	Count uint32
	Item  intern.Symbol
}

func (s ItemStack) Name() intern.Symbol { return s.Item }
func (s ItemStack) Quantity() uint32 { return s.Count }
func (s ItemStack) Kind() models.ItemType { return models.ItemTypeItem }
func (ItemStack) isComponent() {}

// Fluid is an amount of a fluid in millibuckets.
type Fluid struct {
	Amount uint32
	Fluid  intern.Symbol
}

func (f Fluid) Name() intern.Symbol { return f.Fluid }
func (f Fluid) Quantity() uint32 { return f.Amount }
func (f Fluid) Kind() models.ItemType { return models.ItemTypeFluid }
func (Fluid) isComponent() {}

// CraftingSlot is an input position accepting any one of its alternatives.
// Order is irrelevant. A staged slot is never empty.
type CraftingSlot struct {
	Allowed []Component
}

// Recipe is a normalized recipe of a single machine.
type Recipe struct {
	Machine intern.Symbol
	Inputs  []CraftingSlot
	Outputs []Component
}

// Clone returns a copy sharing no slices with r.
// Components are immutable values, so copying the slices is enough.
func (r Recipe) Clone() Recipe {
	out := Recipe{
		Machine: r.Machine,
		Inputs:  make([]CraftingSlot, len(r.Inputs)),
		Outputs: append([]Component(nil), r.Outputs...),
	}
	for i, slot := range r.Inputs {
		out.Inputs[i] = CraftingSlot{Allowed: append([]Component(nil), slot.Allowed...)}
	}
	return out
}

// describe renders a component for logs and dumps.
func describe(c Component, in *intern.Interner) string {
	name, _ := in.Resolve(c.Name())
	switch c.(type) {
	case ItemStack:
		return fmt.Sprintf("%dx %s", c.Quantity(), name)
	case Fluid:
		return fmt.Sprintf("%dmB %s", c.Quantity(), name)
	default:
		panic(fmt.Sprintf("unknown recipe component %T", c))
	}
}
