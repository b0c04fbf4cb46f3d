package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// CraftingInstance is one jeiexporter recipe document: every recipe of a single JEI category.
type CraftingInstance struct {
	// Category is the human readable machine name, e.g. "Smelting".
	Category string          `json:"category"`
	Bg       BackgroundImage `json:"bg"`
	Recipes  []Recipe        `json:"recipes"`
}

// BackgroundImage is the GUI texture of the category. Its texture id names the machine.
type BackgroundImage struct {
	Width  int    `json:"w"`
	Height int    `json:"h"`
	Tex    string `json:"tex"`
}

// Recipe is a raw recipe as exported: positioned slots, no distinction between
// a covariant slot and a plain alternatives list.
type Recipe struct {
	IngredientItems  []IngredientItem  `json:"ingredientItems"`
	IngredientFluids []IngredientFluid `json:"ingredientFluids"`
}

// ItemStack is a quantity of a minecraft item.
type ItemStack struct {
	Amount int32  `json:"amount"`
	Type   string `json:"type"`
}

// Fluid is a quantity of a fluid, in millibuckets.
type Fluid struct {
	Amount int32  `json:"amount"`
	Type   string `json:"type"`
}

// IngredientItem is a positioned item slot.
type IngredientItem struct {
	X       float32            `json:"x"`
	Y       float32            `json:"y"`
	W       float32            `json:"w"`
	H       float32            `json:"h"`
	P       uint32             `json:"p"`
	IsInput bool               `json:"in"`
	Stacks  NonNull[ItemStack] `json:"stacks"`
}

// IngredientFluid is a positioned fluid slot.
type IngredientFluid struct {
	X       float32        `json:"x"`
	Y       float32        `json:"y"`
	W       float32        `json:"w"`
	H       float32        `json:"h"`
	P       uint32         `json:"p"`
	IsInput bool           `json:"in"`
	Fluids  NonNull[Fluid] `json:"fluids"`
}

// NonNull is a JSON list that drops null elements while decoding.
// jeiexporter writes null for stacks it could not serialise.
type NonNull[T any] []T

func (n *NonNull[T]) UnmarshalJSON(data []byte) error {
	var raw []*T
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]T, 0, len(raw))
	for _, v := range raw {
		if v != nil {
			out = append(out, *v)
		}
	}
	*n = out
	return nil
}

// DecodeCraftingInstance reads a recipe document.
func DecodeCraftingInstance(r io.Reader) (*CraftingInstance, error) {
	var doc CraftingInstance
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode recipe document: %w", err)
	}
	return &doc, nil
}
