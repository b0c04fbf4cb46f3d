package recipes

import "mccraft/feature/recipes/models"

// ItemSpec is one item or fluid of a recipe together with its quantity.
type ItemSpec struct {
	ItemID      uint            `json:"item_id"`
	ItemName    string          `json:"item_name"`
	MinecraftID string          `json:"minecraft_id"`
	Type        models.ItemType `json:"ty"`
	Quantity    int             `json:"quantity"`
}

// InputSlot lists the alternatives accepted by one input slot.
type InputSlot struct {
	Items []ItemSpec `json:"items"`
}

// PartialRecipe names a recipe and the machine it runs in.
type PartialRecipe struct {
	MachineID   uint   `json:"machine_id"`
	MachineName string `json:"machine_name"`
	RecipeID    uint   `json:"recipe_id"`
}

// Recipe is a complete recipe with its inputs and outputs.
type Recipe struct {
	ID          uint        `json:"id"`
	MachineID   uint        `json:"machine_id"`
	MachineName string      `json:"machine_name"`
	InputSlots  []InputSlot `json:"input_slots"`
	Outputs     []ItemSpec  `json:"outputs"`
}

// SearchQuery selects a page of items by name prefix.
type SearchQuery struct {
	Q      string `query:"q"`
	Offset int    `query:"offset"`
	Limit  int    `query:"limit"`
}
