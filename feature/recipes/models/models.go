package models

// ItemType distinguishes solid items from fluids.
type ItemType string

const (
	ItemTypeItem  ItemType = "item"
	ItemTypeFluid ItemType = "fluid"
)

// Item represents the 'items' table. Fluids share the table with solid items.
type Item struct {
	ID          uint     `gorm:"column:id;primaryKey" json:"id"`
	Type        ItemType `gorm:"column:ty;type:varchar(8);not null" json:"ty"`
	HumanName   string   `gorm:"column:human_name;type:varchar(255);not null" json:"human_name"`
	MinecraftID string   `gorm:"column:minecraft_id;type:varchar(255);not null;uniqueIndex:uq_items_minecraft_id" json:"minecraft_id"`
}

func (Item) TableName() string {
	return "items"
}

// Machine represents the 'machines' table: the crafting table, furnace or modded machine a recipe runs in.
type Machine struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	HumanName   string `gorm:"column:human_name;type:varchar(255);not null" json:"human_name"`
	MinecraftID string `gorm:"column:minecraft_id;type:varchar(255);not null;uniqueIndex:uq_machines_minecraft_id" json:"minecraft_id"`
}

func (Machine) TableName() string {
	return "machines"
}

// Recipe represents the 'recipes' table.
type Recipe struct {
	ID        uint `gorm:"column:id;primaryKey" json:"id"`
	MachineID uint `gorm:"column:machine_id;not null" json:"machine_id"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// InputSlot represents the 'input_slots' table. A slot accepts any one of its crafting components.
type InputSlot struct {
	ID       uint `gorm:"column:id;primaryKey" json:"id"`
	RecipeID uint `gorm:"column:recipe_id;not null" json:"recipe_id"`
}

func (InputSlot) TableName() string {
	return "input_slots"
}

// CraftingComponent represents the 'crafting_components' table: one alternative accepted by an input slot.
type CraftingComponent struct {
	ID       uint `gorm:"column:id;primaryKey" json:"id"`
	SlotID   uint `gorm:"column:slot_id;not null" json:"slot_id"`
	ItemID   uint `gorm:"column:item_id;not null" json:"item_id"`
	Quantity int  `gorm:"column:quantity;not null" json:"quantity"`
}

func (CraftingComponent) TableName() string {
	return "crafting_components"
}

// Output represents the 'outputs' table.
type Output struct {
	ID       uint `gorm:"column:id;primaryKey" json:"id"`
	RecipeID uint `gorm:"column:recipe_id;not null" json:"recipe_id"`
	ItemID   uint `gorm:"column:item_id;not null" json:"item_id"`
	Quantity int  `gorm:"column:quantity;not null" json:"quantity"`
}

func (Output) TableName() string {
	return "outputs"
}

// All returns every model in creation order.
func All() []interface{} {
	return []interface{}{
		&Item{},
		&Machine{},
		&Recipe{},
		&InputSlot{},
		&CraftingComponent{},
		&Output{},
	}
}
