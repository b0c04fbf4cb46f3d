// Package models defines the relational recipe schema.
//
// Six tables hold an import: items (solid items and fluids), machines, recipes,
// input_slots, crafting_components (the alternatives a slot accepts) and
// outputs. Foreign keys and secondary indexes are declared by name in
// schema.go because the bulk loader drops a subset of them while it streams
// recipes and re-adds them afterwards. Migrate and the integrity check work
// from the same lists.
package models
