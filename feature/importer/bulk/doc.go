// Package bulk flushes a staging database into the recipe tables.
//
// The flush runs in phases:
//
//  1. items and fluids, batched, duplicates by minecraft id ignored
//  2. machines, then a read back of their ids
//  3. relaxed foreign keys and indexes dropped
//  4. recipes, batched, ids captured in order
//  5. per recipe: input slots, crafting components and outputs, with item ids
//     cached after a first point query
//  6. indexes and foreign keys re-created
//
// Between 3 and 6 the database accepts rows without referential checks. If
// the process dies there, `mccraft migrate` re-creates whatever is missing and
// `mccraft integrity schema` shows it.
package bulk
