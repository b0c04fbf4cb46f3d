// Package staging holds the in-memory result of normalizing an export folder.
//
// A Database owns the interner, the committed recipes and three side tables
// keyed by symbol: machine names, item kinds and item names. It is filled by
// the normalizer, drained once by the bulk loader and then discarded.
package staging
