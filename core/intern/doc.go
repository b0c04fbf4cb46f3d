// Package intern deduplicates the minecraft identifiers seen during an import.
//
// A full export repeats the same few thousand item and machine ids across
// millions of recipe slots. Interning them turns every comparison and map key
// into a 4-byte Symbol, and the original text is only recovered when rows are
// written to the database.
package intern
