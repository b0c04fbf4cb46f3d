// Package normalize converts jeiexporter recipe documents into staged recipes.
//
// A raw recipe lists positioned slots, each with a list of stacks. For an
// input slot the stacks are alternatives. For an output slot there is normally
// a single stack; several stacks mean the record packs N parallel recipes
// ("input i makes output i"), and the normalizer expands it into N recipes by
// zipping every slot of the same size.
//
// Fluid outputs with more than one fluid, and outputs whose size does not
// match the covariant group, return ErrInvariant. Callers treat it as fatal.
package normalize
