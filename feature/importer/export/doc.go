// Package export describes the files written by the jeiexporter mod.
//
// An export folder holds one JSON document per JEI recipe category plus two
// name maps. Recipe documents decode into CraftingInstance; the tooltip map
// decodes into TooltipMap. Lists of stacks may contain nulls, which are
// dropped while decoding.
package export
