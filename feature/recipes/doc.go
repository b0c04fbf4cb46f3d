// Package recipes serves the imported recipe tables over HTTP.
//
// Routes:
//
//	GET /items/:id          item or fluid row
//	GET /producers/:id      recipes that output the item
//	GET /producers?name=    recipes whose output name starts with name
//	GET /recipes/:id        machine, input slots with alternatives, outputs
//	GET /search?q=          items whose name starts with q (offset, limit)
//
// All queries are read-only. Results seen while an import holds the relaxed
// constraints dropped may reference rows that are not yet written.
package recipes
