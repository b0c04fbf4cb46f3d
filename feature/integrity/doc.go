// Package integrity provides health checks for the recipe store and the export source.
//
// # Checks Provided
//
//   - Schema: compares the recipe tables with the GORM models (columns, types)
//     and looks up every named foreign key and index. A missing constraint that
//     the bulk loader relaxes means an import stopped inside its constraint
//     window; `mccraft migrate` or ?fix=true puts it back.
//   - Exports: checks that the storage bucket holds recipe exports and a
//     tooltip map under the configured prefix.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check (supports ?fix=true).
//   - GET /integrity/exports : Runs the exports check (supports ?fix=true).
package integrity
