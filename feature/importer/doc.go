// Package importer runs an import: it reads one folder of jeiexporter files,
// stages every recipe in memory and flushes the result into the recipe tables.
//
// # Sources
//
// A Source lists and opens export files. DirSource reads <dir>/exports on the
// local disk. BucketSource reads the same files from an object storage prefix,
// see UploadDir for publishing a local folder.
//
// # Error policy
//
// A file that cannot be opened or decoded is logged and skipped. Invariant
// violations found while normalizing (normalize.ErrInvariant) stop the run.
// Store errors during the flush are returned as is; see package bulk for the
// state the tables are left in.
package importer
