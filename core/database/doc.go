// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (local runs and tests) connections from the application's configuration.
//
// # Connect
//
// Connect opens the connection, applies pool settings and pings the server
// within the configured timeout.
//
// # Schema Inspection
//
// The inspector reads columns, indexes and foreign key names of a table. The
// integrity check uses it to compare the live schema with the recipe models and
// to detect constraints left dropped by an interrupted bulk import.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	indexes, err := database.GetTableIndexes(db, "outputs")
package database
