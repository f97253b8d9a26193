// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server or a local SQLite file, based on
// the application's configuration. SQLite is the default for the local team store;
// ":memory:" gives an ephemeral database, which the tests rely on.
//
// # Connect
//
// Connect opens the configured dialector, applies pool settings and pings the
// database with the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table on either dialect. The record store
// uses it to verify the teams table when automatic migration is disabled.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "teams")
package database
