// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections for
// production and SQLite connections for tests, based on the application's
// configuration.
//
// # Connect
//
// The Connect function establishes a connection based on the configured
// driver. MySQL connections get pool limits and an initial ping; SQLite
// (used by the test suites) opens directly, with shared-cache mode for
// in-memory databases so every pooled connection sees the same data.
//
// # Schema Inspection
//
// The package also includes tools to inspect the live schema. The audit
// feature uses them to verify that the tables the service depends on exist
// with the expected columns before checking data-level invariants.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "transactions")
package database
