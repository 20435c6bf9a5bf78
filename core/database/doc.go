// Package database handles database connections.
//
// It provides a wrapper around GORM to configure MySQL connections (sqlite for
// tests) based on the application's configuration. The reconciled Driver,
// Order and Dispatch tables live behind this connection and are shared with
// every downstream consumer of the synced state.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
