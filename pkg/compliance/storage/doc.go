// Package storage provides storage backends for compliance log records.
//
// # Storage Backends
//
//   - Firestore: the managed document database holding production logs
//   - SQLite: embedded database for single-node deployments and staging
//   - Memory: in-memory store for testing
//
// # Atomic Batch Delete
//
// Every backend implements DeleteBatch as a single atomic write:
//
//   - Firestore: one transaction, at most 500 deletes
//   - SQLite: one database/sql transaction, optional MaxBatchSize
//   - Memory: one critical section, optional injected commit failure
//
// A batch larger than MaxBatchSize is rejected with
// compliance.ErrBatchLimitExceeded before anything is deleted.
//
// # SQLite Drivers
//
// The SQLite store works with either registered driver:
//
//	// cgo driver (github.com/mattn/go-sqlite3)
//	store, err := storage.NewSQLiteStore(&storage.SQLiteConfig{
//	    Path:   "data/lgpd_logs.db",
//	    Driver: storage.DriverCGO,
//	})
//
//	// pure Go driver (modernc.org/sqlite)
//	store, err := storage.NewSQLiteStore(&storage.SQLiteConfig{
//	    Path:   "data/lgpd_logs.db",
//	    Driver: storage.DriverPureGo,
//	})
//
// Timestamps are stored as UTC Unix nanoseconds so the strict "before cutoff"
// comparison behaves the same under both drivers.
//
// # Firestore
//
//	store, err := storage.NewFirestoreStore(ctx, &storage.FirestoreConfig{
//	    ProjectID:      "agenda-horario",
//	    Collection:     "lgpd_logs",
//	    TimestampField: "data_hora",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Set FIRESTORE_EMULATOR_HOST to run against the local emulator.
package storage
