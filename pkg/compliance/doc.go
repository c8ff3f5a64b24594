// Package compliance defines the LGPD compliance log record and the storage
// contract the retention sweeper runs against.
//
// # Log Records
//
// Compliance log records are written by an external logging subsystem and are
// immutable once stored. Each record carries:
//   - An identifier assigned by the store
//   - The timestamp of the logged event (Firestore field "data_hora")
//   - An opaque payload the sweeper never reads
//
// # Lifecycle
//
//	External logger → Store.Insert
//	     ↓
//	(five calendar years pass)
//	     ↓
//	Retention Sweeper → Store.QueryBefore(cutoff)
//	     ↓
//	Store.DeleteBatch(ids)  (atomic, all-or-nothing)
//
// The sweeper is the only deletion path. Deleting an identifier that no
// longer exists is a no-op, which makes repeated or overlapping sweeps safe.
//
// # Storage Backends
//
// See package storage for the Firestore, SQLite and in-memory implementations.
//
// # Errors
//
// The only modeled failure kind is StoreUnavailableError: a query or commit
// that could not complete. Retention runs wrap it in a RetentionError that
// carries the computed cutoff.
package compliance
