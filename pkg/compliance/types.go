package compliance

import (
	"context"
	"time"
)

// LogRecord is a single LGPD compliance log entry.
type LogRecord struct {
	// ID is assigned by the store when empty on insert.
	ID string `json:"id"`

	// Timestamp is when the logged event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Fields is the payload written by the logging subsystem.
	// The retention sweeper never reads or mutates it.
	Fields map[string]any `json:"fields,omitempty"`
}

// Store defines the interface for compliance log storage backends.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// Insert persists a log record and returns its identifier.
	// A new identifier is assigned if record.ID is empty.
	Insert(ctx context.Context, record *LogRecord) (string, error)

	// QueryBefore returns every record whose timestamp is strictly before
	// cutoff. Results are unordered. Returns an empty slice if nothing matches.
	QueryBefore(ctx context.Context, cutoff time.Time) ([]*LogRecord, error)

	// DeleteBatch removes the records with the given identifiers as one
	// atomic write: either all are removed or none are.
	// Identifiers that no longer exist are ignored.
	DeleteBatch(ctx context.Context, ids []string) error

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// MaxBatchSize is the largest number of deletes the backend accepts in
	// one atomic batch. 0 means unlimited.
	MaxBatchSize() int

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the storage backend.
	Close() error
}

// RecordIDs returns the identifiers of records, in order.
func RecordIDs(records []*LogRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}
