package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"agenda-horario/retention/pkg/compliance"
)

// MemoryStore implements the Store interface using an in-memory map.
// Intended for tests and local runs; contents do not survive the process.
type MemoryStore struct {
	records map[string]*compliance.LogRecord
	mu      sync.RWMutex

	// maxBatch is the atomic batch limit reported by MaxBatchSize (0 = unlimited).
	maxBatch int

	// commitHook, when set, runs before a batch is applied. A non-nil
	// return aborts the batch without deleting anything.
	commitHook func(ids []string) error

	// queryHook, when set, runs before QueryBefore reads the map.
	queryHook func() error
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*compliance.LogRecord),
	}
}

// SetMaxBatchSize sets the atomic batch limit (for testing).
func (s *MemoryStore) SetMaxBatchSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxBatch = n
}

// SetCommitHook installs a hook that can fail batch commits (for testing).
func (s *MemoryStore) SetCommitHook(hook func(ids []string) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitHook = hook
}

// SetQueryHook installs a hook that can fail queries (for testing).
func (s *MemoryStore) SetQueryHook(hook func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryHook = hook
}

// Insert stores a copy of record, assigning a UUID when ID is empty.
func (s *MemoryStore) Insert(ctx context.Context, record *compliance.LogRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recordCopy := copyRecord(record)
	if recordCopy.ID == "" {
		recordCopy.ID = uuid.New().String()
	}
	s.records[recordCopy.ID] = recordCopy

	return recordCopy.ID, nil
}

// QueryBefore returns copies of all records with Timestamp strictly before cutoff.
func (s *MemoryStore) QueryBefore(ctx context.Context, cutoff time.Time) ([]*compliance.LogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, compliance.NewStoreUnavailableError("memory", "query", err)
	}
	if s.queryHook != nil {
		if err := s.queryHook(); err != nil {
			return nil, compliance.NewStoreUnavailableError("memory", "query", err)
		}
	}

	results := []*compliance.LogRecord{}
	for _, record := range s.records {
		if record.Timestamp.Before(cutoff) {
			results = append(results, copyRecord(record))
		}
	}

	return results, nil
}

// DeleteBatch removes all ids atomically. The commit hook, if any, decides
// whether the batch is applied; a rejected batch leaves the map untouched.
func (s *MemoryStore) DeleteBatch(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return compliance.NewStoreUnavailableError("memory", "delete_batch", err)
	}
	if s.maxBatch > 0 && len(ids) > s.maxBatch {
		return compliance.NewStoreUnavailableError("memory", "delete_batch", compliance.ErrBatchLimitExceeded)
	}
	if s.commitHook != nil {
		if err := s.commitHook(ids); err != nil {
			return compliance.NewStoreUnavailableError("memory", "delete_batch", err)
		}
	}

	for _, id := range ids {
		delete(s.records, id)
	}

	return nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.records)), nil
}

// MaxBatchSize returns the configured batch limit (0 = unlimited).
func (s *MemoryStore) MaxBatchSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.maxBatch
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close releases resources held by the store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*compliance.LogRecord)
	return nil
}

// GetByID retrieves a single record by ID (for testing).
func (s *MemoryStore) GetByID(id string) *compliance.LogRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil
	}
	return copyRecord(record)
}

func copyRecord(record *compliance.LogRecord) *compliance.LogRecord {
	recordCopy := *record
	if record.Fields != nil {
		recordCopy.Fields = make(map[string]any, len(record.Fields))
		for k, v := range record.Fields {
			recordCopy.Fields[k] = v
		}
	}
	return &recordCopy
}
