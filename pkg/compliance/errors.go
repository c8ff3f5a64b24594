package compliance

import (
	"errors"
	"fmt"
	"time"
)

// ErrBatchLimitExceeded is returned when the matched record set is larger than
// the store's atomic batch limit. The sweep is refused rather than split.
var ErrBatchLimitExceeded = errors.New("matched records exceed store batch limit")

// StoreUnavailableError represents a query or commit that could not complete.
type StoreUnavailableError struct {
	Backend   string // Storage backend type ("firestore", "sqlite", "memory")
	Operation string // Operation that failed ("query", "delete_batch", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StoreUnavailableError) Unwrap() error {
	return e.Cause
}

// NewStoreUnavailableError creates a new StoreUnavailableError.
func NewStoreUnavailableError(backend, operation string, cause error) *StoreUnavailableError {
	return &StoreUnavailableError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// IsStoreUnavailable reports whether err is or wraps a StoreUnavailableError.
func IsStoreUnavailable(err error) bool {
	var sue *StoreUnavailableError
	return errors.As(err, &sue)
}

// RetentionError represents a failed retention sweep.
type RetentionError struct {
	RetentionYears int       // Configured retention period
	Cutoff         time.Time // Cutoff computed for the failed run
	Cause          error     // Underlying error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("retention error [retention_years=%d, cutoff=%s]: %v",
		e.RetentionYears, e.Cutoff.Format(time.RFC3339), e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// NewRetentionError creates a new RetentionError.
func NewRetentionError(retentionYears int, cutoff time.Time, cause error) *RetentionError {
	return &RetentionError{
		RetentionYears: retentionYears,
		Cutoff:         cutoff,
		Cause:          cause,
	}
}
