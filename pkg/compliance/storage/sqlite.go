package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"agenda-horario/retention/pkg/compliance"
)

const (
	// DriverCGO selects github.com/mattn/go-sqlite3.
	DriverCGO = "sqlite3"

	// DriverPureGo selects modernc.org/sqlite.
	DriverPureGo = "sqlite"
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is the database/sql driver name: "sqlite3" (cgo) or "sqlite" (pure Go).
	// Default: "sqlite3"
	Driver string

	// Table is the table holding log records.
	// Default: "lgpd_logs"
	Table string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// MaxBatchSize caps the number of deletes per atomic batch. 0 means unlimited.
	MaxBatchSize int
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/lgpd_logs.db",
		Driver:       DriverCGO,
		Table:        DefaultCollection,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens the database, applies pragmas and creates the schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverCGO
	}
	if config.Table == "" {
		config.Table = DefaultCollection
	}
	if config.Driver != DriverCGO && config.Driver != DriverPureGo {
		return nil, fmt.Errorf("unsupported sqlite driver %q", config.Driver)
	}

	logger := slog.Default().With("component", "compliance.storage.sqlite")

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, compliance.NewStoreUnavailableError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite store initialized",
		"path", config.Path,
		"driver", config.Driver,
		"table", config.Table,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets pragmas, creates the schema and verifies its version.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return compliance.NewStoreUnavailableError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return compliance.NewStoreUnavailableError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(CreateSchemaVersionTable); err != nil {
		return compliance.NewStoreUnavailableError("sqlite", "create_schema", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		version = SchemaVersion
		if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
			return compliance.NewStoreUnavailableError("sqlite", "insert_schema_version", err)
		}
	case err != nil:
		return compliance.NewStoreUnavailableError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return compliance.NewStoreUnavailableError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	if _, err := s.db.Exec(schema(s.config.Table)); err != nil {
		return compliance.NewStoreUnavailableError("sqlite", "create_schema", err)
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Insert persists a log record, assigning a UUID when ID is empty.
func (s *SQLiteStore) Insert(ctx context.Context, record *compliance.LogRecord) (string, error) {
	id := record.ID
	if id == "" {
		id = uuid.New().String()
	}

	var fields []byte
	if record.Fields != nil {
		var err error
		fields, err = json.Marshal(record.Fields)
		if err != nil {
			return "", fmt.Errorf("failed to encode record fields: %w", err)
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (id, ts_sec, ts_nsec, fields) VALUES (?, ?, ?, ?)", s.config.Table)
	ts := record.Timestamp
	if _, err := s.db.ExecContext(ctx, query, id, ts.Unix(), ts.Nanosecond(), string(fields)); err != nil {
		return "", compliance.NewStoreUnavailableError("sqlite", "insert", err)
	}

	return id, nil
}

// QueryBefore returns all records with a timestamp strictly before cutoff.
func (s *SQLiteStore) QueryBefore(ctx context.Context, cutoff time.Time) ([]*compliance.LogRecord, error) {
	query := fmt.Sprintf(
		"SELECT id, ts_sec, ts_nsec, fields FROM %s WHERE ts_sec < ? OR (ts_sec = ? AND ts_nsec < ?)",
		s.config.Table)

	sec, nsec := cutoff.Unix(), cutoff.Nanosecond()
	rows, err := s.db.QueryContext(ctx, query, sec, sec, nsec)
	if err != nil {
		return nil, compliance.NewStoreUnavailableError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*compliance.LogRecord{}
	for rows.Next() {
		var (
			record compliance.LogRecord
			sec    int64
			nsec   int64
			fields sql.NullString
		)
		if err := rows.Scan(&record.ID, &sec, &nsec, &fields); err != nil {
			return nil, compliance.NewStoreUnavailableError("sqlite", "scan", err)
		}
		record.Timestamp = time.Unix(sec, nsec).UTC()
		if fields.Valid && fields.String != "" {
			if err := json.Unmarshal([]byte(fields.String), &record.Fields); err != nil {
				s.logger.Warn("undecodable record fields", "id", record.ID, "error", err)
			}
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, compliance.NewStoreUnavailableError("sqlite", "query", err)
	}

	return records, nil
}

// DeleteBatch deletes all ids inside one transaction.
func (s *SQLiteStore) DeleteBatch(ctx context.Context, ids []string) error {
	if s.config.MaxBatchSize > 0 && len(ids) > s.config.MaxBatchSize {
		return compliance.NewStoreUnavailableError("sqlite", "delete_batch", compliance.ErrBatchLimitExceeded)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return compliance.NewStoreUnavailableError("sqlite", "begin", err)
	}
	defer tx.Rollback() // no-op after Commit

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.config.Table))
	if err != nil {
		return compliance.NewStoreUnavailableError("sqlite", "prepare", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return compliance.NewStoreUnavailableError("sqlite", "delete_batch", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return compliance.NewStoreUnavailableError("sqlite", "commit", err)
	}

	return nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", s.config.Table)).Scan(&count)
	if err != nil {
		return 0, compliance.NewStoreUnavailableError("sqlite", "count", err)
	}
	return count, nil
}

// MaxBatchSize returns the configured batch limit (0 = unlimited).
func (s *SQLiteStore) MaxBatchSize() int {
	return s.config.MaxBatchSize
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return compliance.NewStoreUnavailableError("sqlite", "ping", err)
	}
	return nil
}

// Close releases resources held by the store.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return compliance.NewStoreUnavailableError("sqlite", "close", err)
	}

	s.logger.Info("SQLite store closed")
	return nil
}
