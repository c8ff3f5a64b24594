package storage

import "fmt"

// SchemaVersion is the current database schema version.
const SchemaVersion = 2

// schema returns the SQL statements creating the log table and its index.
// Timestamps are stored as Unix seconds plus a nanosecond remainder, which
// covers every year a time.Time can represent and orders the same in both
// SQLite drivers.
func schema(table string) string {
	return fmt.Sprintf(`
-- Compliance log records
CREATE TABLE IF NOT EXISTS %[1]s (
    id TEXT PRIMARY KEY,
    ts_sec INTEGER NOT NULL,
    ts_nsec INTEGER NOT NULL,
    fields TEXT
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_ts ON %[1]s(ts_sec, ts_nsec);
`, table)
}

// CreateSchemaVersionTable creates the schema version table.
const CreateSchemaVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
