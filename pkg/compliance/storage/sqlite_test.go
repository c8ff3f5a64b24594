package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"agenda-horario/retention/pkg/compliance"
)

var sqliteDrivers = []string{DriverCGO, DriverPureGo}

// createTempDB creates a temporary SQLite database for testing.
func createTempDB(t *testing.T, driver string) (*SQLiteStore, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	config := &SQLiteConfig{
		Path:         dbPath,
		Driver:       driver,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}

	store, err := NewSQLiteStore(config)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, dbPath
}

func TestSQLiteStore_Initialize(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			_, dbPath := createTempDB(t, driver)

			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				t.Error("Database file was not created")
			}
		})
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "reopen.db")
			config := &SQLiteConfig{Path: dbPath, Driver: driver, MaxOpenConns: 1, MaxIdleConns: 1}

			store, err := NewSQLiteStore(config)
			if err != nil {
				t.Fatalf("NewSQLiteStore() failed: %v", err)
			}
			if _, err := store.Insert(context.Background(), &compliance.LogRecord{ID: "kept", Timestamp: time.Now()}); err != nil {
				t.Fatalf("Insert() failed: %v", err)
			}
			store.Close()

			store, err = NewSQLiteStore(config)
			if err != nil {
				t.Fatalf("Reopening failed: %v", err)
			}
			defer store.Close()

			count, err := store.Count(context.Background())
			if err != nil {
				t.Fatalf("Count() failed: %v", err)
			}
			if count != 1 {
				t.Errorf("Expected 1 record after reopen, got %d", count)
			}
		})
	}
}

func TestSQLiteStore_UnsupportedDriver(t *testing.T) {
	_, err := NewSQLiteStore(&SQLiteConfig{
		Path:   filepath.Join(t.TempDir(), "x.db"),
		Driver: "postgres",
	})
	if err == nil {
		t.Fatal("Expected error for unsupported driver, got nil")
	}
}

func TestSQLiteStore_InsertAndQueryBefore(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			store, _ := createTempDB(t, driver)
			ctx := context.Background()
			cutoff := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

			records := []*compliance.LogRecord{
				{ID: "old", Timestamp: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), Fields: map[string]any{"acao": "exportacao"}},
				{ID: "boundary", Timestamp: cutoff},
				{ID: "nanos-before", Timestamp: cutoff.Add(-time.Nanosecond)},
				{ID: "new", Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
			}
			for _, r := range records {
				if _, err := store.Insert(ctx, r); err != nil {
					t.Fatalf("Insert(%s) failed: %v", r.ID, err)
				}
			}

			got, err := store.QueryBefore(ctx, cutoff)
			if err != nil {
				t.Fatalf("QueryBefore() failed: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("Expected 2 records, got %v", compliance.RecordIDs(got))
			}

			byID := make(map[string]*compliance.LogRecord)
			for _, r := range got {
				byID[r.ID] = r
			}
			if _, ok := byID["boundary"]; ok {
				t.Error("Record at the cutoff must not match")
			}
			old, ok := byID["old"]
			if !ok {
				t.Fatal("Expected record old to match")
			}
			if !old.Timestamp.Equal(records[0].Timestamp) {
				t.Errorf("Expected timestamp %s, got %s", records[0].Timestamp, old.Timestamp)
			}
			if old.Fields["acao"] != "exportacao" {
				t.Errorf("Expected fields to round-trip, got %v", old.Fields)
			}
		})
	}
}

func TestSQLiteStore_QueryBeforeNonUTC(t *testing.T) {
	store, _ := createTempDB(t, DriverPureGo)
	ctx := context.Background()
	brt := time.FixedZone("BRT", -3*60*60)

	// 2019-01-01 01:00 UTC is still 2018-12-31 in BRT
	ts := time.Date(2018, 12, 31, 22, 0, 0, 0, brt)
	if _, err := store.Insert(ctx, &compliance.LogRecord{ID: "r", Timestamp: ts}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	got, err := store.QueryBefore(ctx, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("QueryBefore() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no match for an instant after the cutoff, got %v", compliance.RecordIDs(got))
	}
}

func TestSQLiteStore_InsertAssignsID(t *testing.T) {
	store, _ := createTempDB(t, DriverPureGo)

	id, err := store.Insert(context.Background(), &compliance.LogRecord{Timestamp: time.Now()})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if id == "" {
		t.Error("Expected generated ID, got empty string")
	}
}

func TestSQLiteStore_DeleteBatch(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			store, _ := createTempDB(t, driver)
			ctx := context.Background()

			for _, id := range []string{"a", "b", "c"} {
				if _, err := store.Insert(ctx, &compliance.LogRecord{ID: id, Timestamp: time.Now()}); err != nil {
					t.Fatalf("Insert() failed: %v", err)
				}
			}

			if err := store.DeleteBatch(ctx, []string{"a", "c", "missing"}); err != nil {
				t.Fatalf("DeleteBatch() failed: %v", err)
			}

			count, _ := store.Count(ctx)
			if count != 1 {
				t.Errorf("Expected 1 remaining record, got %d", count)
			}
		})
	}
}

func TestSQLiteStore_DeleteBatchIsAtomic(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			store, _ := createTempDB(t, driver)
			ctx := context.Background()

			for _, id := range []string{"a", "b", "c"} {
				if _, err := store.Insert(ctx, &compliance.LogRecord{ID: id, Timestamp: time.Now()}); err != nil {
					t.Fatalf("Insert() failed: %v", err)
				}
			}

			// Fail the third delete inside the transaction
			trigger := `CREATE TRIGGER block_c BEFORE DELETE ON lgpd_logs
WHEN OLD.id = 'c' BEGIN SELECT RAISE(ABORT, 'blocked'); END;`
			if _, err := store.db.Exec(trigger); err != nil {
				t.Fatalf("Failed to create trigger: %v", err)
			}

			err := store.DeleteBatch(ctx, []string{"a", "b", "c"})
			if !compliance.IsStoreUnavailable(err) {
				t.Fatalf("Expected StoreUnavailableError, got %v", err)
			}

			count, _ := store.Count(ctx)
			if count != 3 {
				t.Errorf("Expected all 3 records after rollback, got %d", count)
			}
		})
	}
}

func TestSQLiteStore_DeleteBatchLimit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "limit.db")
	store, err := NewSQLiteStore(&SQLiteConfig{
		Path:         dbPath,
		Driver:       DriverPureGo,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxBatchSize: 2,
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	defer store.Close()

	if store.MaxBatchSize() != 2 {
		t.Errorf("Expected MaxBatchSize 2, got %d", store.MaxBatchSize())
	}

	err = store.DeleteBatch(context.Background(), []string{"a", "b", "c"})
	if !errors.Is(err, compliance.ErrBatchLimitExceeded) {
		t.Errorf("Expected ErrBatchLimitExceeded, got %v", err)
	}
}

func TestSQLiteStore_Ping(t *testing.T) {
	store, _ := createTempDB(t, DriverPureGo)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}

func TestSQLiteStore_CustomTable(t *testing.T) {
	store, err := NewSQLiteStore(&SQLiteConfig{
		Path:         filepath.Join(t.TempDir(), "custom.db"),
		Driver:       DriverPureGo,
		Table:        "audit_trail",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.Insert(ctx, &compliance.LogRecord{ID: "x", Timestamp: time.Now()}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM audit_trail").Scan(&count); err != nil {
		t.Fatalf("Query on custom table failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 row in audit_trail, got %d", count)
	}
}

func TestSQLiteStore_QueryBeforeFarDates(t *testing.T) {
	for _, driver := range sqliteDrivers {
		t.Run(driver, func(t *testing.T) {
			store, _ := createTempDB(t, driver)
			ctx := context.Background()
			cutoff := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

			ancient := time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)
			future := time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
			for id, ts := range map[string]time.Time{"ancient": ancient, "future": future} {
				if _, err := store.Insert(ctx, &compliance.LogRecord{ID: id, Timestamp: ts}); err != nil {
					t.Fatalf("Insert(%s) failed: %v", id, err)
				}
			}

			got, err := store.QueryBefore(ctx, cutoff)
			if err != nil {
				t.Fatalf("QueryBefore() failed: %v", err)
			}
			if len(got) != 1 || got[0].ID != "ancient" {
				t.Fatalf("Expected only record ancient, got %v", compliance.RecordIDs(got))
			}
			if !got[0].Timestamp.Equal(ancient) {
				t.Errorf("Expected timestamp %s, got %s", ancient, got[0].Timestamp)
			}

			// A cutoff past 2262 still orders correctly
			got, err = store.QueryBefore(ctx, time.Date(2300, 1, 1, 0, 0, 0, 1, time.UTC))
			if err != nil {
				t.Fatalf("QueryBefore() failed: %v", err)
			}
			if len(got) != 2 {
				t.Errorf("Expected 2 records before 2300-01-01T00:00:00.000000001, got %v", compliance.RecordIDs(got))
			}
		})
	}
}

func TestSQLiteStore_SchemaVersionMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	config := &SQLiteConfig{Path: dbPath, Driver: DriverPureGo, MaxOpenConns: 1, MaxIdleConns: 1}

	store, err := NewSQLiteStore(config)
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 1"); err != nil {
		t.Fatalf("Failed to downgrade schema version: %v", err)
	}
	store.Close()

	_, err = NewSQLiteStore(config)
	var unavailable *compliance.StoreUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Expected StoreUnavailableError, got %v", err)
	}
	if unavailable.Operation != "schema_version_mismatch" {
		t.Errorf("Expected operation schema_version_mismatch, got %s", unavailable.Operation)
	}
}
