package test

import (
	"path/filepath"
	"testing"

	"todoapi/internal/adapter/database/sqlite"
)

// InitTestDB creates a migrated sqlite database in a temporary directory
// that is removed when the test ends.
func InitTestDB(t testing.TB) *sqlite.DB {
	t.Helper()

	db, err := sqlite.NewDB(sqlite.Options{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		SQLLogLevel: "disabled",
	})

	if err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CleanDB empties every application table, keeping the migration state.
func CleanDB(t testing.TB, db *sqlite.DB) {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT IN ('sqlite_sequence', 'schema_migrations')")
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}

	var tables []string

	for rows.Next() {
		var table string

		if err := rows.Scan(&table); err != nil {
			rows.Close()
			t.Fatalf("Failed to scan table name: %v", err)
		}

		tables = append(tables, table)
	}

	rows.Close()

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to execute delete for table %s: %v", table, err)
		}
	}
}
