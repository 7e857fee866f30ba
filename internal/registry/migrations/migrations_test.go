package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	err := MigrateUp(db)
	if err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	// Verify tables were created
	tables := []string{"file_references", "user_profiles", "caller_quotas", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s was not created: %v", table, err)
		}
	}
}

func TestCheckStatus_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	// Fresh database should need migration
	err := CheckStatus(db)
	if err == nil {
		t.Error("CheckStatus() expected error for fresh database, got nil")
	}

	if err.Error() != "database has no schema version (needs migration)" {
		t.Errorf("CheckStatus() error = %q, want error about needing migration", err.Error())
	}
}

func TestCheckStatus_AfterMigration(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	err := CheckStatus(db)
	if err != nil {
		t.Errorf("CheckStatus() after migration returned error: %v", err)
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	// Run migration twice
	if err := MigrateUp(db); err != nil {
		t.Fatalf("First MigrateUp() failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Errorf("Second MigrateUp() failed: %v (should be idempotent)", err)
	}

	if err := CheckStatus(db); err != nil {
		t.Errorf("CheckStatus() after double migration returned error: %v", err)
	}
}

func TestSchema_FileReferenceUnique(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	_, err := db.Exec(`
		INSERT INTO file_references (caller, id, blob_handle, name, size, mime_type, uploaded_at)
		VALUES ('alice', 'file-1', 'mem:file-1', 'a.png', 10, 'image/png', 0)
	`)
	if err != nil {
		t.Fatalf("Failed to insert file reference: %v", err)
	}

	// Same id under the same caller violates the unique constraint
	_, err = db.Exec(`
		INSERT INTO file_references (caller, id, blob_handle, name, size, mime_type, uploaded_at)
		VALUES ('alice', 'file-1', 'mem:file-1', 'b.png', 20, 'image/png', 0)
	`)
	if err == nil {
		t.Error("Expected unique constraint violation for duplicate id, but insert succeeded")
	}

	// Same id under a different caller is fine
	_, err = db.Exec(`
		INSERT INTO file_references (caller, id, blob_handle, name, size, mime_type, uploaded_at)
		VALUES ('bob', 'file-1', 'mem:file-1', 'c.png', 30, 'image/png', 0)
	`)
	if err != nil {
		t.Errorf("Insert under different caller failed: %v", err)
	}
}

func TestSchema_UserProfiles(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	_, err := db.Exec("INSERT INTO user_profiles (caller, name) VALUES ('alice', 'Alice')")
	if err != nil {
		t.Fatalf("Failed to insert profile: %v", err)
	}

	var name string
	err = db.QueryRow("SELECT name FROM user_profiles WHERE caller = 'alice'").Scan(&name)
	if err != nil {
		t.Errorf("Failed to retrieve profile: %v", err)
	}
	if name != "Alice" {
		t.Errorf("Retrieved profile name = %q, want %q", name, "Alice")
	}
}

// openTestDB opens an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	return db
}
