package dbopen

import (
	"testing"

	_ "modernc.org/sqlite"
)

func TestOpenMemory_PragmasApplied(t *testing.T) {
	// WHAT: OpenMemory yields a usable database with foreign keys on.
	// WHY: Every store in the repo assumes the pragma baseline.
	db := OpenMemory(t)

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys: got %d, want 1", fk)
	}
}

func TestOpen_WithSchema(t *testing.T) {
	// WHAT: Inline schema executes after pragmas during Open.
	// WHY: Stores pass their schema to Open instead of a second round-trip.
	db := OpenMemory(t, WithSchema(`CREATE TABLE things (id TEXT PRIMARY KEY, n INTEGER)`))

	if _, err := db.Exec(`INSERT INTO things (id, n) VALUES ('a', 1)`); err != nil {
		t.Fatalf("insert into schema table: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT n FROM things WHERE id = 'a'`).Scan(&n); err != nil {
		t.Fatalf("select: %v", err)
	}
	if n != 1 {
		t.Errorf("n: got %d, want 1", n)
	}
}

func TestOpen_BadSchema(t *testing.T) {
	// WHAT: A broken schema fails Open and closes the handle.
	// WHY: A half-initialised database must never be returned.
	if _, err := Open(":memory:", WithSchema("CREATE NONSENSE")); err == nil {
		t.Fatal("expected error for invalid schema")
	}
}
