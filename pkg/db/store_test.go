package db

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGetValueMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	v, ok, err := GetValue(db, "wordHistory")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("expected missing key, got %q (ok=%v)", v, ok)
	}
}

func TestPutValueUpserts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	if err := PutValue(db, "wordHistory", "[]"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := PutValue(db, "wordHistory", `[{"word":"cat"}]`); err != nil {
		t.Fatalf("put 2: %v", err)
	}
	v, ok, err := GetValue(db, "wordHistory")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || v != `[{"word":"cat"}]` {
		t.Fatalf("unexpected value %q (ok=%v)", v, ok)
	}

	var cnt int
	if err := db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&cnt); err != nil {
		t.Fatalf("count: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected 1 kv row, got %d", cnt)
	}
}

func TestPutValueRejectsEmptyKey(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	if err := PutValue(db, "  ", "x"); err == nil {
		t.Fatalf("expected error for blank key")
	}
}

func TestPutValueInTransaction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := PutValue(tx, "k", "v"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if _, ok, _ := GetValue(db, "k"); ok {
		t.Fatalf("expected rolled back write to be absent")
	}
}

func TestDeleteValue(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	if err := PutValue(db, "k", "v"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := DeleteValue(db, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := DeleteValue(db, "k"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, ok, _ := GetValue(db, "k"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestOpenFileDatabasePersistsValue(t *testing.T) {
	path := fmt.Sprintf("%s/test.db", t.TempDir())
	conn, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := PutValue(conn, "k", "v"); err != nil {
		t.Fatalf("put: %v", err)
	}
	conn.Close()

	conn, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer conn.Close()
	v, ok, err := GetValue(conn, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}
}
