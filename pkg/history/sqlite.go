package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/japaniel/wordchallenge/pkg/db"
)

// SQLiteStore persists the whole log as one JSON array under Key in the
// key-value table.
type SQLiteStore struct {
	conn *sql.DB
	key  string
}

// NewSQLiteStore returns a store backed by conn, which must already be
// migrated with db.InitDB.
func NewSQLiteStore(conn *sql.DB) *SQLiteStore {
	return &SQLiteStore{conn: conn, key: Key}
}

func (s *SQLiteStore) ReadAll(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.read(s.conn)
}

// Append reads the full log, appends e and writes the full log back inside
// one transaction.
func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	entries, err := s.read(tx)
	if err != nil {
		return err
	}
	entries = append(entries, e)
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := db.PutValue(tx, s.key, string(raw)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// Clear removes the stored log.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.DeleteValue(s.conn, s.key)
}

func (s *SQLiteStore) read(exec db.DBExecutor) ([]Entry, error) {
	raw, ok, err := db.GetValue(exec, s.key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
