// Package store persists credentials and settings in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/plexdeck/internal/migrations"
)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// kv is a string key/value table.
type kv struct {
	db     *sql.DB
	table  string
	keyCol string
}

func (s kv) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM `+s.table+` WHERE `+s.keyCol+` = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s %q: %w", s.table, key, err)
	}
	return value, nil
}

func (s kv) set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO `+s.table+` (`+s.keyCol+`, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(`+s.keyCol+`) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set %s %q: %w", s.table, key, err)
	}
	return nil
}

func (s kv) delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM `+s.table+` WHERE `+s.keyCol+` = ?`, key); err != nil {
		return fmt.Errorf("delete %s %q: %w", s.table, key, err)
	}
	return nil
}
