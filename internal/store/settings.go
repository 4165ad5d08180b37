package store

import "database/sql"

// Settings is a generic named-setting store. A missing key reads as "".
type Settings struct {
	kv kv
}

// NewSettings creates a settings store over a migrated database.
func NewSettings(db *sql.DB) *Settings {
	return &Settings{kv: kv{db: db, table: "settings", keyCol: "key"}}
}

// Setting returns the value stored under key.
func (s *Settings) Setting(key string) (string, error) { return s.kv.get(key) }

// SetSetting stores value under key, replacing any previous value.
func (s *Settings) SetSetting(key, value string) error { return s.kv.set(key, value) }

// DeleteSetting removes key. Removing a missing key is not an error.
func (s *Settings) DeleteSetting(key string) error { return s.kv.delete(key) }
