package store

import "database/sql"

const (
	keyAccountToken     = "account_token"
	keyClientIdentifier = "client_identifier"
)

// Credentials holds the account token and the device identifier.
// A missing value reads as "".
type Credentials struct {
	kv kv
}

// NewCredentials creates a credential store over a migrated database.
func NewCredentials(db *sql.DB) *Credentials {
	return &Credentials{kv: kv{db: db, table: "credentials", keyCol: "name"}}
}

func (c *Credentials) AccountToken() (string, error)      { return c.kv.get(keyAccountToken) }
func (c *Credentials) SetAccountToken(token string) error { return c.kv.set(keyAccountToken, token) }
func (c *Credentials) ClearAccountToken() error           { return c.kv.delete(keyAccountToken) }

func (c *Credentials) ClientIdentifier() (string, error) { return c.kv.get(keyClientIdentifier) }
func (c *Credentials) SetClientIdentifier(id string) error {
	return c.kv.set(keyClientIdentifier, id)
}
