package plex

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ClientInfo is the fixed identity plexdeck presents to plex.tv and to servers.
type ClientInfo struct {
	ClientIdentifier string
	Product          string
	Version          string
	Platform         string
	PlatformVersion  string
	Device           string
	DeviceName       string
}

// Headers returns the X-Plex-* identity header block.
func (c ClientInfo) Headers() http.Header {
	h := make(http.Header)
	c.apply(h)
	return h
}

func (c ClientInfo) apply(h http.Header) {
	set := func(key, value string) {
		if value != "" {
			h.Set(key, value)
		}
	}
	set("X-Plex-Client-Identifier", c.ClientIdentifier)
	set("X-Plex-Product", c.Product)
	set("X-Plex-Version", c.Version)
	set("X-Plex-Platform", c.Platform)
	set("X-Plex-Platform-Version", c.PlatformVersion)
	set("X-Plex-Device", c.Device)
	set("X-Plex-Device-Name", c.DeviceName)
	h.Set("Accept", "application/json")
}

// IdentifierStore persists the client identifier across runs.
type IdentifierStore interface {
	ClientIdentifier() (string, error)
	SetClientIdentifier(id string) error
}

// LoadClientInfo fills base.ClientIdentifier from store, generating and
// saving a new identifier on first use.
func LoadClientInfo(store IdentifierStore, base ClientInfo) (ClientInfo, error) {
	id, err := store.ClientIdentifier()
	if err != nil {
		return base, fmt.Errorf("load client identifier: %w", err)
	}
	if id == "" {
		id = uuid.NewString()
		if err := store.SetClientIdentifier(id); err != nil {
			return base, fmt.Errorf("save client identifier: %w", err)
		}
	}
	base.ClientIdentifier = id
	return base, nil
}
