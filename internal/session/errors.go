package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrServerOffline means no server connection is established.
	ErrServerOffline = errors.New("server offline")

	// ErrAllConnectionsFailed means every candidate path to a server failed its probe.
	ErrAllConnectionsFailed = errors.New("all connections failed")

	// ErrNoLibraryOfType means the server has no library of the requested type.
	ErrNoLibraryOfType = errors.New("no library of requested type")

	// ErrNoLibrarySelected means content was requested before a library was chosen.
	ErrNoLibrarySelected = errors.New("no library selected")

	// ErrUnknownLibrary means a library id is not on the current server.
	ErrUnknownLibrary = errors.New("unknown library")

	// ErrUnknownServer means a server id is not in the account's server list.
	ErrUnknownServer = errors.New("unknown server")

	// ErrNotLinked means no account credential is available.
	ErrNotLinked = errors.New("account not linked")
)

// Attempt is one negotiated path tried during a connect.
type Attempt struct {
	Kind string // local, remote, relay
	URI  string
}

// ConnectError reports a connect in which no candidate path responded.
type ConnectError struct {
	Server   string
	Attempts []Attempt
}

func (e *ConnectError) Error() string {
	paths := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		paths[i] = a.Kind + " " + a.URI
	}
	return fmt.Sprintf("connect %s: %v (tried %d: %s)",
		e.Server, ErrAllConnectionsFailed, len(e.Attempts), strings.Join(paths, ", "))
}

func (e *ConnectError) Unwrap() error {
	return ErrAllConnectionsFailed
}
