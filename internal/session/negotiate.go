package session

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/plex"
)

// pathRank orders candidate paths: local non-relay, then other non-relay,
// then relay.
func pathRank(c plex.Connection) int {
	switch {
	case c.Relay:
		return 2
	case c.Local:
		return 0
	default:
		return 1
	}
}

// orderConnections returns the server's connections in negotiation order.
// Equal ranks keep their advertised order.
func orderConnections(conns []plex.Connection) []plex.Connection {
	out := slices.Clone(conns)
	slices.SortStableFunc(out, func(a, b plex.Connection) int {
		return pathRank(a) - pathRank(b)
	})
	return out
}

// Connect negotiates a path to server by probing its connections in order
// and adopting the first that answers. If none answer the state becomes
// StateError with a *ConnectError, and any previously adopted client stays
// in place. On success the server's libraries are fetched and a library is
// selected.
func (m *Manager) Connect(ctx context.Context, server plex.Server) error {
	m.mu.Lock()
	if m.token == "" {
		m.mu.Unlock()
		return ErrNotLinked
	}
	token, epoch := m.token, m.epoch
	m.state = StateConnecting
	m.cause = nil
	m.mu.Unlock()

	log := m.log.With("server", server.Name)
	m.publishState(ctx, StateConnecting, server, nil, nil)

	var attempts []Attempt
	for _, conn := range orderConnections(server.Connections) {
		if conn.URL == nil {
			log.Debug("skipping unparsable connection", "uri", conn.URI)
			continue
		}
		if err := ctx.Err(); err != nil {
			return m.connectFailed(ctx, server, epoch, fmt.Errorf("connect %s: %w", server.Name, err))
		}
		attempts = append(attempts, Attempt{Kind: conn.Kind(), URI: conn.URI})

		narrowed := server
		narrowed.Connections = []plex.Connection{conn}
		client, err := m.dial(narrowed, token)
		if err != nil {
			log.Debug("dial failed", "uri", conn.URI, "error", err)
			continue
		}
		if !client.Probe(ctx) {
			log.Debug("probe failed", "kind", conn.Kind(), "uri", conn.URI)
			continue
		}
		return m.adopt(ctx, server, conn, client, epoch)
	}

	return m.connectFailed(ctx, server, epoch, &ConnectError{Server: server.Name, Attempts: attempts})
}

func (m *Manager) connectFailed(ctx context.Context, server plex.Server, epoch uint64, err error) error {
	m.mu.Lock()
	if m.epoch == epoch {
		m.state = StateError
		m.cause = err
	}
	m.mu.Unlock()

	var ce *ConnectError
	if errors.As(err, &ce) {
		failed := &events.ConnectFailed{
			BaseEvent:  events.NewBaseEvent(events.EventConnectFailed, events.EntityServer, server.ID),
			ServerName: server.Name,
		}
		for _, a := range ce.Attempts {
			failed.Attempts = append(failed.Attempts, events.ConnectAttempt{Kind: a.Kind, URI: a.URI})
		}
		m.publish(ctx, failed)
	}
	m.publishState(ctx, StateError, server, nil, err)
	return err
}

func (m *Manager) adopt(ctx context.Context, server plex.Server, conn plex.Connection, client ServerAPI, epoch uint64) error {
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return ErrNotLinked
	}
	serverChanged := m.server == nil || m.server.ID != server.ID
	m.client = client
	m.server = &server
	m.connection = &conn
	m.state = StateConnected
	m.cause = nil
	if serverChanged {
		m.libraries = nil
		m.library = nil
		m.cache.clear()
	}
	m.mu.Unlock()

	m.log.Info("connected", "server", server.Name, "kind", conn.Kind(), "uri", conn.URI)
	if err := m.settings.SetSetting(SettingServerID, server.ID); err != nil {
		m.log.Warn("save server selection failed", "error", err)
	}
	m.publishState(ctx, StateConnected, server, &conn, nil)

	return m.loadLibraries(ctx, client, epoch)
}

// loadLibraries fetches the connected server's libraries and selects the
// saved one, else the first music library, else the first library.
func (m *Manager) loadLibraries(ctx context.Context, client ServerAPI, epoch uint64) error {
	libs, err := client.Libraries(ctx)
	if err != nil {
		return fmt.Errorf("fetch libraries: %w", err)
	}

	m.mu.Lock()
	if m.client != client || m.epoch != epoch {
		m.mu.Unlock()
		return nil
	}
	m.libraries = libs
	m.mu.Unlock()

	lib, ok := m.pickLibrary(libs)
	if !ok {
		m.log.Info("server has no libraries")
		return nil
	}
	m.selectLibrary(ctx, lib, epoch)
	return nil
}

func (m *Manager) pickLibrary(libs []plex.Library) (plex.Library, bool) {
	if len(libs) == 0 {
		return plex.Library{}, false
	}
	saved, err := m.settings.Setting(SettingLibraryID)
	if err != nil {
		m.log.Warn("load saved library failed", "error", err)
	}
	if saved != "" {
		for _, l := range libs {
			if l.ID == saved {
				return l, true
			}
		}
	}
	for _, l := range libs {
		if l.Type == plex.LibraryMusic {
			return l, true
		}
	}
	return libs[0], true
}

// SelectLibrary makes the library with id current. Changing the library
// clears every content cache before the new preload starts.
func (m *Manager) SelectLibrary(ctx context.Context, id string) error {
	m.mu.Lock()
	if m.client == nil {
		m.mu.Unlock()
		return ErrServerOffline
	}
	idx := slices.IndexFunc(m.libraries, func(l plex.Library) bool { return l.ID == id })
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownLibrary, id)
	}
	lib := m.libraries[idx]
	epoch := m.epoch
	m.mu.Unlock()

	m.selectLibrary(ctx, lib, epoch)
	return nil
}

// SelectLibraryOfType selects the first library of type t.
func (m *Manager) SelectLibraryOfType(ctx context.Context, t plex.LibraryType) error {
	m.mu.Lock()
	if m.client == nil {
		m.mu.Unlock()
		return ErrServerOffline
	}
	idx := slices.IndexFunc(m.libraries, func(l plex.Library) bool { return l.Type == t })
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoLibraryOfType, t)
	}
	lib := m.libraries[idx]
	epoch := m.epoch
	m.mu.Unlock()

	m.selectLibrary(ctx, lib, epoch)
	return nil
}

// selectLibrary makes lib current unless the session moved past epoch. The
// selection is persisted under the lock; Unlink bumps the epoch before it
// deletes the saved id.
func (m *Manager) selectLibrary(ctx context.Context, lib plex.Library, epoch uint64) {
	m.mu.Lock()
	if m.epoch != epoch || m.client == nil {
		m.mu.Unlock()
		m.log.Debug("library selection dropped", "library", lib.Title, "reason", "session changed")
		return
	}
	changed := m.library == nil || m.library.ID != lib.ID
	m.library = &lib
	if changed {
		m.cache.clear()
	}
	if err := m.settings.SetSetting(SettingLibraryID, lib.ID); err != nil {
		m.log.Warn("save library selection failed", "error", err)
	}
	m.mu.Unlock()

	if !changed {
		return
	}

	m.log.Info("library selected", "library", lib.Title, "type", lib.Type.String())
	m.publish(ctx, &events.LibrarySelected{
		BaseEvent:   events.NewBaseEvent(events.EventLibrarySelected, events.EntityLibrary, lib.ID),
		Title:       lib.Title,
		LibraryType: lib.Type.String(),
	})
	m.startPreload()
}
