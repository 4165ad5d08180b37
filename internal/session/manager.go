// Package session owns the linked account, the negotiated server connection,
// the current library and its cached content.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/plex"
)

// Persisted setting keys.
const (
	SettingServerID  = "current_server_id"
	SettingLibraryID = "current_library_id"
)

// State is the connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateError        State = "error"
)

// Deps are the collaborators a Manager needs.
type Deps struct {
	Auth        AuthAPI
	Dial        Dialer
	Credentials CredentialStore
	Settings    SettingsStore
	Bus         *events.Bus // optional
	Logger      *slog.Logger
}

// Options tune a Manager.
type Options struct {
	PollInterval time.Duration // pin polling; default plex.DefaultPollInterval
}

// Manager is the session orchestrator. All state is guarded by mu, which is
// never held across a network call.
type Manager struct {
	auth     AuthAPI
	dial     Dialer
	creds    CredentialStore
	settings SettingsStore
	bus      *events.Bus
	log      *slog.Logger
	opts     Options

	mu sync.Mutex

	token   string
	account *plex.Account
	epoch   uint64 // bumped whenever the credential changes

	servers []plex.Server
	state   State
	cause   error

	client     ServerAPI
	server     *plex.Server
	connection *plex.Connection

	libraries []plex.Library
	library   *plex.Library
	cache     contentCache

	refreshing   bool
	preloading   bool
	preloadAgain bool

	linkCancel context.CancelFunc
	linkGen    uint64

	bgCtx    context.Context
	bgCancel context.CancelFunc
	bg       sync.WaitGroup
}

// New creates a Manager. Call Restore to resume a persisted session and
// Close to stop background work.
func New(deps Deps, opts Options) *Manager {
	if opts.PollInterval <= 0 {
		opts.PollInterval = plex.DefaultPollInterval
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		auth:     deps.Auth,
		dial:     deps.Dial,
		creds:    deps.Credentials,
		settings: deps.Settings,
		bus:      deps.Bus,
		log:      logger.With("component", "session"),
		opts:     opts,
		state:    StateDisconnected,
		bgCtx:    ctx,
		bgCancel: cancel,
	}
}

// Restore loads the persisted credential. When linked it starts a
// best-effort background refresh that reconnects to the saved server and
// library.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.creds.AccountToken()
	if err != nil {
		return fmt.Errorf("load account token: %w", err)
	}
	if token == "" {
		m.log.Debug("no saved account")
		return nil
	}

	m.mu.Lock()
	m.token = token
	m.epoch++
	m.mu.Unlock()

	m.goBackground(func(ctx context.Context) {
		account, err := m.auth.FetchAccount(ctx, token)
		if err != nil {
			m.log.Warn("fetch account failed", "error", err)
		} else {
			m.mu.Lock()
			if m.token == token {
				m.account = account
			}
			m.mu.Unlock()
		}
		if err := m.RefreshServers(ctx); err != nil {
			m.log.Warn("background refresh failed", "error", err)
		}
	})
	return nil
}

// Wait blocks until background refresh and preload work has finished.
func (m *Manager) Wait() {
	m.bg.Wait()
}

// Close cancels pin polling and background work and waits for it to stop.
func (m *Manager) Close() error {
	m.CancelLink()
	m.bgCancel()
	m.bg.Wait()
	return nil
}

func (m *Manager) goBackground(fn func(ctx context.Context)) {
	m.bg.Add(1)
	go func() {
		defer m.bg.Done()
		fn(m.bgCtx)
	}()
}

// Link creates a pairing code, hands it to onCode, and polls until the user
// claims it. A Link already in progress is cancelled. On success the token
// is persisted and the server list refreshed.
func (m *Manager) Link(ctx context.Context, onCode func(pin *plex.Pin, authURL string), onUpdate func(*plex.Pin)) (*plex.Account, error) {
	pin, err := m.auth.CreatePin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create pin: %w", err)
	}

	linkCtx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	if m.linkCancel != nil {
		m.linkCancel()
	}
	m.linkGen++
	gen := m.linkGen
	m.linkCancel = cancel
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		if m.linkGen == gen {
			m.linkCancel = nil
		}
		m.mu.Unlock()
		cancel()
	}()

	authURL := m.auth.AuthURL(pin)
	m.publish(ctx, &events.LinkStarted{
		BaseEvent: events.NewBaseEvent(events.EventLinkStarted, events.EntityAccount, pin.Code),
		Code:      pin.Code,
		AuthURL:   authURL,
	})
	if onCode != nil {
		onCode(pin, authURL)
	}

	authorized, err := m.auth.PollForAuthorization(linkCtx, pin, m.opts.PollInterval, func(p *plex.Pin) {
		if linkCtx.Err() == nil && onUpdate != nil {
			onUpdate(p)
		}
	})
	if err != nil {
		return nil, err
	}

	account, err := m.auth.FetchAccount(ctx, authorized.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	if err := m.creds.SetAccountToken(authorized.AuthToken); err != nil {
		return nil, fmt.Errorf("save account token: %w", err)
	}

	m.mu.Lock()
	m.token = authorized.AuthToken
	m.account = account
	m.epoch++
	m.mu.Unlock()

	m.log.Info("account linked", "username", account.Username)
	m.publish(ctx, &events.AccountLinked{
		BaseEvent: events.NewBaseEvent(events.EventAccountLinked, events.EntityAccount, account.UUID),
		Username:  account.Username,
	})

	if err := m.RefreshServers(ctx); err != nil {
		m.log.Warn("refresh after link failed", "error", err)
	}
	return account, nil
}

// CancelLink stops an in-progress Link.
func (m *Manager) CancelLink() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.linkCancel != nil {
		m.linkCancel()
		m.linkCancel = nil
	}
}

// Unlink forgets the account, servers, selection and cached content, and
// removes the persisted credential and selection.
func (m *Manager) Unlink(ctx context.Context) error {
	m.mu.Lock()
	if m.linkCancel != nil {
		m.linkCancel()
		m.linkCancel = nil
	}
	m.token = ""
	m.account = nil
	m.epoch++
	m.servers = nil
	m.client = nil
	m.server = nil
	m.connection = nil
	m.libraries = nil
	m.library = nil
	m.cache.clear()
	m.state = StateDisconnected
	m.cause = nil
	m.mu.Unlock()

	err := errors.Join(
		m.creds.ClearAccountToken(),
		m.settings.DeleteSetting(SettingServerID),
		m.settings.DeleteSetting(SettingLibraryID),
	)

	m.log.Info("account unlinked")
	m.publish(ctx, &events.AccountUnlinked{
		BaseEvent: events.NewBaseEvent(events.EventAccountUnlinked, events.EntityAccount, ""),
	})
	m.publishState(ctx, StateDisconnected, plex.Server{}, nil, nil)

	if err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}

// RefreshServers fetches the account's servers and connects to the saved
// server, else the first one. A call made while another is running returns
// nil without doing anything. A failed connect is logged, not returned.
func (m *Manager) RefreshServers(ctx context.Context) error {
	m.mu.Lock()
	if m.refreshing {
		m.mu.Unlock()
		m.log.Debug("refresh already in progress")
		return nil
	}
	if m.token == "" {
		m.mu.Unlock()
		return ErrNotLinked
	}
	m.refreshing = true
	token, epoch := m.token, m.epoch
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.refreshing = false
		m.mu.Unlock()
	}()

	servers, err := m.auth.FetchServers(ctx, token)
	if err != nil {
		return fmt.Errorf("refresh servers: %w", err)
	}

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return ErrNotLinked
	}
	m.servers = servers
	m.mu.Unlock()

	names := make([]string, len(servers))
	for i, s := range servers {
		names[i] = s.Name
	}
	m.log.Info("servers refreshed", "count", len(servers))
	m.publish(ctx, &events.ServersRefreshed{
		BaseEvent: events.NewBaseEvent(events.EventServersRefreshed, events.EntityAccount, ""),
		Count:     len(servers),
		Names:     names,
	})

	target, ok := m.pickServer(servers)
	if !ok {
		m.mu.Lock()
		if m.client == nil {
			m.state = StateDisconnected
			m.cause = nil
		}
		m.mu.Unlock()
		return nil
	}

	if err := m.Connect(ctx, target); err != nil {
		m.log.Warn("connect failed", "server", target.Name, "error", err)
	}
	return nil
}

// pickServer chooses the saved server if still listed, else the first.
func (m *Manager) pickServer(servers []plex.Server) (plex.Server, bool) {
	if len(servers) == 0 {
		return plex.Server{}, false
	}
	saved, err := m.settings.Setting(SettingServerID)
	if err != nil {
		m.log.Warn("load saved server failed", "error", err)
	}
	if saved != "" {
		for _, s := range servers {
			if s.ID == saved {
				return s, true
			}
		}
	}
	return servers[0], true
}

// ConnectServer connects to a server from the current list by id.
func (m *Manager) ConnectServer(ctx context.Context, serverID string) error {
	m.mu.Lock()
	var target *plex.Server
	for i := range m.servers {
		if m.servers[i].ID == serverID {
			s := m.servers[i]
			target = &s
			break
		}
	}
	m.mu.Unlock()
	if target == nil {
		return fmt.Errorf("%w: %s", ErrUnknownServer, serverID)
	}
	return m.Connect(ctx, *target)
}

// Account returns the linked account, or nil.
func (m *Manager) Account() *plex.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.account == nil {
		return nil
	}
	a := *m.account
	return &a
}

// Linked reports whether an account credential is loaded.
func (m *Manager) Linked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// Status is a snapshot of the session.
type Status struct {
	State          State
	Cause          error
	Account        *plex.Account
	Servers        []plex.Server
	Server         *plex.Server
	Connection     *plex.Connection
	Libraries      []plex.Library
	Library        *plex.Library
	CachedArtists  int
	CachedAlbums   int
	CachedMovies   int
	CachedShows    int
	PreloadRunning bool
}

// Status returns a copy of the current session state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := Status{
		State:          m.state,
		Cause:          m.cause,
		Servers:        slices.Clone(m.servers),
		Libraries:      slices.Clone(m.libraries),
		CachedArtists:  len(m.cache.artists),
		CachedAlbums:   len(m.cache.albums),
		CachedMovies:   len(m.cache.movies),
		CachedShows:    len(m.cache.shows),
		PreloadRunning: m.preloading,
	}
	if m.account != nil {
		a := *m.account
		st.Account = &a
	}
	if m.server != nil {
		s := *m.server
		st.Server = &s
	}
	if m.connection != nil {
		c := *m.connection
		st.Connection = &c
	}
	if m.library != nil {
		l := *m.library
		st.Library = &l
	}
	return st
}

func (m *Manager) publish(ctx context.Context, e events.Event) {
	if err := m.bus.Publish(context.WithoutCancel(ctx), e); err != nil {
		m.log.Warn("publish event failed", "type", e.EventType(), "error", err)
	}
}

func (m *Manager) publishState(ctx context.Context, state State, server plex.Server, conn *plex.Connection, cause error) {
	e := &events.ConnectionChanged{
		BaseEvent:  events.NewBaseEvent(events.EventConnectionChanged, events.EntityServer, server.ID),
		State:      string(state),
		ServerName: server.Name,
	}
	if conn != nil {
		e.URI = conn.URI
		e.Kind = conn.Kind()
	}
	if cause != nil {
		e.Cause = cause.Error()
	}
	m.publish(ctx, e)
}
