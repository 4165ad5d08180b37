package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/session/mocks"
	"github.com/vmunix/plexdeck/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture wires a Manager to a mocked plex.tv, SQLite stores, and one mock
// server client per connection URI.
type fixture struct {
	t        *testing.T
	ctrl     *gomock.Controller
	auth     *mocks.MockAuthAPI
	creds    *store.Credentials
	settings *store.Settings
	bus      *events.Bus
	m        *Manager

	mu      sync.Mutex
	dialed  []string
	clients map[string]*mocks.MockServerAPI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		t:        t,
		ctrl:     ctrl,
		auth:     mocks.NewMockAuthAPI(ctrl),
		creds:    store.NewCredentials(db),
		settings: store.NewSettings(db),
		bus:      events.NewBus(nil, discardLogger()),
		clients:  make(map[string]*mocks.MockServerAPI),
	}
	f.m = New(Deps{
		Auth:        f.auth,
		Dial:        f.dial,
		Credentials: f.creds,
		Settings:    f.settings,
		Bus:         f.bus,
		Logger:      discardLogger(),
	}, Options{PollInterval: time.Millisecond})

	// Registered after the controller so background work stops before
	// expectations are checked.
	t.Cleanup(func() {
		_ = f.m.Close()
		_ = f.bus.Close()
	})
	return f
}

func (f *fixture) dial(server plex.Server, _ string) (ServerAPI, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uri := server.Connections[0].URI
	f.dialed = append(f.dialed, uri)
	c, ok := f.clients[uri]
	if !ok {
		return nil, fmt.Errorf("no fake server at %s", uri)
	}
	return c, nil
}

// client registers a mock server client reachable at uri.
func (f *fixture) client(uri string) *mocks.MockServerAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := mocks.NewMockServerAPI(f.ctrl)
	f.clients[uri] = c
	return c
}

func (f *fixture) dialedURIs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dialed...)
}

// link marks the manager as linked without going through pin polling.
func (f *fixture) link(token string) {
	f.t.Helper()
	require.NoError(f.t, f.creds.SetAccountToken(token))
	f.m.mu.Lock()
	f.m.token = token
	f.m.epoch++
	f.m.mu.Unlock()
}

func server(id string, conns ...plex.Connection) plex.Server {
	return plex.Server{ID: id, Name: "Server " + id, Connections: conns}
}

func local(uri string) plex.Connection  { return plex.NewConnection(uri, true, false) }
func remote(uri string) plex.Connection { return plex.NewConnection(uri, false, false) }
func relay(uri string) plex.Connection  { return plex.NewConnection(uri, false, true) }

var (
	musicA = plex.Library{ID: "1", Title: "Music A", Type: plex.LibraryMusic}
	musicB = plex.Library{ID: "2", Title: "Music B", Type: plex.LibraryMusic}
	movies = plex.Library{ID: "3", Title: "Movies", Type: plex.LibraryMovie}
	shows  = plex.Library{ID: "4", Title: "TV", Type: plex.LibraryShow}
)

// connectMusic connects to a single-connection server exposing libs and
// expects the music preload for the first music library to return artists
// and albums.
func (f *fixture) connectMusic(libs []plex.Library, artists []plex.Artist, albums []plex.Album) *mocks.MockServerAPI {
	f.t.Helper()
	const uri = "http://192.168.1.10:32400"
	c := f.client(uri)
	c.EXPECT().Probe(gomock.Any()).Return(true)
	c.EXPECT().Libraries(gomock.Any()).Return(libs, nil)
	c.EXPECT().AllArtists(gomock.Any(), libs[0].ID).Return(artists, nil)
	c.EXPECT().AllAlbums(gomock.Any(), libs[0].ID).Return(albums, nil)

	require.NoError(f.t, f.m.Connect(context.Background(), server("srv", local(uri))))
	f.m.Wait()
	return c
}

func receive(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
		return nil
	}
}
