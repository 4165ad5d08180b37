package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/plex"
)

func TestOrderConnections(t *testing.T) {
	in := []plex.Connection{
		relay("https://relay-a"),
		remote("https://remote-a"),
		local("http://local-a"),
		remote("https://remote-b"),
		plex.NewConnection("https://local-relay", true, true),
		local("http://local-b"),
	}

	var got []string
	for _, c := range orderConnections(in) {
		got = append(got, c.URI)
	}
	assert.Equal(t, []string{
		"http://local-a", "http://local-b",
		"https://remote-a", "https://remote-b",
		"https://relay-a", "https://local-relay",
	}, got)
	assert.Equal(t, "https://relay-a", in[0].URI, "input must not be reordered")
}

func TestManager_Connect_NegotiationOrder(t *testing.T) {
	f := newFixture(t)
	f.link("tok")

	r := relay("https://relay.plex.direct:8443")
	rm := remote("https://203.0.113.5:32400")
	l := local("http://192.168.1.10:32400")

	f.client(l.URI).EXPECT().Probe(gomock.Any()).Return(false)
	good := f.client(rm.URI)
	good.EXPECT().Probe(gomock.Any()).Return(true)
	good.EXPECT().Libraries(gomock.Any()).Return(nil, nil)
	f.client(r.URI) // never probed

	require.NoError(t, f.m.Connect(context.Background(), server("srv", r, rm, l)))

	assert.Equal(t, []string{l.URI, rm.URI}, f.dialedURIs())
	st := f.m.Status()
	assert.Equal(t, StateConnected, st.State)
	require.NotNil(t, st.Connection)
	assert.Equal(t, rm.URI, st.Connection.URI)
	require.NotNil(t, st.Server)
	assert.Equal(t, "srv", st.Server.ID)

	saved, err := f.settings.Setting(SettingServerID)
	require.NoError(t, err)
	assert.Equal(t, "srv", saved)
}

func TestManager_Connect_AllFailKeepsPriorConnection(t *testing.T) {
	f := newFixture(t)
	f.link("tok")

	first := local("http://10.0.0.1:32400")
	c := f.client(first.URI)
	c.EXPECT().Probe(gomock.Any()).Return(true)
	c.EXPECT().Libraries(gomock.Any()).Return(nil, nil)
	require.NoError(t, f.m.Connect(context.Background(), server("a", first)))

	r := relay("https://relay.plex.direct:8443")
	rm := remote("https://203.0.113.9:32400")
	l := local("http://10.0.0.2:32400")
	bad := plex.NewConnection("::not a url", true, false)
	for _, conn := range []plex.Connection{r, rm, l} {
		f.client(conn.URI).EXPECT().Probe(gomock.Any()).Return(false)
	}

	failed := f.bus.Subscribe(events.EventConnectFailed, 1)
	err := f.m.Connect(context.Background(), server("b", r, bad, rm, l))
	require.ErrorIs(t, err, ErrAllConnectionsFailed)

	var ce *ConnectError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Server b", ce.Server)
	assert.Equal(t, []Attempt{
		{Kind: "local", URI: l.URI},
		{Kind: "remote", URI: rm.URI},
		{Kind: "relay", URI: r.URI},
	}, ce.Attempts)

	st := f.m.Status()
	assert.Equal(t, StateError, st.State)
	assert.ErrorIs(t, st.Cause, ErrAllConnectionsFailed)
	require.NotNil(t, st.Connection)
	assert.Equal(t, first.URI, st.Connection.URI)
	assert.Equal(t, "a", st.Server.ID)

	e := receive(t, failed).(*events.ConnectFailed)
	assert.Len(t, e.Attempts, 3)
}

func TestManager_Connect_NotLinked(t *testing.T) {
	f := newFixture(t)
	err := f.m.Connect(context.Background(), server("srv", local("http://10.0.0.1:32400")))
	assert.ErrorIs(t, err, ErrNotLinked)
	assert.Empty(t, f.dialedURIs())
}

func TestManager_Connect_NoConnections(t *testing.T) {
	f := newFixture(t)
	f.link("tok")

	err := f.m.Connect(context.Background(), server("srv"))
	var ce *ConnectError
	require.ErrorAs(t, err, &ce)
	assert.Empty(t, ce.Attempts)
	assert.Equal(t, StateError, f.m.Status().State)
}

func TestManager_LibrarySelectionAfterConnect(t *testing.T) {
	tests := []struct {
		name  string
		saved string
		libs  []plex.Library
		want  string
	}{
		{"first music library", "", []plex.Library{movies, musicA, musicB}, musicA.ID},
		{"saved library", musicB.ID, []plex.Library{movies, musicA, musicB}, musicB.ID},
		{"saved library gone", "99", []plex.Library{movies, musicB}, musicB.ID},
		{"no music falls back to first", "", []plex.Library{shows, movies}, shows.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.link("tok")
			if tt.saved != "" {
				require.NoError(t, f.settings.SetSetting(SettingLibraryID, tt.saved))
			}

			c := f.client("http://10.0.0.1:32400")
			c.EXPECT().Probe(gomock.Any()).Return(true)
			c.EXPECT().Libraries(gomock.Any()).Return(tt.libs, nil)
			c.EXPECT().AllArtists(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
			c.EXPECT().AllAlbums(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
			c.EXPECT().AllShows(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

			require.NoError(t, f.m.Connect(context.Background(), server("srv", local("http://10.0.0.1:32400"))))
			f.m.Wait()

			st := f.m.Status()
			require.NotNil(t, st.Library)
			assert.Equal(t, tt.want, st.Library.ID)
			saved, err := f.settings.Setting(SettingLibraryID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, saved)
		})
	}
}

func TestManager_Connect_LibrariesFail(t *testing.T) {
	f := newFixture(t)
	f.link("tok")

	c := f.client("http://10.0.0.1:32400")
	c.EXPECT().Probe(gomock.Any()).Return(true)
	c.EXPECT().Libraries(gomock.Any()).Return(nil, plex.ErrUnauthorized)

	err := f.m.Connect(context.Background(), server("srv", local("http://10.0.0.1:32400")))
	assert.ErrorIs(t, err, plex.ErrUnauthorized)
	assert.Equal(t, StateConnected, f.m.Status().State)
}

func TestManager_SelectLibrary_DroppedAfterUnlink(t *testing.T) {
	f := newFixture(t)
	f.link("tok")
	f.connectMusic([]plex.Library{musicA, musicB}, nil, nil)

	f.m.mu.Lock()
	stale := f.m.epoch
	f.m.mu.Unlock()

	require.NoError(t, f.m.Unlink(context.Background()))
	f.m.selectLibrary(context.Background(), musicB, stale)

	assert.Nil(t, f.m.Status().Library)
	saved, err := f.settings.Setting(SettingLibraryID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestManager_LoadLibraries_StaleEpoch(t *testing.T) {
	f := newFixture(t)
	f.link("tok")
	c := f.connectMusic([]plex.Library{musicA, musicB}, nil, nil)

	f.m.mu.Lock()
	stale := f.m.epoch
	f.m.epoch++
	f.m.mu.Unlock()

	c.EXPECT().Libraries(gomock.Any()).Return([]plex.Library{musicB}, nil)
	require.NoError(t, f.m.loadLibraries(context.Background(), c, stale))
	f.m.Wait()

	st := f.m.Status()
	require.NotNil(t, st.Library)
	assert.Equal(t, musicA.ID, st.Library.ID)
	saved, err := f.settings.Setting(SettingLibraryID)
	require.NoError(t, err)
	assert.Equal(t, musicA.ID, saved)
}
