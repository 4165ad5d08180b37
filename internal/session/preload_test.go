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

func TestManager_StalePreloadDiscarded(t *testing.T) {
	f := newFixture(t)
	f.link("tok")
	ctx := context.Background()

	const uri = "http://10.0.0.1:32400"
	c := f.client(uri)
	c.EXPECT().Probe(gomock.Any()).Return(true)
	c.EXPECT().Libraries(gomock.Any()).Return([]plex.Library{musicA, musicB}, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	c.EXPECT().AllArtists(gomock.Any(), musicA.ID).DoAndReturn(
		func(ctx context.Context, _ string, _ ...plex.ListOption) ([]plex.Artist, error) {
			close(started)
			select {
			case <-release:
			case <-ctx.Done():
			}
			return []plex.Artist{{ID: "a1", Title: "From A"}}, nil
		})
	c.EXPECT().AllAlbums(gomock.Any(), musicA.ID).Return([]plex.Album{{ID: "al1", Title: "Album A"}}, nil)
	c.EXPECT().AllArtists(gomock.Any(), musicB.ID).Return([]plex.Artist{{ID: "b1", Title: "From B"}}, nil)
	c.EXPECT().AllAlbums(gomock.Any(), musicB.ID).Return(nil, nil)

	discarded := f.bus.Subscribe(events.EventPreloadDiscarded, 1)

	require.NoError(t, f.m.Connect(ctx, server("srv", local(uri))))
	<-started

	require.NoError(t, f.m.SelectLibrary(ctx, musicB.ID))
	st := f.m.Status()
	assert.Equal(t, musicB.ID, st.Library.ID)
	assert.Zero(t, st.CachedArtists+st.CachedAlbums+st.CachedMovies+st.CachedShows)

	close(release)
	f.m.Wait()

	// served from cache; a second AllArtists call would fail the mock
	artists, err := f.m.Artists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []plex.Artist{{ID: "b1", Title: "From B"}}, artists)

	e := receive(t, discarded).(*events.PreloadDiscarded)
	assert.Equal(t, musicA.ID, e.EntityID())
	assert.Equal(t, musicB.ID, e.CurrentLibraryID)
	assert.False(t, f.m.Status().PreloadRunning)
}

func TestManager_SelectLibrary_ClearsCaches(t *testing.T) {
	f := newFixture(t)
	f.link("tok")
	ctx := context.Background()

	c := f.connectMusic([]plex.Library{musicA, movies},
		[]plex.Artist{{ID: "a1"}, {ID: "a2"}}, []plex.Album{{ID: "al1"}})
	st := f.m.Status()
	require.Equal(t, 2, st.CachedArtists)
	require.Equal(t, 1, st.CachedAlbums)

	c.EXPECT().AllMovies(gomock.Any(), movies.ID).Return([]plex.Movie{{ID: "m1", Title: "Heat"}}, nil)
	require.NoError(t, f.m.SelectLibrary(ctx, movies.ID))
	f.m.Wait()

	st = f.m.Status()
	assert.Zero(t, st.CachedArtists)
	assert.Zero(t, st.CachedAlbums)
	assert.Equal(t, 1, st.CachedMovies)
}

func TestManager_SelectSameLibraryKeepsCache(t *testing.T) {
	f := newFixture(t)
	f.link("tok")
	f.connectMusic([]plex.Library{musicA}, []plex.Artist{{ID: "a1"}}, nil)

	require.NoError(t, f.m.SelectLibrary(context.Background(), musicA.ID))
	f.m.Wait()
	assert.Equal(t, 1, f.m.Status().CachedArtists)
}

func TestManager_SelectLibrary_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	assert.ErrorIs(t, f.m.SelectLibrary(ctx, "1"), ErrServerOffline)

	f.link("tok")
	f.connectMusic([]plex.Library{musicA}, nil, nil)

	assert.ErrorIs(t, f.m.SelectLibrary(ctx, "99"), ErrUnknownLibrary)
	assert.ErrorIs(t, f.m.SelectLibraryOfType(ctx, plex.LibraryShow), ErrNoLibraryOfType)
}

func TestManager_SelectLibraryOfType(t *testing.T) {
	f := newFixture(t)
	f.link("tok")
	c := f.connectMusic([]plex.Library{musicA, shows}, nil, nil)

	c.EXPECT().AllShows(gomock.Any(), shows.ID).Return([]plex.Show{{ID: "s1"}}, nil)
	require.NoError(t, f.m.SelectLibraryOfType(context.Background(), plex.LibraryShow))
	f.m.Wait()

	st := f.m.Status()
	assert.Equal(t, shows.ID, st.Library.ID)
	assert.Equal(t, 1, st.CachedShows)
}

func TestManager_PreloadFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.link("tok")

	const uri = "http://10.0.0.1:32400"
	c := f.client(uri)
	c.EXPECT().Probe(gomock.Any()).Return(true)
	c.EXPECT().Libraries(gomock.Any()).Return([]plex.Library{musicA}, nil)
	c.EXPECT().AllArtists(gomock.Any(), musicA.ID).Return(nil, errors.New("boom"))
	c.EXPECT().AllAlbums(gomock.Any(), musicA.ID).Return(nil, nil).AnyTimes()

	require.NoError(t, f.m.Connect(context.Background(), server("srv", local(uri))))
	f.m.Wait()

	st := f.m.Status()
	assert.Equal(t, StateConnected, st.State)
	assert.Zero(t, st.CachedArtists)
}
