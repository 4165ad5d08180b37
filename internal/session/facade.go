package session

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/vmunix/plexdeck/internal/match"
	"github.com/vmunix/plexdeck/internal/plex"
)

// currentClient returns the adopted client or ErrServerOffline.
func (m *Manager) currentClient() (ServerAPI, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil, ErrServerOffline
	}
	return m.client, nil
}

// currentLibrary returns the client and current library.
func (m *Manager) currentLibrary() (ServerAPI, plex.Library, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil, plex.Library{}, ErrServerOffline
	}
	if m.library == nil {
		return nil, plex.Library{}, ErrNoLibrarySelected
	}
	return m.client, *m.library, nil
}

// skipForLibraryType reports whether a fetch of want-typed content should
// return empty because lib holds another kind of content. This is a normal
// outcome, not an error.
func (m *Manager) skipForLibraryType(op string, lib plex.Library, want plex.LibraryType) bool {
	if lib.Type == want {
		return false
	}
	m.log.Debug("skipping fetch for library type",
		"op", op, "library_id", lib.ID, "library_type", lib.Type.String(), "wants", want.String())
	return true
}

// cachedList serves a content bucket from the cache when filled, else
// fetches it and fills the bucket if the library is still current.
func cachedList[T any](ctx context.Context, m *Manager, op string, want plex.LibraryType,
	bucket func(*contentCache) *[]T,
	fetch func(context.Context, ServerAPI, string) ([]T, error),
) ([]T, error) {
	m.mu.Lock()
	client, lib := m.client, m.library
	if client == nil {
		m.mu.Unlock()
		return nil, ErrServerOffline
	}
	if lib == nil {
		m.mu.Unlock()
		return nil, ErrNoLibrarySelected
	}
	if cached := *bucket(&m.cache); len(cached) > 0 {
		out := slices.Clone(cached)
		m.mu.Unlock()
		return out, nil
	}
	libCopy := *lib
	m.mu.Unlock()

	if m.skipForLibraryType(op, libCopy, want) {
		return nil, nil
	}

	items, err := fetch(ctx, client, libCopy.ID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.client == client && m.library != nil && m.library.ID == libCopy.ID {
		*bucket(&m.cache) = items
	}
	m.mu.Unlock()
	return slices.Clone(items), nil
}

// Artists returns the current music library's artists, cache first.
func (m *Manager) Artists(ctx context.Context) ([]plex.Artist, error) {
	return cachedList(ctx, m, "artists", plex.LibraryMusic,
		func(c *contentCache) *[]plex.Artist { return &c.artists },
		func(ctx context.Context, s ServerAPI, id string) ([]plex.Artist, error) { return s.AllArtists(ctx, id) })
}

// Albums returns the current music library's albums, cache first.
func (m *Manager) Albums(ctx context.Context) ([]plex.Album, error) {
	return cachedList(ctx, m, "albums", plex.LibraryMusic,
		func(c *contentCache) *[]plex.Album { return &c.albums },
		func(ctx context.Context, s ServerAPI, id string) ([]plex.Album, error) { return s.AllAlbums(ctx, id) })
}

// Movies returns the current movie library's movies, cache first.
func (m *Manager) Movies(ctx context.Context) ([]plex.Movie, error) {
	return cachedList(ctx, m, "movies", plex.LibraryMovie,
		func(c *contentCache) *[]plex.Movie { return &c.movies },
		func(ctx context.Context, s ServerAPI, id string) ([]plex.Movie, error) { return s.AllMovies(ctx, id) })
}

// Shows returns the current show library's shows, cache first.
func (m *Manager) Shows(ctx context.Context) ([]plex.Show, error) {
	return cachedList(ctx, m, "shows", plex.LibraryShow,
		func(c *contentCache) *[]plex.Show { return &c.shows },
		func(ctx context.Context, s ServerAPI, id string) ([]plex.Show, error) { return s.AllShows(ctx, id) })
}

// Tracks lists every track of the current music library. Tracks are not cached.
func (m *Manager) Tracks(ctx context.Context) ([]plex.Track, error) {
	client, lib, err := m.currentLibrary()
	if err != nil {
		return nil, err
	}
	if m.skipForLibraryType("tracks", lib, plex.LibraryMusic) {
		return nil, nil
	}
	return client.AllTracks(ctx, lib.ID)
}

func (m *Manager) ArtistAlbums(ctx context.Context, artistID string) ([]plex.Album, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.ArtistAlbums(ctx, artistID)
}

func (m *Manager) AlbumTracks(ctx context.Context, albumID string) ([]plex.Track, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.AlbumTracks(ctx, albumID)
}

func (m *Manager) ShowSeasons(ctx context.Context, showID string) ([]plex.Season, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.ShowSeasons(ctx, showID)
}

func (m *Manager) SeasonEpisodes(ctx context.Context, seasonID string) ([]plex.Episode, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.SeasonEpisodes(ctx, seasonID)
}

// Track looks up a single track.
func (m *Manager) Track(ctx context.Context, id string) (*plex.Track, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.Track(ctx, id)
}

func (m *Manager) Movie(ctx context.Context, id string) (*plex.Movie, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.Movie(ctx, id)
}

func (m *Manager) Episode(ctx context.Context, id string) (*plex.Episode, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.Episode(ctx, id)
}

// Playlists lists the server's playlists; audioOnly limits them to music.
func (m *Manager) Playlists(ctx context.Context, audioOnly bool) ([]plex.Playlist, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.Playlists(ctx, audioOnly)
}

func (m *Manager) PlaylistTracks(ctx context.Context, playlistID string) ([]plex.Track, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.AllPlaylistTracks(ctx, playlistID)
}

// Search queries the server, scoped to the current library when one is selected.
func (m *Manager) Search(ctx context.Context, query string, limit int) (*plex.SearchResults, error) {
	m.mu.Lock()
	client := m.client
	libraryID := ""
	if m.library != nil {
		libraryID = m.library.ID
	}
	m.mu.Unlock()
	if client == nil {
		return nil, ErrServerOffline
	}
	return client.Search(ctx, query, libraryID, limit)
}

// radio runs a radio generator against the current music library.
func (m *Manager) radio(ctx context.Context, op, seedID string, limit int,
	gen func(ServerAPI) func(context.Context, string, string, int) ([]plex.Track, error),
) ([]plex.Track, error) {
	client, lib, err := m.currentLibrary()
	if err != nil {
		return nil, err
	}
	if m.skipForLibraryType(op, lib, plex.LibraryMusic) {
		return nil, nil
	}
	return gen(client)(ctx, lib.ID, seedID, limit)
}

func (m *Manager) TrackRadio(ctx context.Context, trackID string, limit int) ([]plex.Track, error) {
	return m.radio(ctx, "track radio", trackID, limit, func(s ServerAPI) func(context.Context, string, string, int) ([]plex.Track, error) {
		return s.TrackRadio
	})
}

func (m *Manager) ArtistRadio(ctx context.Context, artistID string, limit int) ([]plex.Track, error) {
	return m.radio(ctx, "artist radio", artistID, limit, func(s ServerAPI) func(context.Context, string, string, int) ([]plex.Track, error) {
		return s.ArtistRadio
	})
}

func (m *Manager) AlbumRadio(ctx context.Context, albumID string, limit int) ([]plex.Track, error) {
	return m.radio(ctx, "album radio", albumID, limit, func(s ServerAPI) func(context.Context, string, string, int) ([]plex.Track, error) {
		return s.AlbumRadio
	})
}

// StreamURL returns a directly playable URL for a media part.
func (m *Manager) StreamURL(partKey string) (string, error) {
	client, err := m.currentClient()
	if err != nil {
		return "", err
	}
	return client.StreamURL(partKey)
}

// ArtworkURL returns a transcoded artwork URL, or "" when thumb is empty.
func (m *Manager) ArtworkURL(thumb string, width, height int) (string, error) {
	client, err := m.currentClient()
	if err != nil {
		return "", err
	}
	return client.ArtworkURL(thumb, width, height), nil
}

// StreamHeaders returns headers a media engine should send with stream requests.
func (m *Manager) StreamHeaders() (http.Header, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.StreamHeaders(), nil
}

// MarkPlayed scrobbles an item.
func (m *Manager) MarkPlayed(ctx context.Context, itemID string) error {
	client, err := m.currentClient()
	if err != nil {
		return err
	}
	return client.Scrobble(ctx, itemID)
}

// ServerIdentity asks the connected server to describe itself.
func (m *Manager) ServerIdentity(ctx context.Context) (*plex.Identity, error) {
	client, err := m.currentClient()
	if err != nil {
		return nil, err
	}
	return client.Identity(ctx)
}

// MarkUnplayed unscrobbles an item.
func (m *Manager) MarkUnplayed(ctx context.Context, itemID string) error {
	client, err := m.currentClient()
	if err != nil {
		return err
	}
	return client.Unscrobble(ctx, itemID)
}

// SetResumePosition stores an item's resume offset.
func (m *Manager) SetResumePosition(ctx context.Context, itemID string, position time.Duration) error {
	client, err := m.currentClient()
	if err != nil {
		return err
	}
	return client.UpdateProgress(ctx, itemID, position)
}

// Timeline reports playback state for an item.
func (m *Manager) Timeline(ctx context.Context, u plex.TimelineUpdate) error {
	client, err := m.currentClient()
	if err != nil {
		return err
	}
	return client.Timeline(ctx, u)
}

// Scrobble marks an item played. It is MarkPlayed under the name the
// playback reporter uses.
func (m *Manager) Scrobble(ctx context.Context, itemID string) error {
	return m.MarkPlayed(ctx, itemID)
}

// FilterResults is cached content matching a type-ahead query.
type FilterResults struct {
	Artists []plex.Artist
	Albums  []plex.Album
	Movies  []plex.Movie
	Shows   []plex.Show
}

// FilterCached ranks cached content by title similarity to query without a
// network call.
func (m *Manager) FilterCached(query string) FilterResults {
	m.mu.Lock()
	c := m.cache
	m.mu.Unlock()

	return FilterResults{
		Artists: match.Filter(query, c.artists, func(a plex.Artist) string { return a.Title }),
		Albums:  match.Filter(query, c.albums, func(a plex.Album) string { return a.Title }),
		Movies:  match.Filter(query, c.movies, func(mv plex.Movie) string { return mv.Title }),
		Shows:   match.Filter(query, c.shows, func(s plex.Show) string { return s.Title }),
	}
}
