package session

//go:generate mockgen -source=deps.go -destination=mocks/mock_deps.go -package=mocks

import (
	"context"
	"net/http"
	"time"

	"github.com/vmunix/plexdeck/internal/plex"
)

// AuthAPI is the plex.tv surface used for linking and server discovery.
type AuthAPI interface {
	CreatePin(ctx context.Context) (*plex.Pin, error)
	PollForAuthorization(ctx context.Context, pin *plex.Pin, interval time.Duration, onUpdate func(*plex.Pin)) (*plex.Pin, error)
	AuthURL(pin *plex.Pin) string
	FetchAccount(ctx context.Context, token string) (*plex.Account, error)
	FetchServers(ctx context.Context, token string) ([]plex.Server, error)
}

// ServerAPI is a client bound to one negotiated path to a server.
type ServerAPI interface {
	Probe(ctx context.Context) bool
	Identity(ctx context.Context) (*plex.Identity, error)
	Libraries(ctx context.Context) ([]plex.Library, error)

	AllArtists(ctx context.Context, libraryID string, opts ...plex.ListOption) ([]plex.Artist, error)
	AllAlbums(ctx context.Context, libraryID string, opts ...plex.ListOption) ([]plex.Album, error)
	AllMovies(ctx context.Context, libraryID string, opts ...plex.ListOption) ([]plex.Movie, error)
	AllShows(ctx context.Context, libraryID string, opts ...plex.ListOption) ([]plex.Show, error)
	AllTracks(ctx context.Context, libraryID string, opts ...plex.ListOption) ([]plex.Track, error)

	ArtistAlbums(ctx context.Context, artistID string) ([]plex.Album, error)
	AlbumTracks(ctx context.Context, albumID string) ([]plex.Track, error)
	ShowSeasons(ctx context.Context, showID string) ([]plex.Season, error)
	SeasonEpisodes(ctx context.Context, seasonID string) ([]plex.Episode, error)

	Track(ctx context.Context, id string) (*plex.Track, error)
	Movie(ctx context.Context, id string) (*plex.Movie, error)
	Episode(ctx context.Context, id string) (*plex.Episode, error)

	Playlists(ctx context.Context, audioOnly bool) ([]plex.Playlist, error)
	AllPlaylistTracks(ctx context.Context, playlistID string) ([]plex.Track, error)
	Search(ctx context.Context, query, libraryID string, limit int) (*plex.SearchResults, error)

	TrackRadio(ctx context.Context, libraryID, trackID string, limit int) ([]plex.Track, error)
	ArtistRadio(ctx context.Context, libraryID, artistID string, limit int) ([]plex.Track, error)
	AlbumRadio(ctx context.Context, libraryID, albumID string, limit int) ([]plex.Track, error)

	StreamURL(partKey string) (string, error)
	ArtworkURL(thumb string, width, height int) string
	StreamHeaders() http.Header

	Timeline(ctx context.Context, u plex.TimelineUpdate) error
	Scrobble(ctx context.Context, itemID string) error
	Unscrobble(ctx context.Context, itemID string) error
	UpdateProgress(ctx context.Context, itemID string, position time.Duration) error
}

// Dialer builds a client for a server whose connection list has been
// narrowed to the single path being tried.
type Dialer func(server plex.Server, token string) (ServerAPI, error)

// ClientDialer dials with plex.NewServerClient.
func ClientDialer(opts ...plex.Option) Dialer {
	return func(server plex.Server, token string) (ServerAPI, error) {
		c, err := plex.NewServerClient(server, token, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// CredentialStore holds the account token.
type CredentialStore interface {
	AccountToken() (string, error)
	SetAccountToken(token string) error
	ClearAccountToken() error
}

// SettingsStore holds named settings. Missing keys read as "".
type SettingsStore interface {
	Setting(key string) (string, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error
}

var (
	_ AuthAPI   = (*plex.AuthClient)(nil)
	_ ServerAPI = (*plex.ServerClient)(nil)
)
