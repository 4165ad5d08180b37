package plex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListOption adds sort or filter parameters to a library listing.
type ListOption func(url.Values)

// SortBy orders a listing, e.g. "titleSort" or "random".
func SortBy(field string) ListOption {
	return func(q url.Values) {
		q.Set("sort", field)
	}
}

// Filter restricts a listing, e.g. Filter("year", "1999").
func Filter(key, value string) ListOption {
	return func(q url.Values) {
		q.Set(key, value)
	}
}

func pageQuery(page Page, opts []ListOption) url.Values {
	q := url.Values{}
	if page.Limit > 0 {
		q.Set("X-Plex-Container-Start", strconv.Itoa(page.Offset))
		q.Set("X-Plex-Container-Size", strconv.Itoa(page.Limit))
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Libraries lists the server's library sections.
func (c *ServerClient) Libraries(ctx context.Context) ([]Library, error) {
	var resp containerResponse
	if err := c.get(ctx, "list libraries", "/library/sections", nil, &resp); err != nil {
		return nil, err
	}
	libs := make([]Library, 0, len(resp.MediaContainer.Directory))
	for _, d := range resp.MediaContainer.Directory {
		libs = append(libs, mapLibrary(d))
	}
	return libs, nil
}

// listContent is the generic typed listing every Artists/Albums/... call uses.
func (c *ServerClient) listContent(ctx context.Context, libraryID string, typ ContentType, page Page, opts []ListOption) ([]metadata, error) {
	q := pageQuery(page, opts)
	q.Set("type", strconv.Itoa(int(typ)))

	var resp containerResponse
	path := "/library/sections/" + url.PathEscape(libraryID) + "/all"
	if err := c.get(ctx, fmt.Sprintf("list type %d", typ), path, q, &resp); err != nil {
		return nil, err
	}
	return resp.MediaContainer.Metadata, nil
}

func (c *ServerClient) children(ctx context.Context, op, id string) ([]metadata, error) {
	var resp containerResponse
	path := "/library/metadata/" + url.PathEscape(id) + "/children"
	if err := c.get(ctx, op, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.MediaContainer.Metadata, nil
}

func (c *ServerClient) item(ctx context.Context, op, id string) (metadata, error) {
	var resp containerResponse
	path := "/library/metadata/" + url.PathEscape(id)
	if err := c.get(ctx, op, path, nil, &resp); err != nil {
		return metadata{}, err
	}
	if len(resp.MediaContainer.Metadata) == 0 {
		return metadata{}, fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	return resp.MediaContainer.Metadata[0], nil
}

// fetchAll requests pages of size until one comes back short. The total-count
// field is never consulted.
func fetchAll[T any](ctx context.Context, c *ServerClient, fetch func(context.Context, Page) ([]T, error)) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	var all []T
	page := Page{Offset: 0, Limit: c.pageSize}
	for {
		items, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < page.Limit {
			return all, nil
		}
		page.Offset += page.Limit
	}
}

// Artists lists one page of artists in a music library.
func (c *ServerClient) Artists(ctx context.Context, libraryID string, page Page, opts ...ListOption) ([]Artist, error) {
	items, err := c.listContent(ctx, libraryID, TypeArtist, page, opts)
	if err != nil {
		return nil, err
	}
	return mapAll(items, mapArtist), nil
}

// AllArtists lists every artist in a music library.
func (c *ServerClient) AllArtists(ctx context.Context, libraryID string, opts ...ListOption) ([]Artist, error) {
	return fetchAll(ctx, c, func(ctx context.Context, p Page) ([]Artist, error) {
		return c.Artists(ctx, libraryID, p, opts...)
	})
}

// Albums lists one page of albums in a music library.
func (c *ServerClient) Albums(ctx context.Context, libraryID string, page Page, opts ...ListOption) ([]Album, error) {
	items, err := c.listContent(ctx, libraryID, TypeAlbum, page, opts)
	if err != nil {
		return nil, err
	}
	return mapAll(items, mapAlbum), nil
}

// AllAlbums lists every album in a music library.
func (c *ServerClient) AllAlbums(ctx context.Context, libraryID string, opts ...ListOption) ([]Album, error) {
	return fetchAll(ctx, c, func(ctx context.Context, p Page) ([]Album, error) {
		return c.Albums(ctx, libraryID, p, opts...)
	})
}

// Tracks lists one page of tracks in a music library.
func (c *ServerClient) Tracks(ctx context.Context, libraryID string, page Page, opts ...ListOption) ([]Track, error) {
	items, err := c.listContent(ctx, libraryID, TypeTrack, page, opts)
	if err != nil {
		return nil, err
	}
	return mapAll(items, mapTrack), nil
}

// AllTracks lists every track in a music library.
func (c *ServerClient) AllTracks(ctx context.Context, libraryID string, opts ...ListOption) ([]Track, error) {
	return fetchAll(ctx, c, func(ctx context.Context, p Page) ([]Track, error) {
		return c.Tracks(ctx, libraryID, p, opts...)
	})
}

// Movies lists one page of movies in a movie library.
func (c *ServerClient) Movies(ctx context.Context, libraryID string, page Page, opts ...ListOption) ([]Movie, error) {
	items, err := c.listContent(ctx, libraryID, TypeMovie, page, opts)
	if err != nil {
		return nil, err
	}
	return mapAll(items, mapMovie), nil
}

// AllMovies lists every movie in a movie library.
func (c *ServerClient) AllMovies(ctx context.Context, libraryID string, opts ...ListOption) ([]Movie, error) {
	return fetchAll(ctx, c, func(ctx context.Context, p Page) ([]Movie, error) {
		return c.Movies(ctx, libraryID, p, opts...)
	})
}

// Shows lists one page of shows in a TV library.
func (c *ServerClient) Shows(ctx context.Context, libraryID string, page Page, opts ...ListOption) ([]Show, error) {
	items, err := c.listContent(ctx, libraryID, TypeShow, page, opts)
	if err != nil {
		return nil, err
	}
	return mapAll(items, mapShow), nil
}

// AllShows lists every show in a TV library.
func (c *ServerClient) AllShows(ctx context.Context, libraryID string, opts ...ListOption) ([]Show, error) {
	return fetchAll(ctx, c, func(ctx context.Context, p Page) ([]Show, error) {
		return c.Shows(ctx, libraryID, p, opts...)
	})
}

// ArtistAlbums lists the albums of an artist.
func (c *ServerClient) ArtistAlbums(ctx context.Context, artistID string) ([]Album, error) {
	items, err := c.children(ctx, "artist albums", artistID)
	if err != nil {
		return nil, err
	}
	return mapAll(items, mapAlbum), nil
}

// AlbumTracks lists the tracks of an album.
func (c *ServerClient) AlbumTracks(ctx context.Context, albumID string) ([]Track, error) {
	items, err := c.children(ctx, "album tracks", albumID)
	if err != nil {
		return nil, err
	}
	return mapAll(items, mapTrack), nil
}

// ShowSeasons lists the seasons of a show.
func (c *ServerClient) ShowSeasons(ctx context.Context, showID string) ([]Season, error) {
	items, err := c.children(ctx, "show seasons", showID)
	if err != nil {
		return nil, err
	}
	return mapAll(items, mapSeason), nil
}

// SeasonEpisodes lists the episodes of a season.
func (c *ServerClient) SeasonEpisodes(ctx context.Context, seasonID string) ([]Episode, error) {
	items, err := c.children(ctx, "season episodes", seasonID)
	if err != nil {
		return nil, err
	}
	return mapAll(items, mapEpisode), nil
}

// Track fetches a single track with its media parts.
func (c *ServerClient) Track(ctx context.Context, id string) (*Track, error) {
	m, err := c.item(ctx, "get track", id)
	if err != nil {
		return nil, err
	}
	t := mapTrack(m)
	return &t, nil
}

// Movie fetches a single movie with its media parts.
func (c *ServerClient) Movie(ctx context.Context, id string) (*Movie, error) {
	m, err := c.item(ctx, "get movie", id)
	if err != nil {
		return nil, err
	}
	mv := mapMovie(m)
	return &mv, nil
}

// Episode fetches a single episode with its media parts.
func (c *ServerClient) Episode(ctx context.Context, id string) (*Episode, error) {
	m, err := c.item(ctx, "get episode", id)
	if err != nil {
		return nil, err
	}
	e := mapEpisode(m)
	return &e, nil
}

// Playlists lists server playlists, optionally only audio ones.
func (c *ServerClient) Playlists(ctx context.Context, audioOnly bool) ([]Playlist, error) {
	q := url.Values{}
	if audioOnly {
		q.Set("playlistType", "audio")
	}
	var resp containerResponse
	if err := c.get(ctx, "list playlists", "/playlists", q, &resp); err != nil {
		return nil, err
	}
	return mapAll(resp.MediaContainer.Metadata, mapPlaylist), nil
}

// PlaylistTracks lists one page of a playlist's items.
func (c *ServerClient) PlaylistTracks(ctx context.Context, playlistID string, page Page) ([]Track, error) {
	var resp containerResponse
	path := "/playlists/" + url.PathEscape(playlistID) + "/items"
	if err := c.get(ctx, "playlist items", path, pageQuery(page, nil), &resp); err != nil {
		return nil, err
	}
	return mapAll(resp.MediaContainer.Metadata, mapTrack), nil
}

// AllPlaylistTracks lists every item of a playlist.
func (c *ServerClient) AllPlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	return fetchAll(ctx, c, func(ctx context.Context, p Page) ([]Track, error) {
		return c.PlaylistTracks(ctx, playlistID, p)
	})
}
