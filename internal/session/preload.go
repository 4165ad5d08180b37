package session

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/plex"
)

// contentCache holds preloaded content for the current library. Only the
// buckets matching the library type are filled.
type contentCache struct {
	artists []plex.Artist
	albums  []plex.Album
	movies  []plex.Movie
	shows   []plex.Show
}

func (c *contentCache) clear() {
	*c = contentCache{}
}

// startPreload fills the cache for the current library in the background.
// Only one preload runs at a time; a request made while one is running
// schedules another pass once it finishes.
func (m *Manager) startPreload() {
	m.mu.Lock()
	if m.preloading {
		m.preloadAgain = true
		m.mu.Unlock()
		return
	}
	m.preloading = true
	m.mu.Unlock()

	m.goBackground(func(ctx context.Context) {
		for {
			m.preloadOnce(ctx)

			m.mu.Lock()
			if m.preloadAgain && ctx.Err() == nil {
				m.preloadAgain = false
				m.mu.Unlock()
				continue
			}
			m.preloadAgain = false
			m.preloading = false
			m.mu.Unlock()
			return
		}
	})
}

func (m *Manager) preloadOnce(ctx context.Context) {
	m.mu.Lock()
	client, lib := m.client, m.library
	m.mu.Unlock()
	if client == nil || lib == nil {
		return
	}

	log := m.log.With("library", lib.Title, "library_id", lib.ID)
	loaded, err := fetchContent(ctx, client, *lib)
	if err != nil {
		log.Warn("preload failed", "error", err)
		return
	}

	m.mu.Lock()
	current := ""
	if m.library != nil {
		current = m.library.ID
	}
	stale := current != lib.ID || m.client != client
	if !stale {
		m.cache = loaded
	}
	m.mu.Unlock()

	if stale {
		log.Debug("discarding stale preload", "current_library_id", current)
		m.publish(ctx, &events.PreloadDiscarded{
			BaseEvent:        events.NewBaseEvent(events.EventPreloadDiscarded, events.EntityLibrary, lib.ID),
			CurrentLibraryID: current,
		})
		return
	}

	log.Info("preload complete",
		"artists", len(loaded.artists), "albums", len(loaded.albums),
		"movies", len(loaded.movies), "shows", len(loaded.shows))
	m.publish(ctx, &events.PreloadCompleted{
		BaseEvent: events.NewBaseEvent(events.EventPreloadCompleted, events.EntityLibrary, lib.ID),
		Artists:   len(loaded.artists),
		Albums:    len(loaded.albums),
		Movies:    len(loaded.movies),
		Shows:     len(loaded.shows),
	})
}

// fetchContent loads the buckets for lib's type. Music fetches artists and
// albums concurrently.
func fetchContent(ctx context.Context, client ServerAPI, lib plex.Library) (contentCache, error) {
	var c contentCache
	switch lib.Type {
	case plex.LibraryMusic:
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			artists, err := client.AllArtists(gctx, lib.ID)
			if err != nil {
				return fmt.Errorf("artists: %w", err)
			}
			c.artists = artists
			return nil
		})
		g.Go(func() error {
			albums, err := client.AllAlbums(gctx, lib.ID)
			if err != nil {
				return fmt.Errorf("albums: %w", err)
			}
			c.albums = albums
			return nil
		})
		if err := g.Wait(); err != nil {
			return contentCache{}, err
		}
	case plex.LibraryMovie:
		movies, err := client.AllMovies(ctx, lib.ID)
		if err != nil {
			return contentCache{}, fmt.Errorf("movies: %w", err)
		}
		c.movies = movies
	case plex.LibraryShow:
		shows, err := client.AllShows(ctx, lib.ID)
		if err != nil {
			return contentCache{}, fmt.Errorf("shows: %w", err)
		}
		c.shows = shows
	}
	return c, nil
}
