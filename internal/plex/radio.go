package plex

import (
	"context"
	"errors"
	"fmt"
)

const (
	similarArtistCount = 15
	similarAlbumCount  = 10
	minRadioQuota      = 5
)

func radioQuota(limit, similar int) int {
	return max(minRadioQuota, limit/similar)
}

// TrackRadio returns up to limit tracks sonically similar to trackID, in the
// random order the server picks.
func (c *ServerClient) TrackRadio(ctx context.Context, libraryID, trackID string, limit int) ([]Track, error) {
	if limit <= 0 {
		return nil, nil
	}
	return c.Tracks(ctx, libraryID, Page{Limit: limit},
		Filter("track.sonicallySimilar", trackID), SortBy("random"))
}

// ArtistRadio mixes random tracks from artists similar to artistID.
//
// Each of up to 15 similar artists contributes max(5, limit/n) tracks. Artists
// are visited in order until limit tracks are collected; one failing artist is
// skipped. The mix is shuffled and cut to limit.
func (c *ServerClient) ArtistRadio(ctx context.Context, libraryID, artistID string, limit int) ([]Track, error) {
	if limit <= 0 {
		return nil, nil
	}
	similar, err := c.Artists(ctx, libraryID, Page{Limit: similarArtistCount},
		Filter("artist.sonicallySimilar", artistID))
	if err != nil {
		return nil, fmt.Errorf("artist radio: %w", err)
	}
	if len(similar) == 0 {
		return nil, nil
	}

	quota := radioQuota(limit, len(similar))
	var tracks []Track
	for _, a := range similar {
		if len(tracks) >= limit {
			break
		}
		batch, err := c.Tracks(ctx, libraryID, Page{Limit: quota},
			Filter("artist.id", a.ID), SortBy("random"))
		if err != nil {
			if ctxErr := radioCanceled(ctx, err); ctxErr != nil {
				return nil, ctxErr
			}
			c.log.Warn("artist radio: skipping artist", "artist_id", a.ID, "artist", a.Title, "error", err)
			continue
		}
		tracks = append(tracks, batch...)
	}
	return c.mix(tracks, limit), nil
}

// AlbumRadio mixes tracks from albums similar to albumID.
//
// Each of up to 10 similar albums contributes max(5, limit/n) tracks drawn at
// random from its full track list.
func (c *ServerClient) AlbumRadio(ctx context.Context, libraryID, albumID string, limit int) ([]Track, error) {
	if limit <= 0 {
		return nil, nil
	}
	similar, err := c.Albums(ctx, libraryID, Page{Limit: similarAlbumCount},
		Filter("album.sonicallySimilar", albumID))
	if err != nil {
		return nil, fmt.Errorf("album radio: %w", err)
	}
	if len(similar) == 0 {
		return nil, nil
	}

	quota := radioQuota(limit, len(similar))
	var tracks []Track
	for _, a := range similar {
		if len(tracks) >= limit {
			break
		}
		batch, err := c.AlbumTracks(ctx, a.ID)
		if err != nil {
			if ctxErr := radioCanceled(ctx, err); ctxErr != nil {
				return nil, ctxErr
			}
			c.log.Warn("album radio: skipping album", "album_id", a.ID, "album", a.Title, "error", err)
			continue
		}
		c.shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
		if len(batch) > quota {
			batch = batch[:quota]
		}
		tracks = append(tracks, batch...)
	}
	return c.mix(tracks, limit), nil
}

// radioCanceled returns the context error when err came from the caller
// giving up rather than from the server.
func radioCanceled(ctx context.Context, err error) error {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return ctx.Err()
	}
	return nil
}

func (c *ServerClient) mix(tracks []Track, limit int) []Track {
	c.shuffle(len(tracks), func(i, j int) { tracks[i], tracks[j] = tracks[j], tracks[i] })
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	return tracks
}
