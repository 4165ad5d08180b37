package plex

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

const libraryIdentifier = "com.plexapp.plugins.library"

// PlaybackState is the player state reported on the timeline.
type PlaybackState string

const (
	StatePlaying PlaybackState = "playing"
	StatePaused  PlaybackState = "paused"
	StateStopped PlaybackState = "stopped"
)

// MediaType is the timeline media context.
type MediaType string

const (
	MediaMusic MediaType = "music"
	MediaVideo MediaType = "video"
)

// TimelineUpdate is one playback progress report.
type TimelineUpdate struct {
	ItemID       string
	State        PlaybackState
	Position     time.Duration
	Duration     time.Duration
	PlaybackTime time.Duration
	MediaType    MediaType
}

func ms(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

// Timeline reports the player state for an item.
func (c *ServerClient) Timeline(ctx context.Context, u TimelineUpdate) error {
	mediaType := u.MediaType
	if mediaType == "" {
		mediaType = MediaMusic
	}
	q := url.Values{}
	q.Set("ratingKey", u.ItemID)
	q.Set("key", "/library/metadata/"+u.ItemID)
	q.Set("state", string(u.State))
	q.Set("time", ms(u.Position))
	q.Set("duration", ms(u.Duration))
	q.Set("playbackTime", ms(u.PlaybackTime))
	q.Set("type", string(mediaType))
	q.Set("context", "library")
	q.Set("hasMDE", "1")
	return c.get(ctx, "timeline", "/:/timeline", q, nil)
}

// Scrobble marks an item played.
func (c *ServerClient) Scrobble(ctx context.Context, itemID string) error {
	q := url.Values{"key": {itemID}, "identifier": {libraryIdentifier}}
	return c.get(ctx, "scrobble", "/:/scrobble", q, nil)
}

// Unscrobble marks an item unplayed.
func (c *ServerClient) Unscrobble(ctx context.Context, itemID string) error {
	q := url.Values{"key": {itemID}, "identifier": {libraryIdentifier}}
	return c.get(ctx, "unscrobble", "/:/unscrobble", q, nil)
}

// UpdateProgress stores the resume position of an item.
func (c *ServerClient) UpdateProgress(ctx context.Context, itemID string, position time.Duration) error {
	q := url.Values{}
	q.Set("key", itemID)
	q.Set("time", ms(position))
	q.Set("identifier", libraryIdentifier)
	return c.get(ctx, "update progress", "/:/progress", q, nil)
}
