package plex

import (
	"context"
	"net/url"
	"strconv"
)

// Search runs a multi-category search, optionally scoped to one library.
// Hubs of unknown type are ignored.
func (c *ServerClient) Search(ctx context.Context, query, libraryID string, limit int) (*SearchResults, error) {
	q := url.Values{"query": {query}}
	if libraryID != "" {
		q.Set("sectionId", libraryID)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp containerResponse
	if err := c.get(ctx, "search", "/hubs/search", q, &resp); err != nil {
		return nil, err
	}

	results := &SearchResults{}
	for _, h := range resp.MediaContainer.Hub {
		items := h.Metadata
		if len(items) == 0 {
			items = h.Directory
		}
		switch h.Type {
		case "artist":
			results.Artists = append(results.Artists, mapAll(items, mapArtist)...)
		case "album":
			results.Albums = append(results.Albums, mapAll(items, mapAlbum)...)
		case "track":
			results.Tracks = append(results.Tracks, mapAll(items, mapTrack)...)
		case "movie":
			results.Movies = append(results.Movies, mapAll(items, mapMovie)...)
		case "show":
			results.Shows = append(results.Shows, mapAll(items, mapShow)...)
		case "episode":
			results.Episodes = append(results.Episodes, mapAll(items, mapEpisode)...)
		default:
			c.log.Debug("ignoring search hub", "type", h.Type, "size", len(items))
		}
	}
	return results, nil
}
