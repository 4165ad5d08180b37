package plex

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// StreamURL returns a direct URL for a media part path. The token rides in
// the query since media engines cannot always attach headers.
func (c *ServerClient) StreamURL(partKey string) (string, error) {
	if partKey == "" {
		return "", errors.New("stream url: empty part key")
	}
	ref, err := url.Parse(partKey)
	if err != nil {
		return "", fmt.Errorf("stream url: parse part key: %w", err)
	}

	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimPrefix(ref.Path, "/")
	q := ref.Query()
	q.Set("X-Plex-Token", c.token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ArtworkURL returns a transcoded thumbnail URL, or "" when thumb is empty.
func (c *ServerClient) ArtworkURL(thumb string, width, height int) string {
	if thumb == "" {
		return ""
	}
	q := url.Values{}
	q.Set("url", thumb)
	q.Set("width", strconv.Itoa(width))
	q.Set("height", strconv.Itoa(height))
	q.Set("minSize", "1")
	q.Set("X-Plex-Token", c.token)
	return c.endpoint("/photo/:/transcode", q)
}

// StreamHeaders returns the identity and token headers for players that can
// inject headers on remote or relayed streams.
func (c *ServerClient) StreamHeaders() http.Header {
	h := c.info.Headers()
	h.Del("Accept")
	h.Set("X-Plex-Token", c.token)
	return h
}
