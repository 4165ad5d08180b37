// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Client.Product == "" {
		errs = append(errs, "client.product: required")
	}

	// Plex validation
	if u, err := url.Parse(c.Plex.AuthURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("plex.auth_url: must be an absolute URL, got %q", c.Plex.AuthURL))
	}
	durations := []struct {
		name  string
		value int64
	}{
		{"plex.request_timeout", int64(c.Plex.RequestTimeout)},
		{"plex.resource_timeout", int64(c.Plex.ResourceTimeout)},
		{"plex.list_timeout", int64(c.Plex.ListTimeout)},
		{"plex.probe_timeout", int64(c.Plex.ProbeTimeout)},
		{"plex.poll_interval", int64(c.Plex.PollInterval)},
		{"plex.retry_backoff", int64(c.Plex.RetryBackoff)},
		{"playback.timeline_interval", int64(c.Playback.TimelineInterval)},
		{"playback.min_play_time", int64(c.Playback.MinPlayTime)},
	}
	for _, d := range durations {
		if d.value < 0 {
			errs = append(errs, fmt.Sprintf("%s: must not be negative", d.name))
		}
	}
	if c.Plex.ProbeTimeout > c.Plex.RequestTimeout {
		errs = append(errs, fmt.Sprintf("plex.probe_timeout: must not exceed request_timeout (%s)", c.Plex.RequestTimeout))
	}
	if r := c.Plex.Retries(); r < 0 || r > 10 {
		errs = append(errs, fmt.Sprintf("plex.max_retries: must be between 0 and 10, got %d", r))
	}
	if c.Plex.RateLimit < 0 {
		errs = append(errs, fmt.Sprintf("plex.rate_limit: must not be negative, got %g", c.Plex.RateLimit))
	}
	if c.Plex.RateBurst < 1 {
		errs = append(errs, fmt.Sprintf("plex.rate_burst: must be at least 1, got %d", c.Plex.RateBurst))
	}
	if c.Plex.PageSize < 1 || c.Plex.PageSize > 1000 {
		errs = append(errs, fmt.Sprintf("plex.page_size: must be between 1 and 1000, got %d", c.Plex.PageSize))
	}

	// Playback validation
	if c.Playback.ScrobbleThreshold <= 0 || c.Playback.ScrobbleThreshold > 1 {
		errs = append(errs, fmt.Sprintf("playback.scrobble_threshold: must be in (0, 1], got %g", c.Playback.ScrobbleThreshold))
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path: required")
	}
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
