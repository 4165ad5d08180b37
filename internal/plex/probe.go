package plex

import (
	"context"
	"io"
	"net/http"
)

// Probe reports whether the server answers on this connection within the
// probe timeout. It is not retried or rate limited, and every failure reads
// as unreachable.
func (c *ServerClient) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/", nil), nil)
	if err != nil {
		return false
	}
	c.info.apply(req.Header)
	req.Header.Set("X-Plex-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("probe failed", "url", c.baseURL.String(), "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	ok := checkStatus("probe", resp) == nil
	c.log.Debug("probe complete", "url", c.baseURL.String(), "status", resp.StatusCode, "ok", ok)
	return ok
}

// Identity returns the server's self-description from its root endpoint.
func (c *ServerClient) Identity(ctx context.Context) (*Identity, error) {
	var resp containerResponse
	if err := c.get(ctx, "identity", "/", nil, &resp); err != nil {
		return nil, err
	}
	mc := resp.MediaContainer
	return &Identity{
		MachineIdentifier: mc.MachineIdentifier,
		Name:              mc.FriendlyName,
		Version:           mc.Version,
	}, nil
}
