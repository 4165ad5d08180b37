package plex

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/vmunix/plexdeck/internal/clock"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

var testInfo = ClientInfo{
	ClientIdentifier: "test-client-id",
	Product:          "plexdeck",
	Version:          "0.1.0",
	Platform:         "Linux",
	PlatformVersion:  "6.1",
	Device:           "PC",
	DeviceName:       "test-box",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// item is a loose metadata record for building fake responses.
type item map[string]any

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func writeContainer(t *testing.T, w http.ResponseWriter, items []item) {
	t.Helper()
	if items == nil {
		items = []item{}
	}
	writeJSON(t, w, map[string]any{
		"MediaContainer": map[string]any{
			"size":     len(items),
			"Metadata": items,
		},
	})
}

func newTestAuthClient(t *testing.T, handler http.HandlerFunc, clk clock.Clock) *AuthClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAuthClient(testInfo,
		WithAuthBaseURL(server.URL),
		WithAuthClock(clk),
		WithAuthLogger(discardLogger()),
	)
}

func testServer(uri string) Server {
	return Server{
		ID:          "server-1",
		Name:        "Living Room",
		Connections: []Connection{NewConnection(uri, true, false)},
	}
}

// newTestServerClient returns a client bound to a fake server whose backoff
// sleeps complete instantly on the returned clock.
func newTestServerClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*ServerClient, *clock.Fake) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	clk := clock.NewFake(epoch)
	clk.SetAutoAdvance(true)

	base := []Option{
		WithClientInfo(testInfo),
		WithLogger(discardLogger()),
		WithClock(clk),
		WithRateLimit(rate.Inf, 1),
		WithRandSeed(1),
	}
	client, err := NewServerClient(testServer(server.URL), "test-token", append(base, opts...)...)
	require.NoError(t, err)
	return client, clk
}
