package plex

import (
	"context"
	"net/http"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyTransport fails the first n round trips with err.
type flakyTransport struct {
	n     int32
	err   error
	calls atomic.Int32
}

func (f *flakyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if f.calls.Add(1) <= f.n {
		return nil, f.err
	}
	return http.DefaultTransport.RoundTrip(r)
}

func okIdentity(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"MediaContainer": map[string]any{
			"machineIdentifier": "abc123",
			"friendlyName":      "Living Room",
			"version":           "1.40.0",
		}})
	}
}

func TestNewServerClient_NoUsableConnection(t *testing.T) {
	server := Server{Name: "Broken", Connections: []Connection{NewConnection("not a url", true, false)}}
	_, err := NewServerClient(server, "tok")
	assert.ErrorIs(t, err, ErrNoUsableConnection)

	_, err = NewServerClient(Server{Name: "Empty"}, "tok")
	assert.ErrorIs(t, err, ErrNoUsableConnection)
}

func TestNewServerClient_BindsFirstUsableConnection(t *testing.T) {
	server := Server{
		Name:        "NAS",
		AccessToken: "server-token",
		Connections: []Connection{
			NewConnection("::bad::", true, false),
			NewConnection("http://10.0.0.5:32400/", true, false),
			NewConnection("https://relay.example:443", false, true),
		},
	}
	client, err := NewServerClient(server, "account-token")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:32400", client.BaseURL())
	assert.Equal(t, "server-token", client.token)
	assert.Equal(t, "local", client.Connection().Kind())
}

func TestServerClient_SendsIdentityAndToken(t *testing.T) {
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("X-Plex-Token"))
		assert.Equal(t, "test-client-id", r.Header.Get("X-Plex-Client-Identifier"))
		assert.Equal(t, "Linux", r.Header.Get("X-Plex-Platform"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		okIdentity(t)(w, r)
	})

	id, err := client.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", id.MachineIdentifier)
	assert.Equal(t, "Living Room", id.Name)
	assert.Equal(t, "1.40.0", id.Version)
}

func TestServerClient_RetriesTransientFailures(t *testing.T) {
	flaky := &flakyTransport{n: 2, err: syscall.ECONNRESET}
	var hits atomic.Int32
	client, clk := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		okIdentity(t)(w, r)
	}, WithHTTPClient(&http.Client{Transport: flaky}))

	_, err := client.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), flaky.calls.Load())
	assert.Equal(t, int32(1), hits.Load())
	// 1s then 2s
	assert.Equal(t, epoch.Add(3*time.Second), clk.Now())
}

func TestServerClient_GivesUpAfterThreeRetries(t *testing.T) {
	flaky := &flakyTransport{n: 100, err: syscall.ECONNRESET}
	client, clk := newTestServerClient(t, okIdentity(t), WithHTTPClient(&http.Client{Transport: flaky}))

	_, err := client.Identity(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.ErrorIs(t, err, syscall.ECONNRESET)
	assert.Equal(t, int32(4), flaky.calls.Load())
	// 1s + 2s + 4s
	assert.Equal(t, epoch.Add(7*time.Second), clk.Now())
}

func TestServerClient_CustomRetrySchedule(t *testing.T) {
	flaky := &flakyTransport{n: 100, err: syscall.ETIMEDOUT}
	client, clk := newTestServerClient(t, okIdentity(t),
		WithHTTPClient(&http.Client{Transport: flaky}),
		WithRetry(1, 500*time.Millisecond),
	)

	_, err := client.Identity(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), flaky.calls.Load())
	assert.Equal(t, epoch.Add(500*time.Millisecond), clk.Now())
}

func TestServerClient_DoesNotRetryRefused(t *testing.T) {
	flaky := &flakyTransport{n: 100, err: syscall.ECONNREFUSED}
	client, clk := newTestServerClient(t, okIdentity(t), WithHTTPClient(&http.Client{Transport: flaky}))

	_, err := client.Identity(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, IsTransient(err))
	assert.Equal(t, int32(1), flaky.calls.Load())
	assert.Equal(t, epoch, clk.Now())
}

func TestServerClient_StatusErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnauthorized)
		}},
		{"server error", http.StatusInternalServerError, func(t *testing.T, err error) {
			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		}},
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusNotFound, httpErr.Status)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			})

			_, err := client.Libraries(context.Background())
			tt.check(t, err)
			assert.False(t, IsTransient(err))
			assert.Equal(t, int32(1), hits.Load())
		})
	}
}

func TestServerClient_InvalidResponse(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`<MediaContainer/>`))
	})

	_, err := client.Libraries(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.False(t, IsTransient(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestServerClient_TruncatedBodyIsRetried(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"MediaContainer": {"Directory": [`))
			return
		}
		writeJSON(t, w, map[string]any{"MediaContainer": map[string]any{
			"Directory": []item{{"key": "1", "title": "Music", "type": "artist"}},
		}})
	})

	libs, err := client.Libraries(context.Background())
	require.NoError(t, err)
	require.Len(t, libs, 1)
	assert.Equal(t, int32(2), hits.Load())
}

func TestServerClient_CanceledContextStopsRetries(t *testing.T) {
	flaky := &flakyTransport{n: 100, err: syscall.ECONNRESET}
	client, _ := newTestServerClient(t, okIdentity(t), WithHTTPClient(&http.Client{Transport: flaky}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Identity(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, flaky.calls.Load())
}
