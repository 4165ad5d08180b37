package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item = map[string]any

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

// fakePlex is a plex.tv account service plus one media server holding a
// single empty music library.
type fakePlex struct {
	t        *testing.T
	tv       *httptest.Server
	pms      *httptest.Server
	pinPolls atomic.Int32
}

func newFakePlex(t *testing.T) *fakePlex {
	t.Helper()
	f := &fakePlex{t: t}
	f.pms = httptest.NewServer(http.HandlerFunc(f.serveMedia))
	f.tv = httptest.NewServer(http.HandlerFunc(f.serveAccount))
	t.Cleanup(f.tv.Close)
	t.Cleanup(f.pms.Close)
	return f
}

func (f *fakePlex) serveAccount(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/v2/pins":
		writeJSON(f.t, w, item{"id": 42, "code": "ABCD"})
	case r.URL.Path == "/api/v2/pins/42":
		pin := item{"id": 42, "code": "ABCD"}
		if f.pinPolls.Add(1) >= 2 {
			pin["authToken"] = "account-token"
		}
		writeJSON(f.t, w, pin)
	case r.URL.Path == "/api/v2/user":
		if r.Header.Get("X-Plex-Token") != "account-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(f.t, w, item{"id": 1, "username": "alice"})
	case r.URL.Path == "/api/v2/resources":
		u, err := url.Parse(f.pms.URL)
		if !assert.NoError(f.t, err) {
			return
		}
		port, _ := strconv.Atoi(u.Port())
		writeJSON(f.t, w, []item{{
			"name":             "Den",
			"clientIdentifier": "den1",
			"provides":         "server",
			"owned":            true,
			"presence":         true,
			"accessToken":      "server-token",
			"connections": []item{
				{"protocol": "http", "address": u.Hostname(), "port": port, "uri": f.pms.URL, "local": true},
			},
		}})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakePlex) serveMedia(w http.ResponseWriter, r *http.Request) {
	assert.Equal(f.t, "server-token", r.Header.Get("X-Plex-Token"))
	switch r.URL.Path {
	case "/":
		writeJSON(f.t, w, item{"MediaContainer": item{"machineIdentifier": "den1", "friendlyName": "Den", "version": "1.41.0"}})
	case "/library/sections":
		writeJSON(f.t, w, item{"MediaContainer": item{
			"Directory": []item{{"key": "1", "title": "Music", "type": "artist"}},
		}})
	default:
		writeJSON(f.t, w, item{"MediaContainer": item{"size": 0, "Metadata": []item{}}})
	}
}

// writeTestConfig writes a config pointing at authURL with a database in a
// temp dir and returns its path.
func writeTestConfig(t *testing.T, authURL string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`
[plex]
auth_url = %q
poll_interval = "10ms"
max_retries = 0

[database]
path = %q

[log]
level = "error"
`, authURL, filepath.Join(dir, "plexdeck.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// between executions of the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
