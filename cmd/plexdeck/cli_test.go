package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/plexdeck/internal/session"
)

func TestCLI_LinkThenStatus(t *testing.T) {
	fake := newFakePlex(t)
	cfgPath := writeTestConfig(t, fake.tv.URL)

	out, err := runCLI(t, "--config", cfgPath, "link")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter code ABCD")
	assert.Contains(t, out, "Linked as alice")
	assert.Contains(t, out, "Server:     Den via local "+fake.pms.URL)
	assert.Contains(t, out, "Library:    Music (music)")

	out, err = runCLI(t, "--config", cfgPath, "--json", "status")
	require.NoError(t, err)
	var st statusView
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, "connected", st.State)
	assert.Equal(t, "alice", st.Account)
	require.NotNil(t, st.Server)
	assert.Equal(t, "den1", st.Server.ID)
	assert.Equal(t, "1.41.0", st.Version)
	require.NotNil(t, st.Library)
	assert.Equal(t, "1", st.Library.ID)

	out, err = runCLI(t, "--config", cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    1.41.0\n")

	out, err = runCLI(t, "--config", cfgPath, "link")
	require.NoError(t, err)
	assert.Contains(t, out, "Already linked")

	out, err = runCLI(t, "--config", cfgPath, "artists")
	require.NoError(t, err)
	assert.Equal(t, "No artists\n", out)

	out, err = runCLI(t, "--config", cfgPath, "--json", "events")
	require.NoError(t, err)
	var evs []eventView
	require.NoError(t, json.Unmarshal([]byte(out), &evs))
	assert.NotEmpty(t, evs)

	out, err = runCLI(t, "--config", cfgPath, "unlink")
	require.NoError(t, err)
	assert.Equal(t, "Unlinked\n", out)

	_, err = runCLI(t, "--config", cfgPath, "status")
	assert.ErrorIs(t, err, session.ErrNotLinked)
}

func TestCLI_NotLinked(t *testing.T) {
	fake := newFakePlex(t)
	cfgPath := writeTestConfig(t, fake.tv.URL)

	_, err := runCLI(t, "--config", cfgPath, "artists")
	require.ErrorIs(t, err, session.ErrNotLinked)
	assert.Contains(t, err.Error(), "plexdeck link")
}

func TestCLI_EventsEmpty(t *testing.T) {
	fake := newFakePlex(t)
	cfgPath := writeTestConfig(t, fake.tv.URL)

	out, err := runCLI(t, "--config", cfgPath, "events", "-n", "5")
	require.NoError(t, err)
	assert.Equal(t, "No events\n", out)

	_, err = runCLI(t, "--config", cfgPath, "events", "--entity", "server")
	assert.ErrorContains(t, err, "want type/id")
}

func TestCLI_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plexdeck", "config.toml")

	out, err := runCLI(t, "--config", path, "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[plex]")

	_, err = runCLI(t, "--config", path, "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = runCLI(t, "--config", path, "init", "--force")
	require.NoError(t, err)
}

func TestCLI_ResumeRejectsBadPosition(t *testing.T) {
	_, err := runCLI(t, "resume", "301", "soon")
	assert.ErrorContains(t, err, `invalid position "soon"`)
}
