// internal/config/write_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plexdeck", "config.toml")

	require.NoError(t, WriteDefault(path), "WriteDefault failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read written file")
	assert.Contains(t, string(content), "[client]")
	assert.Contains(t, string(content), "[plex]")
	assert.Contains(t, string(content), "[playback]")
}

func TestWriteDefault_LoadsCleanly(t *testing.T) {
	// the annotated file mentions these in comments
	for _, name := range []string{"NAME", "HOSTNAME"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Plex.ProbeTimeout)
	assert.Equal(t, 3, cfg.Plex.Retries())
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\n"), 0o644))

	err := WriteDefault(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestConfig_Write_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Client.DeviceName = "den"
	cfg.Plex.PageSize = 250
	cfg.Playback.MinPlayTime = 30 * time.Second

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, cfg.Write(path), "Write failed")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "den", loaded.Client.DeviceName)
	assert.Equal(t, 250, loaded.Plex.PageSize)
	assert.Equal(t, 30*time.Second, loaded.Playback.MinPlayTime)
}
