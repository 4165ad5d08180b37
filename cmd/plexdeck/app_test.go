package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/plexdeck/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestClientInfo(t *testing.T) {
	cfg := config.Default()
	cfg.Client.DeviceName = "deck"

	info := clientInfo(cfg)
	assert.Equal(t, "plexdeck", info.Product)
	assert.Equal(t, version, info.Version)
	assert.Equal(t, "deck", info.DeviceName)

	cfg.Client.Version = "9.9"
	assert.Equal(t, "9.9", clientInfo(cfg).Version)
}

func TestLoadConfig_DefaultsWhenNoneFound(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PLEXDECK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		// /etc/plexdeck/config.toml exists on this machine
		t.Skip(err)
	}
	assert.Equal(t, config.Default().Plex.AuthURL, cfg.Plex.AuthURL)
}

func TestLoadConfig_Explicit(t *testing.T) {
	configPath = writeTestConfig(t, "http://plex.test")
	t.Cleanup(func() { configPath = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://plex.test", cfg.Plex.AuthURL)
	assert.Equal(t, 0, cfg.Plex.Retries())
}
