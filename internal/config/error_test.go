// internal/config/error_test.go
package config

import (
	"strings"
	"testing"
)

func TestConfigError_Error_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/plexdeck/config.toml"}
	if got := e.Error(); got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
	if e.HasErrors() {
		t.Error("expected HasErrors false")
	}
}

func TestConfigError_Error_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/plexdeck/config.toml",
		Missing: []string{"PLEX_TOKEN", "DEVICE"},
	}
	got := e.Error()
	if !strings.Contains(got, "/etc/plexdeck/config.toml") {
		t.Errorf("expected path in error, got %q", got)
	}
	if !strings.Contains(got, "missing environment variables: PLEX_TOKEN, DEVICE") {
		t.Errorf("expected var names in error, got %q", got)
	}
}

func TestConfigError_Error_Validation(t *testing.T) {
	e := &ConfigError{
		Path:   "config.toml",
		Errors: []string{"log.level: bad", "plex.page_size: bad"},
	}
	got := e.Error()
	if !strings.Contains(got, "  - log.level: bad\n  - plex.page_size: bad") {
		t.Errorf("expected bulleted errors, got %q", got)
	}
	if !e.HasErrors() {
		t.Error("expected HasErrors true")
	}
}
