// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Client   ClientConfig   `toml:"client"`
	Plex     PlexConfig     `toml:"plex"`
	Playback PlaybackConfig `toml:"playback"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// ClientConfig is the device identity presented to plex.tv and servers.
type ClientConfig struct {
	Product         string `toml:"product"`
	Version         string `toml:"version"`
	Platform        string `toml:"platform"`
	PlatformVersion string `toml:"platform_version"`
	Device          string `toml:"device"`
	DeviceName      string `toml:"device_name"`
}

type PlexConfig struct {
	AuthURL         string        `toml:"auth_url"`
	RequestTimeout  time.Duration `toml:"request_timeout"`
	ResourceTimeout time.Duration `toml:"resource_timeout"`
	ListTimeout     time.Duration `toml:"list_timeout"`
	ProbeTimeout    time.Duration `toml:"probe_timeout"`
	PollInterval    time.Duration `toml:"poll_interval"`
	MaxRetries      *int          `toml:"max_retries"`
	RetryBackoff    time.Duration `toml:"retry_backoff"`
	RateLimit       float64       `toml:"rate_limit"`
	RateBurst       int           `toml:"rate_burst"`
	PageSize        int           `toml:"page_size"`
}

// Retries returns the configured retry count, defaulting to 3.
func (p PlexConfig) Retries() int {
	if p.MaxRetries == nil {
		return 3
	}
	return *p.MaxRetries
}

type PlaybackConfig struct {
	TimelineInterval  time.Duration `toml:"timeline_interval"`
	ScrobbleThreshold float64       `toml:"scrobble_threshold"`
	MinPlayTime       time.Duration `toml:"min_play_time"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, parses, and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation and missing-variable checks.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Client.Product == "" {
		c.Client.Product = "plexdeck"
	}
	if c.Client.Platform == "" {
		c.Client.Platform = runtime.GOOS
	}
	if c.Client.Device == "" {
		c.Client.Device = runtime.GOARCH
	}
	if c.Client.DeviceName == "" {
		if host, err := os.Hostname(); err == nil {
			c.Client.DeviceName = host
		} else {
			c.Client.DeviceName = "plexdeck"
		}
	}

	if c.Plex.AuthURL == "" {
		c.Plex.AuthURL = "https://plex.tv"
	}
	if c.Plex.RequestTimeout == 0 {
		c.Plex.RequestTimeout = 30 * time.Second
	}
	if c.Plex.ResourceTimeout == 0 {
		c.Plex.ResourceTimeout = 60 * time.Second
	}
	if c.Plex.ListTimeout == 0 {
		c.Plex.ListTimeout = 120 * time.Second
	}
	if c.Plex.ProbeTimeout == 0 {
		c.Plex.ProbeTimeout = 5 * time.Second
	}
	if c.Plex.PollInterval == 0 {
		c.Plex.PollInterval = 2 * time.Second
	}
	if c.Plex.RetryBackoff == 0 {
		c.Plex.RetryBackoff = time.Second
	}
	if c.Plex.RateLimit == 0 {
		c.Plex.RateLimit = 20
	}
	if c.Plex.RateBurst == 0 {
		c.Plex.RateBurst = 40
	}
	if c.Plex.PageSize == 0 {
		c.Plex.PageSize = 100
	}

	if c.Playback.TimelineInterval == 0 {
		c.Playback.TimelineInterval = 10 * time.Second
	}
	if c.Playback.ScrobbleThreshold == 0 {
		c.Playback.ScrobbleThreshold = 0.9
	}
	if c.Playback.MinPlayTime == 0 {
		c.Playback.MinPlayTime = 60 * time.Second
	}

	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// DefaultDatabasePath returns the XDG-compliant default database path.
func DefaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./data/plexdeck.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "plexdeck", "plexdeck.db")
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR_NAME} with environment variable values and
// reports the names of unset variables, each once. Comments are left as is.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	replace := func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		if !seen[varName] {
			seen[varName] = true
			missing = append(missing, varName)
		}
		return match
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		cut := commentStart(line)
		lines[i] = envVarPattern.ReplaceAllStringFunc(line[:cut], replace) + line[cut:]
	}
	return strings.Join(lines, "\n"), missing
}

// commentStart returns the index of the # that opens a TOML comment on line,
// or len(line) when there is none. A # inside a string does not count.
func commentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote == '"' && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return i
		}
	}
	return len(line)
}
