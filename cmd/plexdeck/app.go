package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/playback"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/session"
	"github.com/vmunix/plexdeck/internal/store"
)

// app is the wired set of components one command runs against.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	db       *sql.DB
	eventLog *events.EventLog
	bus      *events.Bus
	session  *session.Manager
	reporter *playback.Reporter
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadConfig reads the --config file, else the discovered one, else the
// built-in defaults.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.Discover()
		if errors.Is(err, config.ErrNotFound) {
			return config.Default(), nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func clientInfo(cfg *config.Config) plex.ClientInfo {
	v := cfg.Client.Version
	if v == "" {
		v = version
	}
	return plex.ClientInfo{
		Product:         cfg.Client.Product,
		Version:         v,
		Platform:        cfg.Client.Platform,
		PlatformVersion: cfg.Client.PlatformVersion,
		Device:          cfg.Client.Device,
		DeviceName:      cfg.Client.DeviceName,
	}
}

func serverOptions(cfg *config.Config, info plex.ClientInfo, logger *slog.Logger) []plex.Option {
	return []plex.Option{
		plex.WithClientInfo(info),
		plex.WithLogger(logger),
		plex.WithTimeouts(cfg.Plex.RequestTimeout, cfg.Plex.ResourceTimeout),
		plex.WithListTimeout(cfg.Plex.ListTimeout),
		plex.WithProbeTimeout(cfg.Plex.ProbeTimeout),
		plex.WithRetry(cfg.Plex.Retries(), cfg.Plex.RetryBackoff),
		plex.WithRateLimit(rate.Limit(cfg.Plex.RateLimit), cfg.Plex.RateBurst),
		plex.WithPageSize(cfg.Plex.PageSize),
	}
}

func openApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	creds := store.NewCredentials(db)
	settings := store.NewSettings(db)

	info, err := plex.LoadClientInfo(creds, clientInfo(cfg))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	auth := plex.NewAuthClient(info,
		plex.WithAuthBaseURL(cfg.Plex.AuthURL),
		plex.WithAuthHTTPClient(&http.Client{Timeout: cfg.Plex.RequestTimeout}),
		plex.WithAuthLogger(logger),
	)

	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger)

	mgr := session.New(session.Deps{
		Auth:        auth,
		Dial:        session.ClientDialer(serverOptions(cfg, info, logger)...),
		Credentials: creds,
		Settings:    settings,
		Bus:         bus,
		Logger:      logger,
	}, session.Options{PollInterval: cfg.Plex.PollInterval})

	reporter := playback.New(mgr,
		playback.WithInterval(cfg.Playback.TimelineInterval),
		playback.WithThreshold(cfg.Playback.ScrobbleThreshold),
		playback.WithMinPlayTime(cfg.Playback.MinPlayTime),
		playback.WithBus(bus),
		playback.WithLogger(logger),
	)

	return &app{
		cfg:      cfg,
		log:      logger,
		db:       db,
		eventLog: eventLog,
		bus:      bus,
		session:  mgr,
		reporter: reporter,
	}, nil
}

func (a *app) Close() error {
	a.reporter.Close()
	err := a.session.Close()
	_ = a.bus.Close()
	return errors.Join(err, a.db.Close())
}

// restore loads the saved credential and waits for the background reconnect
// to the saved server and library, including the content preload.
func (a *app) restore(ctx context.Context) error {
	if err := a.session.Restore(ctx); err != nil {
		return err
	}
	if !a.session.Linked() {
		return fmt.Errorf("%w: run 'plexdeck link' first", session.ErrNotLinked)
	}
	done := make(chan struct{})
	go func() {
		a.session.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// connect is restore plus a check that a server is connected.
func (a *app) connect(ctx context.Context) error {
	if err := a.restore(ctx); err != nil {
		return err
	}
	st := a.session.Status()
	if st.State == session.StateConnected {
		return nil
	}
	if st.Cause != nil {
		return fmt.Errorf("not connected: %w", st.Cause)
	}
	return fmt.Errorf("not connected: %w", session.ErrServerOffline)
}

type setup int

const (
	setupNone setup = iota
	setupRestore
	setupConnect
)

// withApp runs fn against a freshly wired app, cancelled on SIGINT/SIGTERM.
func withApp(cmd *cobra.Command, s setup, fn func(ctx context.Context, a *app) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(ctx, cfg, newLogger(cmd.ErrOrStderr(), cfg))
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	switch s {
	case setupRestore:
		err = a.restore(ctx)
	case setupConnect:
		err = a.connect(ctx)
	}
	if err != nil {
		return err
	}
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
