package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vmunix/plexdeck/internal/clock"
)

const (
	defaultRequestTimeout  = 30 * time.Second
	defaultResourceTimeout = 60 * time.Second
	defaultListTimeout     = 120 * time.Second
	defaultProbeTimeout    = 5 * time.Second
	defaultMaxRetries      = 3
	defaultBackoff         = time.Second
	defaultPageSize        = 100
	defaultRateLimit       = 20
	defaultRateBurst       = 40
)

// ServerClient performs content and reporting calls against one negotiated
// connection of a Plex Media Server. It never switches connections.
type ServerClient struct {
	server     Server
	conn       Connection
	baseURL    *url.URL
	token      string
	info       ClientInfo
	httpClient *http.Client
	limiter    *rate.Limiter
	clock      clock.Clock
	log        *slog.Logger

	requestTimeout  time.Duration
	resourceTimeout time.Duration
	listTimeout     time.Duration
	probeTimeout    time.Duration
	maxRetries      int
	backoff         time.Duration
	pageSize        int

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures a ServerClient.
type Option func(*ServerClient)

// WithClientInfo sets the identity header block.
func WithClientInfo(info ClientInfo) Option {
	return func(c *ServerClient) {
		c.info = info
	}
}

// WithHTTPClient sets a custom HTTP client. Timeouts configured through
// WithTimeouts are not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ServerClient) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *ServerClient) {
		c.log = log.With("component", "plex")
	}
}

// WithTimeouts sets the per-request (response header) and per-resource
// (whole exchange) timeouts.
func WithTimeouts(request, resource time.Duration) Option {
	return func(c *ServerClient) {
		if request > 0 {
			c.requestTimeout = request
		}
		if resource > 0 {
			c.resourceTimeout = resource
		}
	}
}

// WithListTimeout bounds full-library listings.
func WithListTimeout(d time.Duration) Option {
	return func(c *ServerClient) {
		if d > 0 {
			c.listTimeout = d
		}
	}
}

// WithProbeTimeout sets the connectivity probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *ServerClient) {
		if d > 0 {
			c.probeTimeout = d
		}
	}
}

// WithRetry sets the retry count and base backoff for transient failures.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(c *ServerClient) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

// WithRateLimit throttles outgoing requests.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *ServerClient) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithPageSize sets the page size used by the All* listings.
func WithPageSize(n int) Option {
	return func(c *ServerClient) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithClock sets the clock used for retry backoff.
func WithClock(clk clock.Clock) Option {
	return func(c *ServerClient) {
		c.clock = clk
	}
}

// WithRandSeed makes radio shuffles deterministic.
func WithRandSeed(seed int64) Option {
	return func(c *ServerClient) {
		c.rnd = rand.New(rand.NewSource(seed))
	}
}

// NewServerClient binds to the first connection of server with a parsed URL.
// A per-server access token takes precedence over token.
func NewServerClient(server Server, token string, opts ...Option) (*ServerClient, error) {
	var conn *Connection
	for i := range server.Connections {
		if server.Connections[i].URL != nil {
			conn = &server.Connections[i]
			break
		}
	}
	if conn == nil {
		return nil, fmt.Errorf("server %q: %w", server.Name, ErrNoUsableConnection)
	}
	if server.AccessToken != "" {
		token = server.AccessToken
	}

	base := *conn.URL
	base.Path = strings.TrimSuffix(base.Path, "/")
	base.RawQuery = ""

	c := &ServerClient{
		server:          server,
		conn:            *conn,
		baseURL:         &base,
		token:           token,
		limiter:         rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		clock:           clock.Real(),
		log:             slog.Default().With("component", "plex"),
		requestTimeout:  defaultRequestTimeout,
		resourceTimeout: defaultResourceTimeout,
		listTimeout:     defaultListTimeout,
		probeTimeout:    defaultProbeTimeout,
		maxRetries:      defaultMaxRetries,
		backoff:         defaultBackoff,
		pageSize:        defaultPageSize,
		rnd:             rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- shuffling only
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = c.requestTimeout
		c.httpClient = &http.Client{
			Timeout:   c.resourceTimeout,
			Transport: transport,
		}
	}
	c.log = c.log.With("server", server.Name, "connection", conn.Kind())
	return c, nil
}

// Server returns the server this client was built from.
func (c *ServerClient) Server() Server {
	return c.server
}

// Connection returns the connection this client is bound to.
func (c *ServerClient) Connection() Connection {
	return c.conn
}

// BaseURL returns the negotiated base URL.
func (c *ServerClient) BaseURL() string {
	return c.baseURL.String()
}

func (c *ServerClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *ServerClient) get(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, query, out)
}

// do executes one typed request. Transient network failures are retried up to
// maxRetries times, waiting backoff*2^n before retry n+1; every other failure
// is returned as is.
func (c *ServerClient) do(ctx context.Context, op, method, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoffFor(attempt - 1)
			c.log.Debug("retrying request", "op", op, "attempt", attempt, "wait", wait, "error", lastErr)
			if err := clock.Sleep(ctx, c.clock, wait); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		err := c.attempt(ctx, op, method, path, query, out)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !IsTransient(err) {
			return err
		}
		lastErr = err
	}
	c.log.Warn("request failed after retries", "op", op, "retries", c.maxRetries, "error", lastErr)
	return lastErr
}

func (c *ServerClient) backoffFor(n int) time.Duration {
	return c.backoff * time.Duration(1<<n)
}

func (c *ServerClient) attempt(ctx context.Context, op, method, path string, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	c.info.apply(req.Header)
	req.Header.Set("X-Plex-Token", c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(op, resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
	} else if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if IsTransient(&NetworkError{Err: err}) {
			return &NetworkError{Op: op, Err: err}
		}
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidResponse, err)
	}

	c.log.Debug("request complete", "op", op, "path", path, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (c *ServerClient) shuffle(n int, swap func(i, j int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rnd.Shuffle(n, swap)
}
