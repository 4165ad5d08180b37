package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/plexdeck/internal/clock"
)

const (
	defaultAuthBaseURL = "https://plex.tv"
	defaultAppURL      = "https://app.plex.tv/auth"

	// DefaultPollInterval is the pause between pin status checks.
	DefaultPollInterval = 2 * time.Second
)

// AuthClient talks to the plex.tv identity service.
type AuthClient struct {
	baseURL    string
	appURL     string
	info       ClientInfo
	httpClient *http.Client
	clock      clock.Clock
	log        *slog.Logger
}

// AuthOption configures an AuthClient.
type AuthOption func(*AuthClient)

// WithAuthBaseURL sets a custom plex.tv base URL (for testing).
func WithAuthBaseURL(u string) AuthOption {
	return func(c *AuthClient) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithAuthHTTPClient sets a custom HTTP client.
func WithAuthHTTPClient(hc *http.Client) AuthOption {
	return func(c *AuthClient) {
		c.httpClient = hc
	}
}

// WithAuthClock sets the clock used for pin expiry and poll sleeps.
func WithAuthClock(clk clock.Clock) AuthOption {
	return func(c *AuthClient) {
		c.clock = clk
	}
}

// WithAuthLogger sets a logger.
func WithAuthLogger(log *slog.Logger) AuthOption {
	return func(c *AuthClient) {
		c.log = log.With("component", "plextv")
	}
}

// NewAuthClient creates a plex.tv client presenting info on every request.
func NewAuthClient(info ClientInfo, opts ...AuthOption) *AuthClient {
	c := &AuthClient{
		baseURL: defaultAuthBaseURL,
		appURL:  defaultAppURL,
		info:    info,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		clock: clock.Real(),
		log:   slog.Default().With("component", "plextv"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreatePin requests a new pairing code.
func (c *AuthClient) CreatePin(ctx context.Context) (*Pin, error) {
	var pin Pin
	q := url.Values{"strong": {"true"}}
	if err := c.doJSON(ctx, "create pin", http.MethodPost, "/api/v2/pins", q, "", &pin); err != nil {
		return nil, err
	}
	c.log.Debug("pin created", "pin_id", pin.ID, "expires_at", pin.ExpiresAt)
	return &pin, nil
}

// CheckPin fetches the current status of a pairing code. It does not judge expiry.
func (c *AuthClient) CheckPin(ctx context.Context, id int64) (*Pin, error) {
	var pin Pin
	path := "/api/v2/pins/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, "check pin", http.MethodGet, path, nil, "", &pin); err != nil {
		return nil, err
	}
	return &pin, nil
}

// PollForAuthorization polls pin until it carries an auth token.
//
// Each iteration fails with ErrPinExpired once the locally known expiry has
// passed, stops with ctx.Err() when ctx is cancelled, sleeps interval, checks
// the pin, and hands the snapshot to onUpdate. There is no iteration cap.
// onUpdate is never called after ctx is cancelled.
func (c *AuthClient) PollForAuthorization(ctx context.Context, pin *Pin, interval time.Duration, onUpdate func(*Pin)) (*Pin, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	current := pin
	for {
		if !current.ExpiresAt.IsZero() && !c.clock.Now().Before(current.ExpiresAt) {
			return nil, ErrPinExpired
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := clock.Sleep(ctx, c.clock, interval); err != nil {
			return nil, err
		}

		next, err := c.CheckPin(ctx, pin.ID)
		if err != nil {
			return nil, err
		}
		if next.ExpiresAt.IsZero() {
			next.ExpiresAt = current.ExpiresAt
		}
		current = next

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if onUpdate != nil {
			onUpdate(current)
		}
		if current.Authorized() {
			c.log.Info("pin authorized", "pin_id", current.ID)
			return current, nil
		}
	}
}

// AuthURL returns the page where a user claims pin.
func (c *AuthClient) AuthURL(pin *Pin) string {
	q := url.Values{}
	q.Set("clientID", c.info.ClientIdentifier)
	q.Set("code", pin.Code)
	q.Set("context[device][product]", c.info.Product)
	return c.appURL + "#?" + q.Encode()
}

// FetchAccount returns the account that owns token.
func (c *AuthClient) FetchAccount(ctx context.Context, token string) (*Account, error) {
	var acct Account
	if err := c.doJSON(ctx, "fetch account", http.MethodGet, "/api/v2/user", nil, token, &acct); err != nil {
		return nil, err
	}
	if acct.AuthToken == "" {
		acct.AuthToken = token
	}
	return &acct, nil
}

// FetchServers returns the media servers visible to token, in plex.tv order.
func (c *AuthClient) FetchServers(ctx context.Context, token string) ([]Server, error) {
	var resources []resource
	q := url.Values{"includeHttps": {"1"}, "includeRelay": {"1"}}
	if err := c.doJSON(ctx, "fetch servers", http.MethodGet, "/api/v2/resources", q, token, &resources); err != nil {
		return nil, err
	}

	servers := make([]Server, 0, len(resources))
	for _, r := range resources {
		if !providesServer(r.Provides) {
			continue
		}
		servers = append(servers, mapServer(r))
	}
	c.log.Debug("servers fetched", "resources", len(resources), "servers", len(servers))
	return servers, nil
}

func providesServer(provides string) bool {
	for _, p := range strings.Split(provides, ",") {
		if strings.TrimSpace(p) == "server" {
			return true
		}
	}
	return false
}

func (c *AuthClient) doJSON(ctx context.Context, op, method, path string, query url.Values, token string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	c.info.apply(req.Header)
	if token != "" {
		req.Header.Set("X-Plex-Token", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(op, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidResponse, err)
	}
	return nil
}
