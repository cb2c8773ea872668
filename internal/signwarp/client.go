package signwarp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"
)

// Gateway defines the remote operations the dashboard depends on.
// This interface is implemented by *Client and can be used for testing.
type Gateway interface {
	Discover(ctx context.Context) (*GeneralStats, error)
	FetchGeneralStats(ctx context.Context) (*GeneralStats, error)
	FetchWarps(ctx context.Context, page, size int) (WarpPage, error)
	FetchAllWarps(ctx context.Context) ([]Warp, int, error)
	FetchTeleportStats(ctx context.Context) (*TeleportStats, error)
	FetchEnhancedStats(ctx context.Context) (*EnhancedStats, error)
	FetchOnlineStatus(ctx context.Context) (OnlineStatus, error)
	FetchOnlinePlayers(ctx context.Context) (OnlinePlayers, error)
	InviteToWarp(ctx context.Context, warp, player string) (InviteResult, error)
	UninviteFromWarp(ctx context.Context, warp, player string) (InviteResult, error)
	Rebase(port int) error
	WebSocketURL() string
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// Client talks to the SignWarpX web API.
type Client struct {
	http      *http.Client
	userAgent string

	mu      sync.RWMutex
	baseURL *url.URL
	apiBase *url.URL
	wsURL   *url.URL
}

const (
	defaultAPIBind   = "127.0.0.1:8080"
	defaultUserAgent = "warpdeck/0.1"
	requestTimeout   = 5 * time.Second

	// SyncPageSize is the page size used to pull the whole warp set.
	SyncPageSize = 1000
	maxSyncPages = 100
	maxErrorBody = 64 << 10
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: gzhttp.Transport(http.DefaultTransport),
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Initialized reports whether Discover has succeeded.
func (c *Client) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiBase != nil
}

// APIBase returns the discovered API base URL, or "" before discovery.
func (c *Client) APIBase() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.apiBase == nil {
		return ""
	}
	return c.apiBase.String()
}

// WebSocketURL returns the discovered push channel URL, or "" before discovery.
func (c *Client) WebSocketURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.wsURL == nil {
		return ""
	}
	return c.wsURL.String()
}

// FetchGeneralStats retrieves /api/stats from the configured server. It does
// not require discovery.
func (c *Client) FetchGeneralStats(ctx context.Context) (*GeneralStats, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	c.mu.RLock()
	base := *c.baseURL
	c.mu.RUnlock()

	var payload GeneralStats
	if err := c.doURL(ctx, http.MethodGet, base.JoinPath("api", "stats"), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Discover fetches /api/stats and adopts the advertised apiUrl and wsUrl.
// Missing or unparsable endpoints fall back to the configured server.
func (c *Client) Discover(ctx context.Context) (*GeneralStats, error) {
	stats, err := c.FetchGeneralStats(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	apiBase, err := parseEndpoint(stats.APIURL)
	if err != nil {
		apiBase = c.baseURL.JoinPath("api")
	}
	wsURL, err := parseEndpoint(stats.WSURL)
	if err != nil {
		wsURL = c.baseURL.JoinPath("ws")
		wsURL.Scheme = wsScheme(c.baseURL.Scheme)
	}
	c.apiBase = apiBase
	c.wsURL = wsURL
	return stats, nil
}

// Rebase moves every endpoint to a new port on the same host. It is used when
// the server announces a port change.
func (c *Client) Rebase(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.baseURL = withPort(c.baseURL, port)
	if c.apiBase != nil {
		c.apiBase = withPort(c.apiBase, port)
	}
	if c.wsURL != nil {
		c.wsURL = withPort(c.wsURL, port)
	}
	return nil
}

// FetchWarps retrieves one page of warps. Records that fail to decode or lack
// a name are skipped and counted in WarpPage.Skipped.
func (c *Client) FetchWarps(ctx context.Context, page, size int) (WarpPage, error) {
	if c == nil {
		return WarpPage{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(max(0, page)))
	values.Set("size", strconv.Itoa(max(1, size)))

	var raw struct {
		WarpPage
		Warps []json.RawMessage `json:"warps"`
	}
	if err := c.doAPI(ctx, http.MethodGet, []string{"warps"}, values, nil, &raw); err != nil {
		return WarpPage{}, err
	}

	out := raw.WarpPage
	out.Warps = make([]Warp, 0, len(raw.Warps))
	for _, record := range raw.Warps {
		var w Warp
		if err := json.Unmarshal(record, &w); err != nil || strings.TrimSpace(w.Name) == "" {
			out.Skipped++
			continue
		}
		out.Warps = append(out.Warps, w)
	}
	return out, nil
}

// FetchAllWarps pulls the complete warp set starting at page 0, following
// hasNext when the server caps the page size.
func (c *Client) FetchAllWarps(ctx context.Context) ([]Warp, int, error) {
	var (
		all     []Warp
		skipped int
	)
	for page := 0; page < maxSyncPages; page++ {
		batch, err := c.FetchWarps(ctx, page, SyncPageSize)
		if err != nil {
			return nil, 0, err
		}
		all = append(all, batch.Warps...)
		skipped += batch.Skipped
		if !batch.HasNext {
			break
		}
	}
	return all, skipped, nil
}

// FetchTeleportStats retrieves teleport history aggregates.
func (c *Client) FetchTeleportStats(ctx context.Context) (*TeleportStats, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload TeleportStats
	if err := c.doAPI(ctx, http.MethodGet, []string{"teleport-stats"}, nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchEnhancedStats retrieves the extended teleport aggregates.
func (c *Client) FetchEnhancedStats(ctx context.Context) (*EnhancedStats, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload EnhancedStats
	if err := c.doAPI(ctx, http.MethodGet, []string{"enhanced-stats"}, nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchOnlineStatus retrieves the online flag for connected players.
func (c *Client) FetchOnlineStatus(ctx context.Context) (OnlineStatus, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload onlineStatusResponse
	if err := c.doAPI(ctx, http.MethodGet, []string{"players", "online-status"}, nil, nil, &payload); err != nil {
		return nil, err
	}
	if payload.OnlineStatus == nil {
		return OnlineStatus{}, nil
	}
	return payload.OnlineStatus, nil
}

// FetchOnlinePlayers retrieves the names of connected players.
func (c *Client) FetchOnlinePlayers(ctx context.Context) (OnlinePlayers, error) {
	if c == nil {
		return OnlinePlayers{}, fmt.Errorf("client is nil")
	}
	var payload OnlinePlayers
	if err := c.doAPI(ctx, http.MethodGet, []string{"players", "online"}, nil, nil, &payload); err != nil {
		return OnlinePlayers{}, err
	}
	return payload, nil
}

// InviteToWarp grants player access to a private warp.
func (c *Client) InviteToWarp(ctx context.Context, warp, player string) (InviteResult, error) {
	return c.mutateInvite(ctx, warp, player, "invite")
}

// UninviteFromWarp revokes player's access to a private warp.
func (c *Client) UninviteFromWarp(ctx context.Context, warp, player string) (InviteResult, error) {
	return c.mutateInvite(ctx, warp, player, "uninvite")
}

func (c *Client) mutateInvite(ctx context.Context, warp, player, action string) (InviteResult, error) {
	if c == nil {
		return InviteResult{}, fmt.Errorf("client is nil")
	}
	player = strings.TrimSpace(player)
	if player == "" {
		return InviteResult{}, ErrEmptyPlayer
	}
	if strings.TrimSpace(warp) == "" {
		return InviteResult{}, fmt.Errorf("warp name is empty")
	}
	body, err := json.Marshal(invitePayload{Player: player})
	if err != nil {
		return InviteResult{}, fmt.Errorf("encode request: %w", err)
	}
	var payload InviteResult
	if err := c.doAPI(ctx, http.MethodPost, []string{"warps", warp, action}, nil, body, &payload); err != nil {
		return InviteResult{}, err
	}
	return payload, nil
}

func (c *Client) doAPI(ctx context.Context, method string, segments []string, query url.Values, body []byte, dest any) error {
	c.mu.RLock()
	base := c.apiBase
	c.mu.RUnlock()
	if base == nil {
		return ErrNotInitialized
	}
	target := base.JoinPath(segments...)
	if query != nil {
		target.RawQuery = query.Encode()
	}
	return c.doURL(ctx, method, target, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, target *url.URL, body []byte, dest any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(target.Path, resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(path string, resp *http.Response) error {
	apiErr := &APIError{Path: path, Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}
	var payload errorPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return apiErr
	}
	switch {
	case payload.Message != "":
		apiErr.Message = payload.Message
	case payload.Error != "":
		apiErr.Message = payload.Error
	}
	return apiErr
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_bind %q: missing host", apiBind)
	}
	u.Path = "/"
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("endpoint is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q is not absolute", raw)
	}
	return u, nil
}

func withPort(u *url.URL, port int) *url.URL {
	dup := *u
	dup.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(port))
	return &dup
}

func wsScheme(httpScheme string) string {
	if httpScheme == "https" {
		return "wss"
	}
	return "ws"
}
