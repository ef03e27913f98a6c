package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultBaseURL = "https://discord.com/api"

	currentUserPath       = "/users/@me"
	currentUserGuildsPath = "/users/@me/guilds"
)

// Client performs bearer-authenticated calls against the Discord REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures the API client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Useful for testing with
// httptest servers or injecting custom transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API base URL. Primarily for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a Discord API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentUser fetches the account the access token belongs to.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*User, error) {
	var payload userPayload
	if err := c.get(ctx, currentUserPath, accessToken, &payload); err != nil {
		return nil, err
	}
	return newUser(payload)
}

// CurrentUserGuilds fetches the guild memberships of the account the
// access token belongs to, keyed by guild ID.
func (c *Client) CurrentUserGuilds(ctx context.Context, accessToken string) (map[uint64]Guild, error) {
	var payloads []guildPayload
	if err := c.get(ctx, currentUserGuildsPath, accessToken, &payloads); err != nil {
		return nil, err
	}

	guilds := make(map[uint64]Guild, len(payloads))
	for _, p := range payloads {
		g, err := newGuild(p)
		if err != nil {
			return nil, err
		}
		guilds[g.ID] = g
	}
	return guilds, nil
}

func (c *Client) get(ctx context.Context, path, accessToken string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Join(ErrFetchFailed, fmt.Errorf("build request %s: %w", path, err))
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrFetchFailed, fmt.Errorf("fetch %s: %w", path, err))
	}
	if resp == nil {
		return errors.Join(ErrNilResponse, fmt.Errorf("unexpected nil response from %s", path))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(ErrFetchFailed, fmt.Errorf("read %s: %w", path, err))
	}

	if err := ClassifyResponse(resp.StatusCode, resp.Header, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errors.Join(ErrDecodeFailed, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}
