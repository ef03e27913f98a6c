package oauth

import (
	"net/http"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/discordkit/pkg/cache"
	"github.com/dmitrymomot/discordkit/pkg/discord"
)

// Option configures the OAuth client.
type Option func(*options)

type options struct {
	httpClient    *http.Client
	users         cache.Cache[*discord.User]
	endpoint      *oauth2.Endpoint
	apiBaseURL    string
	retryAttempts int
}

// WithHTTPClient sets a custom HTTP client for both the token exchange and
// the API calls. Useful for testing with httptest servers or injecting
// custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithUserCache replaces the default bounded LRU user cache. The caller
// owns the provided cache and is responsible for closing it.
func WithUserCache(c cache.Cache[*discord.User]) Option {
	return func(o *options) {
		o.users = c
	}
}

// WithEndpoint overrides the provider's OAuth2 endpoints. Primarily for tests.
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(o *options) {
		o.endpoint = &e
	}
}

// WithAPIBaseURL overrides the provider's REST API base URL. Primarily for tests.
func WithAPIBaseURL(u string) Option {
	return func(o *options) {
		o.apiBaseURL = u
	}
}

// WithRetryAttempts sets how many extra attempts FetchUser makes after a
// rate-limited response when a cached identity may still satisfy the
// request. Zero disables the retry. Default: 1.
func WithRetryAttempts(n int) Option {
	return func(o *options) {
		o.retryAttempts = n
	}
}
