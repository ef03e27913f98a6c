package oauth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/discordkit/pkg/cache"
	"github.com/dmitrymomot/discordkit/pkg/discord"
	"github.com/dmitrymomot/discordkit/pkg/state"
)

// Endpoint is Discord's OAuth2 endpoint. Credentials go in the POST body,
// matching the token exchange payload Discord documents.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/api/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

const (
	// DefaultCacheSize bounds the default user cache.
	DefaultCacheSize = 100

	defaultRetryAttempts = 1

	// baseRetryDelay seeds the exponential backoff used when a rate-limited
	// response carries no retry guidance.
	baseRetryDelay = 250 * time.Millisecond
)

// Client drives the OAuth2 authorization code flow against Discord and the
// cache-backed retrieval of the authenticated account and its guilds.
type Client struct {
	oauth         *oauth2.Config
	states        *state.Codec
	api           *discord.Client
	users         cache.Cache[*discord.User]
	httpClient    *http.Client
	prompt        string
	retryAttempts int
	ownsCache     bool
}

// New creates an OAuth client. Returns an error if ClientID or ClientSecret
// is empty.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	o := options{retryAttempts: -1}
	for _, opt := range opts {
		opt(&o)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes()
	}
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = "consent"
	}

	endpoint := Endpoint
	if o.endpoint != nil {
		endpoint = *o.endpoint
	}

	retryAttempts := o.retryAttempts
	if retryAttempts < 0 {
		retryAttempts = defaultRetryAttempts
	}

	c := &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		states:        state.New(cfg.ClientSecret),
		httpClient:    o.httpClient,
		prompt:        prompt,
		retryAttempts: retryAttempts,
	}

	apiOpts := []discord.Option{}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, discord.WithHTTPClient(o.httpClient))
	}
	if o.apiBaseURL != "" {
		apiOpts = append(apiOpts, discord.WithBaseURL(o.apiBaseURL))
	}
	c.api = discord.NewClient(apiOpts...)

	if o.users != nil {
		c.users = o.users
	} else {
		c.users = cache.NewMemory[*discord.User](cache.WithMaxEntries(DefaultCacheSize))
		c.ownsCache = true
	}

	return c, nil
}

// Close releases the default user cache. Caches injected via WithUserCache
// are left to their owner.
func (c *Client) Close() error {
	if c.ownsCache {
		return c.users.Close()
	}
	return nil
}

// AuthorizationURL generates the provider authorization URL and writes the
// signed anti-CSRF state into the session.
func (c *Client) AuthorizationURL(sess Session) (string, error) {
	st, err := c.states.Generate()
	if err != nil {
		return "", err
	}
	sess.Set(SessionKeyState, st)

	return c.oauth.AuthCodeURL(st, oauth2.SetAuthURLParam("prompt", c.prompt)), nil
}

// HandleCallback verifies the callback state against the session's stored
// state and exchanges the authorization code for an access token.
//
// A payload mismatch (or absent stored state) returns ErrStateMismatch
// without calling the provider; a forged state signature surfaces the codec
// error. Once the state is verified it is deleted from the session
// regardless of the exchange outcome, so a stale state cannot be replayed.
// The access token is written to the session only on success.
func (c *Client) HandleCallback(ctx context.Context, code, receivedState string, sess Session) error {
	stored, ok := sess.Get(SessionKeyState)
	if !ok {
		return ErrStateMismatch
	}

	equal, err := c.states.Verify(receivedState, stored)
	if err != nil {
		return err
	}
	if !equal {
		return ErrStateMismatch
	}

	sess.Delete(SessionKeyState)

	tok, err := c.oauth.Exchange(c.exchangeContext(ctx), code)
	if err != nil {
		return classifyExchangeError(err)
	}

	sess.Set(SessionKeyAccessToken, tok.AccessToken)
	return nil
}

// RequireAuthorized is the authorization gate: it rejects sessions carrying
// no access token. It touches neither the network nor the cache.
func (c *Client) RequireAuthorized(sess Session) error {
	if _, ok := sess.Get(SessionKeyAccessToken); !ok {
		return discord.ErrUnauthorized
	}
	return nil
}

// FetchUser returns the authenticated account for the session, served from
// the cache when possible.
//
// On a cache miss the provider's current-user endpoint is called; success
// records the account ID in the session and the account in the cache. A
// rate-limited response is retried a bounded number of times when the
// session already carries an account ID (the retry resolves to a cache hit
// if the entry is still present), honoring the provider's retry guidance
// with an exponential fallback. All other errors propagate uncached.
func (c *Client) FetchUser(ctx context.Context, sess Session) (*discord.User, error) {
	token, ok := sess.Get(SessionKeyAccessToken)
	if !ok {
		return nil, discord.ErrUnauthorized
	}

	for attempt := 0; ; attempt++ {
		if id, ok := sess.Get(SessionKeyUserID); ok {
			if u, ok := c.users.Get(ctx, id); ok {
				return u, nil
			}
		}

		u, err := c.api.CurrentUser(ctx, token)
		if err == nil {
			id := strconv.FormatUint(u.ID, 10)
			sess.Set(SessionKeyUserID, id)
			c.users.Set(ctx, id, u, 0)
			return u, nil
		}

		var rl *discord.RateLimitError
		if !errors.As(err, &rl) {
			return nil, err
		}
		if _, ok := sess.Get(SessionKeyUserID); !ok || attempt >= c.retryAttempts {
			return nil, err
		}
		if err := sleepRetry(ctx, attempt, rl.RetryAfter); err != nil {
			return nil, err
		}
	}
}

// FetchGuilds returns the guild memberships of the session's account.
//
// The account is resolved first (FetchUser); cached non-empty memberships
// are returned without a provider call. Otherwise the provider's guilds
// endpoint is called and the result is attached to the cached account via a
// copy-on-write replacement. A rate-limited response falls back to any
// cached non-empty memberships; otherwise it propagates.
func (c *Client) FetchGuilds(ctx context.Context, sess Session) ([]discord.Guild, error) {
	token, ok := sess.Get(SessionKeyAccessToken)
	if !ok {
		return nil, discord.ErrUnauthorized
	}

	u, err := c.FetchUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	if guilds, ok := u.Guilds(); ok {
		return guilds, nil
	}

	id := strconv.FormatUint(u.ID, 10)

	fetched, err := c.api.CurrentUserGuilds(ctx, token)
	if err != nil {
		if errors.Is(err, discord.ErrRateLimited) {
			if cached, ok := c.users.Get(ctx, id); ok {
				if guilds, ok := cached.Guilds(); ok {
					return guilds, nil
				}
			}
		}
		return nil, err
	}

	withGuilds := u.WithGuilds(fetched)
	c.users.Set(ctx, id, withGuilds, 0)

	guilds, _ := withGuilds.Guilds()
	return guilds, nil
}

func (c *Client) exchangeContext(ctx context.Context) context.Context {
	if c.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	return ctx
}

// classifyExchangeError maps token endpoint failures onto the discord error
// taxonomy, preserving rate-limit metadata from the response body.
func classifyExchangeError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.Response != nil {
		if cerr := discord.ClassifyResponse(rerr.Response.StatusCode, rerr.Response.Header, rerr.Body); cerr != nil {
			return cerr
		}
		// 2xx with an unusable body means the token payload did not decode.
		return errors.Join(discord.ErrDecodeFailed, err)
	}
	// x/oauth2 flattens body parse failures into an opaque error string.
	if strings.Contains(err.Error(), "cannot parse json") {
		return errors.Join(discord.ErrDecodeFailed, err)
	}
	return errors.Join(discord.ErrFetchFailed, err)
}

// sleepRetry waits out a rate-limit window before the next attempt, using
// the provider's guidance when present and exponential backoff otherwise.
// Returns early if the context is canceled.
func sleepRetry(ctx context.Context, attempt int, retryAfter time.Duration) error {
	delay := retryAfter
	if delay <= 0 {
		delay = baseRetryDelay << attempt
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
