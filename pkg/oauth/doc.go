// Package oauth implements the client side of Discord's OAuth2 authorization
// code flow plus resilient, cache-backed retrieval of the authenticated
// account and its guild memberships.
//
// # Flow
//
// A host application wires four operations into its routes:
//
//	client, err := oauth.New(oauth.Config{
//		ClientID:     os.Getenv("DISCORD_CLIENT_ID"),
//		ClientSecret: os.Getenv("DISCORD_CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/callback",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Login route: redirect to the provider.
//	url, err := client.AuthorizationURL(sess)
//
//	// Callback route: verify state, exchange the code.
//	err = client.HandleCallback(ctx, code, state, sess)
//
//	// Protected routes: fetch account data.
//	user, err := client.FetchUser(ctx, sess)
//	guilds, err := client.FetchGuilds(ctx, sess)
//
// The session is an explicit capability (the Session interface) supplied by
// the host per request; the client stores the signed anti-CSRF state, the
// access token, and the account identifier under fixed keys.
//
// # Resilience
//
// Fetched accounts are held in a bounded LRU cache shared across requests.
// When Discord rate-limits a fetch, the client serves the cached snapshot
// where one is available and otherwise surfaces
// discord.ErrRateLimited with the provider's retry metadata. Rate-limited
// account fetches with a known identity are retried a bounded number of
// times with backoff; see WithRetryAttempts.
//
// # Errors
//
// State verification failures are reported as ErrStateMismatch (benign
// mismatch, no provider call) or as a state codec error (forged signature).
// Provider failures use the taxonomy of the discord package:
// ErrUnauthorized, ErrAccessDenied, ErrRateLimited, ErrDecodeFailed.
package oauth
