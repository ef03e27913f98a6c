// Package discord provides the Discord REST API client and data model used
// by the OAuth flow: the authenticated user, its guild memberships, derived
// CDN asset URLs, and a typed error taxonomy for provider responses.
//
// # Error Handling
//
// Provider responses are classified into sentinel errors:
//
//   - ErrUnauthorized: bearer credential missing or invalid (HTTP 401)
//   - ErrAccessDenied: user declined the authorization grant (HTTP 403)
//   - ErrRateLimited: request rate exceeded (HTTP 429); use errors.As with
//     *RateLimitError to read the provider's retry metadata
//   - ErrDecodeFailed: malformed response body
//   - ErrRequestFailed: any other unexpected status
//
// Use errors.Is for checking:
//
//	user, err := client.CurrentUser(ctx, token)
//	if errors.Is(err, discord.ErrRateLimited) {
//		var rl *discord.RateLimitError
//		if errors.As(err, &rl) {
//			// back off for rl.RetryAfter
//		}
//	}
package discord
