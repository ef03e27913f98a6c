package oauth

// Session key names written by the client. They match the original
// discord-fastapi-oauth wire convention; hosts should treat them as opaque.
const (
	// SessionKeyState holds the signed anti-CSRF state between URL
	// generation and callback.
	SessionKeyState = "DISCORD_OAUTH2_STATE"

	// SessionKeyAccessToken holds the provider access token for the
	// lifetime of the authenticated session.
	SessionKeyAccessToken = "DISCORD_ACCESS_TOKEN"

	// SessionKeyUserID holds the authenticated account's identifier in
	// decimal form, used as the cache key.
	SessionKeyUserID = "DISCORD_USER_ID"
)

// Session is the minimal per-request session capability the client needs.
// It is an explicit parameter on every operation so the flow stays testable
// without a web framework; the host supplies the implementation (cookie
// store, server-side store, request-scoped bag).
type Session interface {
	// Get returns the value stored under key, with ok false when absent.
	Get(key string) (value string, ok bool)

	// Set stores a value under key.
	Set(key, value string)

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(key string)
}
