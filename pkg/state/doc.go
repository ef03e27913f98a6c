// Package state implements the signed anti-CSRF state tokens used by the
// OAuth2 authorization code flow.
//
// A state token is generated when the authorization URL is built, stored in
// the caller's session, round-tripped through the provider redirect, and
// compared against the stored copy at callback time. Tokens are HS256-signed
// JWTs keyed by the OAuth client secret, so a token presented at callback
// time proves both that this application initiated the flow (signature) and
// that the callback belongs to this particular session (payload match).
//
// The codec distinguishes two failure modes: a forged or corrupted signature
// (ErrInvalidState, an authorization failure) and a signature-valid token
// whose payload simply differs from the stored one (a false result from
// Verify, not an error).
package state
