package oauth

import "errors"

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrStateMismatch is returned when the callback state does not match the
	// state stored in the session. It is a normal authorization-failed
	// outcome, not a transport failure; no provider call is made.
	ErrStateMismatch = errors.New("oauth: state mismatch")
)
