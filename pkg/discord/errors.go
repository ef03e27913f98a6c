package discord

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

var (
	// ErrUnauthorized is returned when the provider rejects the bearer credential (HTTP 401).
	ErrUnauthorized = errors.New("discord: unauthorized")

	// ErrAccessDenied is returned when the user declined the authorization grant (HTTP 403).
	ErrAccessDenied = errors.New("discord: access denied")

	// ErrRateLimited is returned when the provider reports the caller exceeded
	// its allowed request rate (HTTP 429). Use errors.As with *RateLimitError
	// to read the provider's retry metadata.
	ErrRateLimited = errors.New("discord: rate limited")

	// ErrRequestFailed is returned when the provider responds with an
	// unexpected non-2xx status outside the taxonomy above.
	ErrRequestFailed = errors.New("discord: request returned unexpected status")

	// ErrDecodeFailed is returned when a provider response body cannot be decoded.
	ErrDecodeFailed = errors.New("discord: failed to decode response")

	// ErrFetchFailed is returned when the request never produced a provider response.
	ErrFetchFailed = errors.New("discord: failed to reach provider")

	// ErrNilResponse is returned when the transport returns a nil response.
	ErrNilResponse = errors.New("discord: nil response from provider")
)

// RateLimitError carries the provider-supplied retry metadata of an
// HTTP 429 response. It unwraps to ErrRateLimited.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
	Global     bool
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("discord: rate limited, retry after %s", e.RetryAfter)
	}
	return "discord: rate limited"
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// ClassifyResponse maps a provider response onto the error taxonomy.
// A nil return means the response is usable by the caller.
func ClassifyResponse(status int, header http.Header, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrAccessDenied
	case http.StatusTooManyRequests:
		return newRateLimitError(header, body)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return errors.Join(ErrRequestFailed, fmt.Errorf("status %d", status))
	}
	return nil
}

// newRateLimitError extracts retry metadata from a 429 response,
// preferring the JSON body over the Retry-After header.
func newRateLimitError(header http.Header, body []byte) *RateLimitError {
	e := &RateLimitError{}

	var payload struct {
		Message    string  `json:"message"`
		RetryAfter float64 `json:"retry_after"`
		Global     bool    `json:"global"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = payload.Message
		e.Global = payload.Global
		e.RetryAfter = time.Duration(payload.RetryAfter * float64(time.Second))
	}

	if e.RetryAfter <= 0 && header != nil {
		if secs, err := strconv.ParseFloat(header.Get("Retry-After"), 64); err == nil {
			e.RetryAfter = time.Duration(secs * float64(time.Second))
		}
	}

	return e
}
