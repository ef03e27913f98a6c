package state

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// secretLength is the number of random characters embedded in a state token.
	secretLength = 30

	// secretCharset is the URL-unreserved character set (RFC 3986 §2.3).
	secretCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

	// claimSecret is the single claim carried by a state token.
	claimSecret = "state_secret"
)

var (
	// ErrInvalidState is returned when a state token has an invalid or forged signature.
	ErrInvalidState = errors.New("state: invalid state token signature")

	// ErrMalformedState is returned when a state token decodes but carries no secret claim.
	ErrMalformedState = errors.New("state: malformed state payload")
)

// Codec produces and verifies tamper-evident anti-CSRF state tokens.
// Tokens are HS256-signed JWTs wrapping a single random-secret claim,
// keyed by the OAuth client secret. The zero value is not usable; use New.
type Codec struct {
	key []byte
}

// New creates a codec keyed by the given signing secret.
func New(secret string) *Codec {
	return &Codec{key: []byte(secret)}
}

// Generate returns a new signed state token wrapping a fresh
// cryptographically random secret.
func (c *Codec) Generate() (string, error) {
	secret, err := randomSecret()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimSecret: secret,
	})
	return token.SignedString(c.key)
}

// Decode verifies a state token's signature and returns the embedded secret.
// A forged or malformed signature yields ErrInvalidState; this is an
// authorization failure, not a benign mismatch.
func (c *Codec) Decode(token string) (string, error) {
	parsed, err := jwt.Parse(token,
		func(*jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", errors.Join(ErrInvalidState, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrMalformedState
	}
	secret, ok := claims[claimSecret].(string)
	if !ok || secret == "" {
		return "", ErrMalformedState
	}
	return secret, nil
}

// Verify decodes both tokens and reports whether their payloads match.
// A payload mismatch is a normal false outcome; a signature failure on
// either token is returned as an error.
func (c *Codec) Verify(presented, stored string) (bool, error) {
	a, err := c.Decode(presented)
	if err != nil {
		return false, err
	}
	b, err := c.Decode(stored)
	if err != nil {
		return false, err
	}
	return a == b, nil
}

// randomSecret draws secretLength characters from secretCharset using crypto/rand.
func randomSecret() (string, error) {
	max := big.NewInt(int64(len(secretCharset)))
	buf := make([]byte, secretLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = secretCharset[n.Int64()]
	}
	return string(buf), nil
}
