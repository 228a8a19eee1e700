// Package tokenx signs and verifies access tokens with a single
// process-lifetime HMAC-SHA256 secret. Verification is pure: no storage
// lookup, signature checked before any claim is trusted.
package tokenx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed means the token is not a structurally valid JWT.
	ErrMalformed = errors.New("tokenx: malformed token")

	// ErrInvalidSig means the signature does not verify under the
	// configured secret. The payload must not be trusted.
	ErrInvalidSig = errors.New("tokenx: invalid signature")

	// ErrExpired means the token verified but its exp claim has passed.
	ErrExpired = errors.New("tokenx: token expired")
)

// Codec issues and verifies HS256 access tokens. Safe for concurrent use;
// the secret is immutable after construction.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec with the given signing secret and access-token
// TTL. A non-positive ttl falls back to DefaultAccessTokenTTL.
func NewCodec(secret []byte, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("tokenx: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	return &Codec{secret: secret, ttl: ttl}, nil
}

// TTL returns the configured access-token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs an access token for the user as of now.
func (c *Codec) Issue(userID int64, email string, now time.Time) (string, error) {
	claims := NewAccessClaims(userID, email, c.ttl, now)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and verifies a token, returning its claims. Failures are
// reported as ErrMalformed, ErrInvalidSig, or ErrExpired; anything the
// parser cannot positively classify fails closed as ErrMalformed.
func (c *Codec) Verify(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		default:
			return Claims{}, ErrMalformed
		}
	}
	if !parsed.Valid {
		return Claims{}, ErrMalformed
	}

	return *claims, nil
}
