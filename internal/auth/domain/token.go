package domain

import (
	"time"

	"github.com/taskdeck/taskdeck/pkg/idx"
)

// TokenPair is the result of a successful credential exchange: a signed
// access token plus the opaque refresh token that can replace it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string

	// ExpiresIn is the access token lifetime.
	ExpiresIn time.Duration
}

// RefreshToken models the stored refresh token record in the DB. The
// opaque value itself is never stored; TokenHash is its deterministic
// fingerprint (base64url SHA-256). Rows survive revocation as an audit
// trail.
type RefreshToken struct {
	ID        idx.ID
	UserID    int64
	TokenHash string

	ExpiresAt time.Time

	// Revoked flips exactly once, either on redemption or by explicit
	// revocation. It never flips back.
	Revoked bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the token's lifetime has passed as of now. A
// token is live only while its expiry is strictly in the future.
func (t RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
