package store

import (
	"context"
	"errors"
	"time"

	"github.com/taskdeck/taskdeck/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, and a Tx variant so multi-step operations like
// refresh rotation can run atomically.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error,
	// the transaction is rolled back; otherwise it is committed. Prefer
	// this over Tx for the automatic commit/rollback handling.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user and returns the stored row. The email
	// must already be normalized; a duplicate returns ErrAlreadyExists.
	// passwordHash is nil for federated-only accounts.
	CreateUser(ctx context.Context, email string, passwordHash *string, fullName string) (domain.User, error)

	// GetUserByID returns a user by numeric id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token row by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// ConsumeRefreshToken flips revoked 0->1 only if it is currently 0
	// and reports whether this call won the flip. Racing redemptions of
	// the same token see won=false.
	ConsumeRefreshToken(ctx context.Context, hash string) (won bool, err error)

	// RevokeRefreshToken flips revoked=1 unconditionally. Idempotent.
	RevokeRefreshToken(ctx context.Context, hash string) error

	// DeleteRefreshTokensExpiredBefore removes rows whose expires_at is
	// before cutoff, returning the number deleted. Retention pruning
	// only; redemption never deletes rows.
	DeleteRefreshTokensExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
