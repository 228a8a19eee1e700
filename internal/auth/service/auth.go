package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/auth/domain"
	"github.com/taskdeck/taskdeck/internal/auth/store"
	"github.com/taskdeck/taskdeck/pkg/cryptox"
	"github.com/taskdeck/taskdeck/pkg/idx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
	"github.com/taskdeck/taskdeck/pkg/tokenx"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// AuthService owns the credential and token protocol: registration,
// login, refresh rotation, and access token verification.
type AuthService struct {
	Store store.Store
	Codec *tokenx.Codec

	// RefreshTTL is the opaque refresh token lifetime. Zero means
	// tokenx.DefaultRefreshTokenTTL.
	RefreshTTL time.Duration

	// GoogleLoginEnabled gates the federated login stub.
	GoogleLoginEnabled bool
}

// NormalizeEmail trims and lowercases an email address. Every lookup and
// insert goes through this so the unique index is effectively
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user account and signs them in, returning the
// stored user and their first token pair.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (domain.User, domain.TokenPair, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return domain.User{}, domain.TokenPair{}, &ValidationError{Field: "email", Reason: "invalid email format"}
	}
	if len(password) < minPasswordLength {
		return domain.User{}, domain.TokenPair{}, &ValidationError{Field: "password", Reason: "password must be at least 6 characters"}
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	opaque, row, err := s.mintRefresh(0, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	// User row and first refresh row land atomically; a failure on
	// either leaves no account behind.
	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().CreateUser(ctx, email, &hash, strings.TrimSpace(fullName))
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		user = u

		row.UserID = u.ID
		return tx.RefreshTokens().CreateRefreshToken(ctx, row)
	})
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	access, err := s.Codec.Issue(user.ID, user.Email, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	l.Info("user registered", slog.Int64("user_id", user.ID))

	return user, domain.TokenPair{
		AccessToken:  access,
		RefreshToken: opaque,
		ExpiresIn:    s.Codec.TTL(),
	}, nil
}

// Login verifies a password credential and mints a fresh token pair.
// Prior refresh tokens stay valid; each login is an independent session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	email = NormalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	// Federated-only accounts have no local password; they fail exactly
	// like a wrong password would.
	if user.PasswordHash == nil || !cryptox.VerifyPassword(password, *user.PasswordHash) {
		l.Info("login failed", slog.String("email", email))
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	opaque, row, err := s.mintRefresh(user.ID, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, row); err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	access, err := s.Codec.Issue(user.ID, user.Email, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	return user, domain.TokenPair{
		AccessToken:  access,
		RefreshToken: opaque,
		ExpiresIn:    s.Codec.TTL(),
	}, nil
}

// Refresh redeems a refresh token for a new token pair, rotating the
// presented token. Redemption, successor creation, and the revocation
// flip happen in one transaction; of two concurrent redemptions of the
// same token exactly one succeeds.
func (s *AuthService) Refresh(ctx context.Context, refreshOpaque string) (domain.TokenPair, error) {
	now := time.Now().UTC()

	fp := cryptox.FingerprintToken(refreshOpaque)

	var pair domain.TokenPair
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		rt, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		if rt.Revoked || rt.Expired(now) {
			return ErrInvalidRefresh
		}

		// Compare-and-set on the revoked flag; losing the race is
		// indistinguishable from presenting a revoked token.
		won, err := tx.RefreshTokens().ConsumeRefreshToken(ctx, fp)
		if err != nil {
			return err
		}
		if !won {
			return ErrInvalidRefresh
		}

		user, err := tx.Users().GetUserByID(ctx, rt.UserID)
		if err != nil {
			return err
		}

		opaque, row, err := s.mintRefresh(user.ID, now)
		if err != nil {
			return err
		}
		if err := tx.RefreshTokens().CreateRefreshToken(ctx, row); err != nil {
			return err
		}

		access, err := s.Codec.Issue(user.ID, user.Email, now)
		if err != nil {
			return err
		}

		pair = domain.TokenPair{
			AccessToken:  access,
			RefreshToken: opaque,
			ExpiresIn:    s.Codec.TTL(),
		}
		return nil
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return pair, nil
}

// GoogleLogin is a declared capability gap: the endpoint exists so
// clients get a stable, distinct signal, but no federation happens.
func (s *AuthService) GoogleLogin(ctx context.Context, googleToken string) (domain.TokenPair, error) {
	if !s.GoogleLoginEnabled {
		return domain.TokenPair{}, &ValidationError{Field: "googleToken", Reason: "google login is disabled"}
	}
	return domain.TokenPair{}, ErrNotImplemented
}

// VerifyAccess checks an access token and derives the caller identity
// from its claims. Pure verification, no storage involved.
func (s *AuthService) VerifyAccess(token string) (domain.Identity, error) {
	claims, err := s.Codec.Verify(token)
	if err != nil {
		return domain.Identity{}, err
	}

	return domain.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// mintRefresh generates an opaque refresh token and its storage row.
// The opaque value goes to the client; only the fingerprint persists.
func (s *AuthService) mintRefresh(userID int64, now time.Time) (string, domain.RefreshToken, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.RefreshToken{}, err
	}

	ttl := s.RefreshTTL
	if ttl <= 0 {
		ttl = tokenx.DefaultRefreshTokenTTL
	}

	row := domain.RefreshToken{
		ID:        idx.New(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(opaque),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return opaque, row, nil
}
