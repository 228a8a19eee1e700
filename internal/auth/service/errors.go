package service

import "errors"

var (
	// ErrInvalidCredentials covers unknown email, passwordless account,
	// and wrong password alike so callers can't probe which it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken reports a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidRefresh covers absent, revoked, and expired refresh
	// tokens, and redemptions that lost a race.
	ErrInvalidRefresh = errors.New("invalid or expired refresh token")

	// ErrNotImplemented marks a declared capability that has no
	// implementation yet.
	ErrNotImplemented = errors.New("google login not implemented yet")
)

// ValidationError reports a user-fixable problem with request input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
