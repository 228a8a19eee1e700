package domain

import "time"

// User is an account holder. Users are never deleted by this service;
// downstream task data hangs off the numeric id.
type User struct {
	ID    int64
	Email string

	// PasswordHash is nil for accounts provisioned through a federated
	// provider that never set a local password.
	PasswordHash *string

	FullName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
