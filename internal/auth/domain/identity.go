package domain

// Identity is the verified caller attached to a request after access
// token verification. It is derived only from claims whose signature
// and expiry checked out, lives in the request context, and is gone
// when the request ends.
type Identity struct {
	UserID int64
	Email  string
}
