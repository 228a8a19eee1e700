package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user's id (as a string) for
// generic consumers like the per-user rate limiter. Handlers that need
// the full identity should use their own richer context value.
const CtxKeyUserID ctxKey = "user_id"

// WithUserID stores a user id string in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserIDFromContext returns the user id stored by authn middleware, or
// the empty string for unauthenticated requests.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
