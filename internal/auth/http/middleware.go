package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskdeck/taskdeck/internal/auth/domain"
	"github.com/taskdeck/taskdeck/internal/auth/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type identityCtxKey struct{}

// IdentityFromContext returns the identity stored by AuthnMiddleware.
// ok is false for unauthenticated requests.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	ident, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return ident, ok
}

// AuthnMiddleware verifies the access token on incoming requests and
// stores the caller identity in the request context. The token is read
// from the Authorization header ("Bearer {token}") with X-Auth-Token as
// a fallback for clients that can't set Authorization.
//
// It also records the user id string for the per-user rate limiter.
func AuthnMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "missing access token")
				return
			}

			ident, err := auth.VerifyAccess(token)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "invalid or expired access token")
				return
			}

			ctx := context.WithValue(r.Context(), identityCtxKey{}, ident)
			ctx = httpx.WithUserID(ctx, strconv.FormatInt(ident.UserID, 10))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		const prefix = "Bearer "
		if strings.HasPrefix(authz, prefix) {
			return strings.TrimSpace(authz[len(prefix):])
		}
		return ""
	}
	return strings.TrimSpace(r.Header.Get("X-Auth-Token"))
}
