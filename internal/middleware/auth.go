// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/deenhub-app/admin-backend/internal/core"
)

// TokenVerifier checks an access token minted by the external
// identity provider and returns the subject id. This service never
// mints tokens of its own.
type TokenVerifier interface {
	VerifySessionToken(ctx context.Context, token string) (string, error)
}

// AdminVerifier is the Admin Identity Gate: the sole authorization
// predicate is an active row in admin_users.
type AdminVerifier interface {
	VerifyAdmin(ctx context.Context, userID string) (allowed bool, role string, err error)
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			userID, err := verifier.VerifySessionToken(r.Context(), token)
			if err != nil {
				core.JSONError(
					w,
					core.UnauthorizedError("invalid or expired token"),
				)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates every protected route through the admin_users
// lookup. A lookup error is treated the same as an absent or inactive
// record: deny, never surface.
func RequireAdmin(gate AdminVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())

			if userID == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			allowed, role, err := gate.VerifyAdmin(r.Context(), userID)
			if err != nil || !allowed {
				core.JSONError(
					w,
					core.ForbiddenError("admin access required"),
				)
				return
			}

			ctx := context.WithValue(r.Context(), AdminRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
