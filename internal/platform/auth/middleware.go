package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/cardfolio/cardfolio/internal/platform/logging"
)

// ScopeAdmin marks an operation as restricted to administrators. Operations
// declare it in their Security requirement:
//
//	Security: []map[string][]string{{"bearerAuth": {auth.ScopeAdmin}}}
const ScopeAdmin = "admin"

// userContextKey is the context key for the authenticated user.
type userContextKey struct{}

// NewAuthMiddleware creates Huma middleware for bearer-token authentication.
// Operations without Security requirements pass through unauthenticated.
// Operations requiring the admin scope additionally need the caller's
// administrative flag; ordinary callers receive 403.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		if err != nil {
			applog.LogWarn(ctx.Context(), "auth failed: missing or invalid header",
				zap.String("reason", "no_token"))
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}

		user, err := verifier.Verify(ctx.Context(), token)
		if err != nil {
			reason := categorizeAuthError(err)
			applog.LogWarn(ctx.Context(), "auth failed: token verification failed",
				zap.String("reason", reason))

			if errors.Is(err, ErrCertificateFetch) {
				ctx.SetHeader("Retry-After", "30")
				_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable,
					"authentication service temporarily unavailable")
				return
			}
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if requiresAdmin(ctx.Operation()) && !user.Admin {
			applog.LogWarn(ctx.Context(), "auth failed: admin scope required",
				zap.String("uid", user.UID))
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "administrator access required")
			return
		}

		ctx = huma.WithValue(ctx, userContextKey{}, user)
		next(ctx)
	}
}

func requiresAdmin(op *huma.Operation) bool {
	for _, requirement := range op.Security {
		for _, scopes := range requirement {
			for _, scope := range scopes {
				if scope == ScopeAdmin {
					return true
				}
			}
		}
	}
	return false
}

// categorizeAuthError returns a safe category string for logging.
func categorizeAuthError(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCertificateFetch):
		return "certificate_fetch_failed"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	default:
		return "unknown"
	}
}

// UserFromContext retrieves the authenticated user from context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}
