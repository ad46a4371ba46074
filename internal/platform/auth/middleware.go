package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/smilepoint/clinic-api/internal/platform/logging"
)

type principalKey struct{}

// NewAuthMiddleware returns Huma middleware that verifies bearer tokens on
// operations declaring a Security requirement. Operations without one pass
// through untouched, so public routes (sign-in, catalog) and protected routes
// share one middleware stack.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		if err != nil {
			rejectUnauthorized(api, ctx, "no_token", "missing or invalid authorization header")
			return
		}

		principal, err := verifier.Verify(ctx.Context(), token)
		if err != nil {
			if errors.Is(err, ErrCertificateFetch) {
				applog.LogWarn(ctx.Context(), "token verification unavailable",
					zap.String("reason", authFailureReason(err)))
				ctx.SetHeader("Retry-After", "30")
				_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable,
					"authentication service temporarily unavailable")
				return
			}
			rejectUnauthorized(api, ctx, authFailureReason(err), "invalid or expired token")
			return
		}

		next(huma.WithValue(ctx, principalKey{}, principal))
	}
}

func rejectUnauthorized(api huma.API, ctx huma.Context, reason, detail string) {
	applog.LogWarn(ctx.Context(), "authentication rejected", zap.String("reason", reason))
	ctx.SetHeader("WWW-Authenticate", "Bearer")
	_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, detail)
}

// authFailureReason maps verification errors to log-safe categories. Token
// contents never reach the logs.
func authFailureReason(err error) string {
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

// PrincipalFromContext returns the verified principal, or nil when the
// request was not authenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
