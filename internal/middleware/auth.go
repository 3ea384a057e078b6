package middleware

import (
	"net/http"

	"localwear-be/internal/auth"
	"localwear-be/internal/logger"

	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (auth.Principal, error)
}

// AuthMiddleware attaches the caller's principal when a valid token is present.
// It never rejects: guarded routes decide with RequireRoles.
func AuthMiddleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := tokens.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid access token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.WithPrincipal(r.Context(), p)
			ctx = logger.WithFields(ctx, zap.Uint("user_id", p.UserID), zap.String("role", string(p.Role)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
