package middleware

import (
	"context"
	"net/http"
	"strings"

	"sports-booking/pkg/auth"
	"sports-booking/pkg/utils"

	"go.uber.org/zap"
)

// TokenParser verifies a bearer identity token
type TokenParser interface {
	Parse(token string) (*auth.IdentityClaims, error)
}

// SessionResolver turns verified claims into the caller's session
type SessionResolver interface {
	ResolveSession(ctx context.Context, identity *auth.IdentityClaims) (utils.Session, error)
}

// Authenticate verifies the bearer token and stores the resolved session in the request context
func Authenticate(tokens TokenParser, sessions SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Rejected identity token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			session, err := sessions.ResolveSession(r.Context(), claims)
			if err != nil {
				logger.Error("Failed to resolve session",
					zap.Error(err),
					zap.String("email", claims.Email),
				)
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetSessionContext(r.Context(), session)))
		})
	}
}

// Admin - requires an authenticated session with the admin role
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := utils.GetSessionFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !session.IsAdmin() {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", session.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
