package middleware

import (
	"errors"
	"net/http"

	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession resolves the session cookie into an identity on the context.
// A missing, unknown or expired session is a 401.
func AuthSession(sessions usecase.SessionService, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				utils.ResponseUnauthorized(w, "Missing session")
				return
			}

			identity, err := sessions.Authenticate(r.Context(), cookie.Value)
			if errors.Is(err, usecase.ErrUnauthenticated) {
				logger.Warn("Invalid or expired session", zap.String("token", utils.MaskToken(cookie.Value)))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}
			if err != nil {
				logger.Error("Failed to validate session",
					zap.String("token", utils.MaskToken(cookie.Value)),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), *identity)
			ctx = utils.SetTokenContext(ctx, cookie.Value)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
