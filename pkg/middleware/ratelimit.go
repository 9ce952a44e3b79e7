package middleware

import (
	"errors"
	"net"
	"net/http"

	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit rejects the request before the handler runs once route's cap
// for the client address is spent.
func RateLimit(limiter usecase.RateLimitService, route string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := limiter.Allow(r.Context(), route, ClientAddr(r))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, usecase.ErrRateLimited):
				utils.ResponseTooManyRequests(w, "Too many requests, try again later", limiter.Window())
			default:
				logger.Error("Rate limiter unavailable", zap.Error(err), zap.String("route", route))
				utils.ResponseInternalError(w, "Internal server error")
			}
		})
	}
}

// ClientAddr returns the host part of RemoteAddr, which chi's RealIP
// middleware may already have replaced with a proxy-supplied address.
func ClientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
