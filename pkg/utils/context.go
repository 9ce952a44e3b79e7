package utils

import (
	"context"

	"business-onboarding/internal/data/entity"
)

type contextKey string

const (
	IdentityKey  contextKey = "identity"
	TokenKey     contextKey = "token"
	RequestIDKey contextKey = "request_id"
)

// SetIdentityContext stores the authenticated session identity
func SetIdentityContext(ctx context.Context, identity entity.SessionIdentity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentityFromContext(ctx context.Context) (entity.SessionIdentity, bool) {
	identity, ok := ctx.Value(IdentityKey).(entity.SessionIdentity)
	return identity, ok
}

// GetTokenFromContext returns the session token the request authenticated with
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok && token != ""
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func SetRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}
