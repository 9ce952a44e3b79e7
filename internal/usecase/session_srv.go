package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"business-onboarding/internal/data/entity"
	"business-onboarding/internal/data/repository"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type SessionService interface {
	IssueSession(ctx context.Context, identity entity.SessionIdentity) (*IssuedSession, error)
	Authenticate(ctx context.Context, token string) (*entity.SessionIdentity, error)
	Revoke(ctx context.Context, token string) error
	Cookie(session *IssuedSession) *http.Cookie
	ClearCookie() *http.Cookie
}

// IssuedSession is a freshly stored session. The TTL is fixed at issuance.
type IssuedSession struct {
	Token     string
	Identity  entity.SessionIdentity
	ExpiresAt time.Time
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	config      utils.SessionConfig
	log         *zap.Logger
	now         func() time.Time
}

func NewSessionService(sessionRepo repository.SessionRepository, config utils.SessionConfig, log *zap.Logger) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		config:      config,
		log:         log,
		now:         time.Now,
	}
}

func (s *sessionService) IssueSession(ctx context.Context, identity entity.SessionIdentity) (*IssuedSession, error) {
	token, err := utils.GenerateSessionToken()
	if err != nil {
		s.log.Error("Failed to generate session token", zap.Error(err))
		return nil, fmt.Errorf("issue session: %w", err)
	}

	ttl := s.config.TTL()
	if err := s.sessionRepo.Save(ctx, token, identity, ttl); err != nil {
		return nil, fmt.Errorf("%w: save session", ErrStoreUnavailable)
	}

	s.log.Info("Session issued",
		zap.String("kind", string(identity.Kind)),
		zap.Int64("id", identity.ID),
		zap.String("token", utils.MaskToken(token)),
	)

	return &IssuedSession{
		Token:     token,
		Identity:  identity,
		ExpiresAt: s.now().Add(ttl),
	}, nil
}

// Authenticate maps a blank, unknown or expired token to ErrUnauthenticated.
func (s *sessionService) Authenticate(ctx context.Context, token string) (*entity.SessionIdentity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	identity, err := s.sessionRepo.Find(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: find session", ErrStoreUnavailable)
	}
	if identity == nil {
		return nil, ErrUnauthenticated
	}

	return identity, nil
}

func (s *sessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("%w: delete session", ErrStoreUnavailable)
	}

	s.log.Info("Session revoked", zap.String("token", utils.MaskToken(token)))
	return nil
}

func (s *sessionService) Cookie(session *IssuedSession) *http.Cookie {
	return &http.Cookie{
		Name:     s.config.CookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   s.config.TTLSeconds,
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie on the client.
func (s *sessionService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
