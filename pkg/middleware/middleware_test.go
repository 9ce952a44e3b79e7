package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"business-onboarding/internal/data/entity"
	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type stubLimiter struct {
	remaining int
	err       error
	clients   []string
}

func (s *stubLimiter) Allow(ctx context.Context, route, clientAddr string) error {
	s.clients = append(s.clients, clientAddr)
	if s.err != nil {
		return s.err
	}
	if s.remaining <= 0 {
		return usecase.ErrRateLimited
	}
	s.remaining--
	return nil
}

func (s *stubLimiter) Window() time.Duration { return time.Minute }

type stubSessions struct {
	usecase.SessionService
	identities map[string]entity.SessionIdentity
	err        error
}

func (s *stubSessions) Authenticate(ctx context.Context, token string) (*entity.SessionIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	identity, ok := s.identities[token]
	if !ok {
		return nil, usecase.ErrUnauthenticated
	}
	return &identity, nil
}

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitRejectsBeforeHandler(t *testing.T) {
	limiter := &stubLimiter{remaining: 5}
	calls := 0
	h := RateLimit(limiter, usecase.RouteGenerateOTP, zap.NewNop())(countingHandler(&calls))

	for i := 1; i <= 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/generate-otp", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if i <= 5 && rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
		if i == 6 {
			if rec.Code != http.StatusTooManyRequests {
				t.Fatalf("request 6: expected 429, got %d", rec.Code)
			}
			if rec.Header().Get("Retry-After") != "60" {
				t.Fatalf("expected Retry-After 60, got %q", rec.Header().Get("Retry-After"))
			}
		}
	}

	if calls != 5 {
		t.Fatalf("handler should run 5 times, ran %d", calls)
	}
	if limiter.clients[0] != "10.0.0.1" {
		t.Fatalf("expected port to be stripped from client address, got %q", limiter.clients[0])
	}
}

func TestRateLimitStoreError(t *testing.T) {
	limiter := &stubLimiter{err: usecase.ErrStoreUnavailable}
	calls := 0
	h := RateLimit(limiter, usecase.RouteVerifyOTP, zap.NewNop())(countingHandler(&calls))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify-otp", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if calls != 0 {
		t.Fatal("handler must not run when the limiter fails")
	}
}

func TestAuthSession(t *testing.T) {
	identity := entity.SessionIdentity{Kind: entity.IdentityUser, ID: 5, Email: "u@x.com"}
	sessions := &stubSessions{identities: map[string]entity.SessionIdentity{"good": identity}}

	var gotIdentity entity.SessionIdentity
	var gotToken string
	h := AuthSession(sessions, "session_id", zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, _ = utils.GetIdentityFromContext(r.Context())
		gotToken, _ = utils.GetTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   int
	}{
		{"missing cookie", nil, http.StatusUnauthorized},
		{"empty cookie", &http.Cookie{Name: "session_id", Value: ""}, http.StatusUnauthorized},
		{"unknown session", &http.Cookie{Name: "session_id", Value: "bad"}, http.StatusUnauthorized},
		{"live session", &http.Cookie{Name: "session_id", Value: "good"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}

	if gotIdentity != identity || gotToken != "good" {
		t.Fatalf("identity not propagated: %+v %q", gotIdentity, gotToken)
	}
}

func TestAuthSessionStoreError(t *testing.T) {
	sessions := &stubSessions{err: errors.New("redis down")}
	calls := 0
	h := AuthSession(sessions, "session_id", zap.NewNop())(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "tok"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if calls != 0 {
		t.Fatal("handler must not run without an identity")
	}
}

func TestLoggerSetsRequestID(t *testing.T) {
	var seen string
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if seen == "" || rec.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected generated request id, got %q / %q", seen, rec.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected incoming request id to be kept, got %q", seen)
	}
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
