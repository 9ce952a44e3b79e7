package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"business-onboarding/internal/adaptor"
	"business-onboarding/internal/data/repository/repotest"
	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testServer struct {
	router *chi.Mux
	store  *repotest.Store
	mr     *miniredis.Miniredis
}

func newTestServer(t *testing.T, checks map[string]adaptor.HealthCheck) *testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	config := &utils.Config{
		OTP:       utils.OTPConfig{ExpiryMinutes: 5, Length: 6, Secret: "test-secret"},
		Session:   utils.SessionConfig{TTLSeconds: 1800, CookieName: "session_id", CookieSecure: true},
		RateLimit: utils.RateLimitConfig{WindowSeconds: 60, GenerateOTP: 5, VerifyOTP: 10},
		Password:  utils.PasswordConfig{BcryptCost: 4},
	}

	log := zap.NewNop()
	repo, store := repotest.NewRepository(rdb)
	service := usecase.NewService(repo, config, log)
	handler := adaptor.NewHandler(service, log)
	health := adaptor.NewHealthHandler(checks, log)

	return &testServer{
		router: setupRouter(handler, health, service, config, log),
		store:  store,
		mr:     mr,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	return nil
}

var business = map[string]string{
	"name":  "Acme Ltd",
	"email": "a@x.com",
	"phone": "+15550100",
	"hq":    "Berlin",
}

func TestOnboardingFlow(t *testing.T) {
	s := newTestServer(t, nil)

	// register
	rec, env := s.do(t, http.MethodPost, "/business", business)
	if rec.Code != http.StatusCreated || !env.Status {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	var registered struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &registered)

	// duplicate
	rec, env = s.do(t, http.MethodPost, "/business", business)
	if rec.Code != http.StatusBadRequest || env.Message != "Email already exists" {
		t.Fatalf("duplicate: %d %s", rec.Code, rec.Body.String())
	}

	// generate
	rec, env = s.do(t, http.MethodPost, "/generate-otp", map[string]string{"email": "a@x.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: %d %s", rec.Code, rec.Body.String())
	}
	var challenge struct {
		OTP string `json:"otp"`
	}
	_ = json.Unmarshal(env.Data, &challenge)
	if len(challenge.OTP) != 6 {
		t.Fatalf("expected 6 digit otp, got %q", challenge.OTP)
	}

	// verify
	rec, env = s.do(t, http.MethodPost, "/verify-otp", map[string]string{"email": "a@x.com", "otp": challenge.OTP})
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", rec.Code, rec.Body.String())
	}
	var verified struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(env.Data, &verified)
	if !verified.Valid || verified.Message != "OTP verified successfully" {
		t.Fatalf("unexpected verify payload %s", env.Data)
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatal("verify should set a session cookie")
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteLaxMode || cookie.MaxAge != 1800 {
		t.Fatalf("cookie missing attributes: %+v", cookie)
	}

	// repeat verify
	rec, env = s.do(t, http.MethodPost, "/verify-otp", map[string]string{"email": "a@x.com", "otp": challenge.OTP})
	_ = json.Unmarshal(env.Data, &verified)
	if rec.Code != http.StatusOK || verified.Valid || verified.Message != "No OTP found for this email" {
		t.Fatalf("repeat verify: %d %s", rec.Code, rec.Body.String())
	}

	// profile
	rec, env = s.do(t, http.MethodGet, "/profile", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: %d %s", rec.Code, rec.Body.String())
	}
	var profile struct {
		Kind     string `json:"kind"`
		ID       int64  `json:"id"`
		Verified *bool  `json:"verified"`
	}
	_ = json.Unmarshal(env.Data, &profile)
	if profile.Kind != "business" || profile.ID != registered.ID || profile.Verified == nil || !*profile.Verified {
		t.Fatalf("unexpected profile %s", env.Data)
	}

	// logout
	rec, _ = s.do(t, http.MethodPost, "/logout", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", rec.Code, rec.Body.String())
	}
	rec, _ = s.do(t, http.MethodGet, "/profile", nil, cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("profile after logout: expected 401, got %d", rec.Code)
	}
}

func TestUserLoginFlow(t *testing.T) {
	s := newTestServer(t, nil)

	rec, env := s.do(t, http.MethodPost, "/business", business)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	var registered struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &registered)

	user := map[string]any{
		"name":       "Jane Doe",
		"email":      "jane@x.com",
		"phone":      "+15550111",
		"password":   "s3cure-passw0rd",
		"company_id": registered.ID,
		"role":       "admin",
	}
	rec, env = s.do(t, http.MethodPost, "/users", user)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: %d %s", rec.Code, rec.Body.String())
	}
	if bytes.Contains(env.Data, []byte("password")) {
		t.Fatalf("user response must not carry the password: %s", env.Data)
	}

	user["email"] = "other@x.com"
	user["company_id"] = registered.ID + 100
	rec, env = s.do(t, http.MethodPost, "/users", user)
	if rec.Code != http.StatusBadRequest || env.Message != "Invalid company_id" {
		t.Fatalf("invalid company: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = s.do(t, http.MethodPost, "/login", map[string]string{"username": "jane@x.com", "password": "nope-nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodPost, "/login", map[string]string{"username": "jane@x.com", "password": "s3cure-passw0rd"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatal("login should set a session cookie")
	}

	rec, env = s.do(t, http.MethodGet, "/profile", nil, cookie)
	var profile struct {
		Kind  string `json:"kind"`
		Email string `json:"email"`
	}
	_ = json.Unmarshal(env.Data, &profile)
	if rec.Code != http.StatusOK || profile.Kind != "user" || profile.Email != "jane@x.com" {
		t.Fatalf("profile: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRequestErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"generate unknown business", "/generate-otp", map[string]string{"email": "ghost@x.com"}, http.StatusNotFound},
		{"generate bad email", "/generate-otp", map[string]string{"email": "ghost"}, http.StatusBadRequest},
		{"verify non numeric", "/verify-otp", map[string]string{"email": "a@x.com", "otp": "12ab56"}, http.StatusBadRequest},
		{"unknown field", "/business", map[string]string{"name": "Acme", "nickname": "x"}, http.StatusBadRequest},
		{"profile without cookie", "/profile", nil, http.StatusUnauthorized},
		{"logout without cookie", "/logout", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodPost
			if tt.path == "/profile" {
				method = http.MethodGet
			}
			rec, env := s.do(t, method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if env.Status {
				t.Fatal("error responses carry status=false")
			}
		})
	}
}

func TestGenerateOTPRateLimited(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/business", business)

	for i := 1; i <= 5; i++ {
		rec, _ := s.do(t, http.MethodPost, "/generate-otp", map[string]string{"email": "a@x.com"})
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec, _ := s.do(t, http.MethodPost, "/generate-otp", map[string]string{"email": "a@x.com"})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("6th request: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestHealth(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("down") }

	s := newTestServer(t, map[string]adaptor.HealthCheck{"postgres": ok, "redis": ok})
	rec, _ := s.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("healthy: %d %q", rec.Code, rec.Body.String())
	}

	s = newTestServer(t, map[string]adaptor.HealthCheck{"postgres": ok, "redis": down})
	rec, env := s.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusServiceUnavailable || !bytes.Contains(env.Errors, []byte("redis")) {
		t.Fatalf("degraded: %d %s", rec.Code, rec.Body.String())
	}
}
