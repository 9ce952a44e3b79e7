package usecase

import (
	"context"
	"testing"
	"time"

	"business-onboarding/internal/data/repository"
	"business-onboarding/internal/data/repository/repotest"
	"business-onboarding/internal/dto/request"
	"business-onboarding/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var testConfig = &utils.Config{
	OTP:       utils.OTPConfig{ExpiryMinutes: 5, Length: 6, Secret: "test-secret"},
	Session:   utils.SessionConfig{TTLSeconds: 1800, CookieName: "session_id", CookieSecure: true},
	RateLimit: utils.RateLimitConfig{WindowSeconds: 60, GenerateOTP: 5, VerifyOTP: 10},
	Password:  utils.PasswordConfig{BcryptCost: 4},
}

type testEnv struct {
	mr    *miniredis.Miniredis
	repo  *repository.Repository
	store *repotest.Store
	svc   *Service
	clock *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	repo, store := repotest.NewRepository(rdb)
	svc := NewService(repo, testConfig, zap.NewNop())

	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc.OTP.(*otpService).now = clock.Now
	svc.Session.(*sessionService).now = clock.Now

	return &testEnv{mr: mr, repo: repo, store: store, svc: svc, clock: clock}
}

func (e *testEnv) registerBusiness(t *testing.T, email string) int64 {
	t.Helper()
	resp, err := e.svc.Business.Register(context.Background(), &request.CreateBusinessRequest{
		Name:  "Acme Ltd",
		Email: email,
		Phone: "+15550100",
	})
	if err != nil {
		t.Fatalf("register business: %v", err)
	}
	return resp.ID
}
