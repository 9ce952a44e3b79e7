package usecase

import (
	"context"
	"fmt"
	"time"

	"business-onboarding/internal/data/repository"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

const (
	RouteGenerateOTP = "generate-otp"
	RouteVerifyOTP   = "verify-otp"
)

// RateLimitService counts requests per route and client address in a
// window that starts with the first request.
type RateLimitService interface {
	Allow(ctx context.Context, route, clientAddr string) error
	Window() time.Duration
}

type rateLimitService struct {
	rateLimitRepo repository.RateLimitRepository
	limits        map[string]int
	window        time.Duration
	log           *zap.Logger
}

func NewRateLimitService(rateLimitRepo repository.RateLimitRepository, config utils.RateLimitConfig, log *zap.Logger) RateLimitService {
	return &rateLimitService{
		rateLimitRepo: rateLimitRepo,
		limits: map[string]int{
			RouteGenerateOTP: config.GenerateOTP,
			RouteVerifyOTP:   config.VerifyOTP,
		},
		window: config.Window(),
		log:    log,
	}
}

// Allow returns ErrRateLimited once the route's cap is exceeded. Routes
// without a configured cap are never limited.
func (s *rateLimitService) Allow(ctx context.Context, route, clientAddr string) error {
	limit, ok := s.limits[route]
	if !ok {
		return nil
	}

	count, err := s.rateLimitRepo.Hit(ctx, route+":"+clientAddr, s.window)
	if err != nil {
		return fmt.Errorf("%w: rate limit", ErrStoreUnavailable)
	}

	if count > int64(limit) {
		s.log.Warn("Rate limit exceeded",
			zap.String("route", route),
			zap.String("client", clientAddr),
			zap.Int64("count", count),
			zap.Int("limit", limit),
		)
		return ErrRateLimited
	}

	return nil
}

func (s *rateLimitService) Window() time.Duration {
	return s.window
}
