package wire

import (
	"business-onboarding/internal/adaptor"
	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireOTP puts the rate limiter in front of both OTP routes so a capped
// client never reaches the stores.
func wireOTP(
	r chi.Router,
	otpHandler *adaptor.OTPHandler,
	limiter usecase.RateLimitService,
	log *zap.Logger,
) {
	r.With(middleware.RateLimit(limiter, usecase.RouteGenerateOTP, log)).Post("/generate-otp", otpHandler.Generate)
	r.With(middleware.RateLimit(limiter, usecase.RouteVerifyOTP, log)).Post("/verify-otp", otpHandler.Verify)
}
