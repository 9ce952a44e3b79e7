package usecase

import (
	"business-onboarding/internal/data/repository"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Business  BusinessService
	User      UserService
	OTP       OTPService
	Session   SessionService
	Auth      AuthService
	RateLimit RateLimitService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	sessions := NewSessionService(repo.Session, config.Session, log)

	return &Service{
		Business:  NewBusinessService(repo.Business, log),
		User:      NewUserService(repo, config.Password, log),
		OTP:       NewOTPService(repo, sessions, config.OTP, log),
		Session:   sessions,
		Auth:      NewAuthService(repo.User, sessions, config.Password, log),
		RateLimit: NewRateLimitService(repo.RateLimit, config.RateLimit, log),
	}
}
