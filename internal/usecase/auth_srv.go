package usecase

import (
	"context"
	"fmt"

	"business-onboarding/internal/data/entity"
	"business-onboarding/internal/data/repository"
	"business-onboarding/internal/dto/request"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*IssuedSession, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo repository.UserRepository
	sessions SessionService
	log      *zap.Logger

	// dummyHash is compared against for unknown emails. It shares the cost
	// of stored hashes so both failures take the same time.
	dummyHash string
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessions SessionService,
	config utils.PasswordConfig,
	log *zap.Logger,
) AuthService {
	dummyHash, err := utils.HashPassword("unknown-account-placeholder", config.BcryptCost)
	if err != nil {
		log.Warn("Failed to build dummy password hash", zap.Error(err))
	}

	return &authService{
		userRepo:  userRepo,
		sessions:  sessions,
		log:       log,
		dummyHash: dummyHash,
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*IssuedSession, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Find user by email
	user, err := s.userRepo.FindByEmail(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: find user", ErrStoreUnavailable)
	}

	// 3. Unknown email and wrong password look the same to the caller
	if user == nil {
		utils.CheckPasswordHash(req.Password, s.dummyHash)
		s.log.Warn("User not found for login", zap.String("identifier", req.Username))
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	// 4. Create session
	session, err := s.sessions.IssueSession(ctx, entity.SessionIdentity{
		Kind:  entity.IdentityUser,
		ID:    user.ID,
		Email: user.Email,
	})
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, err
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))
	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
