package usecase

import (
	"context"
	"errors"
	"fmt"

	"business-onboarding/internal/data/entity"
	"business-onboarding/internal/data/repository"
	"business-onboarding/internal/dto/request"
	"business-onboarding/internal/dto/response"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetProfile(ctx context.Context, identity entity.SessionIdentity) (*response.ProfileResponse, error)
}

type userService struct {
	repo   *repository.Repository
	config utils.PasswordConfig
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, config utils.PasswordConfig, log *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

func (us *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		us.log.Warn("Create user validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Hash password outside the transaction
	hashedPassword, err := utils.HashPassword(req.Password, us.config.BcryptCost)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         req.Role,
		CompanyID:    req.CompanyID,
	}

	// 3. Company check and insert commit together
	err = us.repo.Transaction(ctx, func(tx *repository.Repository) error {
		company, err := tx.Business.FindByID(ctx, req.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return ErrInvalidCompany
		}
		return tx.User.Create(ctx, user)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCompany), errors.Is(err, repository.ErrForeignKey):
			us.log.Warn("User references unknown company", zap.Int64("company_id", req.CompanyID))
			return nil, ErrInvalidCompany
		case errors.Is(err, repository.ErrDuplicateKey):
			us.log.Warn("User email already registered", zap.String("email", req.Email))
			return nil, ErrDuplicateEmail
		case errors.Is(err, repository.ErrConstraint):
			return nil, fmt.Errorf("user %w", ErrCreationFailed)
		default:
			us.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("%w: create user", ErrStoreUnavailable)
		}
	}

	us.log.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.Int64("company_id", user.CompanyID),
	)

	return response.UserToResponse(user), nil
}

// GetProfile loads the account behind a session identity.
func (us *userService) GetProfile(ctx context.Context, identity entity.SessionIdentity) (*response.ProfileResponse, error) {
	switch identity.Kind {
	case entity.IdentityUser:
		user, err := us.repo.User.FindByID(ctx, identity.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: find user", ErrStoreUnavailable)
		}
		if user == nil {
			return nil, ErrUnauthenticated
		}
		return &response.ProfileResponse{
			Kind:      entity.IdentityUser,
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			CompanyID: user.CompanyID,
		}, nil

	case entity.IdentityBusiness:
		business, err := us.repo.Business.FindByEmail(ctx, identity.Email)
		if err != nil {
			return nil, fmt.Errorf("%w: find business", ErrStoreUnavailable)
		}
		if business == nil {
			return nil, ErrUnauthenticated
		}
		verified := business.Verified
		return &response.ProfileResponse{
			Kind:     entity.IdentityBusiness,
			ID:       business.ID,
			Email:    business.Email,
			Name:     business.CompanyName,
			Verified: &verified,
		}, nil
	}

	return nil, ErrUnauthenticated
}
