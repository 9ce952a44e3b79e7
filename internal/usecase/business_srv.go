package usecase

import (
	"context"
	"errors"
	"fmt"

	"business-onboarding/internal/data/entity"
	"business-onboarding/internal/data/repository"
	"business-onboarding/internal/dto/request"
	"business-onboarding/internal/dto/response"

	"go.uber.org/zap"
)

type BusinessService interface {
	Register(ctx context.Context, req *request.CreateBusinessRequest) (*response.BusinessResponse, error)
}

type businessService struct {
	businessRepo repository.BusinessRepository
	log          *zap.Logger
}

func NewBusinessService(businessRepo repository.BusinessRepository, log *zap.Logger) BusinessService {
	return &businessService{
		businessRepo: businessRepo,
		log:          log,
	}
}

func (s *businessService) Register(ctx context.Context, req *request.CreateBusinessRequest) (*response.BusinessResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Register business validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Insert; the unique index on email decides duplicates
	business := &entity.Business{
		CompanyName: req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		HQ:          req.HQ,
		Operations:  req.Operations,
		Website:     req.Website,
		Details:     req.Details,
	}

	if err := s.businessRepo.Create(ctx, business); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			s.log.Warn("Business email already registered", zap.String("email", req.Email))
			return nil, ErrDuplicateEmail
		case errors.Is(err, repository.ErrConstraint):
			return nil, fmt.Errorf("business %w", ErrCreationFailed)
		default:
			return nil, fmt.Errorf("%w: create business", ErrStoreUnavailable)
		}
	}

	s.log.Info("Business registered",
		zap.Int64("business_id", business.ID),
		zap.String("email", business.Email),
	)

	return response.BusinessToResponse(business), nil
}
