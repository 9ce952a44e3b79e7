package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"business-onboarding/internal/data/entity"
	"business-onboarding/internal/data/repository"
	"business-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type VerifyReason string

const (
	ReasonVerified VerifyReason = "verified"
	ReasonNotFound VerifyReason = "not_found"
	ReasonExpired  VerifyReason = "expired"
	ReasonMismatch VerifyReason = "mismatch"
)

// Challenge is returned to the caller only; the plaintext code is never stored.
type Challenge struct {
	Email     string
	OTP       string
	ExpiresAt time.Time
}

// VerifyResult is the outcome of a verification attempt. Failed checks are
// results, not errors. Session is set when a session could be issued for
// the verified business.
type VerifyResult struct {
	Valid   bool
	Reason  VerifyReason
	Session *IssuedSession
}

func (r *VerifyResult) Message() string {
	switch r.Reason {
	case ReasonVerified:
		return "OTP verified successfully"
	case ReasonExpired:
		return "OTP has expired"
	case ReasonMismatch:
		return "Invalid OTP"
	default:
		return "No OTP found for this email"
	}
}

type OTPService interface {
	GenerateChallenge(ctx context.Context, email string) (*Challenge, error)
	VerifyChallenge(ctx context.Context, email, code string) (*VerifyResult, error)
}

type otpService struct {
	repo     *repository.Repository
	sessions SessionService
	digester *utils.OTPDigester
	config   utils.OTPConfig
	log      *zap.Logger
	now      func() time.Time
}

func NewOTPService(
	repo *repository.Repository,
	sessions SessionService,
	config utils.OTPConfig,
	log *zap.Logger,
) OTPService {
	return &otpService{
		repo:     repo,
		sessions: sessions,
		digester: utils.NewOTPDigester(config.Secret),
		config:   config,
		log:      log,
		now:      time.Now,
	}
}

func (s *otpService) GenerateChallenge(ctx context.Context, email string) (*Challenge, error) {
	// 1. Only registered businesses can request a code
	business, err := s.repo.Business.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: find business", ErrStoreUnavailable)
	}
	if business == nil {
		return nil, fmt.Errorf("business %w", ErrNotFound)
	}

	// 2. Generate code and digest
	code, err := utils.GenerateOTP(s.config.Length)
	if err != nil {
		s.log.Error("Failed to generate OTP", zap.Error(err))
		return nil, fmt.Errorf("generate OTP: %w", err)
	}

	now := s.now().UTC()
	challenge := &entity.OTPChallenge{
		Email:     email,
		OTPDigest: s.digester.Digest(email, code),
		ExpiresAt: now.Add(s.config.Expiry()),
		CreatedAt: now,
	}

	// 3. Replace any previous challenge; a concurrent generate is overwritten,
	// not reported, so the last commit wins
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.OTP.DeleteByEmail(ctx, email); err != nil {
			return err
		}
		return tx.OTP.Upsert(ctx, challenge)
	})
	if err != nil {
		s.log.Error("Failed to store OTP challenge", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("%w: store OTP challenge", ErrStoreUnavailable)
	}

	s.log.Info("OTP generated",
		zap.String("email", email),
		zap.Time("expires_at", challenge.ExpiresAt),
	)
	s.log.Debug("OTP code for out-of-band delivery",
		zap.String("email", email),
		zap.String("otp_code", code),
	)

	return &Challenge{
		Email:     email,
		OTP:       code,
		ExpiresAt: challenge.ExpiresAt,
	}, nil
}

func (s *otpService) VerifyChallenge(ctx context.Context, email, code string) (*VerifyResult, error) {
	var business *entity.Business
	result := &VerifyResult{}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		// 1. Load and lock the single pending challenge
		challenge, err := tx.OTP.FindByEmailForUpdate(ctx, email)
		if err != nil {
			return err
		}
		if challenge == nil {
			result.Reason = ReasonNotFound
			return nil
		}

		// 2. Expiry precedes the digest comparison; the row stays in place
		if challenge.ExpiredAt(s.now()) {
			result.Reason = ReasonExpired
			return nil
		}

		// 3. Constant-time comparison
		if len(code) != s.config.Length || !s.digester.Verify(email, code, challenge.OTPDigest) {
			result.Reason = ReasonMismatch
			return nil
		}

		// 4. Flip the business first so a missing business leaves the challenge intact
		ok, err := tx.Business.MarkVerified(ctx, email)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		if err := tx.OTP.DeleteByEmail(ctx, email); err != nil {
			return err
		}

		business, err = tx.Business.FindByEmail(ctx, email)
		if err != nil {
			return err
		}

		result.Valid = true
		result.Reason = ReasonVerified
		return nil
	})

	if errors.Is(err, ErrNotFound) {
		s.log.Warn("OTP matched but business is gone", zap.String("email", email))
		return &VerifyResult{Reason: ReasonNotFound}, nil
	}
	if err != nil {
		s.log.Error("Failed to verify OTP", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("%w: verify OTP", ErrStoreUnavailable)
	}

	if !result.Valid {
		s.log.Info("OTP verification failed",
			zap.String("email", email),
			zap.String("reason", string(result.Reason)),
		)
		return result, nil
	}

	s.log.Info("Business verified", zap.String("email", email))

	// 5. Hand over to the session issuer; verification stands even if this fails
	identity := entity.SessionIdentity{Kind: entity.IdentityBusiness, Email: email}
	if business != nil {
		identity.ID = business.ID
	}
	session, err := s.sessions.IssueSession(ctx, identity)
	if err != nil {
		s.log.Warn("Failed to create session after verification",
			zap.Error(err), zap.String("email", email))
		return result, nil
	}
	result.Session = session

	return result, nil
}
