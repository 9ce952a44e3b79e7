package repository

import (
	"context"
	"errors"
	"fmt"

	"business-onboarding/internal/data/entity"
	"business-onboarding/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// OTPRepository is the OTP ledger. Callers replace a challenge with
// DeleteByEmail + Upsert inside one transaction; the upsert covers a
// concurrent writer whose row the delete could not see, so the last
// commit wins.
type OTPRepository interface {
	Upsert(ctx context.Context, otp *entity.OTPChallenge) error
	DeleteByEmail(ctx context.Context, email string) error
	FindByEmailForUpdate(ctx context.Context, email string) (*entity.OTPChallenge, error)
}

type otpRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewOTPRepository(db database.Querier, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Upsert(ctx context.Context, otp *entity.OTPChallenge) error {
	query := `
		INSERT INTO otps (email, otp_digest, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			otp_digest = EXCLUDED.otp_digest,
			expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at
	`

	_, err := r.db.Exec(ctx, query,
		otp.Email,
		otp.OTPDigest,
		otp.ExpiresAt,
		otp.CreatedAt,
	)

	if err != nil {
		if sentinel := classifyPgError(err); sentinel != nil {
			return fmt.Errorf("upsert OTP for %s: %w", otp.Email, sentinel)
		}
		r.log.Error("Failed to upsert OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
		)
		return fmt.Errorf("upsert OTP for %s: %w", otp.Email, err)
	}

	return nil
}

func (r *otpRepository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM otps WHERE email = $1`

	if _, err := r.db.Exec(ctx, query, email); err != nil {
		r.log.Error("Failed to delete OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("delete OTP for %s: %w", email, err)
	}

	return nil
}

// FindByEmailForUpdate locks the row for the rest of the transaction so
// concurrent verifications of the same email serialize.
func (r *otpRepository) FindByEmailForUpdate(ctx context.Context, email string) (*entity.OTPChallenge, error) {
	query := `
		SELECT email, otp_digest, expires_at, created_at
		FROM otps
		WHERE email = $1
		FOR UPDATE
	`

	var otp entity.OTPChallenge
	err := r.db.QueryRow(ctx, query, email).Scan(
		&otp.Email,
		&otp.OTPDigest,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find OTP for %s: %w", email, err)
	}

	return &otp, nil
}
