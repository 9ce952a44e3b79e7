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

type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	FindByID(ctx context.Context, id int64) (*entity.Business, error)
	FindByEmail(ctx context.Context, email string) (*entity.Business, error)
	MarkVerified(ctx context.Context, email string) (bool, error)
}

type businessRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBusinessRepository(db database.Querier, log *zap.Logger) BusinessRepository {
	return &businessRepository{
		db:  db,
		log: log.With(zap.String("repository", "business")),
	}
}

// Create inserts the business and fills in ID and CreatedAt
func (r *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	query := `
		INSERT INTO businesses (company_name, email, phone, hq, operations,
		                        website, details, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		business.CompanyName,
		business.Email,
		business.Phone,
		business.HQ,
		business.Operations,
		business.Website,
		business.Details,
	).Scan(&business.ID, &business.CreatedAt)

	if err != nil {
		if sentinel := classifyPgError(err); sentinel != nil {
			return fmt.Errorf("create business %s: %w", business.Email, sentinel)
		}
		r.log.Error("Failed to create business",
			zap.Error(err),
			zap.String("email", business.Email),
		)
		return fmt.Errorf("create business %s: %w", business.Email, err)
	}

	business.Verified = false
	return nil
}

func (r *businessRepository) FindByID(ctx context.Context, id int64) (*entity.Business, error) {
	query := `
		SELECT id, company_name, email, phone, hq, operations,
		       website, details, verified, created_at
		FROM businesses
		WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

func (r *businessRepository) FindByEmail(ctx context.Context, email string) (*entity.Business, error) {
	query := `
		SELECT id, company_name, email, phone, hq, operations,
		       website, details, verified, created_at
		FROM businesses
		WHERE email = $1
	`
	return r.findOne(ctx, query, email)
}

// MarkVerified sets verified = true and reports whether a row matched.
func (r *businessRepository) MarkVerified(ctx context.Context, email string) (bool, error) {
	query := `
		UPDATE businesses
		SET verified = true
		WHERE email = $1
	`

	result, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to mark business verified",
			zap.Error(err),
			zap.String("email", email),
		)
		return false, fmt.Errorf("mark business %s verified: %w", email, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *businessRepository) findOne(ctx context.Context, query string, arg any) (*entity.Business, error) {
	var business entity.Business
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&business.ID,
		&business.CompanyName,
		&business.Email,
		&business.Phone,
		&business.HQ,
		&business.Operations,
		&business.Website,
		&business.Details,
		&business.Verified,
		&business.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find business",
			zap.Error(err),
			zap.Any("key", arg),
		)
		return nil, fmt.Errorf("find business %v: %w", arg, err)
	}

	return &business, nil
}
