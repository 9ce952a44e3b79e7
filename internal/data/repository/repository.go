package repository

import (
	"context"

	"business-onboarding/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Business  BusinessRepository
	User      UserRepository
	OTP       OTPRepository
	Session   SessionRepository
	RateLimit RateLimitRepository

	tx Transactor
}

// Transactor runs fn against a Repository whose relational repositories are
// bound to a single transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo *Repository) error) error
}

func NewRepository(db database.PgxIface, rdb redis.UniversalClient, log *zap.Logger) *Repository {
	repo := &Repository{
		Business:  NewBusinessRepository(db, log),
		User:      NewUserRepository(db, log),
		OTP:       NewOTPRepository(db, log),
		Session:   NewSessionRepository(rdb, log),
		RateLimit: NewRateLimitRepository(rdb, log),
	}
	repo.tx = &pgTransactor{db: db, base: repo, log: log}
	return repo
}

// WithTransactor replaces the transaction runner; used by tests that wire
// fakes into a Repository literal.
func (r *Repository) WithTransactor(tx Transactor) *Repository {
	r.tx = tx
	return r
}

// Transaction commits when fn returns nil and rolls back otherwise. Without
// a transactor fn runs directly against r.
func (r *Repository) Transaction(ctx context.Context, fn func(repo *Repository) error) error {
	if r.tx == nil {
		return fn(r)
	}
	return r.tx.WithinTx(ctx, fn)
}

type pgTransactor struct {
	db   database.PgxIface
	base *Repository
	log  *zap.Logger
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(repo *Repository) error) error {
	return database.WithTx(ctx, t.db, func(tx pgx.Tx) error {
		return fn(&Repository{
			Business:  NewBusinessRepository(tx, t.log),
			User:      NewUserRepository(tx, t.log),
			OTP:       NewOTPRepository(tx, t.log),
			Session:   t.base.Session,
			RateLimit: t.base.RateLimit,
		})
	})
}
