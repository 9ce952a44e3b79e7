// Package repotest provides in-memory relational repositories for tests.
// The Redis-backed repositories are used as-is against miniredis.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"business-onboarding/internal/data/entity"
	"business-onboarding/internal/data/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store bundles the fakes so tests can inspect state and inject failures.
type Store struct {
	Businesses *BusinessRepository
	Users      *UserRepository
	OTPs       *OTPRepository
}

// NewRepository returns a Repository with in-memory relational repositories
// and Redis repositories on rdb.
func NewRepository(rdb redis.UniversalClient) (*repository.Repository, *Store) {
	log := zap.NewNop()
	businesses := &BusinessRepository{byID: make(map[int64]*entity.Business)}
	store := &Store{
		Businesses: businesses,
		Users:      &UserRepository{businesses: businesses, byID: make(map[int64]*entity.User)},
		OTPs:       &OTPRepository{byEmail: make(map[string]*entity.OTPChallenge)},
	}

	return &repository.Repository{
		Business:  store.Businesses,
		User:      store.Users,
		OTP:       store.OTPs,
		Session:   repository.NewSessionRepository(rdb, log),
		RateLimit: repository.NewRateLimitRepository(rdb, log),
	}, store
}

type BusinessRepository struct {
	mu     sync.Mutex
	byID   map[int64]*entity.Business
	nextID int64

	// Err, when set, is returned by every call.
	Err error
}

func (r *BusinessRepository) Create(ctx context.Context, business *entity.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	for _, b := range r.byID {
		if b.Email == business.Email {
			return fmt.Errorf("create business %s: %w", business.Email, repository.ErrDuplicateKey)
		}
	}

	r.nextID++
	business.ID = r.nextID
	business.CreatedAt = time.Now()
	business.Verified = false
	stored := *business
	r.byID[stored.ID] = &stored
	return nil
}

func (r *BusinessRepository) FindByID(ctx context.Context, id int64) (*entity.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	if b, ok := r.byID[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

func (r *BusinessRepository) FindByEmail(ctx context.Context, email string) (*entity.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	if b := r.byEmailLocked(email); b != nil {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

func (r *BusinessRepository) MarkVerified(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}

	b := r.byEmailLocked(email)
	if b == nil {
		return false, nil
	}
	b.Verified = true
	return true, nil
}

// Delete removes a business; tests use it to simulate a concurrent deletion.
func (r *BusinessRepository) Delete(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.byEmailLocked(email); b != nil {
		delete(r.byID, b.ID)
	}
}

func (r *BusinessRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *BusinessRepository) byEmailLocked(email string) *entity.Business {
	for _, b := range r.byID {
		if b.Email == email {
			return b
		}
	}
	return nil
}

type UserRepository struct {
	mu         sync.Mutex
	businesses *BusinessRepository
	byID       map[int64]*entity.User
	nextID     int64

	Err error
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	company, _ := r.businesses.FindByID(ctx, user.CompanyID)
	if company == nil {
		return fmt.Errorf("create user %s: %w", user.Email, repository.ErrForeignKey)
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return fmt.Errorf("create user %s: %w", user.Email, repository.ErrDuplicateKey)
		}
	}

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.byID[stored.ID] = &stored
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	if u, ok := r.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	for _, u := range r.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type OTPRepository struct {
	mu      sync.Mutex
	byEmail map[string]*entity.OTPChallenge

	Err error
}

// Upsert overwrites any row for the email, like ON CONFLICT DO UPDATE.
func (r *OTPRepository) Upsert(ctx context.Context, otp *entity.OTPChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	stored := *otp
	r.byEmail[otp.Email] = &stored
	return nil
}

func (r *OTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	delete(r.byEmail, email)
	return nil
}

func (r *OTPRepository) FindByEmailForUpdate(ctx context.Context, email string) (*entity.OTPChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	if c, ok := r.byEmail[email]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

// Get returns the stored challenge for email, if any.
func (r *OTPRepository) Get(email string) (*entity.OTPChallenge, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byEmail[email]
	if !ok {
		return nil, false
	}
	copied := *c
	return &copied, true
}

func (r *OTPRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}
