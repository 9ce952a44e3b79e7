package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"business-onboarding/internal/data/entity"
	"business-onboarding/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

type SessionRepository interface {
	Save(ctx context.Context, token string, identity entity.SessionIdentity, ttl time.Duration) error
	Find(ctx context.Context, token string) (*entity.SessionIdentity, error)
	Delete(ctx context.Context, token string) error
	TTL(ctx context.Context, token string) (time.Duration, error)
}

type sessionRepository struct {
	rdb redis.UniversalClient
	log *zap.Logger
}

func NewSessionRepository(rdb redis.UniversalClient, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "session")),
	}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// Save writes the identity with a fixed TTL. An existing key is overwritten.
func (r *sessionRepository) Save(ctx context.Context, token string, identity entity.SessionIdentity, ttl time.Duration) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session identity: %w", err)
	}

	if err := r.rdb.Set(ctx, sessionKey(token), payload, ttl).Err(); err != nil {
		r.log.Error("Failed to save session",
			zap.Error(err),
			zap.String("token", utils.MaskToken(token)),
		)
		return fmt.Errorf("%w: save session: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Find returns nil, nil when the token is unknown or expired.
func (r *sessionRepository) Find(ctx context.Context, token string) (*entity.SessionIdentity, error) {
	payload, err := r.rdb.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session",
			zap.Error(err),
			zap.String("token", utils.MaskToken(token)),
		)
		return nil, fmt.Errorf("%w: find session: %v", ErrStoreUnavailable, err)
	}

	var identity entity.SessionIdentity
	if err := json.Unmarshal(payload, &identity); err != nil {
		// unreadable payloads are treated as absent
		r.log.Warn("Discarding malformed session payload",
			zap.Error(err),
			zap.String("token", utils.MaskToken(token)),
		)
		return nil, nil
	}

	return &identity, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		r.log.Error("Failed to delete session",
			zap.Error(err),
			zap.String("token", utils.MaskToken(token)),
		)
		return fmt.Errorf("%w: delete session: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// TTL returns the remaining lifetime, or zero when the key is gone.
func (r *sessionRepository) TTL(ctx context.Context, token string) (time.Duration, error) {
	ttl, err := r.rdb.PTTL(ctx, sessionKey(token)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: session ttl: %v", ErrStoreUnavailable, err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
