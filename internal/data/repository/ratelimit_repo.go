package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitKeyPrefix = "ratelimit:"

// hitScript increments the counter and starts the window on the first hit,
// in one round trip so a counter never outlives its window.
// KEYS[1] = counter key
// ARGV[1] = window in milliseconds
var hitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

type RateLimitRepository interface {
	// Hit records one request against key and returns the count in the
	// current window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

type rateLimitRepository struct {
	rdb redis.UniversalClient
	log *zap.Logger
}

func NewRateLimitRepository(rdb redis.UniversalClient, log *zap.Logger) RateLimitRepository {
	return &rateLimitRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "rate_limit")),
	}
}

func (r *rateLimitRepository) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := hitScript.Run(ctx, r.rdb, []string{rateLimitKeyPrefix + key}, window.Milliseconds()).Int64()
	if err != nil {
		r.log.Error("Failed to record rate limit hit",
			zap.Error(err),
			zap.String("key", key),
		)
		return 0, fmt.Errorf("%w: rate limit hit: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}
