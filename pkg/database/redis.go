package database

import (
	"context"
	"fmt"
	"time"

	"business-onboarding/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis connects to Redis, retrying the initial ping up to
// config.ConnectRetries times with linear backoff. The caller treats an
// error as fatal.
func InitRedis(ctx context.Context, config utils.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	var lastErr error
	for attempt := 1; attempt <= config.ConnectRetries; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		lastErr = client.Ping(pingCtx).Err()
		cancel()

		if lastErr == nil {
			logger.Info("Redis connected",
				zap.String("addr", config.Addr),
				zap.Int("db", config.DB),
				zap.Int("attempt", attempt),
			)
			return client, nil
		}

		logger.Warn("Redis ping failed",
			zap.Error(lastErr),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", config.ConnectRetries),
		)

		if attempt == config.ConnectRetries {
			break
		}

		select {
		case <-ctx.Done():
			client.Close()
			return nil, fmt.Errorf("connect redis: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * config.RetryBackoff):
		}
	}

	client.Close()
	return nil, fmt.Errorf("connect redis after %d attempts: %w", config.ConnectRetries, lastErr)
}
