package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultLockKeyPrefix = "ledger:lock:"

// releaseScript deletes the lock only if it still carries our token, so a
// holder whose TTL expired cannot release someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisHashLocker implements HashLocker with SET NX PX locks shared by every
// instance pointing at the same Redis.
type RedisHashLocker struct {
	client    redis.UniversalClient
	keyPrefix string
	cfg       shared.LockConfig
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisHashLocker connects to Redis and verifies the connection
func NewRedisHashLocker(cfg RedisConfig, lockCfg shared.LockConfig, logger *zap.Logger) (*RedisHashLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisHashLockerWithClient(client, "", lockCfg, logger), nil
}

// NewRedisHashLockerWithClient creates a locker on an existing client
func NewRedisHashLockerWithClient(client redis.UniversalClient, keyPrefix string, lockCfg shared.LockConfig, logger *zap.Logger) *RedisHashLocker {
	if keyPrefix == "" {
		keyPrefix = defaultLockKeyPrefix
	}
	defaults := shared.DefaultLockConfig()
	if lockCfg.TTL <= 0 {
		lockCfg.TTL = defaults.TTL
	}
	if lockCfg.Wait <= 0 {
		lockCfg.Wait = defaults.Wait
	}
	if lockCfg.RetryInterval <= 0 {
		lockCfg.RetryInterval = defaults.RetryInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisHashLocker{
		client:    client,
		keyPrefix: keyPrefix,
		cfg:       lockCfg,
		logger:    logger,
	}
}

// Acquire polls SET NX until the lock is taken, ctx is done, or Wait elapses
func (l *RedisHashLocker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := l.keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.cfg.Wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.cfg.TTL).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("acquire lock %s: %w: %w", key, shared.ErrLockTimeout, ctx.Err())
			}
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("acquire lock %s: %w", key, shared.ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w: %w", key, shared.ErrLockTimeout, ctx.Err())
		case <-time.After(l.cfg.RetryInterval):
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true

		// The caller's ctx may already be cancelled; release must still reach Redis.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.logger.Warn("failed to release ledger lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

// Close closes the Redis client
func (l *RedisHashLocker) Close() error {
	return l.client.Close()
}

var _ shared.HashLocker = (*RedisHashLocker)(nil)
