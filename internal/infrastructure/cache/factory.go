package cache

import (
	"fmt"

	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// HashLockerFactory creates hash lockers based on configuration
type HashLockerFactory struct {
	redisConfig           config.RedisConfig
	ledgerConfig          config.LedgerConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// HashLockerFactoryOption is a functional option for configuring the factory
type HashLockerFactoryOption func(*HashLockerFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) HashLockerFactoryOption {
	return func(f *HashLockerFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory locker when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) HashLockerFactoryOption {
	return func(f *HashLockerFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewHashLockerFactory creates a new factory
func NewHashLockerFactory(redisCfg config.RedisConfig, ledgerCfg config.LedgerConfig, opts ...HashLockerFactoryOption) *HashLockerFactory {
	f := &HashLockerFactory{
		redisConfig:           redisCfg,
		ledgerConfig:          ledgerCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *HashLockerFactory) lockConfig() shared.LockConfig {
	cfg := shared.DefaultLockConfig()
	if f.ledgerConfig.LockTTL > 0 {
		cfg.TTL = f.ledgerConfig.LockTTL
	}
	if f.ledgerConfig.LockWait > 0 {
		cfg.Wait = f.ledgerConfig.LockWait
	}
	if f.ledgerConfig.LockRetryInterval > 0 {
		cfg.RetryInterval = f.ledgerConfig.LockRetryInterval
	}
	return cfg
}

// CreateInMemoryLocker creates a process-local locker.
// It does not serialize creators running in other instances; the
// transaction_hash primary key still keeps the ledger consistent.
func (f *HashLockerFactory) CreateInMemoryLocker() shared.HashLocker {
	return NewInMemoryHashLocker(f.lockConfig().Wait)
}

// CreateRedisLocker creates a Redis-backed locker
func (f *HashLockerFactory) CreateRedisLocker() (shared.HashLocker, error) {
	locker, err := NewRedisHashLocker(RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.lockConfig(), f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis hash locker: %w", err)
	}
	return locker, nil
}

// CreateLocker creates the locker named by ledger.lock_backend, falling back to
// the in-memory locker when Redis is unreachable and fallback is allowed
func (f *HashLockerFactory) CreateLocker() (shared.HashLocker, error) {
	if f.ledgerConfig.LockBackend != config.LockBackendRedis {
		f.logger.Info("using in-memory ledger hash locker")
		return f.CreateInMemoryLocker(), nil
	}

	locker, err := f.CreateRedisLocker()
	if err == nil {
		f.logger.Info("using Redis ledger hash locker", zap.String("addr", f.redisConfig.Addr()))
		return locker, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for ledger locking but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory ledger hash locker. "+
		"Concurrent creators on other instances are serialized only by the database.",
		zap.Error(err),
	)
	return f.CreateInMemoryLocker(), nil
}
