package shared

import (
	"context"
	"time"
)

// HashLocker serializes work keyed by a string, typically a transaction hash.
// Two callers holding the same key never run their critical sections at the
// same time; different keys do not block each other.
type HashLocker interface {
	// Acquire blocks until the key is held or ctx is done.
	// Giving up for either reason returns an error wrapping ErrLockTimeout.
	// The returned release function must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(), err error)

	// Close closes the locker and releases resources
	Close() error
}

// LockConfig holds configuration for hash locking
type LockConfig struct {
	// TTL bounds how long a distributed lock survives a crashed holder
	// Default: 10 seconds
	TTL time.Duration

	// Wait is the maximum time Acquire blocks before giving up
	// Default: 5 seconds
	Wait time.Duration

	// RetryInterval is the polling interval while waiting for a distributed lock
	// Default: 20 milliseconds
	RetryInterval time.Duration
}

// DefaultLockConfig returns the default lock configuration
func DefaultLockConfig() LockConfig {
	return LockConfig{
		TTL:           10 * time.Second,
		Wait:          5 * time.Second,
		RetryInterval: 20 * time.Millisecond,
	}
}
