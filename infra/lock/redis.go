package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/homebanking/corebank/pkg/lock"
	goredislib "github.com/redis/go-redis/v9"
)

// RedisOptions tunes the distributed mutexes.
type RedisOptions struct {
	Prefix     string
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

// RedisLocker is a Locker backed by redsync so several instances serialize on the same accounts.
type RedisLocker struct {
	rs     *redsync.Redsync
	opts   RedisOptions
	logger *slog.Logger
}

// NewRedisLocker creates a RedisLocker using rdb.
func NewRedisLocker(rdb goredislib.UniversalClient, opts RedisOptions, logger *slog.Logger) *RedisLocker {
	if opts.Expiry <= 0 {
		opts.Expiry = 10 * time.Second
	}
	if opts.Tries <= 0 {
		opts.Tries = 32
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 50 * time.Millisecond
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(rdb)),
		opts:   opts,
		logger: logger,
	}
}

// Lock implements lock.Locker.
func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (lock.Unlock, error) {
	held := make([]*redsync.Mutex, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			// Unlock must run even when the caller's context is already done.
			if ok, err := held[i].UnlockContext(context.WithoutCancel(ctx)); !ok || err != nil {
				l.logger.Warn("Failed to release lock", "key", held[i].Name(), "error", err)
			}
		}
	}
	for _, key := range lock.Keys(keys...) {
		mutex := l.rs.NewMutex(
			l.opts.Prefix+key,
			redsync.WithExpiry(l.opts.Expiry),
			redsync.WithTries(l.opts.Tries),
			redsync.WithRetryDelay(l.opts.RetryDelay),
		)
		if err := mutex.LockContext(ctx); err != nil {
			release()
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		held = append(held, mutex)
	}
	var once sync.Once
	return func() { once.Do(release) }, nil
}
