// Package lock provides locks shared by every instance of the service through Redis.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultExpiry     = 8 * time.Second
	defaultTries      = 32
	defaultRetryDelay = 50 * time.Millisecond
)

// ErrLockLost is returned on release when the lock expired while held.
var ErrLockLost = errors.New("lock expired before release")

// Options tune lock acquisition. Zero values select the defaults.
type Options struct {
	Expiry     time.Duration // How long a held lock lives without release
	Tries      int           // Acquisition attempts before giving up
	RetryDelay time.Duration // Pause between attempts
}

// RedisLocker hands out redsync mutexes.
type RedisLocker struct {
	locker *redsync.Redsync
	opts   Options
}

// NewRedisLocker creates a RedisLocker on the given client.
func NewRedisLocker(client *redis.Client, opts *Options) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}

	o := Options{Expiry: defaultExpiry, Tries: defaultTries, RetryDelay: defaultRetryDelay}
	if opts != nil {
		if opts.Expiry > 0 {
			o.Expiry = opts.Expiry
		}
		if opts.Tries > 0 {
			o.Tries = opts.Tries
		}
		if opts.RetryDelay > 0 {
			o.RetryDelay = opts.RetryDelay
		}
	}

	pool := goredis.NewPool(client)
	return &RedisLocker{
		locker: redsync.New(pool),
		opts:   o,
	}, nil
}

// Lock acquires the mutex named key. The returned function releases it.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func() error, error) {
	mutex := l.locker.NewMutex(key,
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() error {
		ok, err := mutex.UnlockContext(context.Background())
		if err != nil {
			return err
		}
		if !ok {
			return ErrLockLost
		}
		return nil
	}, nil
}
