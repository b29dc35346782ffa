package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotAcquired is returned when another holder owns the lock.
var ErrLockNotAcquired = errors.New("lock not acquired")

var refreshScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// Lock is a single-holder distributed lock based on SET NX with a TTL.
type Lock struct {
	client *Client
	key    string
	value  string
	ttl    time.Duration
}

// NewLock creates a lock over key, namespaced as namespace::key when namespace is set.
func NewLock(client *Client, namespace, key string, ttl time.Duration) *Lock {
	if namespace != "" {
		key = namespace + "::" + key
	}
	return &Lock{
		client: client,
		key:    key,
		value:  uuid.NewString(),
		ttl:    ttl,
	}
}

// TryLock attempts to acquire the lock once.
func (l *Lock) TryLock(ctx context.Context) error {
	acquired, err := l.client.rdb.SetNX(ctx, l.key, l.value, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", l.key, err)
	}
	if !acquired {
		return ErrLockNotAcquired
	}
	return nil
}

// Unlock releases the lock if this holder still owns it
func (l *Lock) Unlock(ctx context.Context) error {
	result, err := releaseScript.Run(ctx, l.client.rdb, []string{l.key}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	if result == 0 {
		return fmt.Errorf("lock %s was not held by this client", l.key)
	}
	return nil
}

// Refresh extends the TTL if this holder still owns the lock
func (l *Lock) Refresh(ctx context.Context) error {
	result, err := refreshScript.Run(ctx, l.client.rdb, []string{l.key}, l.value, l.ttl.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to refresh lock %s: %w", l.key, err)
	}
	if result == 0 {
		return fmt.Errorf("lock %s was lost", l.key)
	}
	return nil
}

// AutoRefresh refreshes the lock every interval until ctx is done or a refresh fails.
// The returned channel yields the failure, or nil on cancellation, then closes.
func (l *Lock) AutoRefresh(ctx context.Context, interval time.Duration) <-chan error {
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				_ = l.Unlock(context.WithoutCancel(ctx))
				errCh <- nil
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					errCh <- err
					return
				}
			}
		}
	}()

	return errCh
}
