// Package seedlock serialises the "seed only if empty" step across service
// instances that share one backing store.
package seedlock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReleaseFunc gives the lock back. It is safe to call after the lock expired.
type ReleaseFunc func(ctx context.Context) error

// Locker hands out an exclusive lock for the seed step.
type Locker interface {
	Acquire(ctx context.Context) (ReleaseFunc, error)
}

// Noop is used for single-instance deployments.
type Noop struct{}

func (Noop) Acquire(context.Context) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}

var ErrNotAcquired = errors.New("seed lock not acquired")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// extendScript pushes the expiry out only while the key still holds our token.
var extendScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`)

// Redis is a SET NX PX lock. The holder extends the TTL every third of it
// until release, so the TTL only bounds how long a crashed holder can block
// other instances.
type Redis struct {
	client       redis.UniversalClient
	key          string
	ttl          time.Duration
	pollInterval time.Duration
}

// DefaultTTL applies when NewRedis gets a non-positive ttl.
const DefaultTTL = 30 * time.Second

func NewRedis(client redis.UniversalClient, key string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{
		client:       client,
		key:          key,
		ttl:          ttl,
		pollInterval: 250 * time.Millisecond,
	}
}

// Key returns the lock key used for a table.
func Key(table string) string {
	return fmt.Sprintf("item-store:seed-lock:%s", table)
}

// Acquire polls until the lock is held or ctx ends.
func (r *Redis) Acquire(ctx context.Context) (ReleaseFunc, error) {
	token := uuid.NewString()

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, r.key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", r.key, err)
		}
		if ok {
			zap.S().Debugf("Acquired seed lock %s", r.key)
			stop := r.keepAlive(token)
			return r.release(token, stop), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}

// keepAlive extends the key until the returned func is called.
func (r *Redis) keepAlive(token string) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(max(r.ttl/3, time.Millisecond))
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				held, err := extendScript.Run(ctx, r.client, []string{r.key}, token, r.ttl.Milliseconds()).Int()
				switch {
				case ctx.Err() != nil:
					return
				case err != nil:
					zap.S().Warnf("Failed to extend seed lock %s: %v", r.key, err)
				case held == 0:
					zap.S().Warnf("Seed lock %s expired before release", r.key)
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (r *Redis) release(token string, stop func()) ReleaseFunc {
	return func(ctx context.Context) error {
		stop()
		if err := releaseScript.Run(ctx, r.client, []string{r.key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release %s: %w", r.key, err)
		}
		zap.S().Debugf("Released seed lock %s", r.key)
		return nil
	}
}
