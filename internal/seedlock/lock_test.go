package seedlock_test

import (
	"context"
	"testing"
	"time"

	"item-store/internal/seedlock"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	var l seedlock.Locker = seedlock.Noop{}

	release, err := l.Acquire(context.Background())
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "item-store:seed-lock:items", seedlock.Key("items"))
}

func TestRedis_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := seedlock.NewRedis(client, seedlock.Key("items"), time.Second).Acquire(ctx)
	assert.Error(t, err)
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func acquireWithin(l seedlock.Locker, d time.Duration) (seedlock.ReleaseFunc, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return l.Acquire(ctx)
}

func TestRedis_SecondAcquireWaitsForRelease(t *testing.T) {
	mr, client := newMiniRedis(t)
	key := seedlock.Key("items")
	first := seedlock.NewRedis(client, key, 5*time.Second)
	second := seedlock.NewRedis(client, key, 5*time.Second)

	release, err := acquireWithin(first, time.Second)
	require.NoError(t, err)

	token, err := mr.Get(key)
	require.NoError(t, err)
	_, err = uuid.Parse(token)
	assert.NoError(t, err)
	assert.Greater(t, mr.TTL(key), time.Duration(0))

	_, err = acquireWithin(second, 300*time.Millisecond)
	assert.ErrorIs(t, err, seedlock.ErrNotAcquired)

	held, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, token, held)

	require.NoError(t, release(context.Background()))
	assert.False(t, mr.Exists(key))

	releaseSecond, err := acquireWithin(second, time.Second)
	require.NoError(t, err)
	require.NoError(t, releaseSecond(context.Background()))
}

func TestRedis_StaleReleaseKeepsNewHolder(t *testing.T) {
	mr, client := newMiniRedis(t)
	key := seedlock.Key("items")

	releaseStale, err := acquireWithin(seedlock.NewRedis(client, key, time.Second), time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(key))

	releaseNew, err := acquireWithin(seedlock.NewRedis(client, key, 5*time.Second), time.Second)
	require.NoError(t, err)
	token, err := mr.Get(key)
	require.NoError(t, err)

	require.NoError(t, releaseStale(context.Background()))

	held, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, token, held)

	_, err = acquireWithin(seedlock.NewRedis(client, key, 5*time.Second), 300*time.Millisecond)
	assert.ErrorIs(t, err, seedlock.ErrNotAcquired)

	require.NoError(t, releaseNew(context.Background()))
	assert.False(t, mr.Exists(key))
}

func TestRedis_HolderExtendsTTL(t *testing.T) {
	mr, client := newMiniRedis(t)
	key := seedlock.Key("items")
	ttl := 300 * time.Millisecond

	release, err := acquireWithin(seedlock.NewRedis(client, key, ttl), time.Second)
	require.NoError(t, err)

	// Twice the TTL in simulated time; each step is shorter than one TTL.
	for i := 0; i < 3; i++ {
		mr.FastForward(200 * time.Millisecond)
		require.True(t, mr.Exists(key))
		assert.Eventually(t, func() bool { return mr.TTL(key) == ttl }, 2*time.Second, 10*time.Millisecond)
	}

	_, err = acquireWithin(seedlock.NewRedis(client, key, ttl), 50*time.Millisecond)
	assert.ErrorIs(t, err, seedlock.ErrNotAcquired)

	require.NoError(t, release(context.Background()))
	assert.False(t, mr.Exists(key))
}
