package ratelimit

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedis(t *testing.T) *goredis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := redis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, "redis://"+endpoint)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	client := setupRedis(t)
	l := NewRedisLimiter(client, "test:auth:", 2, 500*time.Millisecond)

	assert.True(t, allow(t, l, "1.2.3.4"))
	assert.True(t, allow(t, l, "1.2.3.4"))
	assert.False(t, allow(t, l, "1.2.3.4"))
	assert.True(t, allow(t, l, "5.6.7.8"))

	assert.Eventually(t, func() bool {
		ok, err := l.Allow(context.Background(), "1.2.3.4")
		return err == nil && ok
	}, 3*time.Second, 100*time.Millisecond)
}

func TestRedisLimiter_ErrorWhenUnavailable(t *testing.T) {
	client := setupRedis(t)
	l := NewRedisLimiter(client, "test:auth:", 2, time.Second)
	require.NoError(t, client.Close())

	_, err := l.Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url")
	assert.Error(t, err)
}
