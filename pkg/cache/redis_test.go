package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedis_GetSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t, 0)

	_, ok, err := c.Get(ctx, "how do volcanoes work?")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "how do volcanoes work?", `{"main":"volcanoes"}`))

	v, ok, err := c.Get(ctx, "how do volcanoes work?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"main":"volcanoes"}`, v)

	stored, err := mr.Get(redisKeyPrefix + "how do volcanoes work?")
	require.NoError(t, err)
	assert.Equal(t, `{"main":"volcanoes"}`, stored)
	assert.Zero(t, mr.TTL(redisKeyPrefix+"how do volcanoes work?"), "zero TTL keeps entries forever")

	_, ok, _ = c.Get(ctx, "How do volcanoes work?")
	assert.False(t, ok)
}

func TestRedis_TTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t, time.Minute)

	require.NoError(t, c.Set(ctx, "k", "v"))
	assert.Equal(t, time.Minute, mr.TTL(redisKeyPrefix+"k"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_BackendFailure(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t, 0)
	mr.SetError("ERR backend unavailable")

	_, ok, err := c.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "k", "v"))
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedis(context.Background(), "redis://"+mr.Addr()+"/0", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Set(context.Background(), "k", "v"))
	assert.True(t, mr.Exists(redisKeyPrefix+"k"))

	_, err = NewRedis(context.Background(), "not a url", 0)
	assert.ErrorContains(t, err, "parse Redis URL")
}
