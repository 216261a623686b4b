package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/cache"
	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := cache.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	})
	require.NoError(t, err)
	return c, mr
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	sub := models.Subscription{ID: "sub-1", Name: "Netflix", Price: "15.99", UserID: "user-1"}
	require.NoError(t, c.Set(ctx, "subscription:sub-1", sub, time.Hour))

	var got models.Subscription
	found, err := c.Get(ctx, "subscription:sub-1", &got)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sub.Name, got.Name)
	assert.Equal(t, sub.UserID, got.UserID)
}

func TestCache_GetMissingKey(t *testing.T) {
	c, _ := newTestCache(t)

	var got models.Subscription
	found, err := c.Get(context.Background(), "subscription:missing", &got)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Expiration(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	sub := models.Subscription{ID: "sub-1", Name: "Netflix"}
	require.NoError(t, c.Set(ctx, "subscription:sub-1", sub, time.Minute))

	mr.FastForward(2 * time.Minute)

	var got models.Subscription
	found, err := c.Get(ctx, "subscription:sub-1", &got)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	sub := models.Subscription{ID: "sub-1", Name: "Netflix"}
	require.NoError(t, c.Set(ctx, "subscription:sub-1", sub, time.Hour))
	require.NoError(t, c.Invalidate(ctx, "subscription:sub-1"))

	var got models.Subscription
	found, err := c.Get(ctx, "subscription:sub-1", &got)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_GetCorruptedValue(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("subscription:sub-1", "not json"))

	var got models.Subscription
	found, err := c.Get(context.Background(), "subscription:sub-1", &got)

	assert.False(t, found)
	assert.Error(t, err)
}

func TestInitServer_Unreachable(t *testing.T) {
	_, err := cache.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
		TimeoutRedis: 100 * time.Millisecond,
	})

	assert.Error(t, err)
}
