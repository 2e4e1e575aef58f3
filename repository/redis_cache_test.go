package repository

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := NewRedisCache(mr.Addr(), time.Minute)
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	require.NoError(t, cache.Set("schedule:50000.00:0.050000:36", "payload"))

	val, ok := cache.Get("schedule:50000.00:0.050000:36")
	assert.True(t, ok)
	assert.Equal(t, "payload", val)
}

func TestRedisCache_MissingKey(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	_, ok := cache.Get("absent")
	assert.False(t, ok)
}

func TestRedisCache_EntriesExpire(t *testing.T) {
	cache, mr := newTestRedisCache(t)

	require.NoError(t, cache.Set("key", "value"))
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get("key")
	assert.False(t, ok)
}

func TestRedisCache_Unreachable(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	mr.Close()

	_, ok := cache.Get("key")
	assert.False(t, ok)
	assert.Error(t, cache.Set("key", "value"))
}
