package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/cache"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	config.Set("REDIS_ADDR", "")
	require.NoError(t, cache.Connect(context.Background()))
	assert.False(t, cache.Enabled())

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "plants:all", []string{"rose"}, time.Minute))

	var out []string
	assert.False(t, cache.Get(ctx, "plants:all", &out))
	assert.Nil(t, out)

	ok, err := cache.Exists(ctx, "plants:all")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, cache.Del(ctx, "plants:all"))
	assert.NoError(t, cache.Close())
}

func TestConnectFailsOnUnreachableRedis(t *testing.T) {
	config.Set("REDIS_ADDR", "127.0.0.1:1")
	defer config.Set("REDIS_ADDR", "")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, cache.Connect(ctx))
	assert.False(t, cache.Enabled())
}
