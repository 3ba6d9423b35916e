package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	_, ok := cache.Get(ctx, "key_rate")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "key_rate", "21.5", time.Hour))
	require.NoError(t, cache.Set(ctx, "forever", "x", 0))

	val, ok := cache.Get(ctx, "key_rate")
	assert.True(t, ok)
	assert.Equal(t, "21.5", val)

	now = now.Add(time.Hour)
	_, ok = cache.Get(ctx, "key_rate")
	assert.False(t, ok)

	val, ok = cache.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, "x", val)
}
