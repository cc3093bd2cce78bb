package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetAndGet(t *testing.T) {
	ctx := context.Background()
	c := New()

	require.NoError(t, c.Set(ctx, "key", "value", 60))

	got, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestMemory_GetMissing(t *testing.T) {
	c := New()

	_, ok := c.Get(context.Background(), "missing")

	assert.False(t, ok)
}

func TestMemory_ExpiryWithInjectedClock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	c := NewWithClock(func() time.Time { return now })

	require.NoError(t, c.Set(ctx, "key", "value", 30))

	_, ok := c.Get(ctx, "key")
	assert.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok = c.Get(ctx, "key")
	assert.False(t, ok)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	c := New()

	require.NoError(t, c.Set(ctx, "key", "value", 60))
	require.NoError(t, c.Delete(ctx, "key"))

	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	c := New()

	require.NoError(t, c.Set(ctx, "a", 1, 60))
	require.NoError(t, c.Set(ctx, "b", 2, 60))
	require.NoError(t, c.Clear(ctx))

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "b")
	assert.False(t, ok)
}

func TestMemory_PurgeDropsOnlyExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	c := NewWithClock(func() time.Time { return now })

	require.NoError(t, c.Set(ctx, "short", 1, 10))
	require.NoError(t, c.Set(ctx, "long", 2, 300))

	now = now.Add(60 * time.Second)
	c.Purge()

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "long")
	assert.True(t, ok)
}
