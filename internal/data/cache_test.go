package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheExpiry(t *testing.T) {
	c := NewCache[string](time.Minute)
	require.NotNil(t, c)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", "alpha")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "alpha", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "expired entries are not returned")
	assert.Equal(t, 1, c.Len(), "expired entries linger until pruned")

	assert.Equal(t, 1, c.Prune())
	assert.Zero(t, c.Len())
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache[int](time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestNilCacheIsDisabled(t *testing.T) {
	c := NewCache[int](0)
	assert.Nil(t, c)

	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Prune())
	c.Close()
}

func TestCacheCloseIsIdempotent(t *testing.T) {
	c := NewCache[int](time.Hour)
	c.StartCleanup(time.Millisecond)
	c.Close()
	c.Close()
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("a", "b"), CacheKey("a", "b"))
	assert.NotEqual(t, CacheKey("ab", ""), CacheKey("a", "b"))
	assert.Len(t, CacheKey("x"), 64)
}
