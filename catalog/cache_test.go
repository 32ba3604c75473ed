package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketcart/models"
)

func newTestCache(t *testing.T, products ...models.Product) (*Cache, *MemoryCatalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger, _ := test.NewNullLogger()
	src := NewMemoryCatalog(products...)
	return NewCache(rdb, src, time.Minute, logger), src, mr
}

func product(id string, stock int) models.Product {
	return models.Product{
		ID:         id,
		ShopID:     "shop-1",
		Name:       "Product " + id,
		Price:      decimal.NewFromInt(1999),
		Stock:      stock,
		IsApproved: true,
		OnShelf:    true,
	}
}

func TestCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	cache, src, mr := newTestCache(t, product("p1", 5), product("p2", 0))

	got, err := cache.FindByIDs(ctx, []string{"p1", "p2", "missing"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.True(t, got[0].Price.Equal(decimal.NewFromInt(1999)))
	assert.Equal(t, 1, src.Calls())
	assert.True(t, mr.Exists("product:p1"))
	assert.False(t, mr.Exists("product:missing"))

	got, err = cache.FindByIDs(ctx, []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, src.Calls(), "second read must be served from redis")
}

func TestCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	cache, src, _ := newTestCache(t, product("p1", 5))

	_, err := cache.FindByIDs(ctx, []string{"p1"})
	require.NoError(t, err)

	src.SetStock("p1", 0)
	require.NoError(t, cache.Invalidate(ctx, "p1"))

	got, err := cache.FindByIDs(ctx, []string{"p1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Stock)
	assert.Equal(t, 2, src.Calls())
}

func TestCacheFallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	cache, src, mr := newTestCache(t, product("p1", 5))
	mr.Close()

	got, err := cache.FindByIDs(ctx, []string{"p1"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, src.Calls())
}

func TestFindOneValidForDisplay(t *testing.T) {
	ctx := context.Background()
	hidden := product("p2", 5)
	hidden.OnShelf = false
	cache, _, _ := newTestCache(t, product("p1", 5), hidden)

	p, ok, err := cache.FindOneValidForDisplay(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "p1", p.ID)

	_, ok, err = cache.FindOneValidForDisplay(ctx, "p2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = cache.FindOneValidForDisplay(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}
