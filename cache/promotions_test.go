package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarkt/models"
)

func newTestCache(t *testing.T, ttl time.Duration) (*PromotionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(rc.Close)
	return NewPromotionCache(rc, ttl), mr
}

func samplePromotions() []models.Promotion {
	pct := 20
	end := time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC)
	original := decimal.RequireFromString("5.49")
	return []models.Promotion{{
		StoreCode:       "ah",
		ProductName:     "AH Rundergehakt 500g",
		OriginalPrice:   &original,
		DiscountPrice:   decimal.RequireFromString("4.39"),
		DiscountPercent: &pct,
		PromoType:       "bonus",
		StartDate:       time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		EndDate:         &end,
	}}
}

func TestPromotionCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.GetPromotions(ctx, "stores=ah|category=")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetPromotions(ctx, "stores=ah|category=", samplePromotions()))

	got, ok, err := c.GetPromotions(ctx, "stores=ah|category=")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "AH Rundergehakt 500g", got[0].ProductName)
	assert.True(t, decimal.RequireFromString("4.39").Equal(got[0].DiscountPrice))
	require.NotNil(t, got[0].DiscountPercent)
	assert.Equal(t, 20, *got[0].DiscountPercent)
}

func TestPromotionCacheExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.SetPromotions(ctx, "k", samplePromotions()))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.GetPromotions(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPromotionCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.SetPromotions(ctx, "k", samplePromotions()))

	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.GetPromotions(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetPromotions(ctx, "k", nil))
	got, ok, err := c.GetPromotions(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestPromotionCacheReportsBrokenEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("promotions:0:k", "not json"))

	_, _, err := c.GetPromotions(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewRedisClientFails(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "")
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), addr)
	assert.Error(t, err)
}
