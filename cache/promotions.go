package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"supermarkt/models"
)

const generationKey = "promotions:generation"

// PromotionCache keeps catalog reads in Redis. Entries live under the current
// generation; Invalidate moves to a new generation and the old entries expire.
type PromotionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPromotionCache caches entries for ttl.
func NewPromotionCache(c *RedisClient, ttl time.Duration) *PromotionCache {
	return &PromotionCache{client: c.client, ttl: ttl}
}

func (p *PromotionCache) entryKey(ctx context.Context, key string) (string, error) {
	gen, err := p.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", fmt.Errorf("read generation: %w", err)
	}
	return "promotions:" + gen + ":" + key, nil
}

// GetPromotions returns the cached list for key, if any.
func (p *PromotionCache) GetPromotions(ctx context.Context, key string) ([]models.Promotion, bool, error) {
	k, err := p.entryKey(ctx, key)
	if err != nil {
		return nil, false, err
	}
	raw, err := p.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", k, err)
	}
	var promos []models.Promotion
	if err := json.Unmarshal(raw, &promos); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", k, err)
	}
	return promos, true, nil
}

// SetPromotions stores promos under key for the cache ttl.
func (p *PromotionCache) SetPromotions(ctx context.Context, key string, promos []models.Promotion) error {
	k, err := p.entryKey(ctx, key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(promos)
	if err != nil {
		return fmt.Errorf("encode %s: %w", k, err)
	}
	if err := p.client.Set(ctx, k, raw, p.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", k, err)
	}
	return nil
}

// Invalidate drops every cached list by starting a new generation.
func (p *PromotionCache) Invalidate(ctx context.Context) error {
	if err := p.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bump generation: %w", err)
	}
	return nil
}
