package catalog

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"supermarkt/models"
)

// Source returns promotions active today for the given stores whose product
// name contains any keyword. Empty stores or keywords mean no filter.
type Source interface {
	ActivePromotions(ctx context.Context, stores []string, keywords []string) ([]models.Promotion, error)
}

// Cache stores catalog reads. Implementations decide on expiry.
type Cache interface {
	GetPromotions(ctx context.Context, key string) ([]models.Promotion, bool, error)
	SetPromotions(ctx context.Context, key string, promos []models.Promotion) error
}

// Catalog is the read view over currently valid promotions.
type Catalog struct {
	src   Source
	cache Cache
	now   func() time.Time
}

// New builds a catalog over src. cache may be nil.
func New(src Source, cache Cache) *Catalog {
	return &Catalog{src: src, cache: cache, now: time.Now}
}

// Active returns promotions that are open-ended or end today or later, for the
// given stores, optionally narrowed by a category (see Keywords). The result is
// ordered by discount percent descending with unknown percentages last.
func (c *Catalog) Active(ctx context.Context, stores []string, category string) ([]models.Promotion, error) {
	keywords := Keywords(category)
	key := cacheKey(stores, category)

	if c.cache != nil {
		promos, ok, err := c.cache.GetPromotions(ctx, key)
		if err != nil {
			log.Printf("catalog: cache read failed, falling back to store: %v", err)
		} else if ok {
			return promos, nil
		}
	}

	promos, err := c.src.ActivePromotions(ctx, stores, keywords)
	if err != nil {
		return nil, fmt.Errorf("load active promotions: %w", err)
	}
	promos = filter(promos, stores, keywords, c.now())
	SortByDiscount(promos)

	if c.cache != nil {
		if err := c.cache.SetPromotions(ctx, key, promos); err != nil {
			log.Printf("catalog: cache write failed: %v", err)
		}
	}
	return promos, nil
}

func filter(promos []models.Promotion, stores, keywords []string, today time.Time) []models.Promotion {
	storeSet := make(map[string]bool, len(stores))
	for _, s := range stores {
		storeSet[s] = true
	}
	out := make([]models.Promotion, 0, len(promos))
	for _, p := range promos {
		if !p.IsActive(today) {
			continue
		}
		if len(storeSet) > 0 && !storeSet[p.StoreCode] {
			continue
		}
		if len(keywords) > 0 && !containsAny(p.ProductName, keywords) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func containsAny(name string, keywords []string) bool {
	name = strings.ToLower(name)
	for _, k := range keywords {
		if strings.Contains(name, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// SortByDiscount orders promotions by discount percent, highest first, with
// promotions lacking a percent at the end. Equal keys keep their order.
func SortByDiscount(promos []models.Promotion) {
	sort.SliceStable(promos, func(i, j int) bool {
		a, b := promos[i].DiscountPercent, promos[j].DiscountPercent
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
}

func cacheKey(stores []string, category string) string {
	s := make([]string, len(stores))
	copy(s, stores)
	sort.Strings(s)
	return "stores=" + strings.Join(s, ",") + "|category=" + strings.ToLower(strings.TrimSpace(category))
}
