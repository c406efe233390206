package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"

	"supermarkt/models"
)

// SyncStats counts what one feed import wrote.
type SyncStats struct {
	Supermarkets int
	Products     int
	Samples      int
}

const upsertSupermarket = `
INSERT INTO supermarkets (code, name, icon, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, icon = EXCLUDED.icon, updated_at = now()`

// upsertProductSample refreshes the product row and records today's price.
// A second import on the same day overwrites that day's sample.
const upsertProductSample = `
WITH p AS (
    INSERT INTO products (supermarket_code, name, price, unit, link, updated_at)
    VALUES ($1, $2, $3, $4, $5, now())
    ON CONFLICT (supermarket_code, name) DO UPDATE
        SET price = EXCLUDED.price, unit = EXCLUDED.unit, link = EXCLUDED.link, updated_at = now()
    RETURNING id, price
)
INSERT INTO price_history (product_id, price, recorded_at, recorded_on)
SELECT id, price, now(), CURRENT_DATE FROM p
ON CONFLICT (product_id, recorded_on) DO UPDATE SET price = EXCLUDED.price, recorded_at = now()`

// SyncFeed writes one full feed snapshot, one store per transaction. Products
// with a non-positive price or a name already seen in the same store are skipped.
func (s *Store) SyncFeed(ctx context.Context, catalogs []models.StoreCatalog) (SyncStats, error) {
	var stats SyncStats
	for _, sc := range catalogs {
		n, err := s.syncStore(ctx, sc)
		if err != nil {
			return stats, err
		}
		stats.Supermarkets++
		stats.Products += n
		stats.Samples += n
	}
	return stats, nil
}

func (s *Store) syncStore(ctx context.Context, sc models.StoreCatalog) (int, error) {
	code := sc.Supermarket.Code
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %w", models.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, upsertSupermarket, code, sc.Supermarket.Name, sc.Supermarket.Icon); err != nil {
		return 0, fmt.Errorf("upsert supermarket %s: %w", code, err)
	}

	products := dedupeProducts(sc.Products)
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(upsertProductSample, code, p.Name, p.Price, p.Unit, p.Link)
	}
	br := tx.SendBatch(ctx, batch)
	for _, p := range products {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("upsert product %s/%s: %w", code, p.Name, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("upsert products %s: %w", code, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit %s: %w", code, err)
	}
	return len(products), nil
}

func dedupeProducts(products []models.Product) []models.Product {
	seen := make(map[string]bool, len(products))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Name == "" || !p.Price.IsPositive() || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out
}
