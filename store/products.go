package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"

	"supermarkt/models"
)

const productColumns = `id, supermarket_code, name, price, unit, link, updated_at`

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.StoreCode, &p.Name, &p.Price, &p.Unit, &p.Link, &p.UpdatedAt)
	return p, err
}

func collectProducts(rows pgx.Rows) ([]models.Product, error) {
	defer rows.Close()
	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CheapestProduct returns the lowest priced product whose name contains name,
// case-insensitive, within stores. Empty stores means any store. It returns
// nil, nil when nothing matches.
func (s *Store) CheapestProduct(ctx context.Context, name string, stores []string) (*models.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE name ILIKE $1
  AND price > 0
  AND (cardinality($2::text[]) = 0 OR supermarket_code = ANY($2))
ORDER BY price, id
LIMIT 1`
	p, err := scanProduct(s.db.QueryRow(ctx, q, likePattern(name), textArray(stores)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("cheapest product %q: %w", name, err)
	}
	return &p, nil
}

// SearchProducts lists products by name substring, cheapest first.
func (s *Store) SearchProducts(ctx context.Context, query, store string, limit int) ([]models.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE name ILIKE $1
  AND price > 0
  AND ($2 = '' OR supermarket_code = $2)
ORDER BY price, id
LIMIT $3`
	rows, err := s.db.Query(ctx, q, likePattern(query), strings.ToLower(store), limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// ComparePrices returns the cheapest match per store, cheapest store first.
func (s *Store) ComparePrices(ctx context.Context, name string) ([]models.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM (
    SELECT DISTINCT ON (supermarket_code) ` + productColumns + `
    FROM products
    WHERE name ILIKE $1 AND price > 0
    ORDER BY supermarket_code, price, id
) cheapest
ORDER BY price, supermarket_code`
	rows, err := s.db.Query(ctx, q, likePattern(name))
	if err != nil {
		return nil, fmt.Errorf("compare prices: %w", err)
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("compare prices: %w", err)
	}
	return products, nil
}

// ProductByID returns nil, nil for an unknown id.
func (s *Store) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("product %d: %w", id, err)
	}
	return &p, nil
}

// CurrentPrices lists every product with a positive price.
func (s *Store) CurrentPrices(ctx context.Context) ([]models.CurrentPrice, error) {
	rows, err := s.db.Query(ctx, `SELECT id, supermarket_code, name, price FROM products WHERE price > 0 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("current prices: %w", err)
	}
	defer rows.Close()

	var out []models.CurrentPrice
	for rows.Next() {
		var cp models.CurrentPrice
		if err := rows.Scan(&cp.ProductID, &cp.StoreCode, &cp.Name, &cp.Price); err != nil {
			return nil, fmt.Errorf("current prices: %w", err)
		}
		out = append(out, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("current prices: %w", err)
	}
	return out, nil
}

// PriceHistory returns the samples of one product recorded in the last
// windowDays days, oldest first. windowDays <= 0 returns everything.
func (s *Store) PriceHistory(ctx context.Context, productID int64, windowDays int) ([]models.PricePoint, error) {
	const q = `
SELECT product_id, price, recorded_at
FROM price_history
WHERE product_id = $1
  AND ($2 <= 0 OR recorded_at >= now() - make_interval(days => $2))
ORDER BY recorded_at, id`
	rows, err := s.db.Query(ctx, q, productID, windowDays)
	if err != nil {
		return nil, fmt.Errorf("price history %d: %w", productID, err)
	}
	defer rows.Close()

	history := make([]models.PricePoint, 0)
	for rows.Next() {
		var pp models.PricePoint
		if err := rows.Scan(&pp.ProductID, &pp.Price, &pp.RecordedAt); err != nil {
			return nil, fmt.Errorf("price history %d: %w", productID, err)
		}
		history = append(history, pp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("price history %d: %w", productID, err)
	}
	return history, nil
}

// Supermarkets lists the known stores with their product counts.
func (s *Store) Supermarkets(ctx context.Context) ([]models.Supermarket, error) {
	const q = `
SELECT s.code, s.name, s.icon, COUNT(p.id)
FROM supermarkets s
LEFT JOIN products p ON p.supermarket_code = s.code
GROUP BY s.code, s.name, s.icon
ORDER BY s.code`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("supermarkets: %w", err)
	}
	defer rows.Close()

	markets := make([]models.Supermarket, 0)
	for rows.Next() {
		var m models.Supermarket
		if err := rows.Scan(&m.Code, &m.Name, &m.Icon, &m.ProductCount); err != nil {
			return nil, fmt.Errorf("supermarkets: %w", err)
		}
		markets = append(markets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("supermarkets: %w", err)
	}
	return markets, nil
}
