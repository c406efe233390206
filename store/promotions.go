package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"supermarkt/models"
)

// ActivePromotions returns promotions that are open-ended or end today or
// later, limited to stores and to product names containing any keyword.
// Empty filters match everything.
func (s *Store) ActivePromotions(ctx context.Context, stores []string, keywords []string) ([]models.Promotion, error) {
	const q = `
SELECT id, supermarket_code, product_name, original_price, discount_price,
       discount_percent, promo_type, start_date, end_date
FROM promotions
WHERE (end_date IS NULL OR end_date >= CURRENT_DATE)
  AND (cardinality($1::text[]) = 0 OR supermarket_code = ANY($1))
  AND (cardinality($2::text[]) = 0 OR product_name ILIKE ANY($2))
ORDER BY discount_percent DESC NULLS LAST, id`
	rows, err := s.db.Query(ctx, q, textArray(stores), likePatterns(keywords))
	if err != nil {
		return nil, fmt.Errorf("active promotions: %w", err)
	}
	defer rows.Close()

	promos := make([]models.Promotion, 0)
	for rows.Next() {
		var (
			p        models.Promotion
			original decimal.NullDecimal
			percent  sql.NullInt32
			end      sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.StoreCode, &p.ProductName, &original, &p.DiscountPrice,
			&percent, &p.PromoType, &p.StartDate, &end); err != nil {
			return nil, fmt.Errorf("active promotions: %w", err)
		}
		if original.Valid {
			v := original.Decimal
			p.OriginalPrice = &v
		}
		if percent.Valid {
			v := int(percent.Int32)
			p.DiscountPercent = &v
		}
		if end.Valid {
			v := models.Day(end.Time)
			p.EndDate = &v
		}
		p.StartDate = models.Day(p.StartDate)
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("active promotions: %w", err)
	}
	return promos, nil
}

// DeletePromotions removes every promotion of the given type.
func (s *Store) DeletePromotions(ctx context.Context, promoType string) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM promotions WHERE promo_type = $1`, promoType)
	if err != nil {
		return 0, fmt.Errorf("delete %s promotions: %w", promoType, err)
	}
	return tag.RowsAffected(), nil
}

// InsertPromotion stores p unless a promotion for the same store, product and
// start date exists. It reports whether a row was written.
func (s *Store) InsertPromotion(ctx context.Context, p models.Promotion) (bool, error) {
	const q = `
INSERT INTO promotions (supermarket_code, product_name, original_price, discount_price,
                        discount_percent, promo_type, start_date, end_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (supermarket_code, product_name, start_date) DO NOTHING`

	var original decimal.NullDecimal
	if p.OriginalPrice != nil {
		original = decimal.NewNullDecimal(*p.OriginalPrice)
	}
	var percent sql.NullInt32
	if p.DiscountPercent != nil {
		percent = sql.NullInt32{Int32: int32(*p.DiscountPercent), Valid: true}
	}
	var end sql.NullTime
	if p.EndDate != nil {
		end = sql.NullTime{Time: *p.EndDate, Valid: true}
	}

	tag, err := s.db.Exec(ctx, q, p.StoreCode, p.ProductName, original, p.DiscountPrice,
		percent, p.PromoType, p.StartDate, end)
	if err != nil {
		return false, fmt.Errorf("insert promotion %s/%s: %w", p.StoreCode, p.ProductName, err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeletePromotion removes one promotion by id and reports whether it existed.
func (s *Store) DeletePromotion(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete promotion %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

// CleanupPromotions removes promotions that started more than days ago.
func (s *Store) CleanupPromotions(ctx context.Context, days int) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM promotions WHERE start_date < CURRENT_DATE - $1::int`, days)
	if err != nil {
		return 0, fmt.Errorf("cleanup promotions: %w", err)
	}
	return tag.RowsAffected(), nil
}
