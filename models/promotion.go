package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PromoTypePriceDrop marks promotions written by the drop detector. Rows of this
// type are fully replaced on every detector run.
const PromoTypePriceDrop = "price_drop"

// Detector plausibility band for discount percentages, inclusive.
const (
	MinDropPercent = 5
	MaxDropPercent = 80
)

// DefaultPromotionValidity is how long a detected price drop stays active.
const DefaultPromotionValidity = 7 * 24 * time.Hour

// Promotion is a currently or formerly valid discount, from the detector or an offer feed.
type Promotion struct {
	ID              int64            `json:"id,omitempty"`
	StoreCode       string           `json:"store_code"`
	ProductName     string           `json:"product_name"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPrice   decimal.Decimal  `json:"discount_price"`
	DiscountPercent *int             `json:"discount_percent,omitempty"`
	PromoType       string           `json:"promo_type"`
	StartDate       time.Time        `json:"start_date"`
	EndDate         *time.Time       `json:"end_date,omitempty"`
}

// NewPromotion validates the invariants every promotion must hold:
// discount below the original price when both are known, and an end date not
// before the start date.
func NewPromotion(store, product string, original *decimal.Decimal, discount decimal.Decimal, percent *int, promoType string, start time.Time, end *time.Time) (Promotion, error) {
	if store == "" || product == "" {
		return Promotion{}, fmt.Errorf("%w: store and product name are required", ErrInvalidPromotion)
	}
	if original != nil && !discount.LessThan(*original) {
		return Promotion{}, fmt.Errorf("%w: discount price %s is not below original %s", ErrInvalidPromotion, discount, original)
	}
	start = Day(start)
	if end != nil {
		e := Day(*end)
		if e.Before(start) {
			return Promotion{}, fmt.Errorf("%w: end date %s before start date %s", ErrInvalidPromotion, e.Format("2006-01-02"), start.Format("2006-01-02"))
		}
		end = &e
	}
	return Promotion{
		StoreCode:       store,
		ProductName:     product,
		OriginalPrice:   original,
		DiscountPrice:   discount,
		DiscountPercent: percent,
		PromoType:       promoType,
		StartDate:       start,
		EndDate:         end,
	}, nil
}

// NewDetectedPromotion builds a price_drop promotion valid for seven days from
// today. Percentages outside [MinDropPercent, MaxDropPercent] are rejected.
func NewDetectedPromotion(store, product string, original, current decimal.Decimal, percent int, today time.Time) (Promotion, error) {
	if percent < MinDropPercent || percent > MaxDropPercent {
		return Promotion{}, fmt.Errorf("%w: discount %d%% outside [%d, %d]", ErrInvalidPromotion, percent, MinDropPercent, MaxDropPercent)
	}
	start := Day(today)
	end := start.Add(DefaultPromotionValidity)
	return NewPromotion(store, product, &original, current, &percent, PromoTypePriceDrop, start, &end)
}

// IsActive reports whether the promotion is open-ended or ends today or later.
func (p Promotion) IsActive(today time.Time) bool {
	return p.EndDate == nil || !p.EndDate.Before(Day(today))
}

// Percent returns the discount percentage, or def when the promotion carries none.
func (p Promotion) Percent(def int) int {
	if p.DiscountPercent == nil {
		return def
	}
	return *p.DiscountPercent
}
