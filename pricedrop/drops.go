package pricedrop

import (
	"sort"

	"github.com/shopspring/decimal"

	"supermarkt/models"
)

// DefaultLimit caps the number of drops a single run emits.
const DefaultLimit = 500

var hundred = decimal.NewFromInt(100)

// Series is one product's current price together with its recorded history.
// History may be in any order.
type Series struct {
	Product models.CurrentPrice
	History []models.PricePoint
}

// Drop is a verified decline between a product's predecessor sample and its current price.
type Drop struct {
	ProductID int64
	StoreCode string
	Name      string
	Previous  decimal.Decimal
	Current   decimal.Decimal
	Percent   int
}

// FindDrops pairs every product's current price with the most recent sample
// strictly older than its newest sample and keeps pairs whose rounded decline
// lies in [MinDropPercent, MaxDropPercent]. Results are sorted by percent,
// highest first, ties in input order, and capped at limit.
func FindDrops(series []Series, limit int) []Drop {
	drops := make([]Drop, 0)
	for _, s := range series {
		prev, ok := predecessor(s.History)
		if !ok {
			continue
		}
		cur := s.Product.Price
		if !prev.IsPositive() || !cur.LessThan(prev) {
			continue
		}
		pct := DropPercent(prev, cur)
		if pct < models.MinDropPercent || pct > models.MaxDropPercent {
			continue
		}
		drops = append(drops, Drop{
			ProductID: s.Product.ProductID,
			StoreCode: s.Product.StoreCode,
			Name:      s.Product.Name,
			Previous:  prev,
			Current:   cur,
			Percent:   pct,
		})
	}

	sort.SliceStable(drops, func(i, j int) bool {
		return drops[i].Percent > drops[j].Percent
	})
	if limit > 0 && len(drops) > limit {
		drops = drops[:limit]
	}
	return drops
}

// DropPercent is round((prev - cur) / prev * 100), halves away from zero.
func DropPercent(prev, cur decimal.Decimal) int {
	return int(prev.Sub(cur).Div(prev).Mul(hundred).Round(0).IntPart())
}

// predecessor returns the price of the latest sample recorded strictly before
// the newest sample.
func predecessor(history []models.PricePoint) (decimal.Decimal, bool) {
	if len(history) < 2 {
		return decimal.Zero, false
	}
	newest := history[0].RecordedAt
	for _, p := range history[1:] {
		if p.RecordedAt.After(newest) {
			newest = p.RecordedAt
		}
	}

	var (
		found bool
		best  models.PricePoint
	)
	for _, p := range history {
		if !p.RecordedAt.Before(newest) {
			continue
		}
		if !found || p.RecordedAt.After(best.RecordedAt) {
			best = p
			found = true
		}
	}
	return best.Price, found
}
