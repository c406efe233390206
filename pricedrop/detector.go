package pricedrop

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"supermarkt/models"
)

// Storage is what a detection run reads from and writes to.
type Storage interface {
	CurrentPrices(ctx context.Context) ([]models.CurrentPrice, error)
	PriceHistory(ctx context.Context, productID int64, windowDays int) ([]models.PricePoint, error)
	DeletePromotions(ctx context.Context, promoType string) (int64, error)
	InsertPromotion(ctx context.Context, p models.Promotion) (bool, error)
}

// Invalidator is notified after the promotion table changed.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Config struct {
	WindowDays int
	Limit      int
}

// Detector replaces all price_drop promotions with a fresh set on every Run.
type Detector struct {
	store       Storage
	cfg         Config
	invalidator Invalidator
	now         func() time.Time
}

func New(store Storage, cfg Config) *Detector {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	return &Detector{store: store, cfg: cfg, now: time.Now}
}

// WithInvalidator registers a cache to flush once new promotions are written.
func (d *Detector) WithInvalidator(inv Invalidator) *Detector {
	d.invalidator = inv
	return d
}

// Result describes one detection run.
type Result struct {
	RunID    string             `json:"run_id"`
	Found    int                `json:"found"`
	Deleted  int64              `json:"deleted"`
	Inserted int                `json:"inserted"`
	Ignored  int                `json:"ignored"`
	Failed   int                `json:"failed"`
	Top      []models.Promotion `json:"top"`
}

// Run reads all current prices and their history, then deletes the previous
// price_drop promotions and inserts the new ones. Read failures abort the run
// before anything is deleted. Individual insert failures are logged and skipped.
func (d *Detector) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}

	current, err := d.store.CurrentPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load current prices: %w", err)
	}

	series := make([]Series, 0, len(current))
	for _, cp := range current {
		hist, err := d.store.PriceHistory(ctx, cp.ProductID, d.cfg.WindowDays)
		if err != nil {
			return nil, fmt.Errorf("load price history for product %d: %w", cp.ProductID, err)
		}
		if len(hist) < 2 {
			continue
		}
		series = append(series, Series{Product: cp, History: hist})
	}

	drops := FindDrops(series, d.cfg.Limit)
	res.Found = len(drops)
	log.Printf("pricedrop[%s]: %d products scanned, %d drops found", res.RunID, len(current), res.Found)

	res.Deleted, err = d.store.DeletePromotions(ctx, models.PromoTypePriceDrop)
	if err != nil {
		return nil, fmt.Errorf("delete previous price drops: %w", err)
	}

	today := d.now()
	for _, drop := range drops {
		promo, err := models.NewDetectedPromotion(drop.StoreCode, drop.Name, drop.Previous, drop.Current, drop.Percent, today)
		if err != nil {
			log.Printf("pricedrop[%s]: skipping %s/%s: %v", res.RunID, drop.StoreCode, drop.Name, err)
			continue
		}
		inserted, err := d.store.InsertPromotion(ctx, promo)
		if err != nil {
			res.Failed++
			log.Printf("pricedrop[%s]: error inserting %s/%s: %v", res.RunID, drop.StoreCode, drop.Name, err)
			continue
		}
		if !inserted {
			res.Ignored++
			continue
		}
		res.Inserted++
		if len(res.Top) < 10 {
			res.Top = append(res.Top, promo)
		}
	}

	if d.invalidator != nil {
		if err := d.invalidator.Invalidate(ctx); err != nil {
			log.Printf("pricedrop[%s]: cache invalidation failed: %v", res.RunID, err)
		}
	}

	log.Printf("pricedrop[%s]: inserted %d, ignored %d, failed %d", res.RunID, res.Inserted, res.Ignored, res.Failed)
	return res, nil
}

// Summary renders the run as the job's textual output.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found: %d price drops\n", r.Found)
	fmt.Fprintf(&b, "Inserted: %d promotions\n", r.Inserted)
	if r.Failed > 0 {
		fmt.Fprintf(&b, "Failed: %d\n", r.Failed)
	}
	if len(r.Top) == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "\nTop %d price drops:\n", len(r.Top))
	for _, p := range r.Top {
		was := ""
		if p.OriginalPrice != nil {
			was = fmt.Sprintf("was EUR %s, ", p.OriginalPrice.StringFixed(2))
		}
		fmt.Fprintf(&b, "  %s: %s - %snow EUR %s (%d%% off)\n",
			p.StoreCode, p.ProductName, was, p.DiscountPrice.StringFixed(2), p.Percent(0))
	}
	return b.String()
}
