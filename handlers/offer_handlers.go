package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"supermarkt/models"
	"supermarkt/pricedrop"
)

const dateLayout = "2006-01-02"

// OfferCreateRequest is a promotion entered by an operator, e.g. from a folder.
type OfferCreateRequest struct {
	Store           string           `json:"store"`
	ProductName     string           `json:"product_name"`
	OriginalPrice   *decimal.Decimal `json:"original_price"`
	DiscountPrice   decimal.Decimal  `json:"discount_price"`
	DiscountPercent *int             `json:"discount_percent"`
	PromoType       string           `json:"promo_type"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
}

func (r OfferCreateRequest) toPromotion(today time.Time) (models.Promotion, error) {
	promoType := strings.TrimSpace(r.PromoType)
	if promoType == "" {
		promoType = "bonus"
	}
	if promoType == models.PromoTypePriceDrop {
		return models.Promotion{}, errors.New("promo_type price_drop is reserved for the detector")
	}
	if !r.DiscountPrice.IsPositive() {
		return models.Promotion{}, errors.New("discount_price must be positive")
	}

	start := today
	if r.StartDate != "" {
		t, err := time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return models.Promotion{}, errors.New("start_date must be YYYY-MM-DD")
		}
		start = t
	}
	var end *time.Time
	if r.EndDate != "" {
		t, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return models.Promotion{}, errors.New("end_date must be YYYY-MM-DD")
		}
		end = &t
	}

	percent := r.DiscountPercent
	if percent == nil && r.OriginalPrice != nil && r.OriginalPrice.IsPositive() {
		p := pricedrop.DropPercent(*r.OriginalPrice, r.DiscountPrice)
		percent = &p
	}
	return models.NewPromotion(strings.ToLower(strings.TrimSpace(r.Store)), strings.TrimSpace(r.ProductName),
		r.OriginalPrice, r.DiscountPrice, percent, promoType, start, end)
}

// HandleCreateOffer stores a manually entered promotion.
// POST /api/v1/admin/promotions
func (h *Handler) HandleCreateOffer(c *fiber.Ctx) error {
	var req OfferCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	promo, err := req.toPromotion(time.Now())
	if err != nil {
		return badRequest(c, err.Error())
	}

	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		inserted, err := repo.InsertPromotion(ctx, promo)
		if err != nil {
			return fail(c, err, "Failed to create promotion")
		}
		if !inserted {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Promotion already exists for this product and start date"})
		}
		h.invalidate(ctx)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Promotion created successfully", "data": promo})
	})
}

// HandleDeleteOffer removes one promotion.
// DELETE /api/v1/admin/promotions/:id
func (h *Handler) HandleDeleteOffer(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid promotion id")
	}

	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		deleted, err := repo.DeletePromotion(ctx, id)
		if err != nil {
			return fail(c, err, "Failed to delete promotion")
		}
		if !deleted {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Promotion not found"})
		}
		h.invalidate(ctx)
		return c.JSON(fiber.Map{"success": true, "message": "Promotion deleted successfully"})
	})
}

func (h *Handler) invalidate(ctx context.Context) {
	if h.opts.Cache == nil {
		return
	}
	if err := h.opts.Cache.Invalidate(ctx); err != nil {
		log.Printf("Promotion cache invalidation failed: %v", err)
	}
}
