package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"supermarkt/catalog"
	"supermarkt/utils"
)

// HandleListPromotions lists active promotions, best discount first.
// GET /api/v1/promotions?store=ah,jumbo&category=zuivel&limit=50
func (h *Handler) HandleListPromotions(c *fiber.Ctx) error {
	stores := utils.NormalizeList(utils.SplitList(c.Query("store")))
	category := c.Query("category")
	limit := utils.ParseLimit(c.Query("limit"), 50, 500)

	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		promos, err := catalog.New(repo, h.cache()).Active(ctx, stores, category)
		if err != nil {
			return fail(c, err, "Failed to retrieve promotions")
		}
		total := len(promos)
		if total > limit {
			promos = promos[:limit]
		}
		return c.JSON(fiber.Map{"success": true, "data": promos, "total": total})
	})
}

// HandleListCategories lists the category labels with a keyword expansion.
// GET /api/v1/promotions/categories
func (h *Handler) HandleListCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": catalog.Categories()})
}

// cache returns the catalog cache or a nil interface when none is configured.
func (h *Handler) cache() catalog.Cache {
	if h.opts.Cache == nil {
		return nil
	}
	return h.opts.Cache
}
