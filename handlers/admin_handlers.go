package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"supermarkt/pricedrop"
)

// HandleDetectDrops runs the price-drop detector and returns its summary.
// POST /api/v1/admin/detect-drops
func (h *Handler) HandleDetectDrops(c *fiber.Ctx) error {
	operator, _ := c.Locals("userID").(string)

	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		d := pricedrop.New(repo, pricedrop.Config{WindowDays: h.opts.DetectorWindowDays})
		if h.opts.Cache != nil {
			d.WithInvalidator(h.opts.Cache)
		}
		res, err := d.Run(ctx)
		if err != nil {
			return fail(c, err, "Price drop detection failed")
		}
		log.Printf("Price drop detection %s triggered by %s", res.RunID, operator)
		return c.JSON(fiber.Map{"success": true, "data": res, "summary": res.Summary()})
	})
}
