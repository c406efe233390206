package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"supermarkt/planner"
	"supermarkt/utils"
)

// HandleSearchProducts lists products whose name contains q, cheapest first.
// GET /api/v1/products/search?q=melk&store=ah&limit=20
func (h *Handler) HandleSearchProducts(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return badRequest(c, "Query parameter 'q' is required")
	}
	store := strings.ToLower(strings.TrimSpace(c.Query("store")))
	limit := utils.ParseLimit(c.Query("limit"), 20, 100)

	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		products, err := repo.SearchProducts(ctx, query, store, limit)
		if err != nil {
			return fail(c, err, "Failed to search products")
		}
		return c.JSON(fiber.Map{"success": true, "data": products})
	})
}

// HandleComparePrices returns the cheapest match per store.
// GET /api/v1/products/compare?product=halfvolle%20melk
func (h *Handler) HandleComparePrices(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("product"))
	if name == "" {
		return badRequest(c, "Query parameter 'product' is required")
	}

	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		products, err := repo.ComparePrices(ctx, name)
		if err != nil {
			return fail(c, err, "Failed to compare prices")
		}
		return c.JSON(fiber.Map{"success": true, "data": products})
	})
}

// HandleProductHistory returns the recent price samples of one product.
// GET /api/v1/products/:id/history
func (h *Handler) HandleProductHistory(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "Invalid product id")
	}

	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		product, err := repo.ProductByID(ctx, id)
		if err != nil {
			return fail(c, err, "Failed to load product")
		}
		if product == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		history, err := repo.PriceHistory(ctx, id, h.opts.DetectorWindowDays)
		if err != nil {
			return fail(c, err, "Failed to load price history")
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"product": product, "history": history}})
	})
}

// OptimizeRequest is the body of the shopping-list optimizer.
type OptimizeRequest struct {
	Products []string `json:"products"`
	Stores   []string `json:"stores"`
}

// HandleOptimizeShoppingList resolves a free-text list to the cheapest products.
// POST /api/v1/shopping-list/optimize
func (h *Handler) HandleOptimizeShoppingList(c *fiber.Ctx) error {
	var req OptimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Products) == 0 {
		return badRequest(c, "At least one product is required")
	}
	stores := utils.NormalizeList(req.Stores)

	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		list, err := planner.OptimizeShoppingList(ctx, repo, req.Products, stores)
		if err != nil {
			return fail(c, err, "Failed to optimize shopping list")
		}
		return c.JSON(fiber.Map{"success": true, "data": list})
	})
}

// HandleListSupermarkets lists the stores with product counts.
// GET /api/v1/supermarkets
func (h *Handler) HandleListSupermarkets(c *fiber.Ctx) error {
	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		markets, err := repo.Supermarkets(ctx)
		if err != nil {
			return fail(c, err, "Failed to list supermarkets")
		}
		return c.JSON(fiber.Map{"success": true, "data": markets})
	})
}
