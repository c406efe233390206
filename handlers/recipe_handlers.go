package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"supermarkt/utils"
)

// HandleSearchRecipes searches recipe names, ingredients and tags.
// GET /api/v1/recipes?q=kip&category=rijst&limit=10
func (h *Handler) HandleSearchRecipes(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	limit := utils.ParseLimit(c.Query("limit"), 10, 50)

	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		recipes, err := repo.SearchRecipes(ctx, query, category, limit)
		if err != nil {
			return fail(c, err, "Failed to search recipes")
		}
		return c.JSON(fiber.Map{"success": true, "data": recipes})
	})
}
