package routes

import (
	"github.com/gofiber/fiber/v2"

	"supermarkt/handlers"
	"supermarkt/middleware"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler, jwtSecret []byte) {
	api := app.Group("/api/v1")

	api.Get("/health", h.HandleHealth)

	// --- Prices ---
	products := api.Group("/products")
	products.Get("/search", h.HandleSearchProducts)
	products.Get("/compare", h.HandleComparePrices)
	products.Get("/:id/history", h.HandleProductHistory)

	api.Get("/supermarkets", h.HandleListSupermarkets)
	api.Post("/shopping-list/optimize", h.HandleOptimizeShoppingList)

	// --- Promotions & recipes ---
	api.Get("/promotions", h.HandleListPromotions)
	api.Get("/promotions/categories", h.HandleListCategories)
	api.Get("/recipes", h.HandleSearchRecipes)

	// --- Planning ---
	api.Post("/plan", h.HandleCreatePlan)

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", h.HandleLogin)

	// --- Operator Routes ---
	admin := api.Group("/admin", middleware.JWT(jwtSecret), middleware.OperatorRequired)
	admin.Post("/detect-drops", h.HandleDetectDrops)
	admin.Post("/promotions", h.HandleCreateOffer)
	admin.Delete("/promotions/:id", h.HandleDeleteOffer)
}
