package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"supermarkt/catalog"
	"supermarkt/models"
	"supermarkt/planner"
	"supermarkt/pricedrop"
)

// Repository is the storage a single request works with.
type Repository interface {
	planner.Storage
	pricedrop.Storage

	Ping(ctx context.Context) error
	SearchProducts(ctx context.Context, query, store string, limit int) ([]models.Product, error)
	ComparePrices(ctx context.Context, name string) ([]models.Product, error)
	ProductByID(ctx context.Context, id int64) (*models.Product, error)
	Supermarkets(ctx context.Context) ([]models.Supermarket, error)
	SearchRecipes(ctx context.Context, query, category string, limit int) ([]models.Recipe, error)
	DeletePromotion(ctx context.Context, id int64) (bool, error)
}

// OpenFunc hands out a Repository bound to one pooled connection and the
// func that gives the connection back.
type OpenFunc func(ctx context.Context) (Repository, func(), error)

// PromotionCache is the optional catalog cache, flushed after detection runs.
type PromotionCache interface {
	catalog.Cache
	pricedrop.Invalidator
}

// Options configures a Handler. Zero values switch the feature off.
type Options struct {
	Cache                PromotionCache
	Narrator             planner.Narrator
	JWTSecret            []byte
	OperatorUsername     string
	OperatorPasswordHash string
	DetectorWindowDays   int
}

// Handler serves the HTTP API.
type Handler struct {
	open OpenFunc
	opts Options
}

func NewHandler(open OpenFunc, opts Options) *Handler {
	return &Handler{open: open, opts: opts}
}

// withRepo runs fn with a repository and always releases the connection.
func (h *Handler) withRepo(c *fiber.Ctx, fn func(ctx context.Context, repo Repository) error) error {
	ctx := c.UserContext()
	repo, release, err := h.open(ctx)
	if err != nil {
		return fail(c, err, "Failed to reach the database")
	}
	defer release()
	return fn(ctx, repo)
}

// fail maps err to the JSON error envelope.
func fail(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, models.ErrStorageUnavailable):
		log.Printf("%s: %v", message, err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "Storage unavailable, try again later"})
	case errors.Is(err, models.ErrInvalidRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	default:
		log.Printf("%s: %v", message, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": message})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": message})
}

// HandleHealth pings the database.
// GET /api/v1/health
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return h.withRepo(c, func(ctx context.Context, repo Repository) error {
		if err := repo.Ping(ctx); err != nil {
			return fail(c, err, "Database ping failed")
		}
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})
}
