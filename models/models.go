package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Core Models ---

// Supermarket is a retailer known to the price feed.
type Supermarket struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	ProductCount int    `json:"product_count"`
}

// Product is the latest known price of one article at one store.
// (store_code, name) is unique; only the sync job writes products.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	StoreCode string          `json:"store_code"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	Link      string          `json:"link"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PricePoint is one immutable sample of a product price.
type PricePoint struct {
	ProductID  int64           `json:"product_id"`
	Price      decimal.Decimal `json:"price"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// CurrentPrice is the slim row the drop detector iterates over.
type CurrentPrice struct {
	ProductID int64           `json:"product_id"`
	StoreCode string          `json:"store_code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// Ingredient is one line of a recipe. Quantity is free text ("400g", "2 tenen").
type Ingredient struct {
	Name     string `json:"naam"`
	Quantity string `json:"hoeveelheid"`
}

// RecipeSourceOwn marks the built-in recipe set; those recipes are listed first.
const RecipeSourceOwn = "own"

// Recipe is read-only input to the planner.
type Recipe struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	PrepMinutes int          `json:"prep_minutes"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	Tags        []string     `json:"tags"`
	Source      string       `json:"source"`
}

// ShoppingListItem is a resolved line of a plan's shopping list. It is never persisted.
type ShoppingListItem struct {
	ProductName  string          `json:"product_name"`
	Price        decimal.Decimal `json:"price"`
	StoreCode    string          `json:"store_code"`
	PromoType    *string         `json:"promo_type,omitempty"`
	IsDiscounted bool            `json:"is_discounted"`
}

// StoreGroup is the part of a shopping list bought at one store.
type StoreGroup struct {
	StoreCode string             `json:"store_code"`
	Items     []ShoppingListItem `json:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
}

// ShoppingList groups items per store. Total is always the sum of the subtotals.
type ShoppingList struct {
	PerStore []StoreGroup    `json:"per_store"`
	Total    decimal.Decimal `json:"total"`
	NotFound []string        `json:"not_found"`
}

// Day returns midnight UTC of t's calendar date, the representation used for promotion dates.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StoreCatalog is one supermarket and its full product list as delivered by the price feed.
type StoreCatalog struct {
	Supermarket Supermarket
	Products    []Product
}
