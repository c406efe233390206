package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromotionMatch links a recipe ingredient to a promotion that plausibly sells it.
type PromotionMatch struct {
	Ingredient string    `json:"ingredient"`
	Promotion  Promotion `json:"promotion"`
}

// DayPlan is one day of the week plan.
type DayPlan struct {
	Day     int              `json:"day"`
	Recipe  Recipe           `json:"recipe"`
	Score   int              `json:"score"`
	Matches []PromotionMatch `json:"matches"`
}

// BasicItem is a staple and the product it resolved to, if any.
type BasicItem struct {
	Staple  string            `json:"staple"`
	Product *ShoppingListItem `json:"product,omitempty"`
}

// BudgetCheck compares a plan total with the caller's budget.
// Difference is budget minus total; negative means over budget.
type BudgetCheck struct {
	Budget       decimal.Decimal `json:"budget"`
	Difference   decimal.Decimal `json:"difference"`
	WithinBudget bool            `json:"within_budget"`
}

// Surplus is the money left when the plan is within budget.
func (b BudgetCheck) Surplus() decimal.Decimal {
	if !b.WithinBudget {
		return decimal.Zero
	}
	return b.Difference
}

// Deficit is the amount over budget.
func (b BudgetCheck) Deficit() decimal.Decimal {
	if b.WithinBudget {
		return decimal.Zero
	}
	return b.Difference.Neg()
}

// Plan is the full planning report for one request.
type Plan struct {
	ID           string       `json:"id"`
	GeneratedAt  time.Time    `json:"generated_at"`
	Days         int          `json:"days"`
	Persons      int          `json:"persons"`
	Stores       []string     `json:"stores"`
	WeekPlan     []DayPlan    `json:"week_plan"`
	Basics       []BasicItem  `json:"basics,omitempty"`
	ShoppingList ShoppingList `json:"shopping_list"`
	Budget       *BudgetCheck `json:"budget,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}
