package planner

import (
	"strings"

	"supermarkt/models"
)

// MatchIngredients links recipe ingredients to promotions. An ingredient matches
// a promotion when any of its lower-cased, whitespace-separated tokens is a
// substring of the lower-cased product name.
//
// Promotions are walked in the given order and, for each, ingredients are
// scanned until the first match. A promotion therefore contributes at most one
// match while an ingredient can match several promotions. The result is greedy
// and order dependent.
func MatchIngredients(ingredients []models.Ingredient, promos []models.Promotion) []models.PromotionMatch {
	tokens := make([][]string, len(ingredients))
	for i, ing := range ingredients {
		tokens[i] = strings.Fields(strings.ToLower(ing.Name))
	}

	matches := make([]models.PromotionMatch, 0)
	for _, p := range promos {
		product := strings.ToLower(p.ProductName)
		for i, ing := range ingredients {
			if anyTokenIn(tokens[i], product) {
				matches = append(matches, models.PromotionMatch{Ingredient: ing.Name, Promotion: p})
				break
			}
		}
	}
	return matches
}

func anyTokenIn(tokens []string, s string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// TopDistinctMatches returns the first n matches with distinct product names.
func TopDistinctMatches(matches []models.PromotionMatch, n int) []models.PromotionMatch {
	seen := make(map[string]bool, n)
	out := make([]models.PromotionMatch, 0, n)
	for _, m := range matches {
		if len(out) == n {
			break
		}
		if seen[m.Promotion.ProductName] {
			continue
		}
		seen[m.Promotion.ProductName] = true
		out = append(out, m)
	}
	return out
}
