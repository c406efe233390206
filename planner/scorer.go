package planner

import (
	"sort"

	"supermarkt/models"
)

// DefaultPromotionWeight is what a matched promotion without a discount percent adds to a score.
const DefaultPromotionWeight = 5

// Scored is a recipe with its promotion relevance.
type Scored struct {
	Recipe  models.Recipe
	Score   int
	Matches []models.PromotionMatch
}

// ScoreRecipe sums the discount percent of every promotion matched to the recipe.
func ScoreRecipe(recipe models.Recipe, promos []models.Promotion) Scored {
	matches := MatchIngredients(recipe.Ingredients, promos)
	score := 0
	for _, m := range matches {
		score += m.Promotion.Percent(DefaultPromotionWeight)
	}
	return Scored{Recipe: recipe, Score: score, Matches: matches}
}

// Rank scores all recipes and returns the best n, highest score first. Ties keep
// input order. Fewer than n recipes are all returned.
func Rank(recipes []models.Recipe, promos []models.Promotion, n int) []Scored {
	scored := make([]Scored, len(recipes))
	for i, r := range recipes {
		scored[i] = ScoreRecipe(r, promos)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if n >= 0 && len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
