package feed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"supermarkt/models"
)

//go:embed recipes.json
var recipesJSON []byte

// SeedRecipes returns the built-in Dutch recipe set.
func SeedRecipes() ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := json.Unmarshal(recipesJSON, &recipes); err != nil {
		return nil, fmt.Errorf("decode built-in recipes: %w", err)
	}
	for i := range recipes {
		recipes[i].Source = models.RecipeSourceOwn
	}
	return recipes, nil
}
