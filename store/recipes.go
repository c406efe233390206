package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"

	"supermarkt/models"
)

const recipeColumns = `id, name, category, prep_minutes, servings, ingredients, steps, tags, source`

func collectRecipes(rows pgx.Rows) ([]models.Recipe, error) {
	defer rows.Close()
	recipes := make([]models.Recipe, 0)
	for rows.Next() {
		var r models.Recipe
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.PrepMinutes, &r.Servings,
			&r.Ingredients, &r.Steps, &r.Tags, &r.Source); err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// Recipes returns recipes in any of categories carrying dietTag. Empty filters
// match everything. Own recipes come first, then by id.
func (s *Store) Recipes(ctx context.Context, categories []string, dietTag string) ([]models.Recipe, error) {
	const q = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE (cardinality($1::text[]) = 0 OR category = ANY($1))
  AND ($2 = '' OR $2 = ANY(tags))
ORDER BY CASE WHEN source = $3 THEN 0 ELSE 1 END, id`
	rows, err := s.db.Query(ctx, q, textArray(categories), dietTag, models.RecipeSourceOwn)
	if err != nil {
		return nil, fmt.Errorf("recipes: %w", err)
	}
	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, fmt.Errorf("recipes: %w", err)
	}
	return recipes, nil
}

// SearchRecipes matches query against name, ingredients and tags.
func (s *Store) SearchRecipes(ctx context.Context, query, category string, limit int) ([]models.Recipe, error) {
	const q = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE ($1 = '%%' OR name ILIKE $1 OR ingredients::text ILIKE $1 OR array_to_string(tags, ' ') ILIKE $1)
  AND ($2 = '' OR category = $2)
ORDER BY CASE WHEN source = $4 THEN 0 ELSE 1 END, id
LIMIT $3`
	rows, err := s.db.Query(ctx, q, likePattern(query), category, limit, models.RecipeSourceOwn)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return recipes, nil
}

// ReplaceRecipes swaps the own recipe set for recipes in one transaction.
func (s *Store) ReplaceRecipes(ctx context.Context, recipes []models.Recipe) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %w", models.ErrStorageUnavailable, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recipes WHERE source = $1`, models.RecipeSourceOwn); err != nil {
		return 0, fmt.Errorf("clear recipes: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range recipes {
		batch.Queue(`
INSERT INTO recipes (name, category, prep_minutes, servings, ingredients, steps, tags, source)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			r.Name, r.Category, r.PrepMinutes, r.Servings, r.Ingredients, textArray(r.Steps), textArray(r.Tags), models.RecipeSourceOwn)
	}
	br := tx.SendBatch(ctx, batch)
	for _, r := range recipes {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("insert recipe %q: %w", r.Name, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("insert recipes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit recipes: %w", err)
	}
	return len(recipes), nil
}
