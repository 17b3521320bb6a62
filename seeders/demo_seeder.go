package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remplr/internal/repositories"
)

// seedIngredients возвращает id каждого демо-ингредиента по имени,
// включая вставленные прошлым запуском.
func seedIngredients(ctx context.Context, dbPool *pgxpool.Pool) (map[string]int, error) {
	repo := repositories.NewIngredientRepository(dbPool)
	ids := make(map[string]int, len(ingredientsData))

	for _, item := range ingredientsData {
		var id int
		err := dbPool.QueryRow(ctx, "SELECT id FROM ingredients WHERE name = $1 LIMIT 1", item.Name).Scan(&id)
		if err == nil {
			ids[item.Name] = id
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("looking up ingredient %q: %w", item.Name, err)
		}

		created, err := repo.Create(ctx, nil, item)
		if err != nil {
			return nil, fmt.Errorf("creating ingredient %q: %w", item.Name, err)
		}
		ids[item.Name] = created.ID
		log.Printf("    - ингредиент %q", item.Name)
	}
	return ids, nil
}

func seedRecipes(ctx context.Context, dbPool *pgxpool.Pool, ingredientIDs map[string]int) error {
	repo := repositories.NewRecipeRepository(dbPool)

	for _, item := range recipesData {
		var exists bool
		if err := dbPool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM recipes WHERE title = $1)", item.recipe.Title).Scan(&exists); err != nil {
			return err
		}
		if exists {
			log.Printf("    - рецепт %q уже есть. Пропускаем.", item.recipe.Title)
			continue
		}

		recipe, err := repo.Create(ctx, item.recipe)
		if err != nil {
			return fmt.Errorf("creating recipe %q: %w", item.recipe.Title, err)
		}
		for name, link := range item.ingredients {
			ingredientID, ok := ingredientIDs[name]
			if !ok {
				return fmt.Errorf("recipe %q uses unknown ingredient %q", item.recipe.Title, name)
			}
			if _, err := repo.AddIngredient(ctx, recipe.ID, ingredientID, link); err != nil {
				return fmt.Errorf("linking %q to %q: %w", name, item.recipe.Title, err)
			}
		}
		log.Printf("    - рецепт %q, ингредиентов: %d", item.recipe.Title, len(item.ingredients))
	}
	return nil
}
