package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/types"
)

const recipeTable = "recipes"
const recipeFields = "id, vegetarian, vegan, dairyfree, weightwatchersmartpoints, creditstext, title, readyinminutes, servings, sourceurl, image, imagetype, dishtype, diets, summary"

// Колонки рецепта в API называются так же, плоско и в нижнем регистре.
var RecipeUpdateFields = db.FieldNameMap{
	"vegetarian":               "vegetarian",
	"vegan":                    "vegan",
	"dairyfree":                "dairyfree",
	"weightwatchersmartpoints": "weightwatchersmartpoints",
	"creditstext":              "creditstext",
	"title":                    "title",
	"readyinminutes":           "readyinminutes",
	"servings":                 "servings",
	"sourceurl":                "sourceurl",
	"image":                    "image",
	"imagetype":                "imagetype",
	"dishtype":                 "dishtype",
	"diets":                    "diets",
	"summary":                  "summary",
}

var recipeListFields = map[string]string{
	"id":             "id",
	"title":          "title",
	"vegetarian":     "vegetarian",
	"vegan":          "vegan",
	"dairyfree":      "dairyfree",
	"dishtype":       "dishtype",
	"readyinminutes": "readyinminutes",
	"servings":       "servings",
}

type RecipeRepositoryInterface interface {
	Create(ctx context.Context, payload dto.CreateRecipeDTO) (*entities.Recipe, error)
	FindByID(ctx context.Context, id int) (*entities.Recipe, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Recipe, uint64, error)
	Update(ctx context.Context, id int, fields db.Fields) (*entities.Recipe, error)
	Delete(ctx context.Context, id int) error
	Ingredients(ctx context.Context, id int) ([]entities.RecipeIngredient, error)
	Nutrients(ctx context.Context, id int) ([]entities.Nutrient, error)
	AddIngredient(ctx context.Context, recipeID, ingredientID int, payload dto.RecipeIngredientDTO) (*entities.RecipeIngredient, error)
}

type RecipeRepository struct{ storage *pgxpool.Pool }

func NewRecipeRepository(storage *pgxpool.Pool) RecipeRepositoryInterface {
	return &RecipeRepository{storage: storage}
}

func scanRecipe(row pgx.Row) (*entities.Recipe, error) {
	var r entities.Recipe
	err := row.Scan(&r.ID, &r.Vegetarian, &r.Vegan, &r.DairyFree, &r.WeightWatcherSmartPoints,
		&r.CreditsText, &r.Title, &r.ReadyInMinutes, &r.Servings, &r.SourceURL, &r.Image,
		&r.ImageType, &r.DishType, &r.Diets, &r.Summary)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &r, nil
}

func collectRecipes(rows pgx.Rows) ([]entities.Recipe, error) {
	defer rows.Close()
	recipes := make([]entities.Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

func (r *RecipeRepository) Create(ctx context.Context, p dto.CreateRecipeDTO) (*entities.Recipe, error) {
	query, args, err := psql.Insert(recipeTable).
		Columns("vegetarian", "vegan", "dairyfree", "weightwatchersmartpoints", "creditstext", "title",
			"readyinminutes", "servings", "sourceurl", "image", "imagetype", "dishtype", "diets", "summary").
		Values(p.Vegetarian, p.Vegan, p.DairyFree, p.WeightWatcherSmartPoints, p.CreditsText, p.Title,
			p.ReadyInMinutes, p.Servings, p.SourceURL, p.Image, p.ImageType, p.DishType, p.Diets, p.Summary).
		Suffix("RETURNING " + recipeFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanRecipe(r.storage.QueryRow(ctx, query, args...))
}

func (r *RecipeRepository) FindByID(ctx context.Context, id int) (*entities.Recipe, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", recipeFields, recipeTable)
	recipe, err := scanRecipe(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("recipe %d: %w", id, err)
	}
	return recipe, nil
}

func (r *RecipeRepository) List(ctx context.Context, filter types.Filter) ([]entities.Recipe, uint64, error) {
	countQuery, countArgs, err := db.ApplySearch(
		db.ApplyFilters(psql.Select("COUNT(*)").From(recipeTable), filter, recipeListFields),
		filter.Search, "title",
	).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Recipe{}, 0, nil
	}

	builder := db.ApplySearch(psql.Select(recipeFields).From(recipeTable), filter.Search, "title")
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("title", "id")
	}
	query, args, err := db.ApplyListParams(builder, filter, recipeListFields).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	recipes, err := collectRecipes(rows)
	return recipes, total, err
}

func (r *RecipeRepository) Update(ctx context.Context, id int, fields db.Fields) (*entities.Recipe, error) {
	spec, err := db.BuildStrictUpdate(fields, RecipeUpdateFields)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		recipeTable, spec.AssignmentClause, spec.NextPlaceholder(), recipeFields)

	recipe, err := scanRecipe(r.storage.QueryRow(ctx, query, append(spec.Arguments, id)...))
	if err != nil {
		return nil, fmt.Errorf("recipe %d: %w", id, err)
	}
	return recipe, nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", recipeTable), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recipe %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *RecipeRepository) Ingredients(ctx context.Context, id int) ([]entities.RecipeIngredient, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT ri.ingredient_id, i.name, ri.amount, ri.unit
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = $1
		ORDER BY i.name`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := make([]entities.RecipeIngredient, 0)
	for rows.Next() {
		var ri entities.RecipeIngredient
		if err := rows.Scan(&ri.IngredientID, &ri.Name, &ri.Amount, &ri.Unit); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ri)
	}
	return ingredients, rows.Err()
}

func (r *RecipeRepository) Nutrients(ctx context.Context, id int) ([]entities.Nutrient, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, name, amount, unit, percentofdailyneeds FROM recipe_nutrients WHERE recipe_id = $1 ORDER BY name`, id)
	if err != nil {
		return nil, err
	}
	return collectNutrients(rows)
}

// AddIngredient возвращает ErrNotFound, если нет одной из сторон, и
// ErrDuplicate, если связь уже есть.
func (r *RecipeRepository) AddIngredient(ctx context.Context, recipeID, ingredientID int, p dto.RecipeIngredientDTO) (*entities.RecipeIngredient, error) {
	var ri entities.RecipeIngredient
	err := r.storage.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, unit)
			VALUES ($1, $2, $3, $4)
			RETURNING ingredient_id, amount, unit
		)
		SELECT ins.ingredient_id, i.name, ins.amount, ins.unit
		FROM inserted ins JOIN ingredients i ON i.id = ins.ingredient_id`,
		recipeID, ingredientID, p.Amount, p.Unit,
	).Scan(&ri.IngredientID, &ri.Name, &ri.Amount, &ri.Unit)
	if err != nil {
		return nil, fmt.Errorf("recipe %d ingredient %d: %w", recipeID, ingredientID, mapPgError(err))
	}
	return &ri, nil
}
