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

const ingredientTable = "ingredients"
const ingredientFields = "id, aisle, image, name, amount, unit, original"

var IngredientUpdateFields = db.FieldNameMap{
	"aisle":    "aisle",
	"image":    "image",
	"name":     "name",
	"amount":   "amount",
	"unit":     "unit",
	"original": "original",
}

var ingredientListFields = map[string]string{
	"id":    "id",
	"aisle": "aisle",
	"name":  "name",
	"unit":  "unit",
}

type IngredientRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, payload dto.CreateIngredientDTO) (*entities.Ingredient, error)
	FindByID(ctx context.Context, id int) (*entities.Ingredient, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Ingredient, uint64, error)
	Update(ctx context.Context, id int, fields db.Fields) (*entities.Ingredient, error)
	Delete(ctx context.Context, id int) error
	Nutrients(ctx context.Context, id int) ([]entities.Nutrient, error)
}

type IngredientRepository struct{ storage *pgxpool.Pool }

func NewIngredientRepository(storage *pgxpool.Pool) IngredientRepositoryInterface {
	return &IngredientRepository{storage: storage}
}

func scanIngredient(row pgx.Row) (*entities.Ingredient, error) {
	var i entities.Ingredient
	if err := row.Scan(&i.ID, &i.Aisle, &i.Image, &i.Name, &i.Amount, &i.Unit, &i.Original); err != nil {
		return nil, mapPgError(err)
	}
	return &i, nil
}

func collectIngredients(rows pgx.Rows) ([]entities.Ingredient, error) {
	defer rows.Close()
	ingredients := make([]entities.Ingredient, 0)
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *i)
	}
	return ingredients, rows.Err()
}

// Create работает в tx, если она передана: массовый импорт идёт одной транзакцией.
func (r *IngredientRepository) Create(ctx context.Context, tx pgx.Tx, payload dto.CreateIngredientDTO) (*entities.Ingredient, error) {
	query, args, err := psql.Insert(ingredientTable).
		Columns("aisle", "image", "name", "amount", "unit", "original").
		Values(payload.Aisle, payload.Image, payload.Name, payload.Amount, payload.Unit, payload.Original).
		Suffix("RETURNING " + ingredientFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanIngredient(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *IngredientRepository) FindByID(ctx context.Context, id int) (*entities.Ingredient, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", ingredientFields, ingredientTable)
	ingredient, err := scanIngredient(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("ingredient %d: %w", id, err)
	}
	return ingredient, nil
}

func (r *IngredientRepository) List(ctx context.Context, filter types.Filter) ([]entities.Ingredient, uint64, error) {
	countQuery, countArgs, err := db.ApplySearch(
		db.ApplyFilters(psql.Select("COUNT(*)").From(ingredientTable), filter, ingredientListFields),
		filter.Search, "name", "aisle",
	).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Ingredient{}, 0, nil
	}

	builder := db.ApplySearch(psql.Select(ingredientFields).From(ingredientTable), filter.Search, "name", "aisle")
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("name", "id")
	}
	query, args, err := db.ApplyListParams(builder, filter, ingredientListFields).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	ingredients, err := collectIngredients(rows)
	return ingredients, total, err
}

func (r *IngredientRepository) Update(ctx context.Context, id int, fields db.Fields) (*entities.Ingredient, error) {
	spec, err := db.BuildStrictUpdate(fields, IngredientUpdateFields)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		ingredientTable, spec.AssignmentClause, spec.NextPlaceholder(), ingredientFields)

	ingredient, err := scanIngredient(r.storage.QueryRow(ctx, query, append(spec.Arguments, id)...))
	if err != nil {
		return nil, fmt.Errorf("ingredient %d: %w", id, err)
	}
	return ingredient, nil
}

func (r *IngredientRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", ingredientTable), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ingredient %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *IngredientRepository) Nutrients(ctx context.Context, id int) ([]entities.Nutrient, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, name, amount, unit, percentofdailyneeds FROM ingredient_nutrients WHERE ingredient_id = $1 ORDER BY name`, id)
	if err != nil {
		return nil, err
	}
	return collectNutrients(rows)
}

func collectNutrients(rows pgx.Rows) ([]entities.Nutrient, error) {
	defer rows.Close()
	nutrients := make([]entities.Nutrient, 0)
	for rows.Next() {
		var n entities.Nutrient
		if err := rows.Scan(&n.ID, &n.Name, &n.Amount, &n.Unit, &n.PercentOfDailyNeeds); err != nil {
			return nil, err
		}
		nutrients = append(nutrients, n)
	}
	return nutrients, rows.Err()
}
