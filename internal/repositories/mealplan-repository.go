package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/types"
)

const mealPlanTable = "meal_plans"
const mealPlanFields = "id, name, created_by"
const mealPlanRecipeFields = "id, meal_plan_id, recipe_id, meal_type, meal_day"

var MealPlanUpdateFields = db.FieldNameMap{
	"name":       "name",
	"created_by": "created_by",
}

var mealPlanListFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_by": "created_by",
}

type MealPlanRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, name, createdBy string) (*entities.MealPlan, error)
	AddRecipe(ctx context.Context, tx pgx.Tx, mealPlanID int, entry dto.MealPlanEntryDTO) (*entities.MealPlanRecipe, error)
	RemoveRecipe(ctx context.Context, mealPlanID, entryID int) error
	FindByID(ctx context.Context, id int) (*entities.MealPlan, error)
	OwnerOf(ctx context.Context, id int) (string, error)
	List(ctx context.Context, filter types.Filter) ([]entities.MealPlan, uint64, error)
	Update(ctx context.Context, id int, fields db.Fields) (*entities.MealPlan, error)
	Delete(ctx context.Context, id int) error
	Recipes(ctx context.Context, id int) ([]entities.MealPlanRecipe, error)
	ExportRows(ctx context.Context, id int) ([]entities.MealPlanExportRow, error)
}

type MealPlanRepository struct{ storage *pgxpool.Pool }

func NewMealPlanRepository(storage *pgxpool.Pool) MealPlanRepositoryInterface {
	return &MealPlanRepository{storage: storage}
}

func scanMealPlan(row pgx.Row) (*entities.MealPlan, error) {
	var m entities.MealPlan
	if err := row.Scan(&m.ID, &m.Name, &m.CreatedBy); err != nil {
		return nil, mapPgError(err)
	}
	return &m, nil
}

func collectMealPlans(rows pgx.Rows) ([]entities.MealPlan, error) {
	defer rows.Close()
	plans := make([]entities.MealPlan, 0)
	for rows.Next() {
		m, err := scanMealPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *m)
	}
	return plans, rows.Err()
}

func scanMealPlanRecipe(row pgx.Row) (*entities.MealPlanRecipe, error) {
	var e entities.MealPlanRecipe
	if err := row.Scan(&e.ID, &e.MealPlanID, &e.RecipeID, &e.MealType, &e.MealDay); err != nil {
		return nil, mapPgError(err)
	}
	return &e, nil
}

func (r *MealPlanRepository) Create(ctx context.Context, tx pgx.Tx, name, createdBy string) (*entities.MealPlan, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, created_by) VALUES ($1, $2) RETURNING %s", mealPlanTable, mealPlanFields)
	plan, err := scanMealPlan(pick(r.storage, tx).QueryRow(ctx, query, name, createdBy))
	if err != nil {
		return nil, fmt.Errorf("meal plan owner %s: %w", createdBy, err)
	}
	return plan, nil
}

func (r *MealPlanRepository) AddRecipe(ctx context.Context, tx pgx.Tx, mealPlanID int, entry dto.MealPlanEntryDTO) (*entities.MealPlanRecipe, error) {
	query, args, err := psql.Insert("meal_plan_recipes").
		Columns("meal_plan_id", "recipe_id", "meal_type", "meal_day").
		Values(mealPlanID, entry.RecipeID, strings.ToLower(entry.MealType), strings.ToLower(entry.MealDay)).
		Suffix("RETURNING " + mealPlanRecipeFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	added, err := scanMealPlanRecipe(pick(r.storage, tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("meal plan %d recipe %d: %w", mealPlanID, entry.RecipeID, err)
	}
	return added, nil
}

func (r *MealPlanRepository) RemoveRecipe(ctx context.Context, mealPlanID, entryID int) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM meal_plan_recipes WHERE id = $1 AND meal_plan_id = $2`, entryID, mealPlanID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meal plan %d entry %d: %w", mealPlanID, entryID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *MealPlanRepository) FindByID(ctx context.Context, id int) (*entities.MealPlan, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", mealPlanFields, mealPlanTable)
	plan, err := scanMealPlan(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("meal plan %d: %w", id, err)
	}
	return plan, nil
}

func (r *MealPlanRepository) OwnerOf(ctx context.Context, id int) (string, error) {
	var owner string
	err := r.storage.QueryRow(ctx, fmt.Sprintf("SELECT created_by FROM %s WHERE id = $1", mealPlanTable), id).Scan(&owner)
	if err != nil {
		return "", fmt.Errorf("meal plan %d: %w", id, mapPgError(err))
	}
	return owner, nil
}

func (r *MealPlanRepository) List(ctx context.Context, filter types.Filter) ([]entities.MealPlan, uint64, error) {
	countQuery, countArgs, err := db.ApplySearch(
		db.ApplyFilters(psql.Select("COUNT(*)").From(mealPlanTable), filter, mealPlanListFields),
		filter.Search, "name",
	).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.MealPlan{}, 0, nil
	}

	builder := db.ApplySearch(psql.Select(mealPlanFields).From(mealPlanTable), filter.Search, "name")
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("name", "id")
	}
	query, args, err := db.ApplyListParams(builder, filter, mealPlanListFields).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	plans, err := collectMealPlans(rows)
	return plans, total, err
}

func (r *MealPlanRepository) Update(ctx context.Context, id int, fields db.Fields) (*entities.MealPlan, error) {
	spec, err := db.BuildStrictUpdate(fields, MealPlanUpdateFields)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		mealPlanTable, spec.AssignmentClause, spec.NextPlaceholder(), mealPlanFields)

	plan, err := scanMealPlan(r.storage.QueryRow(ctx, query, append(spec.Arguments, id)...))
	if err != nil {
		return nil, fmt.Errorf("meal plan %d: %w", id, err)
	}
	return plan, nil
}

func (r *MealPlanRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", mealPlanTable), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meal plan %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *MealPlanRepository) Recipes(ctx context.Context, id int) ([]entities.MealPlanRecipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM meal_plan_recipes WHERE meal_plan_id = $1 ORDER BY id`, mealPlanRecipeFields)
	rows, err := r.storage.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]entities.MealPlanRecipe, 0)
	for rows.Next() {
		e, err := scanMealPlanRecipe(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ExportRows сортирует записи по дню недели, затем по приёму пищи.
func (r *MealPlanRepository) ExportRows(ctx context.Context, id int) ([]entities.MealPlanExportRow, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT mpr.meal_day, mpr.meal_type, rc.title, rc.readyinminutes, rc.servings
		FROM meal_plan_recipes mpr
		JOIN recipes rc ON rc.id = mpr.recipe_id
		WHERE mpr.meal_plan_id = $1
		ORDER BY array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday'], mpr.meal_day),
		         array_position(ARRAY['breakfast','lunch','dinner','snack'], mpr.meal_type),
		         mpr.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.MealPlanExportRow, 0)
	for rows.Next() {
		var row entities.MealPlanExportRow
		if err := rows.Scan(&row.MealDay, &row.MealType, &row.RecipeTitle, &row.ReadyInMinutes, &row.Servings); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
