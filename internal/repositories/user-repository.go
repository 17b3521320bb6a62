package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/types"
)

const userTable = "users"
const userFields = "username, password, first_name, last_name, email, is_admin, is_nutritionist, is_client, created_at"

// UserUpdateFields - все поля, которые может менять PATCH.
var UserUpdateFields = db.FieldNameMap{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"password":  "password",
}

var userListFields = map[string]string{
	"username":  "username",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user entities.User) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	List(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	Update(ctx context.Context, username string, fields db.Fields) (*entities.User, error)
	Delete(ctx context.Context, username string) error

	SaveIngredient(ctx context.Context, username string, ingredientID int) error
	SaveRecipe(ctx context.Context, username string, recipeID int) error
	SaveMealPlan(ctx context.Context, username string, mealPlanID int) error
	SavedIDs(ctx context.Context, username string) (recipes, ingredients, mealPlans []int, err error)
	SavedIngredients(ctx context.Context, username string) ([]entities.Ingredient, error)
	SavedRecipes(ctx context.Context, username string) ([]entities.Recipe, error)
	SavedMealPlans(ctx context.Context, username string) ([]entities.MealPlan, error)
}

type UserRepository struct{ storage *pgxpool.Pool }

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.Username, &u.Password, &u.FirstName, &u.LastName, &u.Email,
		&u.IsAdmin, &u.IsNutritionist, &u.IsClient, &u.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user entities.User) (*entities.User, error) {
	query, args, err := psql.Insert(userTable).
		Columns("username", "password", "first_name", "last_name", "email", "is_admin", "is_nutritionist", "is_client").
		Values(user.Username, user.Password, user.FirstName, user.LastName, user.Email, user.IsAdmin, user.IsNutritionist, user.IsClient).
		Suffix("RETURNING " + userFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE username = $1", userFields, userTable)
	user, err := scanUser(r.storage.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", username, err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	countBuilder := psql.Select("COUNT(*)").From(userTable)
	countBuilder = db.ApplySearch(db.ApplyFilters(countBuilder, filter, userListFields), filter.Search, "username", "first_name", "last_name", "email")

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	builder := psql.Select(userFields).From(userTable)
	builder = db.ApplySearch(builder, filter.Search, "username", "first_name", "last_name", "email")
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("username")
	}
	builder = db.ApplyListParams(builder, filter, userListFields)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// Update ожидает, что пароль в fields уже захеширован.
func (r *UserRepository) Update(ctx context.Context, username string, fields db.Fields) (*entities.User, error) {
	spec, err := db.BuildStrictUpdate(fields, UserUpdateFields)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE username = $%d RETURNING %s",
		userTable, spec.AssignmentClause, spec.NextPlaceholder(), userFields)

	user, err := scanUser(r.storage.QueryRow(ctx, query, append(spec.Arguments, username)...))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", username, err)
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE username = $1", userTable), username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", username, apperrors.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) save(ctx context.Context, table, column, username string, id int) error {
	query := fmt.Sprintf("INSERT INTO %s (username, %s) VALUES ($1, $2)", table, column)
	if _, err := r.storage.Exec(ctx, query, username, id); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *UserRepository) SaveIngredient(ctx context.Context, username string, ingredientID int) error {
	return r.save(ctx, "user_ingredients", "ingredient_id", username, ingredientID)
}

func (r *UserRepository) SaveRecipe(ctx context.Context, username string, recipeID int) error {
	return r.save(ctx, "user_recipes", "recipe_id", username, recipeID)
}

func (r *UserRepository) SaveMealPlan(ctx context.Context, username string, mealPlanID int) error {
	return r.save(ctx, "user_mealplans", "meal_plan_id", username, mealPlanID)
}

func (r *UserRepository) ids(ctx context.Context, table, column, username string) ([]int, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE username = $1 ORDER BY %s", column, table, column)
	rows, err := r.storage.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (r *UserRepository) SavedIDs(ctx context.Context, username string) (recipes, ingredients, mealPlans []int, err error) {
	if recipes, err = r.ids(ctx, "user_recipes", "recipe_id", username); err != nil {
		return nil, nil, nil, err
	}
	if ingredients, err = r.ids(ctx, "user_ingredients", "ingredient_id", username); err != nil {
		return nil, nil, nil, err
	}
	if mealPlans, err = r.ids(ctx, "user_mealplans", "meal_plan_id", username); err != nil {
		return nil, nil, nil, err
	}
	return recipes, ingredients, mealPlans, nil
}

func (r *UserRepository) SavedIngredients(ctx context.Context, username string) ([]entities.Ingredient, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s i JOIN user_ingredients ui ON ui.ingredient_id = i.id
		WHERE ui.username = $1 ORDER BY i.name`, prefixed("i", ingredientFields), ingredientTable)
	rows, err := r.storage.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	return collectIngredients(rows)
}

func (r *UserRepository) SavedRecipes(ctx context.Context, username string) ([]entities.Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r JOIN user_recipes ur ON ur.recipe_id = r.id
		WHERE ur.username = $1 ORDER BY r.title`, prefixed("r", recipeFields), recipeTable)
	rows, err := r.storage.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	return collectRecipes(rows)
}

func (r *UserRepository) SavedMealPlans(ctx context.Context, username string) ([]entities.MealPlan, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s m JOIN user_mealplans um ON um.meal_plan_id = m.id
		WHERE um.username = $1 ORDER BY m.name`, prefixed("m", mealPlanFields), mealPlanTable)
	rows, err := r.storage.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	return collectMealPlans(rows)
}
