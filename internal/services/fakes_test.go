package services

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	"remplr/internal/repositories"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/types"
)

type fakeCache struct {
	mu        sync.Mutex
	data      map[string]string
	expireErr error
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]string{}} }

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case string:
		c.data[key] = v
	default:
		c.data[key] = "set"
	}
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(context.Context, string, time.Duration) (bool, error) {
	if c.expireErr != nil {
		return false, c.expireErr
	}
	return true, nil
}

type fakeUserRepo struct {
	users   map[string]entities.User
	updated db.Fields
}

func newFakeUserRepo(users ...entities.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]entities.User{}}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user entities.User) (*entities.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, apperrors.ErrDuplicate
	}
	r.users[user.Username] = user
	return &user, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) List(context.Context, types.Filter) ([]entities.User, uint64, error) {
	names := make([]string, 0, len(r.users))
	for name := range r.users {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]entities.User, 0, len(names))
	for _, name := range names {
		out = append(out, r.users[name])
	}
	return out, uint64(len(out)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, username string, fields db.Fields) (*entities.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	r.updated = fields
	for _, f := range fields {
		switch f.Name {
		case "firstName":
			u.FirstName = f.Value.(string)
		case "lastName":
			u.LastName = f.Value.(string)
		case "email":
			u.Email = f.Value.(string)
		case "password":
			u.Password = f.Value.(string)
		}
	}
	r.users[username] = u
	return &u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *fakeUserRepo) SaveIngredient(context.Context, string, int) error { return nil }
func (r *fakeUserRepo) SaveRecipe(context.Context, string, int) error     { return nil }
func (r *fakeUserRepo) SaveMealPlan(context.Context, string, int) error   { return nil }

func (r *fakeUserRepo) SavedIDs(context.Context, string) ([]int, []int, []int, error) {
	return []int{1}, []int{}, []int{2}, nil
}

func (r *fakeUserRepo) SavedIngredients(context.Context, string) ([]entities.Ingredient, error) {
	return []entities.Ingredient{}, nil
}

func (r *fakeUserRepo) SavedRecipes(context.Context, string) ([]entities.Recipe, error) {
	return []entities.Recipe{}, nil
}

func (r *fakeUserRepo) SavedMealPlans(context.Context, string) ([]entities.MealPlan, error) {
	return []entities.MealPlan{}, nil
}

// fakeTxManager выполняет fn без транзакции и запоминает, был ли
// commit.
type fakeTxManager struct {
	committed  int
	rolledBack int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	if err := fn(nil); err != nil {
		m.rolledBack++
		return err
	}
	m.committed++
	return nil
}

type fakeIngredientRepo struct {
	created []dto.CreateIngredientDTO
	failOn  string
}

func (r *fakeIngredientRepo) Create(_ context.Context, _ pgx.Tx, payload dto.CreateIngredientDTO) (*entities.Ingredient, error) {
	if payload.Name == r.failOn {
		return nil, apperrors.ErrDuplicate
	}
	r.created = append(r.created, payload)
	return &entities.Ingredient{ID: len(r.created), Name: payload.Name, Aisle: payload.Aisle, Amount: payload.Amount}, nil
}

func (r *fakeIngredientRepo) FindByID(_ context.Context, id int) (*entities.Ingredient, error) {
	if id < 1 || id > len(r.created) {
		return nil, apperrors.ErrNotFound
	}
	return &entities.Ingredient{ID: id, Name: r.created[id-1].Name}, nil
}

func (r *fakeIngredientRepo) List(context.Context, types.Filter) ([]entities.Ingredient, uint64, error) {
	return []entities.Ingredient{}, 0, nil
}

func (r *fakeIngredientRepo) Update(_ context.Context, id int, _ db.Fields) (*entities.Ingredient, error) {
	return r.FindByID(context.Background(), id)
}

func (r *fakeIngredientRepo) Delete(context.Context, int) error { return nil }

func (r *fakeIngredientRepo) Nutrients(context.Context, int) ([]entities.Nutrient, error) {
	return []entities.Nutrient{{ID: 1, Name: "Protein", Amount: 3, Unit: "g"}}, nil
}

type fakeMealPlanRepo struct {
	plans   map[int]entities.MealPlan
	entries map[int][]entities.MealPlanRecipe
	rows    []entities.MealPlanExportRow
	failAdd bool
}

func newFakeMealPlanRepo() *fakeMealPlanRepo {
	return &fakeMealPlanRepo{plans: map[int]entities.MealPlan{}, entries: map[int][]entities.MealPlanRecipe{}}
}

func (r *fakeMealPlanRepo) Create(_ context.Context, _ pgx.Tx, name, createdBy string) (*entities.MealPlan, error) {
	plan := entities.MealPlan{ID: len(r.plans) + 1, Name: name, CreatedBy: createdBy}
	r.plans[plan.ID] = plan
	return &plan, nil
}

func (r *fakeMealPlanRepo) AddRecipe(_ context.Context, _ pgx.Tx, mealPlanID int, entry dto.MealPlanEntryDTO) (*entities.MealPlanRecipe, error) {
	if r.failAdd {
		return nil, apperrors.ErrNotFound
	}
	added := entities.MealPlanRecipe{
		ID:         len(r.entries[mealPlanID]) + 1,
		MealPlanID: mealPlanID,
		RecipeID:   entry.RecipeID,
		MealType:   entry.MealType,
		MealDay:    entry.MealDay,
	}
	r.entries[mealPlanID] = append(r.entries[mealPlanID], added)
	return &added, nil
}

func (r *fakeMealPlanRepo) RemoveRecipe(context.Context, int, int) error { return nil }

func (r *fakeMealPlanRepo) FindByID(_ context.Context, id int) (*entities.MealPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &plan, nil
}

func (r *fakeMealPlanRepo) OwnerOf(ctx context.Context, id int) (string, error) {
	plan, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return plan.CreatedBy, nil
}

func (r *fakeMealPlanRepo) List(context.Context, types.Filter) ([]entities.MealPlan, uint64, error) {
	return []entities.MealPlan{}, 0, nil
}

func (r *fakeMealPlanRepo) Update(ctx context.Context, id int, fields db.Fields) (*entities.MealPlan, error) {
	plan, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := fields.Get("name"); ok {
		plan.Name = v.(string)
	}
	if v, ok := fields.Get("created_by"); ok {
		plan.CreatedBy = v.(string)
	}
	r.plans[id] = *plan
	return plan, nil
}

func (r *fakeMealPlanRepo) Delete(context.Context, int) error { return nil }

func (r *fakeMealPlanRepo) Recipes(_ context.Context, id int) ([]entities.MealPlanRecipe, error) {
	return r.entries[id], nil
}

func (r *fakeMealPlanRepo) ExportRows(context.Context, int) ([]entities.MealPlanExportRow, error) {
	return r.rows, nil
}
