package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/service"
)

var (
	clientClaims = &service.Claims{Username: "alice", IsClient: true}
	adminClaims  = &service.Claims{Username: "root", IsAdmin: true}
)

func newMealPlanService(repo *fakeMealPlanRepo, tx *fakeTxManager) MealPlanServiceInterface {
	return NewMealPlanService(repo, tx, zap.NewNop())
}

func TestMealPlanService_CreateOwnedByCaller(t *testing.T) {
	repo, tx := newFakeMealPlanRepo(), &fakeTxManager{}
	svc := newMealPlanService(repo, tx)

	plan, err := svc.Create(context.Background(), clientClaims, dto.CreateMealPlanDTO{
		Name:      "Week 1",
		CreatedBy: "mallory",
		Recipes: []dto.MealPlanEntryDTO{
			{RecipeID: 3, MealType: "lunch", MealDay: "monday"},
			{RecipeID: 4, MealType: "dinner", MealDay: "monday"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", plan.CreatedBy)
	assert.Len(t, plan.Recipes, 2)
	assert.Equal(t, 1, tx.committed)
}

func TestMealPlanService_AdminCreatesForSomeoneElse(t *testing.T) {
	svc := newMealPlanService(newFakeMealPlanRepo(), &fakeTxManager{})

	plan, err := svc.Create(context.Background(), adminClaims, dto.CreateMealPlanDTO{Name: "Plan", CreatedBy: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", plan.CreatedBy)
	assert.Empty(t, plan.Recipes)

	plan, err = svc.Create(context.Background(), adminClaims, dto.CreateMealPlanDTO{Name: "Mine"})
	require.NoError(t, err)
	assert.Equal(t, "root", plan.CreatedBy)
}

func TestMealPlanService_CreateRollsBackWhenEntryFails(t *testing.T) {
	repo, tx := newFakeMealPlanRepo(), &fakeTxManager{}
	repo.failAdd = true
	svc := newMealPlanService(repo, tx)

	_, err := svc.Create(context.Background(), clientClaims, dto.CreateMealPlanDTO{
		Name:    "Broken",
		Recipes: []dto.MealPlanEntryDTO{{RecipeID: 99, MealType: "lunch", MealDay: "monday"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 1, tx.rolledBack)
}

func TestMealPlanService_CreateWithoutCaller(t *testing.T) {
	svc := newMealPlanService(newFakeMealPlanRepo(), &fakeTxManager{})
	_, err := svc.Create(context.Background(), nil, dto.CreateMealPlanDTO{Name: "x"})
	var violation *apperrors.ContractViolation
	assert.True(t, errors.As(err, &violation))
}

func TestMealPlanService_OnlyAdminsReassign(t *testing.T) {
	repo := newFakeMealPlanRepo()
	repo.plans[1] = entities.MealPlan{ID: 1, Name: "Week", CreatedBy: "alice"}
	svc := newMealPlanService(repo, &fakeTxManager{})

	_, err := svc.Update(context.Background(), clientClaims, 1, db.Fields{{Name: "created_by", Value: "bob"}})
	var authzErr *apperrors.AuthorizationError
	require.True(t, errors.As(err, &authzErr))
	assert.Equal(t, http.StatusForbidden, authzErr.StatusCode())

	updated, err := svc.Update(context.Background(), clientClaims, 1, db.Fields{{Name: "name", Value: "Week 2"}})
	require.NoError(t, err)
	assert.Equal(t, "Week 2", updated.Name)

	updated, err = svc.Update(context.Background(), adminClaims, 1, db.Fields{{Name: "created_by", Value: "bob"}})
	require.NoError(t, err)
	assert.Equal(t, "bob", updated.CreatedBy)

	owner, err := svc.Owner(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "bob", owner)
}

func TestMealPlanService_Export(t *testing.T) {
	repo := newFakeMealPlanRepo()
	repo.plans[4] = entities.MealPlan{ID: 4, Name: "Summer Cut!", CreatedBy: "alice"}
	thirty, two := int32(30), int32(2)
	repo.rows = []entities.MealPlanExportRow{
		{MealDay: "monday", MealType: "breakfast", RecipeTitle: "Oats", ReadyInMinutes: &thirty, Servings: &two},
		{MealDay: "monday", MealType: "dinner", RecipeTitle: "Soup"},
	}
	svc := newMealPlanService(repo, &fakeTxManager{})

	export, err := svc.Export(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "summer_cut_4.xlsx", export.FileName)
	assert.Equal(t, xlsxContentType, export.ContentType)

	f, err := excelize.OpenReader(export.Content)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Meal plan")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Day", "Meal", "Recipe", "Ready in (min)", "Servings"}, rows[0])
	assert.Equal(t, []string{"Monday", "Breakfast", "Oats", "30", "2"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 3)
	assert.Equal(t, []string{"Monday", "Dinner", "Soup"}, rows[2][:3])

	_, err = svc.Export(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
