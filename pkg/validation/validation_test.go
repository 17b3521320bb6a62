package validation

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "remplr/pkg/errors"
)

func TestSchemaValidator_LoadsEmbeddedSchemas(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	for _, id := range []string{UserUpdateSchema, IngredientUpdateSchema, RecipeUpdateSchema, MealPlanUpdateSchema} {
		assert.True(t, v.HasSchema(id), id)
	}
}

func TestSchemaValidator_UserUpdate(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(UserUpdateSchema, []byte(`{"firstName":"New","email":"new@email.com"}`)))

	err = v.Validate(UserUpdateSchema, []byte(`{}`))
	assert.True(t, apperrors.IsValidation(err))

	err = v.Validate(UserUpdateSchema, []byte(`{"isAdmin":true}`))
	assert.True(t, apperrors.IsValidation(err))

	err = v.Validate(UserUpdateSchema, []byte(`{"firstName":42}`))
	assert.True(t, apperrors.IsValidation(err))

	err = v.Validate(UserUpdateSchema, []byte(`{"firstName":`))
	assert.True(t, apperrors.IsValidation(err))
}

func TestSchemaValidator_RecipeUpdate(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(RecipeUpdateSchema, []byte(`{"title":"Soup","servings":4,"vegan":true}`)))
	assert.Error(t, v.Validate(RecipeUpdateSchema, []byte(`{"servings":1.5}`)))
	assert.Error(t, v.Validate(RecipeUpdateSchema, []byte(`{"ready_in_minutes":10}`)))
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	var cv *apperrors.ContractViolation
	assert.ErrorAs(t, v.Validate("nope", []byte(`{}`)), &cv)
}

type mealEntry struct {
	MealType string      `validate:"required,meal_type"`
	MealDay  string      `validate:"required,meal_day"`
	Username string      `validate:"required,username"`
	Image    null.String `validate:"omitempty,url"`
}

func TestCustomValidator_Rules(t *testing.T) {
	cv := New()

	assert.NoError(t, cv.Validate(mealEntry{MealType: "lunch", MealDay: "Monday", Username: "test_user"}))
	assert.Error(t, cv.Validate(mealEntry{MealType: "brunch", MealDay: "monday", Username: "u"}))
	assert.Error(t, cv.Validate(mealEntry{MealType: "lunch", MealDay: "someday", Username: "u"}))
	assert.Error(t, cv.Validate(mealEntry{MealType: "lunch", MealDay: "monday", Username: "bad name!"}))
	assert.Error(t, cv.Validate(mealEntry{MealType: "lunch", MealDay: "monday", Username: "u", Image: null.StringFrom("not a url")}))
	assert.NoError(t, cv.Validate(mealEntry{MealType: "lunch", MealDay: "monday", Username: "u", Image: null.StringFrom("https://img.example.com/a.jpg")}))
}
