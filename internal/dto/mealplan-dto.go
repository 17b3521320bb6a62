package dto

import "remplr/internal/entities"

type MealPlanEntryDTO struct {
	RecipeID int    `json:"recipe_id" validate:"required,gt=0"`
	MealType string `json:"meal_type" validate:"required,meal_type"`
	MealDay  string `json:"meal_day" validate:"required,meal_day"`
}

type CreateMealPlanDTO struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	// CreatedBy учитывается только для админа, остальные создают план для себя.
	CreatedBy string             `json:"created_by" validate:"omitempty,username"`
	Recipes   []MealPlanEntryDTO `json:"recipes" validate:"omitempty,dive"`
}

type MealPlanDetailDTO struct {
	*entities.MealPlan
	Recipes []entities.MealPlanRecipe `json:"recipes"`
}
