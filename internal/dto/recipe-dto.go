package dto

import (
	"github.com/aarondl/null/v8"

	"remplr/internal/entities"
)

type CreateRecipeDTO struct {
	Vegetarian               bool        `json:"vegetarian"`
	Vegan                    bool        `json:"vegan"`
	DairyFree                bool        `json:"dairyfree"`
	WeightWatcherSmartPoints null.Int    `json:"weightwatchersmartpoints" validate:"omitempty,gte=0"`
	CreditsText              null.String `json:"creditstext"`
	Title                    string      `json:"title" validate:"required,max=255"`
	ReadyInMinutes           null.Int    `json:"readyinminutes" validate:"omitempty,gte=0"`
	Servings                 null.Int    `json:"servings" validate:"omitempty,gte=1"`
	SourceURL                null.String `json:"sourceurl"`
	Image                    null.String `json:"image"`
	ImageType                null.String `json:"imagetype" validate:"omitempty,max=10"`
	DishType                 null.String `json:"dishtype"`
	Diets                    null.String `json:"diets"`
	Summary                  null.String `json:"summary"`
}

type RecipeIngredientDTO struct {
	Amount null.Float64 `json:"amount" validate:"omitempty,gte=0"`
	Unit   null.String  `json:"unit" validate:"omitempty,max=50"`
}

type RecipeDetailDTO struct {
	*entities.Recipe
	Ingredients []entities.RecipeIngredient `json:"ingredients"`
	Nutrients   []entities.Nutrient         `json:"nutrients"`
}
