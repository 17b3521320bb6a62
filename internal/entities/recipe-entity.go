package entities

import "github.com/aarondl/null/v8"

type Recipe struct {
	ID                       int         `json:"id" db:"id"`
	Vegetarian               bool        `json:"vegetarian" db:"vegetarian"`
	Vegan                    bool        `json:"vegan" db:"vegan"`
	DairyFree                bool        `json:"dairyfree" db:"dairyfree"`
	WeightWatcherSmartPoints null.Int    `json:"weightwatchersmartpoints" db:"weightwatchersmartpoints"`
	CreditsText              null.String `json:"creditstext" db:"creditstext"`
	Title                    string      `json:"title" db:"title"`
	ReadyInMinutes           null.Int    `json:"readyinminutes" db:"readyinminutes"`
	Servings                 null.Int    `json:"servings" db:"servings"`
	SourceURL                null.String `json:"sourceurl" db:"sourceurl"`
	Image                    null.String `json:"image" db:"image"`
	ImageType                null.String `json:"imagetype" db:"imagetype"`
	DishType                 null.String `json:"dishtype" db:"dishtype"`
	Diets                    null.String `json:"diets" db:"diets"`
	Summary                  null.String `json:"summary" db:"summary"`
}

// RecipeIngredient - ингредиент в составе конкретного рецепта.
type RecipeIngredient struct {
	IngredientID int          `json:"ingredientId" db:"ingredient_id"`
	Name         string       `json:"name" db:"name"`
	Amount       null.Float64 `json:"amount" db:"amount"`
	Unit         null.String  `json:"unit" db:"unit"`
}
