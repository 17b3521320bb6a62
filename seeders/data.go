package seeders

import (
	"github.com/aarondl/null/v8"

	"remplr/internal/dto"
)

var ingredientsData = []dto.CreateIngredientDTO{
	{Name: "flour", Aisle: null.StringFrom("Baking"), Amount: null.Float64From(2), Unit: null.StringFrom("cups"), Original: null.StringFrom("2 cups all-purpose flour")},
	{Name: "sugar", Aisle: null.StringFrom("Baking"), Amount: null.Float64From(0.5), Unit: null.StringFrom("cup"), Original: null.StringFrom("1/2 cup sugar")},
	{Name: "egg", Aisle: null.StringFrom("Milk, Eggs, Other Dairy"), Amount: null.Float64From(2), Original: null.StringFrom("2 large eggs")},
	{Name: "milk", Aisle: null.StringFrom("Milk, Eggs, Other Dairy"), Amount: null.Float64From(1), Unit: null.StringFrom("cup"), Original: null.StringFrom("1 cup milk")},
	{Name: "tomato", Aisle: null.StringFrom("Produce"), Amount: null.Float64From(3), Original: null.StringFrom("3 ripe tomatoes")},
	{Name: "basil", Aisle: null.StringFrom("Produce"), Amount: null.Float64From(1), Unit: null.StringFrom("handful"), Original: null.StringFrom("a handful of fresh basil")},
	{Name: "spaghetti", Aisle: null.StringFrom("Pasta and Rice"), Amount: null.Float64From(400), Unit: null.StringFrom("g"), Original: null.StringFrom("400 g spaghetti")},
	{Name: "olive oil", Aisle: null.StringFrom("Oil, Vinegar, Salad Dressing"), Amount: null.Float64From(2), Unit: null.StringFrom("tbsp"), Original: null.StringFrom("2 tbsp olive oil")},
}

type recipeSeed struct {
	recipe      dto.CreateRecipeDTO
	ingredients map[string]dto.RecipeIngredientDTO
}

var recipesData = []recipeSeed{
	{
		recipe: dto.CreateRecipeDTO{
			Title:          "Pancakes",
			Vegetarian:     true,
			ReadyInMinutes: null.IntFrom(20),
			Servings:       null.IntFrom(4),
			DishType:       null.StringFrom("breakfast"),
			Summary:        null.StringFrom("Fluffy weekend pancakes."),
		},
		ingredients: map[string]dto.RecipeIngredientDTO{
			"flour": {Amount: null.Float64From(1.5), Unit: null.StringFrom("cups")},
			"sugar": {Amount: null.Float64From(2), Unit: null.StringFrom("tbsp")},
			"egg":   {Amount: null.Float64From(1)},
			"milk":  {Amount: null.Float64From(1.25), Unit: null.StringFrom("cups")},
		},
	},
	{
		recipe: dto.CreateRecipeDTO{
			Title:          "Spaghetti al pomodoro",
			Vegetarian:     true,
			Vegan:          true,
			DairyFree:      true,
			ReadyInMinutes: null.IntFrom(30),
			Servings:       null.IntFrom(4),
			DishType:       null.StringFrom("main course"),
			Diets:          null.StringFrom("vegan"),
			Summary:        null.StringFrom("Spaghetti with a quick tomato and basil sauce."),
		},
		ingredients: map[string]dto.RecipeIngredientDTO{
			"spaghetti": {Amount: null.Float64From(400), Unit: null.StringFrom("g")},
			"tomato":    {Amount: null.Float64From(4)},
			"basil":     {Amount: null.Float64From(1), Unit: null.StringFrom("handful")},
			"olive oil": {Amount: null.Float64From(3), Unit: null.StringFrom("tbsp")},
		},
	},
}
