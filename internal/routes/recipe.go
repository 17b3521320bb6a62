package routes

import (
	"github.com/labstack/echo/v4"

	"remplr/internal/controllers"
	"remplr/pkg/middleware"
)

func runRecipeRouter(api *echo.Group, recipeCtrl *controllers.RecipeController, authMW *middleware.AuthMiddleware) {
	recipes := api.Group("/recipes")

	recipes.GET("", recipeCtrl.GetRecipes)
	recipes.GET("/:id", recipeCtrl.FindRecipe)
	recipes.POST("", recipeCtrl.CreateRecipe, authMW.EnsureAdminOrNutritionist)
	recipes.PATCH("/:id", recipeCtrl.UpdateRecipe, authMW.EnsureAdminOrNutritionist)
	recipes.DELETE("/:id", recipeCtrl.DeleteRecipe, authMW.EnsureAdmin)
	recipes.POST("/:id/ingredients/:ingredientId", recipeCtrl.AddIngredient, authMW.EnsureAdminOrNutritionist)
}
