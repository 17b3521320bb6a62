package routes

import (
	"github.com/labstack/echo/v4"

	"remplr/internal/controllers"
	"remplr/pkg/middleware"
)

func runIngredientRouter(api *echo.Group, ingredientCtrl *controllers.IngredientController, authMW *middleware.AuthMiddleware) {
	ingredients := api.Group("/ingredients")

	ingredients.GET("", ingredientCtrl.GetIngredients)
	ingredients.GET("/:id", ingredientCtrl.FindIngredient)
	ingredients.POST("", ingredientCtrl.CreateIngredient, authMW.EnsureAdminOrNutritionist)
	ingredients.POST("/import", ingredientCtrl.ImportIngredients, authMW.EnsureAdminOrNutritionist)
	ingredients.PATCH("/:id", ingredientCtrl.UpdateIngredient, authMW.EnsureAdminOrNutritionist)
	ingredients.DELETE("/:id", ingredientCtrl.DeleteIngredient, authMW.EnsureAdmin)
}
