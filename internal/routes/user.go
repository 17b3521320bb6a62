package routes

import (
	"github.com/labstack/echo/v4"

	"remplr/internal/controllers"
	"remplr/pkg/middleware"
)

func runUserRouter(api *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	users := api.Group("/users")

	users.POST("", userCtrl.CreateUser, authMW.EnsureAdmin)
	users.GET("", userCtrl.GetUsers, authMW.EnsureAdmin)

	self := users.Group("/:username", authMW.EnsureCorrectUserOrAdmin)
	self.GET("", userCtrl.FindUser)
	self.PATCH("", userCtrl.UpdateUser)
	self.DELETE("", userCtrl.DeleteUser)

	self.POST("/ingredients/:ingredientId", userCtrl.SaveIngredient)
	self.POST("/recipes/:recipeId", userCtrl.SaveRecipe)
	self.POST("/mealplans/:mealPlanId", userCtrl.SaveMealPlan)
	self.GET("/ingredients", userCtrl.GetSavedIngredients)
	self.GET("/recipes", userCtrl.GetSavedRecipes)
	self.GET("/mealplans", userCtrl.GetSavedMealPlans)
}
