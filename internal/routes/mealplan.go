package routes

import (
	"github.com/labstack/echo/v4"

	"remplr/internal/authz"
	"remplr/internal/controllers"
	"remplr/pkg/middleware"
)

func runMealPlanRouter(api *echo.Group, mealPlanCtrl *controllers.MealPlanController, authMW *middleware.AuthMiddleware) {
	mealPlans := api.Group("/mealplans")
	ownerOrAdmin := authMW.RequireOwner(authz.OwnerOrAdmin, mealPlanCtrl.Owner)

	mealPlans.GET("", mealPlanCtrl.GetMealPlans)
	mealPlans.GET("/:id", mealPlanCtrl.FindMealPlan)
	mealPlans.GET("/:id/export", mealPlanCtrl.ExportMealPlan)
	mealPlans.POST("", mealPlanCtrl.CreateMealPlan, authMW.EnsureLoggedIn)
	mealPlans.PATCH("/:id", mealPlanCtrl.UpdateMealPlan, ownerOrAdmin)
	mealPlans.DELETE("/:id", mealPlanCtrl.DeleteMealPlan, ownerOrAdmin)
	mealPlans.POST("/:id/recipes", mealPlanCtrl.AddRecipe, ownerOrAdmin)
	mealPlans.DELETE("/:id/recipes/:entryId", mealPlanCtrl.RemoveRecipe, ownerOrAdmin)
}
