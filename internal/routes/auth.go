package routes

import (
	"github.com/labstack/echo/v4"

	"remplr/internal/controllers"
	"remplr/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/token", authCtrl.Login)
		authGroup.POST("/register", authCtrl.Register)
		authGroup.GET("/me", authCtrl.Me, authMW.EnsureLoggedIn)
	}
}
