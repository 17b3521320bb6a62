package routes

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remplr/internal/controllers"
	"remplr/internal/repositories"
	"remplr/internal/services"
	"remplr/pkg/config"
	"remplr/pkg/middleware"
	"remplr/pkg/service"
	"remplr/pkg/validation"
)

type Loggers struct {
	Main *zap.Logger
	Auth *zap.Logger
	User *zap.Logger
}

// NewLoggers создаёт именованные логгеры из одного корневого.
func NewLoggers(root *zap.Logger) *Loggers {
	return &Loggers{
		Main: root,
		Auth: root.Named("auth"),
		User: root.Named("user"),
	}
}

// InitRouter связывает репозитории, сервисы и контроллеры и монтирует все
// ресурсы под /api. Каждый запрос к /api проходит через Authenticate, а
// гейты маршрутов решают, что доступно анониму.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) error {
	loggers.Main.Info("InitRouter: собираем маршруты")

	schemas, err := validation.NewSchemaValidator()
	if err != nil {
		return fmt.Errorf("loading json schemas: %w", err)
	}

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	api.Use(authMW.Authenticate)
	txManager := repositories.NewTxManager(dbConn)

	// репозитории
	userRepo := repositories.NewUserRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	ingredientRepo := repositories.NewIngredientRepository(dbConn)
	recipeRepo := repositories.NewRecipeRepository(dbConn)
	mealPlanRepo := repositories.NewMealPlanRepository(dbConn)

	// сервисы
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, loggers.Auth, &cfg.Auth)
	userService := services.NewUserService(userRepo, jwtSvc, loggers.User, &cfg.Auth)
	ingredientService := services.NewIngredientService(ingredientRepo, txManager, loggers.Main)
	recipeService := services.NewRecipeService(recipeRepo, loggers.Main)
	mealPlanService := services.NewMealPlanService(mealPlanRepo, txManager, loggers.Main)

	// контроллеры
	authCtrl := controllers.NewAuthController(authService, loggers.Auth)
	userCtrl := controllers.NewUserController(userService, schemas, loggers.User)
	ingredientCtrl := controllers.NewIngredientController(ingredientService, schemas, loggers.Main)
	recipeCtrl := controllers.NewRecipeController(recipeService, schemas, loggers.Main)
	mealPlanCtrl := controllers.NewMealPlanController(mealPlanService, schemas, loggers.Main)

	runAuthRouter(api, authCtrl, authMW)
	runUserRouter(api, userCtrl, authMW)
	runIngredientRouter(api, ingredientCtrl, authMW)
	runRecipeRouter(api, recipeCtrl, authMW)
	runMealPlanRouter(api, mealPlanCtrl, authMW)

	loggers.Main.Info("InitRouter: маршруты готовы", zap.Int("count", len(e.Routes())))
	return nil
}
