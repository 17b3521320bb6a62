package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/services"
	"remplr/pkg/utils"
	"remplr/pkg/validation"
)

type UserController struct {
	userService services.UserServiceInterface
	schemas     *validation.SchemaValidator
	logger      *zap.Logger
}

func NewUserController(
	userService services.UserServiceInterface,
	schemas *validation.SchemaValidator,
	logger *zap.Logger,
) *UserController {
	return &UserController{userService: userService, schemas: schemas, logger: logger}
}

func (ctrl *UserController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, utils.LoggerFrom(c, ctrl.logger))
}

func (ctrl *UserController) CreateUser(c echo.Context) error {
	var payload dto.CreateUserDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.userService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "User created", http.StatusCreated)
}

func (ctrl *UserController) GetUsers(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.QueryParams())

	users, total, err := ctrl.userService.List(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, users, "Users", http.StatusOK, total)
}

func (ctrl *UserController) FindUser(c echo.Context) error {
	user, err := ctrl.userService.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, user, "User", http.StatusOK)
}

func (ctrl *UserController) UpdateUser(c echo.Context) error {
	fields, err := readPatch(c, ctrl.schemas, validation.UserUpdateSchema)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.userService.Update(c.Request().Context(), c.Param("username"), fields)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	utils.LoggerFrom(c, ctrl.logger).Info("пользователь обновлён",
		zap.String("username", user.Username),
		zap.Strings("fields", fields.Names()),
	)
	return utils.SuccessResponse(c, user, "User updated", http.StatusOK)
}

func (ctrl *UserController) DeleteUser(c echo.Context) error {
	username := c.Param("username")
	if err := ctrl.userService.Delete(c.Request().Context(), username); err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.DeletedDTO{Deleted: username}, "User deleted", http.StatusOK)
}

func (ctrl *UserController) save(c echo.Context, param string, saveFn func(ctx context.Context, username string, id int) error) error {
	id, err := parseID(c, param)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	username := c.Param("username")
	if err := saveFn(c.Request().Context(), username, id); err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, map[string]interface{}{"saved": id}, "Saved", http.StatusCreated)
}

func (ctrl *UserController) SaveIngredient(c echo.Context) error {
	return ctrl.save(c, "ingredientId", ctrl.userService.SaveIngredient)
}

func (ctrl *UserController) SaveRecipe(c echo.Context) error {
	return ctrl.save(c, "recipeId", ctrl.userService.SaveRecipe)
}

func (ctrl *UserController) SaveMealPlan(c echo.Context) error {
	return ctrl.save(c, "mealPlanId", ctrl.userService.SaveMealPlan)
}

func (ctrl *UserController) GetSavedIngredients(c echo.Context) error {
	res, err := ctrl.userService.SavedIngredients(c.Request().Context(), c.Param("username"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Saved ingredients", http.StatusOK)
}

func (ctrl *UserController) GetSavedRecipes(c echo.Context) error {
	res, err := ctrl.userService.SavedRecipes(c.Request().Context(), c.Param("username"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Saved recipes", http.StatusOK)
}

func (ctrl *UserController) GetSavedMealPlans(c echo.Context) error {
	res, err := ctrl.userService.SavedMealPlans(c.Request().Context(), c.Param("username"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Saved meal plans", http.StatusOK)
}
