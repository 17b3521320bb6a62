package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/services"
	"remplr/pkg/utils"
	"remplr/pkg/validation"
)

type RecipeController struct {
	recipeService services.RecipeServiceInterface
	schemas       *validation.SchemaValidator
	logger        *zap.Logger
}

func NewRecipeController(
	recipeService services.RecipeServiceInterface,
	schemas *validation.SchemaValidator,
	logger *zap.Logger,
) *RecipeController {
	return &RecipeController{recipeService: recipeService, schemas: schemas, logger: logger}
}

func (ctrl *RecipeController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, utils.LoggerFrom(c, ctrl.logger))
}

func (ctrl *RecipeController) CreateRecipe(c echo.Context) error {
	var payload dto.CreateRecipeDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.recipeService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Recipe created", http.StatusCreated)
}

func (ctrl *RecipeController) GetRecipes(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.QueryParams())

	res, total, err := ctrl.recipeService.List(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Recipes", http.StatusOK, total)
}

func (ctrl *RecipeController) FindRecipe(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.recipeService.Get(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Recipe", http.StatusOK)
}

func (ctrl *RecipeController) UpdateRecipe(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	fields, err := readPatch(c, ctrl.schemas, validation.RecipeUpdateSchema)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.recipeService.Update(c.Request().Context(), id, fields)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Recipe updated", http.StatusOK)
}

func (ctrl *RecipeController) DeleteRecipe(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.recipeService.Delete(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.DeletedDTO{Deleted: id}, "Recipe deleted", http.StatusOK)
}

func (ctrl *RecipeController) AddIngredient(c echo.Context) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	ingredientID, err := parseID(c, "ingredientId")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.RecipeIngredientDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.recipeService.AddIngredient(c.Request().Context(), recipeID, ingredientID, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Ingredient added to recipe", http.StatusCreated)
}
