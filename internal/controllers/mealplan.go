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

type MealPlanController struct {
	mealPlanService services.MealPlanServiceInterface
	schemas         *validation.SchemaValidator
	logger          *zap.Logger
}

func NewMealPlanController(
	mealPlanService services.MealPlanServiceInterface,
	schemas *validation.SchemaValidator,
	logger *zap.Logger,
) *MealPlanController {
	return &MealPlanController{mealPlanService: mealPlanService, schemas: schemas, logger: logger}
}

func (ctrl *MealPlanController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, utils.LoggerFrom(c, ctrl.logger))
}

// Owner возвращает автора плана по параметру :id для гейтов владения.
func (ctrl *MealPlanController) Owner(c echo.Context) (string, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return "", err
	}
	return ctrl.mealPlanService.Owner(c.Request().Context(), id)
}

func (ctrl *MealPlanController) CreateMealPlan(c echo.Context) error {
	var payload dto.CreateMealPlanDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	caller := utils.GetClaimsFromContext(c.Request().Context())
	res, err := ctrl.mealPlanService.Create(c.Request().Context(), caller, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Meal plan created", http.StatusCreated)
}

func (ctrl *MealPlanController) GetMealPlans(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.QueryParams())

	res, total, err := ctrl.mealPlanService.List(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Meal plans", http.StatusOK, total)
}

func (ctrl *MealPlanController) FindMealPlan(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.mealPlanService.Get(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Meal plan", http.StatusOK)
}

func (ctrl *MealPlanController) UpdateMealPlan(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	fields, err := readPatch(c, ctrl.schemas, validation.MealPlanUpdateSchema)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	caller := utils.GetClaimsFromContext(c.Request().Context())
	res, err := ctrl.mealPlanService.Update(c.Request().Context(), caller, id, fields)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Meal plan updated", http.StatusOK)
}

func (ctrl *MealPlanController) DeleteMealPlan(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.mealPlanService.Delete(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.DeletedDTO{Deleted: id}, "Meal plan deleted", http.StatusOK)
}

func (ctrl *MealPlanController) AddRecipe(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var entry dto.MealPlanEntryDTO
	if err := bindAndValidate(c, &entry); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.mealPlanService.AddRecipe(c.Request().Context(), id, entry)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Recipe added to meal plan", http.StatusCreated)
}

func (ctrl *MealPlanController) RemoveRecipe(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	entryID, err := parseID(c, "entryId")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.mealPlanService.RemoveRecipe(c.Request().Context(), id, entryID); err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.DeletedDTO{Deleted: entryID}, "Recipe removed from meal plan", http.StatusOK)
}

func (ctrl *MealPlanController) ExportMealPlan(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	ctx, cancel := utils.RequestContext(c, spreadsheetTimeout)
	defer cancel()

	export, err := ctrl.mealPlanService.Export(ctx, id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+export.FileName)
	return c.Blob(http.StatusOK, export.ContentType, export.Content.Bytes())
}
