package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/services"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/utils"
	"remplr/pkg/validation"
)

const (
	ingredientImportContext = "ingredient_import"
	spreadsheetTimeout      = 30 * time.Second
)

type IngredientController struct {
	ingredientService services.IngredientServiceInterface
	schemas           *validation.SchemaValidator
	logger            *zap.Logger
}

func NewIngredientController(
	ingredientService services.IngredientServiceInterface,
	schemas *validation.SchemaValidator,
	logger *zap.Logger,
) *IngredientController {
	return &IngredientController{ingredientService: ingredientService, schemas: schemas, logger: logger}
}

func (ctrl *IngredientController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, utils.LoggerFrom(c, ctrl.logger))
}

func (ctrl *IngredientController) CreateIngredient(c echo.Context) error {
	var payload dto.CreateIngredientDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.ingredientService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Ingredient created", http.StatusCreated)
}

func (ctrl *IngredientController) GetIngredients(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.QueryParams())

	res, total, err := ctrl.ingredientService.List(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Ingredients", http.StatusOK, total)
}

func (ctrl *IngredientController) FindIngredient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.ingredientService.Get(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Ingredient", http.StatusOK)
}

func (ctrl *IngredientController) UpdateIngredient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	fields, err := readPatch(c, ctrl.schemas, validation.IngredientUpdateSchema)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.ingredientService.Update(c.Request().Context(), id, fields)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Ingredient updated", http.StatusOK)
}

func (ctrl *IngredientController) DeleteIngredient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.ingredientService.Delete(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.DeletedDTO{Deleted: id}, "Ingredient deleted", http.StatusOK)
}

// ImportIngredients принимает multipart-поле "file" с xlsx-книгой.
func (ctrl *IngredientController) ImportIngredients(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewValidationError("multipart field \"file\" is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Could not open uploaded file", err))
	}
	defer src.Close()

	if err := validation.ValidateFile(fileHeader, src, ingredientImportContext); err != nil {
		return ctrl.errorResponse(c, err)
	}

	ctx, cancel := utils.RequestContext(c, spreadsheetTimeout)
	defer cancel()

	res, err := ctrl.ingredientService.Import(ctx, src)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	utils.LoggerFrom(c, ctrl.logger).Info("импорт ингредиентов завершён",
		zap.String("file", fileHeader.Filename),
		zap.Int("imported", res.Imported),
	)
	return utils.SuccessResponse(c, res, "Ingredients imported", http.StatusCreated)
}
