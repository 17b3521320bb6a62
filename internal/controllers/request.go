package controllers

import (
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"remplr/internal/infrastructure/bd"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/validation"
)

const maxPatchBodyBytes = 1 << 20

func parseID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("%s must be a positive integer", name)
	}
	return id, nil
}

// bindAndValidate: сначала binder echo, потом валидатор структуры.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewValidationError("request body is not valid JSON")
	}
	return ctx.Validate(payload)
}

// readPatch проверяет тело частичного обновления по схеме schemaID и
// возвращает поля в том порядке, в котором их прислал клиент.
func readPatch(ctx echo.Context, schemas *validation.SchemaValidator, schemaID string) (db.Fields, error) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxPatchBodyBytes))
	if err != nil {
		return nil, apperrors.NewValidationError("could not read request body")
	}
	if err := schemas.Validate(schemaID, body); err != nil {
		return nil, err
	}
	return db.FieldsFromJSON(body)
}
