package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "remplr/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// SuccessResponse оборачивает body в конверт ответа. Если клиент просил
// withPagination и передан total, body становится {list, pagination}.
func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	withPagination, _ := strconv.ParseBool(ctx.QueryParam("withPagination"))
	if withPagination && len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = int((total[0] + uint64(filter.Limit) - 1) / uint64(filter.Limit))
		}
		pagination := map[string]interface{}{
			"total_count": total[0],
			"page":        filter.Page,
			"limit":       filter.Limit,
			"total_pages": totalPages,
		}
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

var sentinelStatus = []struct {
	err  error
	code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrDuplicate, http.StatusConflict},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrTooManyAttempts, http.StatusTooManyRequests},
}

// ErrorResponse переводит err в конверт ответа. Уровнем error логируются
// только серверные сбои.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	if c.Response().Committed {
		return nil
	}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		return writeError(c, httpErr.Code, httpErr.Message, httpErr.Details)
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		var details interface{}
		if len(validationErr.Fields) > 0 {
			details = map[string]interface{}{"errors": validationErr.Fields}
		}
		return writeError(c, http.StatusBadRequest, validationErr.Message, details)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", e.Field(), e.Tag()))
		}
		return writeError(c, http.StatusBadRequest, "validation failed: "+strings.Join(msgs, "; "), nil)
	}

	var authnErr *apperrors.AuthenticationError
	if errors.As(err, &authnErr) {
		logger.Debug("ошибка аутентификации", zap.String("kind", string(authnErr.Kind)), zap.Error(authnErr.Err))
		return writeError(c, http.StatusUnauthorized, fmt.Sprintf("Unauthorized: token %s", authnErr.Kind), nil)
	}

	var authzErr *apperrors.AuthorizationError
	if errors.As(err, &authzErr) {
		return writeError(c, authzErr.StatusCode(), http.StatusText(authzErr.StatusCode()), nil)
	}

	var contractErr *apperrors.ContractViolation
	if errors.As(err, &contractErr) {
		logger.Error("Нарушение контракта", zap.Error(err))
		return writeError(c, http.StatusInternalServerError, "Internal server error", nil)
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return writeError(c, s.code, err.Error(), nil)
		}
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return writeError(c, echoErr.Code, fmt.Sprint(echoErr.Message), nil)
	}

	logger.Error("Непредвиденная ошибка", zap.Error(err))
	return writeError(c, http.StatusInternalServerError, "Internal server error", nil)
}

func writeError(c echo.Context, code int, message string, details interface{}) error {
	return c.JSON(code, &HTTPResponse{Status: false, Message: message, Body: details})
}

// HTTPErrorHandler отдаёт через ErrorResponse ошибки, вышедшие из хендлеров
// и middleware: отказы гейтов и собственные 404/405 echo.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		_ = ErrorResponse(c, err, LoggerFrom(c, logger))
	}
}
