package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestContext ограничивает контекст запроса для долгой работы,
// например импорта и выгрузки таблиц.
func RequestContext(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), timeout)
}
