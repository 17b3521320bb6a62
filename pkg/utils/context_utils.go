package utils

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remplr/pkg/contextkeys"
	"remplr/pkg/service"
)

// GetClaimsFromContext возвращает claims из auth middleware или nil
// для анонимного запроса.
func GetClaimsFromContext(ctx context.Context) *service.Claims {
	claims, _ := ctx.Value(contextkeys.ClaimsKey).(*service.Claims)
	return claims
}

// GetAuthErrorFromContext возвращает причину отклонения токена, если она есть.
func GetAuthErrorFromContext(ctx context.Context) error {
	err, _ := ctx.Value(contextkeys.AuthErrorKey).(error)
	return err
}

// GetRequestIDFromContext возвращает id от RequestLogger или "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextkeys.RequestIDKey).(string)
	return id
}

// LoggerFrom предпочитает логгер запроса, выставленный RequestLogger.
func LoggerFrom(c echo.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := c.Get(contextkeys.LoggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return fallback
}
