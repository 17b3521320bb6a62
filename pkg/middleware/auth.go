package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remplr/internal/authz"
	"remplr/pkg/contextkeys"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/service"
	"remplr/pkg/utils"
)

// OwnerLookup находит имя владельца ресурса, к которому идёт запрос.
type OwnerLookup func(c echo.Context) (string, error)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Authenticate кладёт claims валидного bearer-токена и никогда не отклоняет.
// Ошибка проверки токена запоминается, чтобы гейт потом мог сообщить
// причину.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return next(c)
		}

		ctx := c.Request().Context()
		log := utils.LoggerFrom(c, m.logger)

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Debug("AuthMiddleware: неверный формат заголовка Authorization")
			ctx = context.WithValue(ctx, contextkeys.AuthErrorKey, apperrors.NewAuthenticationError(apperrors.AuthMalformed, apperrors.ErrInvalidAuthHeader))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			log.Debug("AuthMiddleware: токен отклонён", zap.Error(err))
			ctx = context.WithValue(ctx, contextkeys.AuthErrorKey, err)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}

		ctx = context.WithValue(ctx, contextkeys.ClaimsKey, claims)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// Require превращает гейт в middleware маршрута.
func (m *AuthMiddleware) Require(gate authz.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := m.check(c, gate, ""); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireOwner запускает гейт с владельцем из lookup. Анонимные запросы
// отклоняются раньше, lookup их не видит.
func (m *AuthMiddleware) RequireOwner(gate authz.Gate, lookup OwnerLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := m.check(c, authz.LoggedIn, ""); err != nil {
				return err
			}
			owner, err := lookup(c)
			if err != nil {
				return err
			}
			if err := m.check(c, gate, owner); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) check(c echo.Context, gate authz.Gate, owner string) error {
	ctx := c.Request().Context()
	req := authz.Request{
		Claims: utils.GetClaimsFromContext(ctx),
		Params: routeParams(c),
		Owner:  owner,
	}

	err := gate.Check(req)
	if err == nil {
		return nil
	}

	if req.Claims == nil {
		if authErr := utils.GetAuthErrorFromContext(ctx); authErr != nil {
			return authErr
		}
	}

	utils.LoggerFrom(c, m.logger).Debug("AuthMiddleware: гейт отклонил запрос",
		zap.String("gate", gate.Name),
		zap.String("path", c.Path()),
	)
	return err
}

func (m *AuthMiddleware) EnsureLoggedIn(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(authz.LoggedIn)(next)
}

func (m *AuthMiddleware) EnsureAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(authz.Admin)(next)
}

func (m *AuthMiddleware) EnsureCorrectUserOrAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(authz.CorrectUserOrAdmin)(next)
}

func (m *AuthMiddleware) EnsureAdminOrNutritionist(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(authz.AdminOrNutritionist)(next)
}

func (m *AuthMiddleware) EnsureAdminOrClient(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(authz.AdminOrClient)(next)
}

func (m *AuthMiddleware) EnsureNutritionist(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(authz.Nutritionist)(next)
}

func (m *AuthMiddleware) EnsureClient(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(authz.Client)(next)
}

func routeParams(c echo.Context) map[string]string {
	names := c.ParamNames()
	values := c.ParamValues()
	params := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(values) {
			params[name] = values[i]
		}
	}
	return params
}
