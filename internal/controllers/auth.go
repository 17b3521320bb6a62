package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/services"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, utils.LoggerFrom(c, ctrl.logger))
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		utils.LoggerFrom(c, ctrl.logger).Info("неудачный вход", zap.String("username", payload.Username), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Logged in", http.StatusOK)
}

func (ctrl *AuthController) Register(c echo.Context) error {
	var payload dto.RegisterDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Register(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, res, "Registered", http.StatusCreated)
}

// Me стоит за EnsureLoggedIn, claims всегда есть.
func (ctrl *AuthController) Me(c echo.Context) error {
	claims := utils.GetClaimsFromContext(c.Request().Context())
	if claims == nil {
		return ctrl.errorResponse(c, apperrors.NewContractViolation("Me reached without claims"))
	}

	user, err := ctrl.authService.Me(c.Request().Context(), claims.Username)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, user, "Current user", http.StatusOK)
}
