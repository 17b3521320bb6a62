package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"remplr/internal/routes"
	"remplr/pkg/config"
	"remplr/pkg/database/migrations"
	"remplr/pkg/database/postgresql"
	apperrors "remplr/pkg/errors"
	applogger "remplr/pkg/logger"
	appmiddleware "remplr/pkg/middleware"
	"remplr/pkg/service"
	"remplr/pkg/utils"
	"remplr/pkg/validation"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply database migrations before serving")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("не удалось подключиться к postgres", zap.Error(err))
	}
	defer dbConn.Close()

	if *migrate {
		if err := migrations.Up(ctx, dbConn); err != nil {
			logger.Fatal("ошибка применения миграций", zap.Error(err))
		}
		logger.Info("миграции применены")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	defer redisClient.Close()

	jwtSvc, err := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.TokenTTL)
	if err != nil {
		logger.Fatal("ошибка создания JWT-сервиса", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = utils.HTTPErrorHandler(logger)

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("перехвачена паника",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))
	e.Use(appmiddleware.RequestLogger(logger))

	if err := routes.InitRouter(e, dbConn, redisClient, jwtSvc, routes.NewLoggers(logger), cfg); err != nil {
		logger.Fatal("ошибка сборки роутера", zap.Error(err))
	}

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("сервер запущен", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("сервер упал", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("не удалось корректно остановить сервер", zap.Error(err))
	}
}
