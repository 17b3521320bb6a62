package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/repositories"
	"remplr/pkg/config"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/service"
	"remplr/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenResponseDTO, error)
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenResponseDTO, error)
	Me(ctx context.Context, username string) (*entities.User, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
		cfg:        cfg,
	}
}

// issueToken подписывает токен со всеми тремя флагами ролей пользователя.
func issueToken(jwtService service.JWTService, user *entities.User) (string, error) {
	return jwtService.GenerateToken(service.TokenSubject{
		Username: user.Username,
		Roles: &service.RoleFlags{
			IsAdmin:        user.IsAdmin,
			IsNutritionist: user.IsNutritionist,
			IsClient:       user.IsClient,
		},
	})
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenResponseDTO, error) {
	username := strings.TrimSpace(payload.Username)
	logger := s.logger.With(zap.String("username", username))

	if err := s.checkLockout(ctx, username); err != nil {
		logger.Warn("вход отклонён, аккаунт заблокирован")
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.handleFailedLoginAttempt(ctx, username)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, username)
		logger.Info("неверный пароль")
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, username)

	token, err := issueToken(s.jwtService, user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponseDTO{Token: token}, nil
}

// Register создаёт аккаунт клиента. Самостоятельно зарегистрированный
// пользователь не бывает админом или нутрициологом.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenResponseDTO, error) {
	hashed, err := utils.HashPassword(payload.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, entities.User{
		Username:  payload.Username,
		Password:  hashed,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		IsClient:  true,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("username %s: %w", payload.Username, err)
		}
		return nil, err
	}
	s.logger.Info("пользователь зарегистрирован", zap.String("username", user.Username))

	token, err := issueToken(s.jwtService, user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponseDTO{Token: token}, nil
}

func (s *AuthService) Me(ctx context.Context, username string) (*entities.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

func lockoutKey(username string) string  { return fmt.Sprintf("lockout:%s", username) }
func attemptsKey(username string) string { return fmt.Sprintf("login_attempts:%s", username) }

func (s *AuthService) checkLockout(ctx context.Context, username string) error {
	if _, err := s.cacheRepo.Get(ctx, lockoutKey(username)); err == nil {
		return apperrors.ErrTooManyAttempts
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		s.logger.Warn("ошибка проверки блокировки", zap.String("username", username), zap.Error(err))
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, username string) {
	key := attemptsKey(username)
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("ошибка подсчёта неудачных входов", zap.String("username", username), zap.Error(err))
		return
	}
	if attempts == 1 {
		// Счётчик без TTL копился бы между окнами блокировки.
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("ошибка установки TTL счётчика входов", zap.String("username", username), zap.Error(err))
			if err := s.cacheRepo.Del(ctx, key); err != nil {
				s.logger.Warn("ошибка сброса счётчика входов", zap.String("username", username), zap.Error(err))
			}
			return
		}
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		if err := s.cacheRepo.Set(ctx, lockoutKey(username), "locked", s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("ошибка блокировки аккаунта", zap.String("username", username), zap.Error(err))
			return
		}
		if err := s.cacheRepo.Del(ctx, key); err != nil {
			s.logger.Warn("ошибка сброса счётчика входов", zap.String("username", username), zap.Error(err))
		}
		s.logger.Warn("аккаунт заблокирован", zap.String("username", username), zap.Duration("for", s.cfg.LockoutDuration))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, username string) {
	if err := s.cacheRepo.Del(ctx, attemptsKey(username), lockoutKey(username)); err != nil {
		s.logger.Warn("ошибка очистки счётчика входов", zap.String("username", username), zap.Error(err))
	}
}
