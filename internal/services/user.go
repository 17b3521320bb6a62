package services

import (
	"context"

	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	"remplr/internal/repositories"
	"remplr/pkg/config"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/service"
	"remplr/pkg/types"
	"remplr/pkg/utils"
)

type UserServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserWithTokenDTO, error)
	Get(ctx context.Context, username string) (*dto.UserDetailDTO, error)
	List(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	Update(ctx context.Context, username string, fields db.Fields) (*entities.User, error)
	Delete(ctx context.Context, username string) error

	SaveIngredient(ctx context.Context, username string, ingredientID int) error
	SaveRecipe(ctx context.Context, username string, recipeID int) error
	SaveMealPlan(ctx context.Context, username string, mealPlanID int) error
	SavedIngredients(ctx context.Context, username string) ([]entities.Ingredient, error)
	SavedRecipes(ctx context.Context, username string) ([]entities.Recipe, error)
	SavedMealPlans(ctx context.Context, username string) ([]entities.MealPlan, error)
}

type UserService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        *config.AuthConfig
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) UserServiceInterface {
	return &UserService{userRepo: userRepo, jwtService: jwtService, logger: logger, cfg: cfg}
}

func (s *UserService) Create(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserWithTokenDTO, error) {
	hashed, err := utils.HashPassword(payload.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, entities.User{
		Username:       payload.Username,
		Password:       hashed,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Email:          payload.Email,
		IsAdmin:        payload.IsAdmin,
		IsNutritionist: payload.IsNutritionist,
		IsClient:       payload.IsClient,
	})
	if err != nil {
		return nil, err
	}

	token, err := issueToken(s.jwtService, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("пользователь создан",
		zap.String("username", user.Username),
		zap.Bool("isAdmin", user.IsAdmin),
		zap.Bool("isNutritionist", user.IsNutritionist),
		zap.Bool("isClient", user.IsClient),
	)
	return &dto.UserWithTokenDTO{User: user, Token: token}, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*dto.UserDetailDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	recipes, ingredients, mealPlans, err := s.userRepo.SavedIDs(ctx, username)
	if err != nil {
		return nil, err
	}
	return &dto.UserDetailDTO{User: user, Recipes: recipes, Ingredients: ingredients, MealPlans: mealPlans}, nil
}

func (s *UserService) List(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepo.List(ctx, filter)
}

// Update хеширует новый пароль до передачи в репозиторий.
func (s *UserService) Update(ctx context.Context, username string, fields db.Fields) (*entities.User, error) {
	if raw, ok := fields.Get("password"); ok {
		password, isString := raw.(string)
		if !isString || password == "" {
			return nil, apperrors.NewValidationError("password must be a non-empty string")
		}
		hashed, err := utils.HashPassword(password, s.cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		fields = fields.Set("password", hashed)
	}
	return s.userRepo.Update(ctx, username, fields)
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.userRepo.Delete(ctx, username); err != nil {
		return err
	}
	s.logger.Info("пользователь удалён", zap.String("username", username))
	return nil
}

func (s *UserService) SaveIngredient(ctx context.Context, username string, ingredientID int) error {
	return s.userRepo.SaveIngredient(ctx, username, ingredientID)
}

func (s *UserService) SaveRecipe(ctx context.Context, username string, recipeID int) error {
	return s.userRepo.SaveRecipe(ctx, username, recipeID)
}

func (s *UserService) SaveMealPlan(ctx context.Context, username string, mealPlanID int) error {
	return s.userRepo.SaveMealPlan(ctx, username, mealPlanID)
}

func (s *UserService) SavedIngredients(ctx context.Context, username string) ([]entities.Ingredient, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.userRepo.SavedIngredients(ctx, username)
}

func (s *UserService) SavedRecipes(ctx context.Context, username string) ([]entities.Recipe, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.userRepo.SavedRecipes(ctx, username)
}

func (s *UserService) SavedMealPlans(ctx context.Context, username string) ([]entities.MealPlan, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.userRepo.SavedMealPlans(ctx, username)
}
