package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	"remplr/internal/repositories"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/service"
	"remplr/pkg/types"
)

type MealPlanServiceInterface interface {
	Create(ctx context.Context, caller *service.Claims, payload dto.CreateMealPlanDTO) (*dto.MealPlanDetailDTO, error)
	Get(ctx context.Context, id int) (*dto.MealPlanDetailDTO, error)
	List(ctx context.Context, filter types.Filter) ([]entities.MealPlan, uint64, error)
	Update(ctx context.Context, caller *service.Claims, id int, fields db.Fields) (*entities.MealPlan, error)
	Delete(ctx context.Context, id int) error
	Owner(ctx context.Context, id int) (string, error)
	AddRecipe(ctx context.Context, id int, entry dto.MealPlanEntryDTO) (*entities.MealPlanRecipe, error)
	RemoveRecipe(ctx context.Context, id, entryID int) error
	Export(ctx context.Context, id int) (*MealPlanExport, error)
}

type MealPlanService struct {
	mealPlanRepo repositories.MealPlanRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewMealPlanService(
	mealPlanRepo repositories.MealPlanRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) MealPlanServiceInterface {
	return &MealPlanService{mealPlanRepo: mealPlanRepo, txManager: txManager, logger: logger}
}

// Create атомарно сохраняет план и его записи. Создать план на другого
// пользователя может только админ.
func (s *MealPlanService) Create(ctx context.Context, caller *service.Claims, payload dto.CreateMealPlanDTO) (*dto.MealPlanDetailDTO, error) {
	if caller == nil {
		return nil, apperrors.NewContractViolation("meal plan create without caller")
	}
	owner := caller.Username
	if caller.IsAdmin && payload.CreatedBy != "" {
		owner = payload.CreatedBy
	}

	var result dto.MealPlanDetailDTO
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		plan, err := s.mealPlanRepo.Create(ctx, tx, payload.Name, owner)
		if err != nil {
			return err
		}
		result.MealPlan = plan
		result.Recipes = make([]entities.MealPlanRecipe, 0, len(payload.Recipes))
		for _, entry := range payload.Recipes {
			added, err := s.mealPlanRepo.AddRecipe(ctx, tx, plan.ID, entry)
			if err != nil {
				return err
			}
			result.Recipes = append(result.Recipes, *added)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("план питания создан",
		zap.Int("id", result.ID),
		zap.String("created_by", owner),
		zap.Int("entries", len(result.Recipes)),
	)
	return &result, nil
}

func (s *MealPlanService) Get(ctx context.Context, id int) (*dto.MealPlanDetailDTO, error) {
	plan, err := s.mealPlanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.mealPlanRepo.Recipes(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.MealPlanDetailDTO{MealPlan: plan, Recipes: entries}, nil
}

func (s *MealPlanService) List(ctx context.Context, filter types.Filter) ([]entities.MealPlan, uint64, error) {
	return s.mealPlanRepo.List(ctx, filter)
}

// Update: передать план другому пользователю может только админ.
func (s *MealPlanService) Update(ctx context.Context, caller *service.Claims, id int, fields db.Fields) (*entities.MealPlan, error) {
	if caller == nil {
		return nil, apperrors.NewContractViolation("meal plan update without caller")
	}
	if _, changesOwner := fields.Get("created_by"); changesOwner && !caller.IsAdmin {
		return nil, &apperrors.AuthorizationError{Gate: "ensureAdmin", Authenticated: true}
	}
	return s.mealPlanRepo.Update(ctx, id, fields)
}

func (s *MealPlanService) Delete(ctx context.Context, id int) error {
	return s.mealPlanRepo.Delete(ctx, id)
}

func (s *MealPlanService) Owner(ctx context.Context, id int) (string, error) {
	return s.mealPlanRepo.OwnerOf(ctx, id)
}

func (s *MealPlanService) AddRecipe(ctx context.Context, id int, entry dto.MealPlanEntryDTO) (*entities.MealPlanRecipe, error) {
	added, err := s.mealPlanRepo.AddRecipe(ctx, nil, id, entry)
	if err != nil {
		return nil, fmt.Errorf("adding recipe to meal plan %d: %w", id, err)
	}
	return added, nil
}

func (s *MealPlanService) RemoveRecipe(ctx context.Context, id, entryID int) error {
	return s.mealPlanRepo.RemoveRecipe(ctx, id, entryID)
}
