package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	"remplr/internal/repositories"
	"remplr/pkg/types"
)

type IngredientServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateIngredientDTO) (*entities.Ingredient, error)
	Get(ctx context.Context, id int) (*dto.IngredientDetailDTO, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Ingredient, uint64, error)
	Update(ctx context.Context, id int, fields db.Fields) (*entities.Ingredient, error)
	Delete(ctx context.Context, id int) error
	Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error)
}

type IngredientService struct {
	ingredientRepo repositories.IngredientRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewIngredientService(
	ingredientRepo repositories.IngredientRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) IngredientServiceInterface {
	return &IngredientService{ingredientRepo: ingredientRepo, txManager: txManager, logger: logger}
}

func (s *IngredientService) Create(ctx context.Context, payload dto.CreateIngredientDTO) (*entities.Ingredient, error) {
	return s.ingredientRepo.Create(ctx, nil, payload)
}

func (s *IngredientService) Get(ctx context.Context, id int) (*dto.IngredientDetailDTO, error) {
	ingredient, err := s.ingredientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	nutrients, err := s.ingredientRepo.Nutrients(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.IngredientDetailDTO{Ingredient: ingredient, Nutrients: nutrients}, nil
}

func (s *IngredientService) List(ctx context.Context, filter types.Filter) ([]entities.Ingredient, uint64, error) {
	return s.ingredientRepo.List(ctx, filter)
}

func (s *IngredientService) Update(ctx context.Context, id int, fields db.Fields) (*entities.Ingredient, error) {
	return s.ingredientRepo.Update(ctx, id, fields)
}

func (s *IngredientService) Delete(ctx context.Context, id int) error {
	return s.ingredientRepo.Delete(ctx, id)
}
