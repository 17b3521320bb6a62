package services

import (
	"context"

	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	"remplr/internal/repositories"
	"remplr/pkg/types"
)

type RecipeServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateRecipeDTO) (*entities.Recipe, error)
	Get(ctx context.Context, id int) (*dto.RecipeDetailDTO, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Recipe, uint64, error)
	Update(ctx context.Context, id int, fields db.Fields) (*entities.Recipe, error)
	Delete(ctx context.Context, id int) error
	AddIngredient(ctx context.Context, recipeID, ingredientID int, payload dto.RecipeIngredientDTO) (*entities.RecipeIngredient, error)
}

type RecipeService struct {
	recipeRepo repositories.RecipeRepositoryInterface
	logger     *zap.Logger
}

func NewRecipeService(recipeRepo repositories.RecipeRepositoryInterface, logger *zap.Logger) RecipeServiceInterface {
	return &RecipeService{recipeRepo: recipeRepo, logger: logger}
}

func (s *RecipeService) Create(ctx context.Context, payload dto.CreateRecipeDTO) (*entities.Recipe, error) {
	recipe, err := s.recipeRepo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("рецепт создан", zap.Int("id", recipe.ID), zap.String("title", recipe.Title))
	return recipe, nil
}

func (s *RecipeService) Get(ctx context.Context, id int) (*dto.RecipeDetailDTO, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.recipeRepo.Ingredients(ctx, id)
	if err != nil {
		return nil, err
	}
	nutrients, err := s.recipeRepo.Nutrients(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.RecipeDetailDTO{Recipe: recipe, Ingredients: ingredients, Nutrients: nutrients}, nil
}

func (s *RecipeService) List(ctx context.Context, filter types.Filter) ([]entities.Recipe, uint64, error) {
	return s.recipeRepo.List(ctx, filter)
}

func (s *RecipeService) Update(ctx context.Context, id int, fields db.Fields) (*entities.Recipe, error) {
	return s.recipeRepo.Update(ctx, id, fields)
}

func (s *RecipeService) Delete(ctx context.Context, id int) error {
	return s.recipeRepo.Delete(ctx, id)
}

func (s *RecipeService) AddIngredient(ctx context.Context, recipeID, ingredientID int, payload dto.RecipeIngredientDTO) (*entities.RecipeIngredient, error) {
	return s.recipeRepo.AddIngredient(ctx, recipeID, ingredientID, payload)
}
