package dto

import (
	"github.com/aarondl/null/v8"

	"remplr/internal/entities"
)

type CreateIngredientDTO struct {
	Aisle    null.String  `json:"aisle" validate:"omitempty,max=100"`
	Image    null.String  `json:"image" validate:"omitempty,max=255"`
	Name     string       `json:"name" validate:"required,max=255"`
	Amount   null.Float64 `json:"amount" validate:"omitempty,gte=0"`
	Unit     null.String  `json:"unit" validate:"omitempty,max=50"`
	Original null.String  `json:"original"`
}

type IngredientDetailDTO struct {
	*entities.Ingredient
	Nutrients []entities.Nutrient `json:"nutrients"`
}

type ImportResultDTO struct {
	Imported int `json:"imported"`
}
