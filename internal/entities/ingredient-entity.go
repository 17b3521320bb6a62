package entities

import "github.com/aarondl/null/v8"

type Ingredient struct {
	ID       int          `json:"id" db:"id"`
	Aisle    null.String  `json:"aisle" db:"aisle"`
	Image    null.String  `json:"image" db:"image"`
	Name     string       `json:"name" db:"name"`
	Amount   null.Float64 `json:"amount" db:"amount"`
	Unit     null.String  `json:"unit" db:"unit"`
	Original null.String  `json:"original" db:"original"`
}

// Nutrient принадлежит либо ингредиенту, либо рецепту.
type Nutrient struct {
	ID                  int          `json:"id" db:"id"`
	Name                string       `json:"name" db:"name"`
	Amount              float64      `json:"amount" db:"amount"`
	Unit                string       `json:"unit" db:"unit"`
	PercentOfDailyNeeds null.Float64 `json:"percentOfDailyNeeds" db:"percentofdailyneeds"`
}
