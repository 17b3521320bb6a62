package dto

import "remplr/internal/entities"

// CreateUserDTO - тело создания пользователя админом, флаги ролей явные.
type CreateUserDTO struct {
	RegisterDTO
	IsAdmin        bool `json:"isAdmin"`
	IsNutritionist bool `json:"isNutritionist"`
	IsClient       bool `json:"isClient"`
}

type UserWithTokenDTO struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}

// UserDetailDTO - пользователь вместе с id всего сохранённого.
type UserDetailDTO struct {
	*entities.User
	Recipes     []int `json:"recipes"`
	Ingredients []int `json:"ingredients"`
	MealPlans   []int `json:"mealplans"`
}
