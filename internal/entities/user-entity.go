package entities

import "time"

type User struct {
	Username       string    `json:"username" db:"username"`
	Password       string    `json:"-" db:"password"`
	FirstName      string    `json:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	IsAdmin        bool      `json:"isAdmin" db:"is_admin"`
	IsNutritionist bool      `json:"isNutritionist" db:"is_nutritionist"`
	IsClient       bool      `json:"isClient" db:"is_client"`
	CreatedAt      time.Time `json:"-" db:"created_at"`
}
