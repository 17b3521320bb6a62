package dto

type LoginDTO struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required"`
}

type RegisterDTO struct {
	Username  string `json:"username" validate:"required,username"`
	Password  string `json:"password" validate:"required,min=5,max=20"`
	FirstName string `json:"firstName" validate:"required,min=1,max=30"`
	LastName  string `json:"lastName" validate:"required,min=1,max=30"`
	Email     string `json:"email" validate:"required,email,min=6,max=60"`
}

type TokenResponseDTO struct {
	Token string `json:"token"`
}
