package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword использует настроенную стоимость bcrypt. Значения ниже
// bcrypt.MinCost bcrypt поднимает сам.
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(bytes), nil
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}
