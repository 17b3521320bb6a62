package validation

import (
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,25}$`)

	MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}
	MealDays  = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)

// registerRules регистрирует теги, которые используются в DTO.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("username", isUsername); err != nil {
		return err
	}
	if err := v.RegisterValidation("meal_type", isMealType); err != nil {
		return err
	}
	if err := v.RegisterValidation("meal_day", isMealDay); err != nil {
		return err
	}
	return nil
}

func isUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

func isMealType(fl validator.FieldLevel) bool {
	return slices.Contains(MealTypes, strings.ToLower(fl.Field().String()))
}

func isMealDay(fl validator.FieldLevel) bool {
	return slices.Contains(MealDays, strings.ToLower(fl.Field().String()))
}
