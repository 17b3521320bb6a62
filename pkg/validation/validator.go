package validation

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator адаптирует validator.Validate к echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New паникует, если правило не зарегистрировалось: сервер не должен
// стартовать с неполным набором правил.
func New() *CustomValidator {
	v := validator.New()

	registerNullTypes(v)

	if err := registerRules(v); err != nil {
		panic("registering validation rules: " + err.Error())
	}

	return &CustomValidator{validator: v}
}
