package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Fritz-nvm/management-system/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance validador compartido; los errores se reportan con el nombre del tag `form`.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate aplica los tags `validate` de s y traduce las fallas a *domain.ValidationError.
func Validate(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validar formulario: %w", err)
	}
	out := domain.NewValidationError()
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

// message texto visible para una falla de validación.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "oneof":
		return "Select a valid choice."
	case "uuid":
		return "Select a valid choice."
	case "datetime":
		return "Enter a valid date."
	default:
		return "Enter a valid value."
	}
}
