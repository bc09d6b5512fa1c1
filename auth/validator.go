package auth

import (
	"hive-signal/errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,min=6"`
}

// ValidateRegister reports every broken rule at once.
func ValidateRegister(req RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	violations := make([]errors.Violation, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		violations = append(violations, errors.Violation{
			Field:   strings.ToLower(fe.Field()),
			Message: describe(fe),
		})
	}
	return errors.NewValidationError(violations...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "can't be blank"
	case "min":
		return "is too short (minimum is " + fe.Param() + " characters)"
	case "max":
		return "is too long (maximum is " + fe.Param() + " characters)"
	}
	return "is invalid"
}
