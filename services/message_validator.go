package services

import (
	"hive-signal/domain"
	"hive-signal/errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phonePattern accepts an optional leading plus followed by 2 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{2,15}$`)

var fieldNames = map[string]string{
	"OwnerID":     "owner_id",
	"PhoneNumber": "phone_number",
	"Content":     "content",
}

func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name, ok := fieldNames[field.Name]; ok {
			return name
		}
		return field.Name
	})
	return v
}

// validateDraft reports every violated field, in field order.
// Owner and content made only of whitespace count as blank.
func validateDraft(v *validator.Validate, draft domain.MessageDraft) error {
	draft.OwnerID = strings.TrimSpace(draft.OwnerID)
	draft.Content = strings.TrimSpace(draft.Content)
	err := v.Struct(draft)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	violations := make([]errors.Violation, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		message := "is invalid"
		if fe.Tag() == "required" {
			message = "can't be blank"
		}
		violations = append(violations, errors.Violation{Field: fe.Field(), Message: message})
	}
	return errors.NewValidationError(violations...)
}
