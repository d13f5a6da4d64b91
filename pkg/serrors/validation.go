package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps struct field names to coded errors.
type ValidationErrors map[string]*Base

// ProcessValidatorErrors converts go-playground validator output into coded
// errors keyed by field name.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, err := range errs {
		out[err.Field()] = fromFieldError(err)
	}
	return out
}

// Messages flattens validation errors into plain field → message strings for
// API bodies.
func Messages(errs ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = err.Message
	}
	return out
}

func fromFieldError(err validator.FieldError) *Base {
	switch err.Tag() {
	case "required":
		return NewError("VALIDATION_REQUIRED", fmt.Sprintf("%s is required", err.Field()), err.Field())
	case "max":
		return NewError("VALIDATION_MAX_LENGTH", fmt.Sprintf("%s cannot exceed %s characters", err.Field(), err.Param()), err.Field())
	case "url", "http_url":
		return NewError("VALIDATION_URL", fmt.Sprintf("%s must be a valid URL", err.Field()), err.Field())
	case "oneof":
		return NewError("VALIDATION_ONEOF", fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param()), err.Field())
	case "excluded_unless":
		return NewError("VALIDATION_EXCLUDED", fmt.Sprintf("%s is not valid for this type", err.Field()), err.Field())
	default:
		return NewError("VALIDATION_FAILED", fmt.Sprintf("%s is invalid", err.Field()), err.Field())
	}
}
