package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nortia/backoffice/internal/pkg/apperror"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request DTO and converts validator failures into a
// field-level validation error.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Internal(err)
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
		})
	}
	return apperror.Validation("invalid request", fields...)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
