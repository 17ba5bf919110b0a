package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator. Field names in errors come from
// the json tag when present, otherwise the lower-cased Go field name.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
		instance = v
	})
	return instance
}

// Check validates v and converts failures into a VALIDATION_FAILED error
// whose details map field name to message.
func Check(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	details := ToDetails(err)
	fields := make([]string, 0, len(details))
	for field := range details {
		fields = append(fields, field)
	}
	message := "invalid input"
	if len(fields) == 1 {
		message = fields[0] + " " + details[fields[0]].(string)
	} else if len(fields) > 1 {
		message = "please fill in all required fields"
	}
	return apperrors.NewValidationError(message, details)
}

// ToDetails converts validation errors into a map[field]message.
func ToDetails(err error) map[string]any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]any{"payload": "invalid payload"}
	}
	out := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = formatFieldError(fe)
	}
	return out
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "number", "numeric":
		return "must be a number"
	case "oneof":
		return "must be one of " + fe.Param()
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "len":
		return "must be exactly " + fe.Param() + " characters long"
	case "gt":
		return "must be selected"
	default:
		return "is invalid"
	}
}
