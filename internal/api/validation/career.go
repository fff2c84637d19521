package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"career-relay/pkg/models"
)

// New returns a validator with the career validators registered and field names
// reported by their json tag
func New() *validator.Validate {
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
	RegisterCareerValidators(v)
	return v
}

// RegisterCareerValidators registers all career-related custom validators
func RegisterCareerValidators(v *validator.Validate) {
	v.RegisterValidation("mode", ValidateMode)
}

// ValidateMode accepts only the names of supported modes
func ValidateMode(fl validator.FieldLevel) bool {
	_, err := models.ParseMode(fl.Field().String())
	return err == nil
}

// Describe flattens validator errors into one client-facing sentence
func Describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s: field required", fe.Field()))
		case "mode":
			parts = append(parts, fmt.Sprintf("%s: unknown mode %q", fe.Field(), fe.Value()))
		default:
			parts = append(parts, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// EchoValidator adapts a validator to echo's Validator interface
type EchoValidator struct {
	Validator *validator.Validate
}

func (ev *EchoValidator) Validate(i interface{}) error {
	return ev.Validator.Struct(i)
}
