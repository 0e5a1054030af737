package service

import (
	"errors"
	"reflect"
	"strings"

	"event-console/console-svc/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and reports the first failure as a
// validation error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		switch fe.Tag() {
		case "required":
			return domain.Invalid("%s is required", path)
		case "len":
			return domain.Invalid("%s must have %s values", path, fe.Param())
		case "min":
			if fe.Kind() == reflect.Slice {
				return domain.Invalid("%s must have at least %s entries", path, fe.Param())
			}
			return domain.Invalid("%s must be at least %s", path, fe.Param())
		}
		return domain.Invalid("%s failed %q validation", path, fe.Tag())
	}
	return domain.Invalid("%v", err)
}
