package models

import (
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so errors match the wire format
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		return slices.Contains(Platforms, Platform(fl.Field().String()))
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return slices.Contains(Weekdays, Weekday(fl.Field().String()))
	})
	return v
}

// Validator exposes the shared validator so other packages can check generated
// values against the same rules.
func Validator() *validator.Validate {
	return validate
}
