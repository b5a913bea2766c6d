// Package validator runs struct-level checks against the `validate` tags on
// domain types, as a second line behind gin's request binding.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate returns nil when v passes, otherwise a field -> failed-tag map
// suitable for an error details payload.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
