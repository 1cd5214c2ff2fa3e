// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"addrbook/internal/errors"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed validation rule in a request body.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &CustomValidator{validator: v}
}

// Validate validates a struct based on its `validate` tags.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// FieldErrors extracts per-field failures from a validation error.
// It returns nil for errors that did not come from Validate.
func FieldErrors(err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fields := make([]FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, FieldError{
			Field: fieldErr.Field(),
			Rule:  fieldErr.Tag(),
			Param: fieldErr.Param(),
		})
	}

	return fields
}

// Message renders a validation error as a single line.
func Message(err error) string {
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.Param != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field.Field, field.Rule, field.Param))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", field.Field, field.Rule))
		}
	}

	return strings.Join(parts, "; ")
}
