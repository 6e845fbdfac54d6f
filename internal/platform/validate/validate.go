// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate turns struct-tag validation into field-level
// [apperr.AppError] details that forms can render inline.
//
// # Architecture
//
// Every form has a typed request struct with `validate` tags. Handlers decode
// into the struct, call [Struct] and re-render the form with the resulting
// field messages. Rules that need the database (duplicate emails, old
// passwords) are checked by services and reported with [apperr.Field].
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/rmc/internal/platform/apperr"
)

var (
	// ErrInvalidForm is returned when the request body cannot be decoded.
	ErrInvalidForm = apperr.ValidationError("The submitted form could not be read")

	engine = newEngine()
)

func newEngine() *validator.Validate {
	instance := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form names so messages line up with inputs
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	return instance
}

/*
Struct validates target against its `validate` tags.

Returns:
  - error: nil, or a VALIDATION_ERROR [apperr.AppError] with one detail per failed field
*/
func Struct(target any) error {
	err := engine.Struct(target)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperr.Internal(fmt.Errorf("validate: %w", err))
	}

	details := make([]apperr.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldError.Field(),
			Message: message(fieldError),
		})
	}

	return apperr.ValidationError("Validation failed", details...)
}

// message maps a failed rule to the text shown under the input.
func message(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if fieldError.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at least %s characters.", fieldError.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fieldError.Param())
	case "max":
		if fieldError.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at most %s characters.", fieldError.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fieldError.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fieldError.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fieldError.Param())
	case "oneof":
		return "Select a valid choice."
	case "datetime":
		return "Enter a valid date."
	case "eqfield":
		return "The confirm password does not match the password."
	case "nefield":
		return "The new password should not be the same as the old one."
	default:
		return "Enter a valid value."
	}
}
