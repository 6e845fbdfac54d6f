// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type shared by services, handlers and templates.

A storage or domain failure becomes an [*AppError] carrying a [Code]. Handlers
then pick the presentation: a form re-rendered with inline messages for
VALIDATION_ERROR, the JSON tips of the review dialog, or the HTML error page
with the status implied by the code.
*/
package apperr

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error class.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL_ERROR"
)

var statuses = map[Code]int{
	CodeValidation:   http.StatusBadRequest,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeNotFound:     http.StatusNotFound,
	CodeConflict:     http.StatusConflict,
	CodeInternal:     http.StatusInternalServerError,
}

// AppError is the canonical error type of the application.
//
// # Security
//
// Cause is for server-side logging only and never reaches the browser.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`

	// HTTPStatus is derived from Code.
	HTTPStatus int `json:"-"`

	Cause   error        `json:"-"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError is a message attached to one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes Cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

func newError(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: statuses[code]}
}

// # Constructors

// NotFound reports a missing resource, e.g. NotFound("Course") reads "Course not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, resource+" not found")
}

// Unauthorized reports a request without a usable identity.
func Unauthorized(message string) *AppError {
	return newError(CodeUnauthorized, message)
}

// Conflict reports a unique-constraint violation such as a second review.
func Conflict(message string) *AppError {
	return newError(CodeConflict, message)
}

// ValidationError reports invalid input, optionally per field.
func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(CodeValidation, message)
	err.Details = details
	return err
}

// Field is a validation error attached to a single form field.
func Field(field, message string) *AppError {
	return ValidationError(message, FieldError{Field: field, Message: message})
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(cause error) *AppError {
	err := newError(CodeInternal, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// # Inspection

// As extracts the [*AppError] from err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries an [*AppError] with the given code.
func IsCode(err error, code Code) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// FieldMessages flattens the field details of err for a form. The first
// message per field wins.
func FieldMessages(err error) map[string]string {
	ae := As(err)
	if ae == nil || len(ae.Details) == 0 {
		return nil
	}

	messages := make(map[string]string, len(ae.Details))
	for _, detail := range ae.Details {
		if _, exists := messages[detail.Field]; !exists {
			messages[detail.Field] = detail.Message
		}
	}
	return messages
}

// FormFieldGeneral keys messages that belong to the whole form rather than one field.
const FormFieldGeneral = "form"

/*
FormErrors reports whether err should be shown inline on a form.

Returns:
  - map[string]string: Field messages; a detail-less validation error is keyed by [FormFieldGeneral]
  - bool: false for any error that is not a VALIDATION_ERROR
*/
func FormErrors(err error) (map[string]string, bool) {
	ae := As(err)
	if ae == nil || ae.Code != CodeValidation {
		return nil, false
	}

	messages := FieldMessages(err)
	if messages == nil {
		messages = map[string]string{FormFieldGeneral: ae.Message}
	}
	return messages, true
}
