// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestAs_Chain verifies AppErrors are found through wrapping.
*/
func TestAs_Chain(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("Course"))

	appError := As(wrapped)
	if assert.NotNil(t, appError) {
		assert.Equal(t, "Course not found", appError.Message)
		assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
	}
	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.Nil(t, As(errors.New("plain")))
	assert.False(t, IsCode(errors.New("plain"), CodeNotFound))
}

/*
TestStatuses derives the HTTP status from the code.
*/
func TestStatuses(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Field("name", "x").HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").HTTPStatus)
	assert.Equal(t, http.StatusConflict, Conflict("x").HTTPStatus)

	internal := Internal(errors.New("disk full"))
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.NotContains(t, internal.Error(), "disk full")
}

/*
TestFormErrors separates inline form errors from everything else.
*/
func TestFormErrors(t *testing.T) {
	messages, ok := FormErrors(Field("email", "This email already exists."))
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"email": "This email already exists."}, messages)

	messages, ok = FormErrors(ValidationError("The submitted form could not be read"))
	assert.True(t, ok)
	assert.Equal(t, "The submitted form could not be read", messages[FormFieldGeneral])

	_, ok = FormErrors(Internal(errors.New("boom")))
	assert.False(t, ok)

	_, ok = FormErrors(errors.New("plain"))
	assert.False(t, ok)
}

/*
TestFieldMessages keeps the first message per field.
*/
func TestFieldMessages(t *testing.T) {
	err := ValidationError("Validation failed",
		FieldError{Field: "age", Message: "first"},
		FieldError{Field: "age", Message: "second"},
	)

	assert.Equal(t, map[string]string{"age": "first"}, FieldMessages(err))
	assert.Nil(t, FieldMessages(Conflict("x")))
}
