// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/validate"
)

type signupForm struct {
	Email           string `form:"email" validate:"required,email,max=64"`
	Name            string `form:"name" validate:"required,max=32"`
	Password        string `form:"password" validate:"required,min=6,max=64"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Gender          int    `form:"gender" validate:"oneof=1 2"`
	Age             int    `form:"age" validate:"gte=16,lte=100"`
}

func validForm() signupForm {
	return signupForm{
		Email:           "ann@example.com",
		Name:            "Ann",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Gender:          2,
		Age:             21,
	}
}

/*
TestStruct_Valid verifies a complete form passes.
*/
func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, validate.Struct(validForm()))
}

/*
TestStruct_FieldMessages verifies each failing rule is reported under its form name.
*/
func TestStruct_FieldMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*signupForm)
		field   string
		message string
	}{
		{"missing_email", func(f *signupForm) { f.Email = "" }, "email", "This field is required."},
		{"bad_email", func(f *signupForm) { f.Email = "not-an-email" }, "email", "Enter a valid email address."},
		{"short_password", func(f *signupForm) { f.Password, f.ConfirmPassword = "abc", "abc" }, "password", "Ensure this value has at least 6 characters."},
		{"mismatch", func(f *signupForm) { f.ConfirmPassword = "other" }, "confirm_password", "The confirm password does not match the password."},
		{"gender", func(f *signupForm) { f.Gender = 3 }, "gender", "Select a valid choice."},
		{"too_young", func(f *signupForm) { f.Age = 3 }, "age", "Ensure this value is greater than or equal to 16."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := validate.Struct(form)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, tt.message, apperr.FieldMessages(err)[tt.field])
		})
	}
}

/*
TestStruct_AccumulatesErrors verifies every failing field is reported.
*/
func TestStruct_AccumulatesErrors(t *testing.T) {
	err := validate.Struct(signupForm{Gender: 1, Age: 20})
	require.Error(t, err)

	messages := apperr.FieldMessages(err)
	assert.Contains(t, messages, "email")
	assert.Contains(t, messages, "name")
	assert.Contains(t, messages, "password")
	assert.Contains(t, messages, "confirm_password")
}
