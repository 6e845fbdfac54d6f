// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	requestutil "github.com/taibuivan/rmc/internal/platform/request"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Age      int    `form:"age"`
}

func postForm(values url.Values) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

/*
TestBind verifies decoding and validation of a urlencoded body.
*/
func TestBind(t *testing.T) {
	var form loginForm
	request := postForm(url.Values{"email": {"ann@example.com"}, "password": {"pw"}, "age": {"20"}})

	require.NoError(t, requestutil.Bind(httptest.NewRecorder(), request, &form))
	assert.Equal(t, "ann@example.com", form.Email)
	assert.Equal(t, 20, form.Age)
}

/*
TestBind_Errors verifies decode and validation failures.
*/
func TestBind_Errors(t *testing.T) {
	var form loginForm

	err := requestutil.Bind(httptest.NewRecorder(), postForm(url.Values{"email": {"x"}}), &form)
	assert.Equal(t, "Enter a valid email address.", apperr.FieldMessages(err)["email"])

	err = requestutil.Bind(httptest.NewRecorder(), postForm(url.Values{"age": {"old"}}), &form)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

/*
TestIntParam verifies route identifiers are parsed strictly.
*/
func TestIntParam(t *testing.T) {
	router := chi.NewRouter()

	var (
		got int64
		err error
	)
	router.Get("/{id}/course-edit/", func(writer http.ResponseWriter, request *http.Request) {
		got, err = requestutil.IntParam(request, "id")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/42/course-edit/", nil))
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abc/course-edit/", nil))
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
