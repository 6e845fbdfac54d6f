// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and form
decoding, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/session"
	"github.com/taibuivan/rmc/internal/platform/validate"
)

// IDParam is the route parameter carrying the numeric identifier in paths like /{id}/course-edit/.
const IDParam = "id"

// maxFormBytes caps urlencoded request bodies.
const maxFormBytes = 1 << 20

// decoder is safe for concurrent use and caches struct metadata.
var decoder = newDecoder()

func newDecoder() *form.Decoder {
	instance := form.NewDecoder()
	instance.SetTagName("form")
	return instance
}

/*
DecodeForm parses a urlencoded body (or query string for GET) into target.

Parameters:
  - writer: http.ResponseWriter (used to bound the body size)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidForm if parsing or decoding fails, otherwise nil
*/
func DecodeForm(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)

	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidForm
	}

	if err := decoder.Decode(target, request.Form); err != nil {
		return validate.ErrInvalidForm
	}
	return nil
}

/*
Bind decodes the form into target and validates it.

Returns:
  - error: validate.ErrInvalidForm, a VALIDATION_ERROR with field details, or nil
*/
func Bind(writer http.ResponseWriter, request *http.Request, target any) error {
	if err := DecodeForm(writer, request, target); err != nil {
		return err
	}
	return validate.Struct(target)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam parses a named URL parameter as a positive integer identifier.

Returns:
  - int64: The identifier
  - error: apperr.NotFound if the parameter is missing or malformed
*/
func IntParam(request *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || value < 1 {
		return 0, apperr.NotFound("Page")
	}
	return value, nil
}

/*
QueryID parses a positive integer identifier from the query string.
*/
func QueryID(request *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(request.URL.Query().Get(name), 10, 64)
	if err != nil || value < 1 {
		return 0, apperr.NotFound("Page")
	}
	return value, nil
}

/*
CurrentUser returns the logged-in identity of the request.

Returns:
  - session.Record: The identity stored at login
  - error: apperr.Unauthorized if the session holds no identity
*/
func CurrentUser(request *http.Request) (session.Record, error) {
	record, ok := session.FromContext(request.Context()).Info()
	if !ok {
		return session.Record{}, apperr.Unauthorized("Authentication required")
	}
	return record, nil
}
