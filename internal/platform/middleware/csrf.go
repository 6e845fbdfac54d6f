// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/ctxutil"
)

const csrfTokenLength = 32

/*
CSRF implements the double-submit cookie pattern.

A random token lives in a cookie readable by page scripts; every unsafe
request must echo it in the form field or the X-CSRFToken header. The token
is placed on the request context for templates.
*/
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			var cookieToken string
			if cookie, err := request.Cookie(constants.CSRFCookieName); err == nil {
				cookieToken = cookie.Value
			}

			if !isSafeMethod(request.Method) {
				requestToken := request.Header.Get(constants.CSRFHeaderName)
				if requestToken == "" {
					requestToken = request.PostFormValue(constants.CSRFFieldName)
				}

				if cookieToken == "" || subtle.ConstantTimeCompare([]byte(cookieToken), []byte(requestToken)) != 1 {
					ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "csrf_rejected",
						slog.Bool("has_cookie", cookieToken != ""),
						slog.Bool("has_token", requestToken != ""),
					)
					writeError(writer, http.StatusForbidden, "CSRF verification failed. Please reload the page and try again.")
					return
				}
			}

			if cookieToken == "" {
				token, err := gonanoid.New(csrfTokenLength)
				if err != nil {
					writeError(writer, http.StatusInternalServerError, "An unexpected error occurred")
					return
				}
				cookieToken = token

				http.SetCookie(writer, &http.Cookie{
					Name:     constants.CSRFCookieName,
					Value:    cookieToken,
					Path:     "/",
					MaxAge:   int(constants.CSRFTokenTTL.Seconds()),
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			// Responses differ per cookie
			writer.Header().Add("Vary", "Cookie")

			ctx := ctxutil.WithCSRFToken(request.Context(), cookieToken)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
