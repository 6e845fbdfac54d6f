// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/ctxutil"
	"github.com/taibuivan/rmc/internal/platform/sec"
	"github.com/taibuivan/rmc/internal/platform/session"
)

// publicPaths are reachable without a session. Matching is exact: no
// prefixes, no patterns, no trailing-slash normalisation.
var publicPaths = map[string]struct{}{
	constants.LoginPath:             {},
	constants.StaffLoginPath:        {},
	constants.AdminPath:             {},
	constants.RegistrationPath:      {},
	constants.StaffRegistrationPath: {},
	constants.CaptchaPath:           {},
}

// IsPublicPath reports whether path is on the login allow-list.
func IsPublicPath(path string) bool {
	_, found := publicPaths[path]
	return found
}

/*
Gate lets a request through when its path is public or its session holds a
non-empty "info" record. Everything else is redirected to the login page with
302 Found and the downstream handler never runs.

# Failure Mode

A missing session handle or one that failed to load (store unavailable,
corrupt payload) counts as logged out. The gate never writes to the session.

Must be registered AFTER [session.Manager.Load].
*/
func Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if IsPublicPath(request.URL.Path) {
			next.ServeHTTP(writer, request)
			return
		}

		current := session.FromContext(request.Context())
		if current == nil || current.Err() != nil || !current.Truthy(constants.SessionKeyInfo) {
			if current != nil && current.Err() != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "gate_session_unavailable",
					slog.Any("error", current.Err()),
				)
			}
			http.Redirect(writer, request, constants.LoginPath, http.StatusFound)
			return
		}

		next.ServeHTTP(writer, request)
	})
}

/*
RequireRole restricts a route group to one role.

Users with another role are sent to their own landing page rather than shown
an error. Must be registered AFTER [Gate].
*/
func RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			record, ok := session.FromContext(request.Context()).Info()
			if !ok || !record.Role.Valid() {
				http.Redirect(writer, request, constants.LoginPath, http.StatusFound)
				return
			}

			if record.Role != role {
				http.Redirect(writer, request, record.Role.HomePath(), http.StatusFound)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
