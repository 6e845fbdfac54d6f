// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rmc/internal/platform/config"
	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/sec"
	"github.com/taibuivan/rmc/internal/platform/session"
)

// # Stubs

// text registers a GET route answering with its own path.
func text(router chi.Router, path string) {
	router.Get(path, func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(writer, path)
	})
}

type stubAuth struct {
	sessions *session.Manager
}

// Routes logs in as the role named by the query, so tests can obtain a cookie.
func (stub stubAuth) Routes(router chi.Router) {
	router.Get(constants.LoginPath, func(writer http.ResponseWriter, request *http.Request) {
		role := sec.Role(request.URL.Query().Get("role"))
		if role.Valid() {
			current := session.FromContext(request.Context())
			_ = current.Set(constants.SessionKeyInfo, session.Record{ID: 1, Name: "Amy", Role: role})
			if err := stub.sessions.Commit(writer, request); err != nil {
				http.Error(writer, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		_, _ = io.WriteString(writer, constants.LoginPath)
	})
}

type stubRoutes struct {
	student []string
	staff   []string
}

func (stub stubRoutes) StudentRoutes(router chi.Router) {
	for _, path := range stub.student {
		text(router, path)
	}
}

func (stub stubRoutes) StaffRoutes(router chi.Router) {
	for _, path := range stub.staff {
		text(router, path)
	}
}

type serverFixture struct {
	handler http.Handler
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(session.NewMemoryStore(), sec.NewSessionTokens("test-secret", constants.AppName), false)

	static := fstest.MapFS{"css/rmc.css": &fstest.MapFile{Data: []byte("body{}")}}
	liveness, readiness := NewHealthHandlers(HealthDependencies{}, logger)

	server := NewServer(ctx, &config.Config{ServerPort: "0"}, logger, sessions, Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Static:    http.FileServerFS(static),
		Admin:     func(writer http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(writer, "admin") },
		Auth:      stubAuth{sessions: sessions},
		Account:   stubRoutes{student: []string{"/student-info/"}, staff: []string{"/student-list/"}},
		Course:    stubRoutes{student: []string{"/student-course/"}, staff: []string{"/course-management/"}},
		Review:    stubRoutes{student: []string{"/student-comment/"}},
		Stats:     stubRoutes{staff: []string{"/data-visualisation/"}},
	})

	return &serverFixture{handler: server.Handler()}
}

func (fixture *serverFixture) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, request)
	return recorder
}

func (fixture *serverFixture) login(t *testing.T, role sec.Role) []*http.Cookie {
	t.Helper()

	recorder := fixture.get(constants.LoginPath+"?role="+string(role), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

// # Tests

/*
TestServer_Infrastructure keeps probes and assets outside the gate.
*/
func TestServer_Infrastructure(t *testing.T) {
	fixture := newServerFixture(t)

	assert.Equal(t, http.StatusOK, fixture.get("/health", nil).Code)
	assert.JSONEq(t, `{"data":{"status":"ready","checks":[]}}`, fixture.get("/ready", nil).Body.String())

	recorder := fixture.get("/static/css/rmc.css", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "body{}", recorder.Body.String())
}

/*
TestServer_GateCoversEveryAppPath redirects anonymous visitors, even on unknown paths.
*/
func TestServer_GateCoversEveryAppPath(t *testing.T) {
	fixture := newServerFixture(t)

	for _, path := range []string{"/", "/student-info/", "/course-management/", "/no-such-page/", "/login"} {
		recorder := fixture.get(path, nil)
		assert.Equal(t, http.StatusFound, recorder.Code, path)
		assert.Equal(t, constants.LoginPath, recorder.Header().Get("Location"), path)
	}

	assert.Equal(t, "admin", fixture.get(constants.AdminPath, nil).Body.String())
	assert.Equal(t, constants.LoginPath, fixture.get(constants.LoginPath, nil).Body.String())
}

/*
TestServer_RoleRouting sends each role to its own pages.
*/
func TestServer_RoleRouting(t *testing.T) {
	fixture := newServerFixture(t)

	student := fixture.login(t, sec.RoleStudent)
	assert.Equal(t, "/student-info/", fixture.get("/student-info/", student).Body.String())
	assert.Equal(t, "/student-comment/", fixture.get("/student-comment/", student).Body.String())

	recorder := fixture.get("/course-management/", student)
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, constants.StudentHomePath, recorder.Header().Get("Location"))

	recorder = fixture.get("/", student)
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, constants.StudentHomePath, recorder.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, fixture.get("/no-such-page/", student).Code)

	staff := fixture.login(t, sec.RoleStaff)
	assert.Equal(t, "/data-visualisation/", fixture.get("/data-visualisation/", staff).Body.String())

	recorder = fixture.get("/student-course/", staff)
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, constants.StaffHomePath, recorder.Header().Get("Location"))
}

/*
TestServer_UnsafeRequestsNeedCSRF rejects a POST without the echoed token.
*/
func TestServer_UnsafeRequestsNeedCSRF(t *testing.T) {
	fixture := newServerFixture(t)
	student := fixture.login(t, sec.RoleStudent)

	request := httptest.NewRequest(http.MethodPost, "/student-info/", nil)
	for _, cookie := range student {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
