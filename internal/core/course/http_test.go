// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/render/rendertest"
	"github.com/taibuivan/rmc/internal/platform/sec"
	"github.com/taibuivan/rmc/internal/platform/session"
	"github.com/taibuivan/rmc/pkg/pagination"
)

const (
	listPage = `{{define "content"}}{{range .Data.Rows}}{{.ID}}:{{.Name}}:{{.Reviewed}} {{end}}{{end}}`
	formPage = `{{define "content"}}{{.Data.Title}}|{{.Data.Name}}|` +
		`{{range .Data.Programmes}}{{.ID}}={{$.Data.IsSelected .ID}} {{end}}|` +
		`{{range $field, $message := .Data.Errors}}{{$field}}={{$message}};{{end}}{{end}}`
)

type courseFixture struct {
	router  http.Handler
	service *Service
	repo    *fakeRepository
}

func newCourseFixture(t *testing.T) *courseFixture {
	t.Helper()

	service, repo := newTestService(t)
	renderer := rendertest.New(t, map[string]string{
		templateManagement:    listPage,
		templateCourseList:    listPage,
		templateStudentCourse: listPage,
		templateForm:          formPage,
	})

	handler := NewHandler(service, renderer, pagination.Options{PageSize: 5})
	router := chi.NewRouter()
	handler.StaffRoutes(router)
	handler.StudentRoutes(router)

	return &courseFixture{router: router, service: service, repo: repo}
}

func (fixture *courseFixture) serve(t *testing.T, record session.Record, request *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	current := session.New()
	require.NoError(t, current.Set(constants.SessionKeyInfo, record))

	recorder := httptest.NewRecorder()
	fixture.router.ServeHTTP(recorder, request.WithContext(session.WithSession(request.Context(), current)))
	return recorder
}

func post(path, body string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

var staff = session.Record{ID: 7, Name: "Boss", Role: sec.RoleStaff}

/*
TestAdd_CreatesAndRedirects submits a course attached to two programmes.
*/
func TestAdd_CreatesAndRedirects(t *testing.T) {
	fixture := newCourseFixture(t)

	recorder := fixture.serve(t, staff, post("/course-add/", "name=Big+Data&associated_degree_programmes=2&associated_degree_programmes=1"))
	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, ManagementPath, recorder.Header().Get("Location"))

	require.Len(t, fixture.repo.courses, 1)
	assert.Equal(t, []int64{1, 2}, fixture.repo.courses[0].ProgrammeIDs)
}

/*
TestAdd_Errors keeps the submitted values and shows the messages inline.
*/
func TestAdd_Errors(t *testing.T) {
	fixture := newCourseFixture(t)

	recorder := fixture.serve(t, staff, post("/course-add/", "name=Big+Data"))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Add course|Big Data|1=false 2=false 3=false |associated_degree_programmes=This field is required.;", recorder.Body.String())

	recorder = fixture.serve(t, staff, post("/course-add/", "name=&associated_degree_programmes=3&associated_degree_programmes=9"))
	body := recorder.Body.String()
	assert.Contains(t, body, "3=true")
	assert.Contains(t, body, "name=This field is required.;")

	recorder = fixture.serve(t, staff, post("/course-add/", "name=Big+Data&associated_degree_programmes=9"))
	assert.Contains(t, recorder.Body.String(), "associated_degree_programmes="+MessageUnknownProgramme)
	assert.Empty(t, fixture.repo.courses)
}

/*
TestEdit_PrefillsAndUpdates covers the edit form, its submission and unknown IDs.
*/
func TestEdit_PrefillsAndUpdates(t *testing.T) {
	fixture := newCourseFixture(t)
	_, err := fixture.service.Create(context.Background(), Input{Name: "Big Data", ProgrammeIDs: []int64{2}})
	require.NoError(t, err)

	recorder := fixture.serve(t, staff, httptest.NewRequest(http.MethodGet, "/1/course-edit/", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Edit course|Big Data|1=false 2=true 3=false |", recorder.Body.String())

	recorder = fixture.serve(t, staff, post("/1/course-edit/", "name=Renamed&associated_degree_programmes=3"))
	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "Renamed", fixture.repo.courses[0].Name)

	recorder = fixture.serve(t, staff, httptest.NewRequest(http.MethodGet, "/99/course-edit/", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = fixture.serve(t, staff, post("/99/course-edit/", "name=x&associated_degree_programmes=1"))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestDelete_OnlyOnPost leaves the course alone on GET.
*/
func TestDelete_OnlyOnPost(t *testing.T) {
	fixture := newCourseFixture(t)
	_, err := fixture.service.Create(context.Background(), Input{Name: "Big Data", ProgrammeIDs: []int64{1}})
	require.NoError(t, err)

	recorder := fixture.serve(t, staff, httptest.NewRequest(http.MethodGet, "/1/course-delete/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	require.Len(t, fixture.repo.courses, 1)

	recorder = fixture.serve(t, staff, post("/1/course-delete/", ""))
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Empty(t, fixture.repo.courses)
}

/*
TestStudentCourses_UsesSessionIdentity lists only the caller's programme.
*/
func TestStudentCourses_UsesSessionIdentity(t *testing.T) {
	fixture := newCourseFixture(t)
	for _, input := range []Input{
		{Name: "Algorithms", ProgrammeIDs: []int64{1}},
		{Name: "Statistics", ProgrammeIDs: []int64{2}},
	} {
		_, err := fixture.service.Create(context.Background(), input)
		require.NoError(t, err)
	}
	fixture.repo.programmeOf[4] = 2
	fixture.repo.reviewedBy[4] = []int64{2}

	student := session.Record{ID: 4, Name: "Amy", Role: sec.RoleStudent}
	recorder := fixture.serve(t, student, httptest.NewRequest(http.MethodGet, "/student-course/", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "2:Statistics:true ", recorder.Body.String())

	recorder = fixture.serve(t, staff, httptest.NewRequest(http.MethodGet, "/course-management/?page=7", nil))
	assert.Equal(t, "1:Algorithms:false 2:Statistics:false ", recorder.Body.String())
}
