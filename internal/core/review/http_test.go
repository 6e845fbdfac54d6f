// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
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
	commentsPage = `{{define "content"}}{{range .Data.Rows}}{{.CourseName}}={{.Overall}} {{end}}{{end}}`
	reviewsPage  = `{{define "content"}}{{.Data.Title}}:{{.Data.Page.Total}}{{end}}`
)

type reviewFixture struct {
	router  http.Handler
	service *Service
	repo    *fakeRepository
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	service, repo := newTestService(t)
	renderer := rendertest.New(t, map[string]string{
		templateStudentComment: commentsPage,
		templateViewReviews:    reviewsPage,
	})

	handler := NewHandler(service, renderer, pagination.Options{})
	router := chi.NewRouter()
	handler.StudentRoutes(router)
	handler.StaffRoutes(router)

	return &reviewFixture{router: router, service: service, repo: repo}
}

func (fixture *reviewFixture) serve(t *testing.T, record session.Record, request *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	current := session.New()
	require.NoError(t, current.Set(constants.SessionKeyInfo, record))

	recorder := httptest.NewRecorder()
	fixture.router.ServeHTTP(recorder, request.WithContext(session.WithSession(request.Context(), current)))
	return recorder
}

func comment(uid string, values url.Values) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/student/addcomment/?uid="+uid, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func fullForm() url.Values {
	return url.Values{
		"overall_score":    {"8"},
		"easiness_score":   {"5"},
		"interest_score":   {"9"},
		"usefulness_score": {"7"},
		"teaching_score":   {"6"},
		"comment":          {"Solid."},
	}
}

func decodeResult(t *testing.T, recorder *httptest.ResponseRecorder) CommentResult {
	t.Helper()

	var result CommentResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	return result
}

var amy = session.Record{ID: 1, Name: "Amy", Role: sec.RoleStudent}

/*
TestAddComment_Flow submits once, then gets the tip on the second attempt.
*/
func TestAddComment_Flow(t *testing.T) {
	fixture := newReviewFixture(t)

	recorder := fixture.serve(t, amy, comment("10", fullForm()))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":true}`, recorder.Body.String())
	require.Len(t, fixture.repo.reviews, 1)
	assert.Equal(t, int64(1), fixture.repo.reviews[0].StudentID)
	assert.Equal(t, int16(9), fixture.repo.reviews[0].Interest)

	// The duplicate check precedes validation, so even an empty form gets the tip.
	recorder = fixture.serve(t, amy, comment("10", url.Values{}))
	assert.JSONEq(t, `{"status":false,"tips":"You have already commented"}`, recorder.Body.String())
}

/*
TestAddComment_FieldErrors lists every failing field.
*/
func TestAddComment_FieldErrors(t *testing.T) {
	fixture := newReviewFixture(t)

	form := fullForm()
	form.Set("overall_score", "11")
	form.Set("teaching_score", "0")
	form.Set("comment", strings.Repeat("x", 301))

	result := decodeResult(t, fixture.serve(t, amy, comment("10", form)))
	assert.False(t, result.Status)
	assert.Equal(t, map[string][]string{
		FieldOverall:  {"Ensure this value is less than or equal to 10."},
		FieldTeaching: {"This field is required."},
		FieldComment:  {"Ensure this value has at most 300 characters."},
	}, result.Error)
	assert.Empty(t, fixture.repo.reviews)
}

/*
TestAddComment_UnknownCourse answers 404 for missing or unknown uids.
*/
func TestAddComment_UnknownCourse(t *testing.T) {
	fixture := newReviewFixture(t)

	for _, uid := range []string{"", "abc", "99"} {
		recorder := fixture.serve(t, amy, comment(uid, fullForm()))
		assert.Equal(t, http.StatusNotFound, recorder.Code, uid)
		assert.False(t, decodeResult(t, recorder).Status)
	}
}

/*
TestStaffViews titles the listing by its subject and 404s unknown subjects.
*/
func TestStaffViews(t *testing.T) {
	fixture := newReviewFixture(t)
	_, err := fixture.service.Submit(context.Background(), 2, 11, sampleSubmission())
	require.NoError(t, err)

	staff := session.Record{ID: 7, Name: "Boss", Role: sec.RoleStaff}

	recorder := fixture.serve(t, staff, httptest.NewRequest(http.MethodGet, "/2/view-reviews-student/", nil))
	assert.Equal(t, "Reviews by Ben:1", recorder.Body.String())

	recorder = fixture.serve(t, staff, httptest.NewRequest(http.MethodGet, "/10/view-reviews-course/", nil))
	assert.Equal(t, "Reviews of Algorithms:0", recorder.Body.String())

	recorder = fixture.serve(t, staff, httptest.NewRequest(http.MethodGet, "/5/view-reviews-student/", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = fixture.serve(t, amy, httptest.NewRequest(http.MethodGet, "/student-comment/", nil))
	assert.Equal(t, "", recorder.Body.String())

	recorder = fixture.serve(t, session.Record{ID: 2, Name: "Ben", Role: sec.RoleStudent}, httptest.NewRequest(http.MethodGet, "/student-comment/", nil))
	assert.Equal(t, "Statistics=8 ", recorder.Body.String())
}
