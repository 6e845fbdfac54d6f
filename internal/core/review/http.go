// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/ctxutil"
	"github.com/taibuivan/rmc/internal/platform/render"
	requestutil "github.com/taibuivan/rmc/internal/platform/request"
	"github.com/taibuivan/rmc/internal/platform/respond"
	"github.com/taibuivan/rmc/pkg/pagination"
)

// # Templates

const (
	templateStudentComment = "student_comment.tmpl"
	templateViewReviews    = "view_reviews.tmpl"
)

// Handler implements the HTTP layer for reviews.
type Handler struct {
	reviewService *Service
	renderer      *render.Renderer
	pageOptions   pagination.Options
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service, renderer *render.Renderer, pageOptions pagination.Options) *Handler {
	return &Handler{reviewService: service, renderer: renderer, pageOptions: pageOptions}
}

// StudentRoutes registers review submission and the student's own reviews.
func (handler *Handler) StudentRoutes(router chi.Router) {
	router.Post("/student/addcomment/", handler.addComment)
	router.Get("/student-comment/", handler.studentComments)
}

// StaffRoutes registers the per-student and per-course review listings.
func (handler *Handler) StaffRoutes(router chi.Router) {
	router.Get("/{id}/view-reviews-student/", handler.viewByStudent)
	router.Get("/{id}/view-reviews-course/", handler.viewByCourse)
}

// # Request Payloads

type commentRequest struct {
	Overall    int16  `form:"overall_score"    validate:"required,gte=1,lte=10"`
	Easiness   int16  `form:"easiness_score"   validate:"required,gte=1,lte=10"`
	Interest   int16  `form:"interest_score"   validate:"required,gte=1,lte=10"`
	Usefulness int16  `form:"usefulness_score" validate:"required,gte=1,lte=10"`
	Teaching   int16  `form:"teaching_score"   validate:"required,gte=1,lte=10"`
	Comment    string `form:"comment"          validate:"required,max=300"`
}

func (input commentRequest) submission() Submission {
	return Submission{
		Scores: Scores{
			Overall:    input.Overall,
			Easiness:   input.Easiness,
			Interest:   input.Interest,
			Usefulness: input.Usefulness,
			Teaching:   input.Teaching,
		},
		Comment: input.Comment,
	}
}

// CommentResult is the JSON answer of the review dialog.
type CommentResult struct {
	Status bool                `json:"status"`
	Tips   string              `json:"tips,omitempty"`
	Error  map[string][]string `json:"error,omitempty"`
}

// # Page Models

// ListPage is the data of view_reviews.tmpl.
type ListPage struct {
	Title string
	Page  *pagination.Page[*Review]
}

// # Submission

/*
POST /student/addcomment/?uid={courseID}

Description: Records the caller's review of a course. The duplicate check runs
before field validation, so a second submission always gets the tip.

Response:
  - 200: {"status": true}
  - 200: {"status": false, "tips": "You have already commented"}
  - 200: {"status": false, "error": {"field": ["message"]}}
  - 404: {"status": false, "tips": "..."} for an unknown course
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.CurrentUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	courseID, err := requestutil.QueryID(request, "uid")
	if err == nil {
		err = handler.reviewService.Eligible(request.Context(), user.ID, courseID)
	}
	if err != nil {
		handler.commentFailed(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.Bind(writer, request, &input); err != nil {
		handler.commentFailed(writer, request, err)
		return
	}

	if _, err := handler.reviewService.Submit(request.Context(), user.ID, courseID, input.submission()); err != nil {
		handler.commentFailed(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, CommentResult{Status: true})
}

func (handler *Handler) commentFailed(writer http.ResponseWriter, request *http.Request, err error) {
	if errors.Is(err, ErrAlreadyReviewed) {
		respond.JSON(writer, http.StatusOK, CommentResult{Tips: MessageAlreadyReviewed})
		return
	}

	if messages, ok := apperr.FormErrors(err); ok {
		result := CommentResult{Error: make(map[string][]string, len(messages))}
		for field, message := range messages {
			result.Error[field] = []string{message}
		}
		respond.JSON(writer, http.StatusOK, result)
		return
	}

	if apperr.IsCode(err, apperr.CodeNotFound) {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "review_unknown_course",
			slog.String("uid", request.URL.Query().Get("uid")),
		)
		respond.JSON(writer, http.StatusNotFound, CommentResult{Tips: "Course not found"})
		return
	}

	respond.Error(writer, request, err)
}

// # Listings

/*
GET /student-comment/

Description: Paginated reviews written by the caller.
*/
func (handler *Handler) studentComments(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.CurrentUser(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	page, err := pagination.New(request.Context(), request.URL.Query(), handler.reviewService.ByStudent(user.ID), handler.pageOptions)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, templateStudentComment, page)
}

// GET /{id}/view-reviews-student/
func (handler *Handler) viewByStudent(writer http.ResponseWriter, request *http.Request) {
	handler.view(writer, request, "Reviews by %s", handler.reviewService.StudentName, handler.reviewService.ByStudent)
}

// GET /{id}/view-reviews-course/
func (handler *Handler) viewByCourse(writer http.ResponseWriter, request *http.Request) {
	handler.view(writer, request, "Reviews of %s", handler.reviewService.CourseName, handler.reviewService.ByCourse)
}

// view renders one staff listing; unknown subjects get a 404 page, known ones with no reviews an empty table.
func (handler *Handler) view(
	writer http.ResponseWriter,
	request *http.Request,
	titleFormat string,
	name func(context.Context, int64) (string, error),
	source func(int64) pagination.Source[*Review],
) {
	id, err := requestutil.IntParam(request, requestutil.IDParam)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	subject, err := name(request.Context(), id)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	page, err := pagination.New(request.Context(), request.URL.Query(), source(id), handler.pageOptions)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, templateViewReviews, ListPage{
		Title: fmt.Sprintf(titleFormat, subject),
		Page:  page,
	})
}
