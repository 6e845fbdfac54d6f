// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rmc/internal/core/programme"
	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/render"
	requestutil "github.com/taibuivan/rmc/internal/platform/request"
	"github.com/taibuivan/rmc/internal/platform/respond"
	"github.com/taibuivan/rmc/pkg/pagination"
)

// ManagementPath is the staff landing page of the catalogue.
const ManagementPath = "/course-management/"

// # Templates

const (
	templateManagement    = "course_management.tmpl"
	templateForm          = "course_form.tmpl"
	templateCourseList    = "course_list.tmpl"
	templateStudentCourse = "student_course.tmpl"
)

// Handler implements the HTTP layer for course pages.
type Handler struct {
	courseService *Service
	renderer      *render.Renderer
	pageOptions   pagination.Options
}

// NewHandler constructs a new course [Handler].
func NewHandler(service *Service, renderer *render.Renderer, pageOptions pagination.Options) *Handler {
	return &Handler{courseService: service, renderer: renderer, pageOptions: pageOptions}
}

// StaffRoutes registers the catalogue management pages.
func (handler *Handler) StaffRoutes(router chi.Router) {
	router.Get(ManagementPath, handler.management)
	router.Get("/course-add/", handler.addForm)
	router.Post("/course-add/", handler.add)
	router.Get("/{id}/course-edit/", handler.editForm)
	router.Post("/{id}/course-edit/", handler.edit)
	router.Post("/{id}/course-delete/", handler.delete)
	router.Get("/course-list/", handler.courseList)
}

// StudentRoutes registers the course listing of a logged-in student.
func (handler *Handler) StudentRoutes(router chi.Router) {
	router.Get("/student-course/", handler.studentCourses)
}

// # Request Payloads

type courseRequest struct {
	Name         string  `form:"name"                         validate:"required,max=64"`
	ProgrammeIDs []int64 `form:"associated_degree_programmes" validate:"required,min=1"`
}

// # Page Models

// FormPage is the data of course_form.tmpl, shared by add and edit.
type FormPage struct {
	Title      string
	Name       string
	Selected   []int64
	Programmes []*programme.Programme
	Errors     map[string]string
}

// IsSelected reports whether the programme is ticked in the form.
func (page FormPage) IsSelected(id int64) bool {
	return slices.Contains(page.Selected, id)
}

// # Staff Catalogue

/*
GET /course-management/

Description: Paginated catalogue with the programmes of every course.
*/
func (handler *Handler) management(writer http.ResponseWriter, request *http.Request) {
	handler.listing(writer, request, templateManagement, handler.courseService.Courses())
}

/*
GET /course-list/

Description: Paginated catalogue flagging courses that have reviews.
*/
func (handler *Handler) courseList(writer http.ResponseWriter, request *http.Request) {
	handler.listing(writer, request, templateCourseList, handler.courseService.Courses())
}

func (handler *Handler) addForm(writer http.ResponseWriter, request *http.Request) {
	handler.renderForm(writer, request, FormPage{Title: "Add course"})
}

/*
POST /course-add/

Response:
  - 302: Redirect to /course-management/
  - 200: Form re-rendered with inline errors
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input courseRequest
	err := requestutil.Bind(writer, request, &input)
	if err == nil {
		_, err = handler.courseService.Create(request.Context(), Input(input))
	}

	if err != nil {
		handler.formFailed(writer, request, FormPage{Title: "Add course", Name: input.Name, Selected: input.ProgrammeIDs}, err)
		return
	}

	respond.Redirect(writer, request, ManagementPath)
}

func (handler *Handler) editForm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, requestutil.IDParam)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	course, err := handler.courseService.Get(request.Context(), id)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderForm(writer, request, FormPage{Title: "Edit course", Name: course.Name, Selected: course.ProgrammeIDs})
}

/*
POST /{id}/course-edit/

Response:
  - 302: Redirect to /course-management/
  - 200: Form re-rendered with inline errors
  - 404: Unknown course
*/
func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, requestutil.IDParam)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	var input courseRequest
	err = requestutil.Bind(writer, request, &input)
	if err == nil {
		_, err = handler.courseService.Update(request.Context(), id, Input(input))
	}

	if err != nil {
		handler.formFailed(writer, request, FormPage{Title: "Edit course", Name: input.Name, Selected: input.ProgrammeIDs}, err)
		return
	}

	respond.Redirect(writer, request, ManagementPath)
}

/*
POST /{id}/course-delete/

Description: Removes the course and its reviews. Unknown IDs are ignored.
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, requestutil.IDParam)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	if err := handler.courseService.Delete(request.Context(), id); err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, ManagementPath)
}

// # Student Catalogue

/*
GET /student-course/

Description: Paginated courses of the student's programme, each flagged once
the student has reviewed it. The page hosts the review dialog.
*/
func (handler *Handler) studentCourses(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.CurrentUser(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.listing(writer, request, templateStudentCourse, handler.courseService.StudentCourses(user.ID))
}

// # Helpers

func (handler *Handler) listing(writer http.ResponseWriter, request *http.Request, name string, source pagination.Source[*Summary]) {
	page, err := pagination.New(request.Context(), request.URL.Query(), source, handler.pageOptions)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, name, page)
}

func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, page FormPage) {
	programmes, err := handler.courseService.Programmes(request.Context())
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	page.Programmes = programmes
	handler.renderer.Page(writer, request, http.StatusOK, templateForm, page)
}

// formFailed re-renders the form for validation errors and shows the error page otherwise.
func (handler *Handler) formFailed(writer http.ResponseWriter, request *http.Request, page FormPage, err error) {
	errors, ok := apperr.FormErrors(err)
	if !ok {
		handler.renderer.Error(writer, request, err)
		return
	}

	page.Errors = errors
	handler.renderForm(writer, request, page)
}
