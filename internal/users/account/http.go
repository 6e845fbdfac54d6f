// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides the HTTP delivery layer for profile pages.

# Security

Every page here sits behind the access gate and a role check. Reset pages
additionally require the path ID to be the caller's own account.
*/
package account

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/render"
	requestutil "github.com/taibuivan/rmc/internal/platform/request"
	"github.com/taibuivan/rmc/internal/platform/respond"
	"github.com/taibuivan/rmc/internal/platform/session"
	"github.com/taibuivan/rmc/pkg/pagination"
)

// # Templates

const (
	templateStudentInfo   = "student_info.tmpl"
	templateStudentEdit   = "student_edit.tmpl"
	templateResetPassword = "reset_password.tmpl"
	templateStudentList   = "student_list.tmpl"
)

// Handler implements the HTTP layer for account pages.
type Handler struct {
	accountService *Service
	sessions       *session.Manager
	renderer       *render.Renderer
	pageOptions    pagination.Options
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, sessions *session.Manager, renderer *render.Renderer, pageOptions pagination.Options) *Handler {
	return &Handler{accountService: service, sessions: sessions, renderer: renderer, pageOptions: pageOptions}
}

// StudentRoutes registers the pages of a logged-in student.
func (handler *Handler) StudentRoutes(router chi.Router) {
	router.Get("/student-info/", handler.studentInfo)
	router.Get("/student-edit/", handler.studentEditForm)
	router.Post("/student-edit/", handler.studentEdit)
	router.Get("/{id}/student-reset/", handler.studentResetForm)
	router.Post("/{id}/student-reset/", handler.studentReset)
}

// StaffRoutes registers the pages of a logged-in staff member.
func (handler *Handler) StaffRoutes(router chi.Router) {
	router.Get("/student-list/", handler.studentList)
	router.Get("/{id}/staff-reset/", handler.staffResetForm)
	router.Post("/{id}/staff-reset/", handler.staffReset)
}

// # Request Payloads

type profileRequest struct {
	Name   string `form:"name"   validate:"required,max=32"`
	Gender int16  `form:"gender" validate:"required,oneof=1 2"`
	Age    int    `form:"age"    validate:"required,gte=1,lte=150"`
}

type resetRequest struct {
	Password        string `form:"password"         validate:"required,max=64"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// # Page Models

// EditPage is the data of student_edit.tmpl.
type EditPage struct {
	Form   profileRequest
	Errors map[string]string
}

// ResetPage is the data of reset_password.tmpl.
type ResetPage struct {
	Title  string
	Errors map[string]string
}

// # Student Profile

/*
GET /student-info/

Description: Shows the logged-in student's profile.
*/
func (handler *Handler) studentInfo(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.CurrentUser(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	student, err := handler.accountService.Profile(request.Context(), user.ID)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, templateStudentInfo, student)
}

func (handler *Handler) studentEditForm(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.CurrentUser(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	student, err := handler.accountService.Profile(request.Context(), user.ID)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, templateStudentEdit, EditPage{
		Form: profileRequest{Name: student.Name, Gender: student.Gender, Age: student.Age},
	})
}

/*
POST /student-edit/

Description: Updates name, gender and age, then refreshes the name held in
the session so the page header follows the change.

Response:
  - 302: Redirect to /student-info/
  - 200: Form re-rendered with inline errors
*/
func (handler *Handler) studentEdit(writer http.ResponseWriter, request *http.Request) {
	user, err := requestutil.CurrentUser(request)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	var input profileRequest
	if err := requestutil.Bind(writer, request, &input); err != nil {
		if errors, ok := handler.formErrors(writer, request, err); ok {
			handler.renderer.Page(writer, request, http.StatusOK, templateStudentEdit, EditPage{Form: input, Errors: errors})
		}
		return
	}

	student, err := handler.accountService.UpdateProfile(request.Context(), user.ID, ProfileUpdate(input))
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	user.Name = student.Name
	current := session.FromContext(request.Context())
	if err := current.Set(constants.SessionKeyInfo, user); err != nil {
		handler.renderer.Error(writer, request, apperr.Internal(err))
		return
	}
	if err := handler.sessions.Commit(writer, request); err != nil {
		handler.renderer.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.Redirect(writer, request, constants.StudentHomePath)
}

// # Password Reset

func (handler *Handler) studentResetForm(writer http.ResponseWriter, request *http.Request) {
	handler.resetForm(writer, request)
}

func (handler *Handler) staffResetForm(writer http.ResponseWriter, request *http.Request) {
	handler.resetForm(writer, request)
}

/*
POST /{id}/student-reset/

Response:
  - 302: Redirect to /student-info/ (also when the ID is not the caller's)
  - 200: Form re-rendered with inline errors
*/
func (handler *Handler) studentReset(writer http.ResponseWriter, request *http.Request) {
	handler.reset(writer, request, constants.StudentHomePath, handler.accountService.ResetStudentPassword)
}

// POST /{id}/staff-reset/ redirects to /course-management/ on success.
func (handler *Handler) staffReset(writer http.ResponseWriter, request *http.Request) {
	handler.reset(writer, request, "/course-management/", handler.accountService.ResetStaffPassword)
}

// ownAccount resolves the path ID and reports whether it belongs to the caller.
func (handler *Handler) ownAccount(request *http.Request) (session.Record, bool) {
	user, err := requestutil.CurrentUser(request)
	if err != nil {
		return session.Record{}, false
	}

	id, err := requestutil.IntParam(request, requestutil.IDParam)
	if err != nil || id != user.ID {
		return session.Record{}, false
	}
	return user, true
}

func (handler *Handler) resetForm(writer http.ResponseWriter, request *http.Request) {
	user, ok := handler.ownAccount(request)
	if !ok {
		respond.Redirect(writer, request, homeOf(request))
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, templateResetPassword, ResetPage{Title: resetTitle(user.Name)})
}

func (handler *Handler) reset(writer http.ResponseWriter, request *http.Request, success string, apply func(context.Context, int64, string) error) {
	user, ok := handler.ownAccount(request)
	if !ok {
		respond.Redirect(writer, request, homeOf(request))
		return
	}

	page := ResetPage{Title: resetTitle(user.Name)}

	var input resetRequest
	err := requestutil.Bind(writer, request, &input)
	if err == nil {
		err = apply(request.Context(), user.ID, input.Password)
	}

	if err != nil {
		if errors, ok := handler.formErrors(writer, request, err); ok {
			page.Errors = errors
			handler.renderer.Page(writer, request, http.StatusOK, templateResetPassword, page)
		}
		return
	}

	respond.Redirect(writer, request, success)
}

// # Staff Views

/*
GET /student-list/

Description: Paginated list of every student, flagging those who have reviewed.
*/
func (handler *Handler) studentList(writer http.ResponseWriter, request *http.Request) {
	page, err := pagination.New(request.Context(), request.URL.Query(), handler.accountService.Students(), handler.pageOptions)
	if err != nil {
		handler.renderer.Error(writer, request, err)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, templateStudentList, page)
}

// # Helpers

// formErrors returns inline messages for err, or renders the error page and reports false.
func (handler *Handler) formErrors(writer http.ResponseWriter, request *http.Request, err error) (map[string]string, bool) {
	errors, ok := apperr.FormErrors(err)
	if !ok {
		handler.renderer.Error(writer, request, err)
	}
	return errors, ok
}

func resetTitle(name string) string {
	return fmt.Sprintf("Reset password for %s", name)
}

func homeOf(request *http.Request) string {
	user, err := requestutil.CurrentUser(request)
	if err != nil {
		return constants.LoginPath
	}
	return user.Role.HomePath()
}
