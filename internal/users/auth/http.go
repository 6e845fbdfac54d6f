// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rmc/internal/captcha"
	"github.com/taibuivan/rmc/internal/platform/apperr"
	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/ctxutil"
	"github.com/taibuivan/rmc/internal/platform/render"
	requestutil "github.com/taibuivan/rmc/internal/platform/request"
	"github.com/taibuivan/rmc/internal/platform/respond"
	"github.com/taibuivan/rmc/internal/platform/session"
)

// # Definitions & Constructors

// Handler implements the login, logout, registration and captcha pages.
//
// # Scope
//
// Everything here except logout is reachable without a session; the access
// gate lets those exact paths through.
type Handler struct {
	authService *Service
	sessions    *session.Manager
	renderer    *render.Renderer
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, sessions *session.Manager, renderer *render.Renderer) *Handler {
	return &Handler{authService: service, sessions: sessions, renderer: renderer}
}

// Routes registers the authentication pages on router.
//
// # Endpoints
//   - GET  /captcha/             : Issues a verification code image.
//   - GET|POST /login/           : Student login.
//   - GET|POST /staff-login/     : Staff login.
//   - GET  /logout/              : Clears the session.
//   - GET  /staff-logout/        : Clears the session.
//   - GET|POST /registration/    : Student registration.
//   - GET|POST /staff-registration/ : Staff registration.
func (handler *Handler) Routes(router chi.Router) {
	router.Get(constants.CaptchaPath, handler.captcha)

	router.Get(constants.LoginPath, handler.studentLoginForm)
	router.Post(constants.LoginPath, handler.studentLogin)
	router.Get(constants.StaffLoginPath, handler.staffLoginForm)
	router.Post(constants.StaffLoginPath, handler.staffLogin)

	router.Get("/logout/", handler.logout(constants.LoginPath))
	router.Get("/staff-logout/", handler.logout(constants.StaffLoginPath))

	router.Get(constants.RegistrationPath, handler.studentRegistrationForm)
	router.Post(constants.RegistrationPath, handler.studentRegistration)
	router.Get(constants.StaffRegistrationPath, handler.staffRegistrationForm)
	router.Post(constants.StaffRegistrationPath, handler.staffRegistration)
}

// # Request Payloads

type loginRequest struct {
	Email            string `form:"email"             validate:"required,max=64"`
	Password         string `form:"password"          validate:"required"`
	VerificationCode string `form:"verification_code" validate:"required"`
}

type studentRegistrationRequest struct {
	Email           string `form:"email"            validate:"required,email,max=64"`
	Name            string `form:"name"             validate:"required,max=32"`
	Password        string `form:"password"         validate:"required,max=64"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Gender          int16  `form:"gender"           validate:"required,oneof=1 2"`
	Age             int    `form:"age"              validate:"required,gte=1,lte=150"`
	EntryDate       string `form:"entry_date"       validate:"required,datetime=2006-01-02"`
	DegreeProgramme string `form:"degree_programme" validate:"required,max=32"`
}

type staffRegistrationRequest struct {
	Email           string `form:"email"            validate:"required,email,max=64"`
	Name            string `form:"name"             validate:"required,max=32"`
	Password        string `form:"password"         validate:"required,max=64"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Gender          int16  `form:"gender"           validate:"required,oneof=1 2"`
}

// # Page Models

// LoginPage is the data of login.tmpl.
type LoginPage struct {
	Staff  bool
	Email  string
	Errors map[string]string
}

// RegistrationPage is the data of registration.tmpl.
type RegistrationPage struct {
	Staff      bool
	Form       any
	Programmes []string
	Errors     map[string]string
}

// # Captcha

/*
Captcha issues a fresh verification code.

GET /captcha/

Description: Stores the code under the "captcha" session key. An anonymous
session is shortened to one minute; a logged-in session keeps its lifetime.

Response:
  - 200: image/png
*/
func (handler *Handler) captcha(writer http.ResponseWriter, request *http.Request) {
	code, err := captcha.NewCode()
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	image, err := captcha.Render(code)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	current := session.FromContext(request.Context())
	if err := current.Set(constants.SessionKeyCaptcha, code); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	if !current.Truthy(constants.SessionKeyInfo) {
		current.SetExpiry(constants.CaptchaTTL)
	}

	if err := handler.sessions.Commit(writer, request); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	writer.Header().Set("Content-Type", "image/png")
	writer.Header().Set("Cache-Control", "no-store")
	_, _ = writer.Write(image)
}

// # Login

func (handler *Handler) studentLoginForm(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Page(writer, request, http.StatusOK, templateLogin, LoginPage{})
}

func (handler *Handler) staffLoginForm(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Page(writer, request, http.StatusOK, templateLogin, LoginPage{Staff: true})
}

/*
StudentLogin authenticates a student.

POST /login/

Description: Checks the verification code before the credentials, then
replaces the session with a fresh one holding the student record.

Response:
  - 302: Redirect to the student home page
  - 200: Form re-rendered with inline errors
*/
func (handler *Handler) studentLogin(writer http.ResponseWriter, request *http.Request) {
	handler.login(writer, request, false, func(input loginRequest) (session.Record, error) {
		student, err := handler.authService.LoginStudent(request.Context(), input.Email, input.Password)
		if err != nil {
			return session.Record{}, err
		}
		return student.Record(), nil
	})
}

// StaffLogin authenticates a staff member. POST /staff-login/
func (handler *Handler) staffLogin(writer http.ResponseWriter, request *http.Request) {
	handler.login(writer, request, true, func(input loginRequest) (session.Record, error) {
		staff, err := handler.authService.LoginStaff(request.Context(), input.Email, input.Password)
		if err != nil {
			return session.Record{}, err
		}
		return staff.Record(), nil
	})
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request, staff bool, authenticate func(loginRequest) (session.Record, error)) {
	var input loginRequest
	page := LoginPage{Staff: staff}

	if err := requestutil.Bind(writer, request, &input); err != nil {
		handler.loginFailed(writer, request, page, input, err)
		return
	}

	// The code is single use whatever the outcome.
	current := session.FromContext(request.Context())
	var issued string
	if _, err := current.Get(constants.SessionKeyCaptcha, &issued); err != nil {
		issued = ""
	}
	current.Delete(constants.SessionKeyCaptcha)

	if !captcha.Equal(input.VerificationCode, issued) {
		handler.loginFailed(writer, request, page, input, apperr.Field(FieldVerificationCode, MessageWrongCaptcha))
		return
	}

	record, err := authenticate(input)
	if err != nil {
		handler.loginFailed(writer, request, page, input, err)
		return
	}

	current.Clear()
	if err := current.Set(constants.SessionKeyInfo, record); err != nil {
		handler.renderer.Error(writer, request, apperr.Internal(err))
		return
	}
	current.SetExpiry(constants.SessionTTL)

	if err := handler.sessions.Commit(writer, request); err != nil {
		handler.renderer.Error(writer, request, apperr.Internal(err))
		return
	}

	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "login_succeeded",
		slog.Int64("user_id", record.ID),
		slog.String("role", string(record.Role)),
	)
	respond.Redirect(writer, request, record.Role.HomePath())
}

func (handler *Handler) loginFailed(writer http.ResponseWriter, request *http.Request, page LoginPage, input loginRequest, err error) {
	errors, ok := apperr.FormErrors(err)
	if !ok {
		handler.renderer.Error(writer, request, err)
		return
	}

	// Persist the consumed captcha before answering.
	if commitErr := handler.sessions.Commit(writer, request); commitErr != nil {
		handler.renderer.Error(writer, request, apperr.Internal(commitErr))
		return
	}

	page.Email = input.Email
	page.Errors = errors
	handler.renderer.Page(writer, request, http.StatusOK, templateLogin, page)
}

// # Logout

// logout clears the session and redirects to the matching login page.
func (handler *Handler) logout(destination string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		session.FromContext(request.Context()).Clear()

		if err := handler.sessions.Commit(writer, request); err != nil {
			ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "logout_commit_failed", slog.Any("error", err))
		}
		respond.Redirect(writer, request, destination)
	}
}

// # Registration

func (handler *Handler) studentRegistrationForm(writer http.ResponseWriter, request *http.Request) {
	handler.renderRegistration(writer, request, RegistrationPage{Form: studentRegistrationRequest{}})
}

func (handler *Handler) staffRegistrationForm(writer http.ResponseWriter, request *http.Request) {
	handler.renderRegistration(writer, request, RegistrationPage{Staff: true, Form: staffRegistrationRequest{}})
}

/*
StudentRegistration enrols a new student.

POST /registration/

Response:
  - 302: Redirect to /login/
  - 200: Form re-rendered with inline errors
*/
func (handler *Handler) studentRegistration(writer http.ResponseWriter, request *http.Request) {
	var input studentRegistrationRequest
	page := RegistrationPage{Form: &input}

	if err := requestutil.Bind(writer, request, &input); err != nil {
		handler.registrationFailed(writer, request, page, err)
		return
	}

	// Bind already checked the layout.
	entryDate, _ := time.Parse(entryDateLayout, input.EntryDate)

	_, err := handler.authService.RegisterStudent(request.Context(), StudentRegistration{
		Email:           input.Email,
		Name:            input.Name,
		Password:        input.Password,
		Gender:          input.Gender,
		Age:             input.Age,
		EntryDate:       entryDate,
		DegreeProgramme: input.DegreeProgramme,
	})
	if err != nil {
		handler.registrationFailed(writer, request, page, err)
		return
	}

	respond.Redirect(writer, request, constants.LoginPath)
}

// StaffRegistration enrols a new staff member. POST /staff-registration/
func (handler *Handler) staffRegistration(writer http.ResponseWriter, request *http.Request) {
	var input staffRegistrationRequest
	page := RegistrationPage{Staff: true, Form: &input}

	if err := requestutil.Bind(writer, request, &input); err != nil {
		handler.registrationFailed(writer, request, page, err)
		return
	}

	_, err := handler.authService.RegisterStaff(request.Context(), StaffRegistration{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
		Gender:   input.Gender,
	})
	if err != nil {
		handler.registrationFailed(writer, request, page, err)
		return
	}

	respond.Redirect(writer, request, constants.StaffLoginPath)
}

func (handler *Handler) registrationFailed(writer http.ResponseWriter, request *http.Request, page RegistrationPage, err error) {
	errors, ok := apperr.FormErrors(err)
	if !ok {
		handler.renderer.Error(writer, request, err)
		return
	}

	page.Errors = errors
	handler.renderRegistration(writer, request, page)
}

func (handler *Handler) renderRegistration(writer http.ResponseWriter, request *http.Request, page RegistrationPage) {
	if !page.Staff {
		names, err := handler.authService.ProgrammeNames(request.Context())
		if err != nil {
			handler.renderer.Error(writer, request, err)
			return
		}
		page.Programmes = names
	}

	handler.renderer.Page(writer, request, http.StatusOK, templateRegistration, page)
}
