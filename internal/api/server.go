// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - The outer router carries the global chain, the health probes and the
    static assets. Everything else lives on the gated application router.
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/rmc/internal/platform/config"
	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/middleware"
	"github.com/taibuivan/rmc/internal/platform/respond"
	"github.com/taibuivan/rmc/internal/platform/sec"
	"github.com/taibuivan/rmc/internal/platform/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// RouteSet is implemented by handlers that register routes for one role.
type RouteSet interface {
	StudentRoutes(router chi.Router)
	StaffRoutes(router chi.Router)
}

// PublicRoutes is implemented by handlers whose pages sit on the login allow-list.
type PublicRoutes interface {
	Routes(router chi.Router)
}

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler and always returns 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler and returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Static serves the bundled CSS and JavaScript under /static/.
	Static http.Handler

	// Admin renders the /admin/ landing page.
	Admin http.HandlerFunc

	// Auth handles login, logout, registration and the captcha image.
	Auth PublicRoutes

	// Account, Course and Review expose pages for both roles.
	Account RouteSet
	Course  RouteSet
	Review  RouteSet

	// Stats serves the staff charts.
	Stats interface{ StaffRoutes(router chi.Router) }
}

// # Server Initialization

/*
NewServer constructs the router with the full middleware chain and registers
all route groups.

Every request that is not a probe or a static asset passes through the
session loader and the access gate, including requests for unknown paths.
*/
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, sessions *session.Manager, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.ClientIP(cfg.TrustedNetworks()))
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())

	// # Infrastructure Endpoints
	// Probes and assets stay outside the gate so the allow-list keeps its six paths.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/static/*", http.StripPrefix("/static/", h.Static))

	// # Application
	app := chi.NewRouter()
	app.Use(sessions.Load)
	app.Use(middleware.TrackSession)
	app.Use(middleware.Gate)
	app.Use(middleware.CSRF(cfg.CookieSecure))

	h.Auth.Routes(app)
	app.Get(constants.AdminPath, h.Admin)
	app.Get("/", home)

	app.Group(func(student chi.Router) {
		student.Use(middleware.RequireRole(sec.RoleStudent))
		h.Account.StudentRoutes(student)
		h.Course.StudentRoutes(student)
		h.Review.StudentRoutes(student)
	})

	app.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleStaff))
		h.Account.StaffRoutes(staff)
		h.Course.StaffRoutes(staff)
		h.Review.StaffRoutes(staff)
		h.Stats.StaffRoutes(staff)
	})

	r.Mount("/", app)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// home sends a logged-in user to the landing page of their role.
func home(writer http.ResponseWriter, request *http.Request) {
	record, _ := session.FromContext(request.Context()).Info()
	respond.Redirect(writer, request, record.Role.HomePath())
}

// Handler exposes the root router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
