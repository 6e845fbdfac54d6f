// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package render executes the HTML page templates.

Every page is parsed together with the shared layout into its own template
set, so pages can each define a "content" block without clashing. In reload
mode the sets are rebuilt on every render, which lets template edits show up
without a restart.

Usage:

	renderer, err := render.New(templatesFS, false)
	renderer.Page(writer, request, http.StatusOK, "student_info.tmpl", data)
*/
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/taibuivan/rmc/internal/platform/constants"
	"github.com/taibuivan/rmc/internal/platform/ctxutil"
	"github.com/taibuivan/rmc/internal/platform/respond"
	"github.com/taibuivan/rmc/internal/platform/session"
)

const (
	layoutName = "layout.tmpl"
	errorName  = "error.tmpl"
)

// View is the value every page template executes against.
type View struct {
	Data any

	// User is the logged-in identity, when LoggedIn is true.
	User     session.Record
	LoggedIn bool

	CSRFToken string
	CSRFField string
	Path      string
}

// Renderer executes named page templates.
//
// # Concurrency
//
// Renderer is safe for concurrent use.
type Renderer struct {
	fsys   fs.FS
	reload bool

	mu    sync.RWMutex
	pages map[string]*template.Template
}

/*
New parses every *.tmpl page in fsys.

Parameters:
  - fsys: fs.FS containing layout.tmpl and the page templates at its root
  - reload: bool (re-parse on every render)

Returns:
  - *Renderer: Ready-to-use renderer
  - error: Template parse failures
*/
func New(fsys fs.FS, reload bool) (*Renderer, error) {
	renderer := &Renderer{fsys: fsys, reload: reload}

	pages, err := renderer.parse()
	if err != nil {
		return nil, err
	}
	renderer.pages = pages

	return renderer, nil
}

func (renderer *Renderer) parse() (map[string]*template.Template, error) {
	names, err := fs.Glob(renderer.fsys, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render: list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutName {
			continue
		}

		page, err := template.New(name).Funcs(funcs).ParseFS(renderer.fsys, layoutName, name)
		if err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
		pages[name] = page
	}

	return pages, nil
}

func (renderer *Renderer) lookup(name string) (*template.Template, error) {
	if renderer.reload {
		pages, err := renderer.parse()
		if err != nil {
			return nil, err
		}

		renderer.mu.Lock()
		renderer.pages = pages
		renderer.mu.Unlock()
	}

	renderer.mu.RLock()
	defer renderer.mu.RUnlock()

	page, found := renderer.pages[name]
	if !found {
		return nil, fmt.Errorf("render: unknown template %q", name)
	}
	return page, nil
}

/*
Page renders a page template with the given status code.

Description: Output is buffered so a failing template never produces a half
written page; failures are logged and replaced by a plain 500 response.
*/
func (renderer *Renderer) Page(writer http.ResponseWriter, request *http.Request, status int, name string, data any) {
	view := View{
		Data:      data,
		CSRFToken: ctxutil.GetCSRFToken(request.Context()),
		CSRFField: constants.CSRFFieldName,
		Path:      request.URL.Path,
	}
	view.User, view.LoggedIn = session.FromContext(request.Context()).Info()

	var buffer bytes.Buffer
	page, err := renderer.lookup(name)
	if err == nil {
		err = page.ExecuteTemplate(&buffer, layoutName, view)
	}

	if err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "template_render_failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

// ErrorPage is the data of error.tmpl.
type ErrorPage struct {
	Status  int
	Title   string
	Message string
}

// Error renders err as an HTML error page. Internal causes are logged, never shown.
func (renderer *Renderer) Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := respond.Resolve(request, err)

	renderer.Page(writer, request, appError.HTTPStatus, errorName, ErrorPage{
		Status:  appError.HTTPStatus,
		Title:   http.StatusText(appError.HTTPStatus),
		Message: appError.Message,
	})
}

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"gender": func(code int16) string {
		switch code {
		case 1:
			return "Male"
		case 2:
			return "Female"
		default:
			return "Unknown"
		}
	},
	"level": func(code int16) string {
		if code == 1 {
			return "Undergraduate"
		}
		return "Postgraduate"
	},
	"active": func(current, prefix string) bool {
		return current == prefix || strings.HasPrefix(current, path.Clean(prefix)+"/")
	},
}
