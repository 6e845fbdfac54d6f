// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package rendertest builds renderers over in-memory templates for handler tests.
package rendertest

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rmc/internal/platform/render"
)

// Layout renders only the page's content block.
const Layout = `{{block "content" .}}{{end}}`

// ErrorPage prints the status and message of an error page.
const ErrorPage = `{{define "content"}}error {{.Data.Status}}: {{.Data.Message}}{{end}}`

/*
New returns a renderer whose pages are the given template bodies.

Each body should define a "content" block. error.tmpl is added unless pages
already provide one.
*/
func New(t testing.TB, pages map[string]string) *render.Renderer {
	t.Helper()

	fsys := fstest.MapFS{
		"layout.tmpl": &fstest.MapFile{Data: []byte(Layout)},
		"error.tmpl":  &fstest.MapFile{Data: []byte(ErrorPage)},
	}
	for name, body := range pages {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}

	renderer, err := render.New(fsys, false)
	require.NoError(t, err)
	return renderer
}
