// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/rmc/internal/platform/render"
)

const templateAdmin = "admin.tmpl"

// NewAdminPage returns the handler of the /admin/ landing page.
func NewAdminPage(renderer *render.Renderer) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		renderer.Page(writer, request, http.StatusOK, templateAdmin, nil)
	}
}
