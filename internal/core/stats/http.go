// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rmc/internal/platform/render"
	"github.com/taibuivan/rmc/internal/platform/respond"
)

const templateDataVisualisation = "data_visualisation.tmpl"

// Handler serves the data visualisation page and its chart data.
type Handler struct {
	statsService *Service
	renderer     *render.Renderer
}

func NewHandler(service *Service, renderer *render.Renderer) *Handler {
	return &Handler{statsService: service, renderer: renderer}
}

// StaffRoutes registers the chart page and its JSON endpoints.
func (handler *Handler) StaffRoutes(router chi.Router) {
	router.Get("/data-visualisation/", handler.page)
	router.Get("/data-visualisation/gender-distribution-socs/", handler.genderDistribution)
	router.Get("/data-visualisation/degree-programme-enrolment/", handler.programmeEnrolment)
}

func (handler *Handler) page(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.Page(writer, request, http.StatusOK, templateDataVisualisation, nil)
}

/*
GET /data-visualisation/gender-distribution-socs/

Response:
  - 200: {"data": {"title": "...", "labels": ["Male", "Female"], "values": [m, f]}}
*/
func (handler *Handler) genderDistribution(writer http.ResponseWriter, request *http.Request) {
	chart, err := handler.statsService.GenderDistribution(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chart)
}

/*
GET /data-visualisation/degree-programme-enrolment/

Response:
  - 200: {"data": {"title": "...", "labels": [programme...], "values": [count...]}}
*/
func (handler *Handler) programmeEnrolment(writer http.ResponseWriter, request *http.Request) {
	chart, err := handler.statsService.ProgrammeEnrolment(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chart)
}
