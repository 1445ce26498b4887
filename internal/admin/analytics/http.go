// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/athloshq/athlos/internal/admin/auth"
	requestutil "github.com/athloshq/athlos/internal/platform/request"
	"github.com/athloshq/athlos/internal/platform/respond"
	"github.com/athloshq/athlos/internal/platform/validate"
	"github.com/athloshq/athlos/pkg/query"
)

// exportFormats lists the formats the export pipeline understands.
var exportFormats = []string{"csv", "excel", "pdf"}

// # HTTP Handler

// Handler exposes the analytics endpoints of the dashboard.
type Handler struct {
	service *Service
	guard   *auth.Guard
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, guard *auth.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// Routes mounts the analytics routes. Reports are readable with the
// analytics read action; the system snapshot and exports carry their own
// permissions.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(read chi.Router) {
		read.Use(handler.guard.Require(auth.ResourceAnalytics, auth.ActionRead))
		read.Get("/users", handler.userReport)
		read.Get("/sports", handler.sportReport)
		read.Get("/engagement", handler.engagementReport)
		read.Get("/summary", handler.summary)
	})

	router.Group(func(system chi.Router) {
		system.Use(handler.guard.Require(auth.ResourceSystem, auth.ActionRead))
		system.Get("/system", handler.systemReport)
	})

	router.Group(func(export chi.Router) {
		export.Use(handler.guard.Require(auth.ResourceAnalytics, auth.ActionExport))
		export.Post("/export", handler.export)
	})

	return router
}

// # Endpoints

func (handler *Handler) userReport(writer http.ResponseWriter, request *http.Request) {
	sports := query.StringSlice(request.URL.Query().Get("sports"))

	report, err := handler.service.UserReport(request.Context(), sports)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

func (handler *Handler) sportReport(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.SportReport(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

func (handler *Handler) engagementReport(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.EngagementReport(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

func (handler *Handler) systemReport(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.SystemReport())
}

func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.BuildSummary(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

type exportRequest struct {
	Format string `json:"format"`
}

func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	var payload exportRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if payload.Format == "" {
		payload.Format = "csv"
	}

	validator := &validate.Validator{}
	validator.OneOf("format", payload.Format, exportFormats...)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Accepted(writer, handler.service.QueueExport(payload.Format))
}
