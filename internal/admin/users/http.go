// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

// HTTP delivery layer for admin user management.
//
// Every route sits behind the authorization guard: the required resource is
// "users" and the action escalates from read to write to delete per endpoint.
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/athloshq/athlos/internal/admin/auth"
	"github.com/athloshq/athlos/internal/athlete"
	requestutil "github.com/athloshq/athlos/internal/platform/request"
	"github.com/athloshq/athlos/internal/platform/respond"
	"github.com/athloshq/athlos/internal/platform/validate"
	"github.com/athloshq/athlos/pkg/convert"
	"github.com/athloshq/athlos/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements admin user-management endpoints.
type Handler struct {
	service *Service
	guard   *auth.Guard
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, guard *auth.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// Routes returns a [chi.Router] configured with user-management routes.
//
// # Endpoints
//   - GET    /               : Filtered, paginated athlete listing (users:read).
//   - GET    /stats/summary  : Population statistics (users:read).
//   - GET    /{id}           : Full athlete detail (users:read).
//   - PATCH  /{id}/status    : Activate / deactivate / suspend (users:write).
//   - GET    /{id}/activity  : Engagement summary (users:read).
//   - DELETE /{id}           : Deactivate, or ?permanent=true for hard delete (users:delete).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(handler.guard.Require(auth.ResourceUsers, auth.ActionRead)).Get("/", handler.list)
	router.With(handler.guard.Require(auth.ResourceUsers, auth.ActionRead)).Get("/stats/summary", handler.stats)
	router.With(handler.guard.Require(auth.ResourceUsers, auth.ActionRead)).Get("/{id}", handler.get)
	router.With(handler.guard.Require(auth.ResourceUsers, auth.ActionRead)).Get("/{id}/activity", handler.activity)
	router.With(handler.guard.Require(auth.ResourceUsers, auth.ActionWrite)).Patch("/{id}/status", handler.updateStatus)
	router.With(handler.guard.Require(auth.ResourceUsers, auth.ActionDelete)).Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type updateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// # Endpoints

/*
list returns a filtered, sorted, paginated athlete listing.

GET /api/v1/admin/users?search=&sport=&status=&experience_level=&location=&sort_by=&sort_order=&page=&limit=

Response:
  - 200: PaginatedEnvelope of ListItem with total/total_pages/has_next/has_prev
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()
	pageParams := pagination.FromRequest(request)

	filter := athlete.Filter{
		Search:          queryValues.Get("search"),
		Sport:           queryValues.Get("sport"),
		Status:          queryValues.Get("status"),
		ExperienceLevel: queryValues.Get("experience_level"),
		Location:        queryValues.Get("location"),
		SortBy:          queryValues.Get("sort_by"),
		SortOrder:       queryValues.Get("sort_order"),
		Offset:          pageParams.Offset(),
		Limit:           pageParams.Limit,
	}

	if filter.Status != "" && filter.Status != "active" && filter.Status != "inactive" {
		respond.Error(writer, request, validate.RequiredError(athlete.FieldStatus,
			"Must be one of: active, inactive"))
		return
	}

	items, total, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(pageParams.Page, pageParams.Limit, total))
}

/*
get returns the full detail of one athlete.

GET /api/v1/admin/users/{id}
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
updateStatus changes an athlete's account status.

PATCH /api/v1/admin/users/{id}/status

Request:
  - Body: updateStatusRequest (Status: active|inactive|suspended, optional Reason)
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(athlete.FieldStatus, input.Status).
		OneOf(athlete.FieldStatus, input.Status, "active", "inactive", "suspended")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.UpdateStatus(request.Context(), id, input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
activity returns the derived engagement summary for one athlete.

GET /api/v1/admin/users/{id}/activity?days=30
*/
func (handler *Handler) activity(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	days := convert.ToIntD(request.URL.Query().Get("days"), 30)

	summary, err := handler.service.Activity(request.Context(), id, days)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

/*
stats returns population statistics for the dashboard summary card.

GET /api/v1/admin/users/stats/summary
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

/*
remove deletes or deactivates an athlete account.

DELETE /api/v1/admin/users/{id}?permanent=false

Permanent deletion requires the super_admin role on top of users:delete.
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	permanent := convert.ToBool(request.URL.Query().Get("permanent"))

	message, err := handler.service.Delete(request.Context(), auth.AdminFrom(request.Context()), id, permanent)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": message})
}
