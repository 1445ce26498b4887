// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package item

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/athloshq/athlos/internal/platform/request"
	"github.com/athloshq/athlos/internal/platform/respond"
	"github.com/athloshq/athlos/internal/platform/validate"
	"github.com/athloshq/athlos/pkg/convert"
)

// listLimitMax caps one page of the consumer catalog listing.
const (
	listLimitDefault = 10
	listLimitMax     = 100
)

// Handler exposes the consumer catalog endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the catalog routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/categories", handler.categories)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type createItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"`
	Category    string  `json:"category"`
	InStock     *bool   `json:"in_stock"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Category    *string `json:"category"`
	InStock     *bool   `json:"in_stock"`
}

// # Endpoints

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	filter := Filter{
		Category: queryValues.Get("category"),
		Offset:   convert.ToIntD(queryValues.Get("skip"), 0),
		Limit:    convert.ToIntD(queryValues.Get("limit"), listLimitDefault),
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Limit < 1 || filter.Limit > listLimitMax {
		filter.Limit = listLimitDefault
	}
	if raw := queryValues.Get("in_stock"); raw != "" {
		inStock := convert.ToBool(raw)
		filter.InStock = &inStock
	}

	validator := &validate.Validator{}
	if filter.Category != "" {
		validator.OneOf(FieldCategory, filter.Category, Categories...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"items": items,
		"total": total,
	})
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createItemRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, payload.Name).
		MaxLen(FieldName, payload.Name, 100).
		Positive(FieldPrice, payload.Price).
		Required(FieldCategory, payload.Category).
		OneOf(FieldCategory, payload.Category, Categories...)
	if payload.Description != nil {
		validator.MaxLen(FieldDescription, *payload.Description, 500)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	inStock := true
	if payload.InStock != nil {
		inStock = *payload.InStock
	}

	item, err := handler.service.Create(request.Context(), CreateInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		InStock:     inStock,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateItemRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if payload.Name != nil {
		validator.Required(FieldName, *payload.Name).MaxLen(FieldName, *payload.Name, 100)
	}
	if payload.Description != nil {
		validator.MaxLen(FieldDescription, *payload.Description, 500)
	}
	if payload.Price != nil {
		validator.Positive(FieldPrice, *payload.Price)
	}
	if payload.Category != nil {
		validator.OneOf(FieldCategory, *payload.Category, Categories...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Update(request.Context(), id, UpdateInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		InStock:     payload.InStock,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Item deleted successfully"})
}

func (handler *Handler) categories(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Categories)
}
