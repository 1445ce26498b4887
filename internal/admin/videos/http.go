// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package videos

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/athloshq/athlos/internal/admin/auth"
	"github.com/athloshq/athlos/internal/platform/apperr"
	requestutil "github.com/athloshq/athlos/internal/platform/request"
	"github.com/athloshq/athlos/internal/platform/respond"
	"github.com/athloshq/athlos/internal/platform/validate"
	"github.com/athloshq/athlos/pkg/convert"
	"github.com/athloshq/athlos/pkg/pagination"
)

// # HTTP Handler

// Handler exposes the video management endpoints of the dashboard.
type Handler struct {
	service *Service
	guard   *auth.Guard
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, guard *auth.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// Routes mounts the video management routes. Every route is permission
// gated; the router injects the verified claims upstream.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(read chi.Router) {
		read.Use(handler.guard.Require(auth.ResourceVideos, auth.ActionRead))
		read.Get("/", handler.list)
		read.Get("/moderation/queue", handler.moderationQueue)
		read.Get("/categories/options", handler.categoryOptions)
		read.Get("/{id}", handler.get)
		read.Get("/{id}/moderation-history", handler.moderationHistory)
	})

	router.Group(func(write chi.Router) {
		write.Use(handler.guard.Require(auth.ResourceVideos, auth.ActionWrite))
		write.Post("/", handler.create)
		write.Put("/{id}", handler.update)
		write.Post("/{id}/moderate", handler.moderate)
		write.Post("/bulk-moderate", handler.bulkModerate)
	})

	router.Group(func(remove chi.Router) {
		remove.Use(handler.guard.Require(auth.ResourceVideos, auth.ActionDelete))
		remove.Delete("/{id}", handler.remove)
	})

	return router
}

// # Request Payloads

type createVideoRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	FileURL         string  `json:"file_url"`
	ThumbnailURL    *string `json:"thumbnail_url"`
	DurationSeconds *int    `json:"duration"`
	FileSizeBytes   *int64  `json:"file_size"`
	Sport           string  `json:"sport"`
	Category        string  `json:"category"`
	DifficultyLevel *string `json:"difficulty_level"`
	Tags            *string `json:"tags"`
	UploadSource    *string `json:"upload_source"`
}

type updateVideoRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	FileURL         *string `json:"file_url"`
	ThumbnailURL    *string `json:"thumbnail_url"`
	DurationSeconds *int    `json:"duration"`
	FileSizeBytes   *int64  `json:"file_size"`
	Sport           *string `json:"sport"`
	Category        *string `json:"category"`
	DifficultyLevel *string `json:"difficulty_level"`
	Tags            *string `json:"tags"`
}

type moderateRequest struct {
	Action string  `json:"action"`
	Reason *string `json:"reason"`
}

type bulkModerateRequest struct {
	VideoIDs []int64 `json:"video_ids"`
	Action   string  `json:"action"`
	Reason   *string `json:"reason"`
}

// # Endpoints

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := Filter{
		Search:           queryValues.Get("search"),
		Sport:            queryValues.Get("sport"),
		Category:         queryValues.Get("category"),
		Status:           queryValues.Get("status"),
		ModerationStatus: queryValues.Get("moderation_status"),
		DifficultyLevel:  queryValues.Get("difficulty_level"),
		SortBy:           queryValues.Get("sort_by"),
		SortOrder:        queryValues.Get("sort_order"),
		Offset:           page.Offset(),
		Limit:            page.Limit,
	}

	validator := &validate.Validator{}
	if filter.Status != "" {
		validator.OneOf(FieldStatus, filter.Status, Statuses...)
	}
	if filter.ModerationStatus != "" {
		validator.OneOf(FieldModerationStatus, filter.ModerationStatus, ModerationStatuses...)
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

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createVideoRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, payload.Title).
		MaxLen(FieldTitle, payload.Title, 255).
		Required(FieldFileURL, payload.FileURL).
		Required(FieldSport, payload.Sport).
		OneOf(FieldSport, payload.Sport, Sports...).
		Required(FieldCategory, payload.Category).
		OneOf(FieldCategory, payload.Category, Categories...)
	if payload.DifficultyLevel != nil {
		validator.OneOf(FieldDifficultyLevel, *payload.DifficultyLevel, DifficultyLevels...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin := auth.AdminFrom(request.Context())
	if admin == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	video, err := handler.service.Create(request.Context(), admin.ID, CreateInput{
		Title:           payload.Title,
		Description:     payload.Description,
		FileURL:         payload.FileURL,
		ThumbnailURL:    payload.ThumbnailURL,
		DurationSeconds: payload.DurationSeconds,
		FileSizeBytes:   payload.FileSizeBytes,
		Sport:           payload.Sport,
		Category:        payload.Category,
		DifficultyLevel: payload.DifficultyLevel,
		Tags:            payload.Tags,
		UploadSource:    payload.UploadSource,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateVideoRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if payload.Title != nil {
		validator.Required(FieldTitle, *payload.Title)
	}
	if payload.Sport != nil {
		validator.OneOf(FieldSport, *payload.Sport, Sports...)
	}
	if payload.Category != nil {
		validator.OneOf(FieldCategory, *payload.Category, Categories...)
	}
	if payload.DifficultyLevel != nil {
		validator.OneOf(FieldDifficultyLevel, *payload.DifficultyLevel, DifficultyLevels...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Update(request.Context(), id, UpdateInput{
		Title:           payload.Title,
		Description:     payload.Description,
		FileURL:         payload.FileURL,
		ThumbnailURL:    payload.ThumbnailURL,
		DurationSeconds: payload.DurationSeconds,
		FileSizeBytes:   payload.FileSizeBytes,
		Sport:           payload.Sport,
		Category:        payload.Category,
		DifficultyLevel: payload.DifficultyLevel,
		Tags:            payload.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

func (handler *Handler) moderate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload moderateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldAction, payload.Action).
		OneOf(FieldAction, payload.Action, ActionApprove, ActionReject, ActionFlag, ActionUnflag)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin := auth.AdminFrom(request.Context())
	if admin == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	video, err := handler.service.Moderate(request.Context(), admin.ID, id, payload.Action, payload.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

func (handler *Handler) bulkModerate(writer http.ResponseWriter, request *http.Request) {
	var payload bulkModerateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Custom(FieldVideoIDs, len(payload.VideoIDs) == 0, "At least one video ID is required").
		Custom(FieldVideoIDs, len(payload.VideoIDs) > 100, "At most 100 videos per batch").
		Required(FieldAction, payload.Action).
		OneOf(FieldAction, payload.Action, ActionApprove, ActionReject, ActionFlag, ActionUnflag)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin := auth.AdminFrom(request.Context())
	if admin == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	result, err := handler.service.BulkModerate(request.Context(), admin.ID, payload.VideoIDs, payload.Action, payload.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

func (handler *Handler) moderationQueue(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	items, total, err := handler.service.ModerationQueue(request.Context(), page.Offset(), page.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) moderationHistory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	logs, err := handler.service.ModerationHistory(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, logs)
}

func (handler *Handler) categoryOptions(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]any{
		"categories":          Categories,
		"difficulty_levels":   DifficultyLevels,
		"sports":              Sports,
		"statuses":            Statuses,
		"moderation_statuses": ModerationStatuses,
	})
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin := auth.AdminFrom(request.Context())
	if admin == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	permanent := convert.ToBool(request.URL.Query().Get("permanent"))
	if err := handler.service.Delete(request.Context(), admin.ID, id, permanent); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "Video removed from catalog"
	if permanent {
		message = "Video permanently deleted"
	}
	respond.OK(writer, map[string]string{"message": message})
}
