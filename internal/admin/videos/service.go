// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package videos

import (
	"context"
	"time"

	"github.com/athloshq/athlos/internal/platform/apperr"
	"github.com/athloshq/athlos/pkg/pointer"
	"github.com/athloshq/athlos/pkg/slice"
)

// # Service

// Service implements video catalog and moderation use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Catalog Operations

// CreateInput holds the data required to register new video content.
type CreateInput struct {
	Title           string
	Description     *string
	FileURL         string
	ThumbnailURL    *string
	DurationSeconds *int
	FileSizeBytes   *int64
	Sport           string
	Category        string
	DifficultyLevel *string
	Tags            *string // JSON-encoded list
	UploadSource    *string
}

/*
Create registers a new video entry uploaded through the dashboard.

Description: Dashboard uploads are trusted, so they enter the catalog
pre-approved and immediately published, with the uploading admin recorded as
the moderator.

Parameters:
  - context: context.Context
  - adminID: int64 (The uploading administrator)
  - input: CreateInput

Returns:
  - *Video: Created entity
  - error: Storage errors
*/
func (service *Service) Create(context context.Context, adminID int64, input CreateInput) (*Video, error) {
	now := time.Now()

	video := &Video{
		Title:            input.Title,
		Description:      input.Description,
		FileURL:          input.FileURL,
		ThumbnailURL:     input.ThumbnailURL,
		DurationSeconds:  input.DurationSeconds,
		FileSizeBytes:    input.FileSizeBytes,
		Sport:            input.Sport,
		Category:         input.Category,
		DifficultyLevel:  input.DifficultyLevel,
		Tags:             input.Tags,
		Status:           StatusApproved,
		ModerationStatus: ModerationApproved,
		ModeratedBy:      &adminID,
		ModeratedAt:      &now,
		UploadedBy:       &adminID,
		UploadSource:     input.UploadSource,
		PublishedAt:      &now,
	}

	if err := service.repository.Create(context, video); err != nil {
		return nil, err
	}

	return video, nil
}

/*
Get returns one video by ID.
*/
func (service *Service) Get(context context.Context, id int64) (*Video, error) {
	return service.repository.FindByID(context, id)
}

/*
List returns a filtered, sorted, paginated page of videos plus the total
count matching the filter.
*/
func (service *Service) List(context context.Context, filter Filter) ([]ListItem, int, error) {
	results, total, err := service.repository.ListFiltered(context, filter)
	if err != nil {
		return nil, 0, err
	}

	return slice.Map(results, newListItem), total, nil
}

// UpdateInput holds optional changes to a video's content fields.
type UpdateInput struct {
	Title           *string
	Description     *string
	FileURL         *string
	ThumbnailURL    *string
	DurationSeconds *int
	FileSizeBytes   *int64
	Sport           *string
	Category        *string
	DifficultyLevel *string
	Tags            *string
}

/*
Update applies partial changes to a video's content fields. Moderation state
is untouched — that goes through [Service.Moderate].
*/
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Video, error) {
	video, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		video.Title = *input.Title
	}
	if input.Description != nil {
		video.Description = input.Description
	}
	if input.FileURL != nil {
		video.FileURL = *input.FileURL
	}
	if input.ThumbnailURL != nil {
		video.ThumbnailURL = input.ThumbnailURL
	}
	if input.DurationSeconds != nil {
		video.DurationSeconds = input.DurationSeconds
	}
	if input.FileSizeBytes != nil {
		video.FileSizeBytes = input.FileSizeBytes
	}
	if input.Sport != nil {
		video.Sport = *input.Sport
	}
	if input.Category != nil {
		video.Category = *input.Category
	}
	if input.DifficultyLevel != nil {
		video.DifficultyLevel = input.DifficultyLevel
	}
	if input.Tags != nil {
		video.Tags = input.Tags
	}

	if err := service.repository.Update(context, video); err != nil {
		return nil, err
	}

	return video, nil
}

// # Moderation Workflow

/*
Moderate applies one moderation action to a video and records it in the log.

Description: The action drives a fixed state machine:

  - approve: review approved, content approved, published now
  - reject:  review rejected, content rejected, unpublished
  - flag:    review rejected, content flagged, unpublished
  - unflag:  review approved, content approved, published now

The status update and the log row commit in one transaction.

Parameters:
  - context: context.Context
  - adminID: int64 (The deciding administrator)
  - videoID: int64
  - action: string (approve | reject | flag | unflag)
  - reason: *string (Optional justification, stored on both video and log)

Returns:
  - *Video: Updated entity
  - error: ValidationError, NotFound, or storage errors
*/
func (service *Service) Moderate(context context.Context, adminID, videoID int64, action string, reason *string) (*Video, error) {
	video, err := service.repository.FindByID(context, videoID)
	if err != nil {
		return nil, err
	}

	previousStatus := video.ModerationStatus
	now := time.Now()

	switch action {
	case ActionApprove, ActionUnflag:
		video.ModerationStatus = ModerationApproved
		video.Status = StatusApproved
		video.PublishedAt = &now
	case ActionReject:
		video.ModerationStatus = ModerationRejected
		video.Status = StatusRejected
		video.PublishedAt = nil
	case ActionFlag:
		video.ModerationStatus = ModerationRejected
		video.Status = StatusFlagged
		video.PublishedAt = nil
	default:
		return nil, apperr.ValidationError("Action must be one of: approve, reject, flag, unflag")
	}

	video.ModerationReason = reason
	video.ModeratedBy = &adminID
	video.ModeratedAt = &now

	log := &ModerationLog{
		VideoID:        videoID,
		AdminID:        adminID,
		Action:         action,
		Reason:         reason,
		PreviousStatus: pointer.To(previousStatus),
		NewStatus:      video.ModerationStatus,
	}

	if err := service.repository.ApplyModeration(context, video, log); err != nil {
		return nil, err
	}

	return video, nil
}

// BulkResult reports per-video outcomes of a bulk moderation run.
type BulkResult struct {
	Processed []int64 `json:"processed"`
	Failed    []int64 `json:"failed"`
}

/*
BulkModerate applies one action to many videos, collecting per-video outcomes
instead of failing the whole batch.
*/
func (service *Service) BulkModerate(context context.Context, adminID int64, videoIDs []int64, action string, reason *string) (*BulkResult, error) {
	// Reject bad actions up front rather than once per video.
	switch action {
	case ActionApprove, ActionReject, ActionFlag, ActionUnflag:
	default:
		return nil, apperr.ValidationError("Action must be one of: approve, reject, flag, unflag")
	}

	result := &BulkResult{Processed: []int64{}, Failed: []int64{}}
	for _, videoID := range videoIDs {
		if _, err := service.Moderate(context, adminID, videoID, action, reason); err != nil {
			result.Failed = append(result.Failed, videoID)
			continue
		}
		result.Processed = append(result.Processed, videoID)
	}

	return result, nil
}

/*
ModerationQueue returns unreviewed videos, oldest first, so the queue drains
in upload order.
*/
func (service *Service) ModerationQueue(context context.Context, offset, limit int) ([]ListItem, int, error) {
	return service.List(context, Filter{
		ModerationStatus: ModerationUnreviewed,
		SortBy:           "created_at",
		SortOrder:        "asc",
		Offset:           offset,
		Limit:            limit,
	})
}

/*
ModerationHistory returns the decision log for one video, newest first.
*/
func (service *Service) ModerationHistory(context context.Context, videoID int64) ([]*ModerationLog, error) {
	if _, err := service.repository.FindByID(context, videoID); err != nil {
		return nil, err
	}
	return service.repository.ListModerationLogs(context, videoID)
}

// # Deletion

/*
Delete removes a video from the catalog.

Description: By default the video is soft-deleted (status "deleted", review
rejected, unpublished) via the moderation path so the log captures who removed
it. Permanent removal drops the row.
*/
func (service *Service) Delete(context context.Context, adminID, videoID int64, permanent bool) error {
	video, err := service.repository.FindByID(context, videoID)
	if err != nil {
		return err
	}

	if permanent {
		return service.repository.Delete(context, videoID)
	}

	previousStatus := video.ModerationStatus
	now := time.Now()

	video.Status = StatusDeleted
	video.ModerationStatus = ModerationRejected
	video.ModeratedBy = &adminID
	video.ModeratedAt = &now
	video.PublishedAt = nil

	log := &ModerationLog{
		VideoID:        videoID,
		AdminID:        adminID,
		Action:         ActionReject,
		Reason:         pointer.To("Content removed from catalog"),
		PreviousStatus: pointer.To(previousStatus),
		NewStatus:      video.ModerationStatus,
	}

	return service.repository.ApplyModeration(context, video, log)
}
