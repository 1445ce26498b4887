// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
Package videos implements the video content catalog and moderation workflow.

Videos enter the catalog either pre-approved (admin uploads) or pending
review (athlete uploads via the consumer API). Moderators drive a small state
machine — approve, reject, flag, unflag — and every transition is recorded in
an append-only moderation log.
*/
package videos

import "time"

// # Domain Entities

// Video represents one piece of video content in the catalog.
type Video struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	FileURL      string  `json:"file_url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`

	// DurationSeconds and FileSizeBytes are filled in by the transcoding
	// pipeline and may be absent for fresh uploads.
	DurationSeconds *int   `json:"duration,omitempty"`
	FileSizeBytes   *int64 `json:"file_size,omitempty"`

	// Content categorization
	Sport           string  `json:"sport"`
	Category        string  `json:"category"`
	DifficultyLevel *string `json:"difficulty_level,omitempty"`
	Tags            *string `json:"tags,omitempty"` // JSON-encoded list

	// Content status and moderation
	Status           string     `json:"status"`
	ModerationStatus string     `json:"moderation_status"`
	ModerationReason *string    `json:"moderation_reason,omitempty"`
	ModeratedBy      *int64     `json:"moderated_by,omitempty"`
	ModeratedAt      *time.Time `json:"moderated_at,omitempty"`

	// Upload information
	UploadedBy   *int64  `json:"uploaded_by,omitempty"`
	UploadSource *string `json:"upload_source,omitempty"`

	// Engagement metrics
	ViewCount    int `json:"view_count"`
	LikeCount    int `json:"like_count"`
	DislikeCount int `json:"dislike_count"`
	ShareCount   int `json:"share_count"`

	// Timestamps
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// ModerationLog is one append-only record of a moderation decision.
type ModerationLog struct {
	ID             int64     `json:"id"`
	VideoID        int64     `json:"video_id"`
	AdminID        int64     `json:"admin_id"`
	Action         string    `json:"action"`
	Reason         *string   `json:"reason,omitempty"`
	PreviousStatus *string   `json:"previous_status,omitempty"`
	NewStatus      string    `json:"new_status"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListItem is the condensed video row shown in dashboard listings.
type ListItem struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Sport            string     `json:"sport"`
	Category         string     `json:"category"`
	Status           string     `json:"status"`
	ModerationStatus string     `json:"moderation_status"`
	ViewCount        int        `json:"view_count"`
	DurationSeconds  *int       `json:"duration,omitempty"`
	ThumbnailURL     *string    `json:"thumbnail_url,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
}

// newListItem condenses an entity for listing responses.
func newListItem(v *Video) ListItem {
	return ListItem{
		ID:               v.ID,
		Title:            v.Title,
		Sport:            v.Sport,
		Category:         v.Category,
		Status:           v.Status,
		ModerationStatus: v.ModerationStatus,
		ViewCount:        v.ViewCount,
		DurationSeconds:  v.DurationSeconds,
		ThumbnailURL:     v.ThumbnailURL,
		CreatedAt:        v.CreatedAt,
		PublishedAt:      v.PublishedAt,
	}
}

// # Status Machine

// Content statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusFlagged  = "flagged"
	StatusDeleted  = "deleted"
)

// Moderation review statuses.
const (
	ModerationUnreviewed = "unreviewed"
	ModerationApproved   = "approved"
	ModerationRejected   = "rejected"
)

// Moderation actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionFlag    = "flag"
	ActionUnflag  = "unflag"
)

// # Category Taxonomy

// Categories lists the recognized content categories.
var Categories = []string{"tutorial", "workout", "technique", "match", "training"}

// DifficultyLevels lists the recognized difficulty labels.
var DifficultyLevels = []string{"beginner", "intermediate", "advanced"}

// Sports lists the sports the catalog is organized by.
var Sports = []string{
	"football", "basketball", "tennis", "cricket", "swimming",
	"athletics", "badminton", "volleyball", "hockey", "boxing",
}

// Statuses lists every content status a filter may ask for.
var Statuses = []string{StatusPending, StatusApproved, StatusRejected, StatusFlagged, StatusDeleted}

// ModerationStatuses lists every review status a filter may ask for.
var ModerationStatuses = []string{ModerationUnreviewed, ModerationApproved, ModerationRejected}

// # Field Identifiers

const (
	FieldTitle            = "title"
	FieldFileURL          = "file_url"
	FieldSport            = "sport"
	FieldCategory         = "category"
	FieldDifficultyLevel  = "difficulty_level"
	FieldStatus           = "status"
	FieldModerationStatus = "moderation_status"
	FieldAction           = "action"
	FieldVideoIDs         = "video_ids"
)
