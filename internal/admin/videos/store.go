// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package videos

import "context"

// # Query Types

// Filter narrows and orders a video listing.
//
// SortBy is whitelisted in the storage layer with a stable secondary sort on
// id, same as the athlete listing.
type Filter struct {
	Search           string // Matches title, description, or tags.
	Sport            string
	Category         string
	Status           string
	ModerationStatus string
	DifficultyLevel  string
	SortBy           string
	SortOrder        string // "asc" | "desc" (default).
	Offset           int
	Limit            int
}

// # Video Data Access

// Repository defines the data access contract for video content.
type Repository interface {

	/*
		FindByID returns the video with the given numeric ID.
	*/
	FindByID(context context.Context, id int64) (*Video, error)

	/*
		ListFiltered returns a listing page plus the total row count matching
		the filter (before pagination).
	*/
	ListFiltered(context context.Context, filter Filter) ([]*Video, int, error)

	/*
		Create persists a new video. The database assigns the ID.
	*/
	Create(context context.Context, video *Video) error

	/*
		Update persists changes to content fields (title, categorization, URLs).
	*/
	Update(context context.Context, video *Video) error

	/*
		ApplyModeration atomically persists a moderation decision: the video's
		status fields and the corresponding append-only log row commit in one
		transaction, so the log can never disagree with the catalog.
	*/
	ApplyModeration(context context.Context, video *Video, log *ModerationLog) error

	/*
		Delete permanently removes the video row.
	*/
	Delete(context context.Context, id int64) error

	/*
		ListModerationLogs returns the decision history for one video, newest
		first.
	*/
	ListModerationLogs(context context.Context, videoID int64) ([]*ModerationLog, error)
}
