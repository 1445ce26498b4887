// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package athlete

import "context"

// # Query Types

// Filter narrows and orders an administrative athlete listing.
//
// SortBy is validated against a whitelist in the storage layer; unknown
// columns silently fall back to created_at. Every ordering gets a stable
// secondary sort on id so pagination never shuffles rows with equal keys.
type Filter struct {
	Search          string // Matches full name, email, or primary sport (folded).
	Sport           string // Primary or secondary sport.
	Status          string // "active" | "inactive" | "" (all).
	ExperienceLevel string
	Location        string // Substring match on city.
	SortBy          string
	SortOrder       string // "asc" | "desc" (default).
	Offset          int
	Limit           int
}

// ListParams bounds a consumer-facing listing.
type ListParams struct {
	Offset     int
	Limit      int
	ActiveOnly bool
}

// SportCount is one row of a sport popularity breakdown.
type SportCount struct {
	Sport string `json:"sport"`
	Count int    `json:"count"`
}

// LevelCount is one row of an experience-level breakdown.
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// Stats aggregates the athlete population for the admin dashboard.
type Stats struct {
	TotalAthletes          int          `json:"total_users"`
	ActiveAthletes         int          `json:"active_users"`
	CompletedProfiles      int          `json:"completed_profiles"`
	NewThisMonth           int          `json:"new_users_this_month"`
	CompletionRate         float64      `json:"completion_rate"`
	TopSports              []SportCount `json:"top_sports"`
	ExperienceDistribution []LevelCount `json:"experience_distribution"`
}

// # Athlete Data Access

// Repository defines the data access contract for athlete profiles. It serves
// both the consumer profile API and the admin user-management layer.
type Repository interface {

	/*
		FindByID returns the profile with the given numeric ID.

		Returns:
		  - *Athlete: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id int64) (*Athlete, error)

	/*
		FindByEmail returns the profile with the given email.
	*/
	FindByEmail(context context.Context, email string) (*Athlete, error)

	/*
		List returns a simple offset/limit page of profiles for the consumer API.
	*/
	List(context context.Context, params ListParams) ([]*Athlete, error)

	/*
		ListFiltered returns an admin listing page plus the total row count
		matching the filter (before pagination).
	*/
	ListFiltered(context context.Context, filter Filter) ([]*Athlete, int, error)

	/*
		Create persists a brand-new profile. The database assigns the ID.
	*/
	Create(context context.Context, athlete *Athlete) error

	/*
		Update persists changes to mutable profile fields.
	*/
	Update(context context.Context, athlete *Athlete) error

	/*
		SetActive flips the profile's active flag (soft delete / reinstate).
	*/
	SetActive(context context.Context, id int64, active bool) error

	/*
		Delete permanently removes the profile row.
	*/
	Delete(context context.Context, id int64) error

	/*
		Stats aggregates population statistics for the admin dashboard.
	*/
	Stats(context context.Context) (*Stats, error)
}
