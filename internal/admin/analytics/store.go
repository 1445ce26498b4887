// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package analytics

import "context"

// # Raw Aggregates

// Counts carries the registration counters one query returns.
type Counts struct {
	Total         int
	Active        int
	NewToday      int
	NewThisWeek   int
	NewThisMonth  int
	PreviousMonth int
}

// CountRow is one label/count pair of a grouped aggregate.
type CountRow struct {
	Label string
	Count int
}

// Repository aggregates athlete registration data for reporting.
type Repository interface {

	// Counts returns the registration counters, optionally restricted to
	// athletes playing any of the given sports.
	Counts(context context.Context, sports []string) (*Counts, error)

	// RegistrationTrend returns per-day signup counts for the last days
	// days. Days with no signups are absent; the service fills them in.
	RegistrationTrend(context context.Context, sports []string, days int) ([]TimePoint, error)

	// TopLocations returns the cities with the most athletes, largest
	// first, at most limit rows.
	TopLocations(context context.Context, limit int) ([]CountRow, error)

	// SportCounts returns athlete counts per primary sport, largest first.
	SportCounts(context context.Context) ([]CountRow, error)

	// ExperienceCounts returns athlete counts per experience level,
	// largest first.
	ExperienceCounts(context context.Context) ([]CountRow, error)
}
