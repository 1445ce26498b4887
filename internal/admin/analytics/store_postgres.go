// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athloshq/athlos/internal/platform/dberr"
)

// # Postgres Implementation

// PostgresRepository aggregates reporting data from the athletes table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a [PostgresRepository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// sportsClause builds a WHERE fragment matching athletes who play any of the
// given sports, as primary or secondary. Returns "" when no filter applies.
func sportsClause(sports []string, args *[]any) string {
	if len(sports) == 0 {
		return ""
	}

	conditions := make([]string, 0, len(sports))
	for _, sport := range sports {
		*args = append(*args, sport)
		primary := fmt.Sprintf("$%d", len(*args))
		*args = append(*args, "%"+sport+"%")
		secondary := fmt.Sprintf("$%d", len(*args))
		conditions = append(conditions, fmt.Sprintf("primary_sport = %s OR secondary_sports LIKE %s", primary, secondary))
	}

	return " WHERE (" + strings.Join(conditions, " OR ") + ")"
}

// Counts returns every registration counter in one round trip.
func (repository *PostgresRepository) Counts(context context.Context, sports []string) (*Counts, error) {
	var args []any
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE profile_completed),
			COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days'),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '60 days'
			             AND created_at <  NOW() - INTERVAL '30 days')
		FROM athletes` + sportsClause(sports, &args)

	counts := &Counts{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&counts.Total,
		&counts.Active,
		&counts.NewToday,
		&counts.NewThisWeek,
		&counts.NewThisMonth,
		&counts.PreviousMonth,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_analytics_repo_counts_failed")
	}

	return counts, nil
}

// RegistrationTrend groups signups per day server-side; zero days are absent.
func (repository *PostgresRepository) RegistrationTrend(context context.Context, sports []string, days int) ([]TimePoint, error) {
	var args []any
	where := sportsClause(sports, &args)

	args = append(args, days)
	cutoff := fmt.Sprintf("created_at >= CURRENT_DATE - make_interval(days => $%d)", len(args))
	if where == "" {
		where = " WHERE " + cutoff
	} else {
		where += " AND " + cutoff
	}

	query := `
		SELECT created_at::date AS day, COUNT(*)
		FROM athletes` + where + `
		GROUP BY day
		ORDER BY day ASC`

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_analytics_repo_trend_failed")
	}
	defer rows.Close()

	var trend []TimePoint
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, dberr.Wrap(err, "postgres_analytics_repo_trend_failed")
		}
		trend = append(trend, TimePoint{Date: day.Format(time.DateOnly), Value: count})
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_analytics_repo_trend_failed")
	}

	return trend, nil
}

// TopLocations returns the busiest cities, largest first.
func (repository *PostgresRepository) TopLocations(context context.Context, limit int) ([]CountRow, error) {
	query := `
		SELECT city, COUNT(*) AS count
		FROM athletes
		WHERE city IS NOT NULL
		GROUP BY city
		ORDER BY count DESC
		LIMIT $1`

	return repository.countRows(context, query, "postgres_analytics_repo_locations_failed", limit)
}

// SportCounts returns athlete counts per primary sport, largest first.
func (repository *PostgresRepository) SportCounts(context context.Context) ([]CountRow, error) {
	query := `
		SELECT primary_sport, COUNT(*) AS count
		FROM athletes
		WHERE primary_sport IS NOT NULL
		GROUP BY primary_sport
		ORDER BY count DESC`

	return repository.countRows(context, query, "postgres_analytics_repo_sports_failed")
}

// ExperienceCounts returns athlete counts per experience level, largest first.
func (repository *PostgresRepository) ExperienceCounts(context context.Context) ([]CountRow, error) {
	query := `
		SELECT experience_level, COUNT(*) AS count
		FROM athletes
		WHERE experience_level IS NOT NULL
		GROUP BY experience_level
		ORDER BY count DESC`

	return repository.countRows(context, query, "postgres_analytics_repo_experience_failed")
}

func (repository *PostgresRepository) countRows(context context.Context, query, action string, args ...any) ([]CountRow, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var results []CountRow
	for rows.Next() {
		var row CountRow
		if err := rows.Scan(&row.Label, &row.Count); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return results, nil
}
