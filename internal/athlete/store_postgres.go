// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

// PostgreSQL implementation of the athlete repository.
package athlete

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athloshq/athlos/internal/platform/dberr"
	"github.com/athloshq/athlos/pkg/textnorm"
)

// # Athlete Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const athleteColumns = `id, email, full_name, is_active, created_at, updated_at,
		phone, date_of_birth, gender, height_cm, weight_kg,
		address, city, state, country, pincode,
		primary_sport, secondary_sports, experience_level, years_of_experience,
		current_team, coach_name, coach_contact,
		training_goals, preferred_training_time, availability_days,
		medical_conditions, allergies,
		emergency_contact_name, emergency_contact_phone, emergency_contact_relation,
		profile_completed`

// sortWhitelist maps client sort keys to real columns. Anything else falls
// back to created_at.
var sortWhitelist = map[string]string{
	"created_at":       "created_at",
	"updated_at":       "updated_at",
	"full_name":        "full_name",
	"email":            "email",
	"experience_level": "experience_level",
	"primary_sport":    "primary_sport",
}

// scanAthlete hydrates one entity from a row matching athleteColumns order.
func scanAthlete(row pgx.Row) (*Athlete, error) {
	athlete := &Athlete{}
	err := row.Scan(
		&athlete.ID,
		&athlete.Email,
		&athlete.FullName,
		&athlete.IsActive,
		&athlete.CreatedAt,
		&athlete.UpdatedAt,
		&athlete.Phone,
		&athlete.DateOfBirth,
		&athlete.Gender,
		&athlete.HeightCM,
		&athlete.WeightKG,
		&athlete.Address,
		&athlete.City,
		&athlete.State,
		&athlete.Country,
		&athlete.Pincode,
		&athlete.PrimarySport,
		&athlete.SecondarySports,
		&athlete.ExperienceLevel,
		&athlete.YearsOfExperience,
		&athlete.CurrentTeam,
		&athlete.CoachName,
		&athlete.CoachContact,
		&athlete.TrainingGoals,
		&athlete.PreferredTrainingTime,
		&athlete.AvailabilityDays,
		&athlete.MedicalConditions,
		&athlete.Allergies,
		&athlete.EmergencyContactName,
		&athlete.EmergencyContactPhone,
		&athlete.EmergencyContactRelation,
		&athlete.ProfileCompleted,
	)
	if err != nil {
		return nil, err
	}
	return athlete, nil
}

/*
FindByID retrieves an athlete profile by its numeric ID.
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE id = $1`

	athlete, err := scanAthlete(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_athlete_repo_find_by_id_failed")
	}

	return athlete, nil
}

/*
FindByEmail retrieves an athlete profile by its unique email address.
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE email = $1`

	athlete, err := scanAthlete(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_athlete_repo_find_by_email_failed")
	}

	return athlete, nil
}

/*
List returns a simple offset/limit page of profiles for the consumer API,
newest first.
*/
func (repository *PostgresRepository) List(context context.Context, params ListParams) ([]*Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes`
	if params.ActiveOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC, id DESC OFFSET $1 LIMIT $2`

	rows, err := repository.pool.Query(context, query, params.Offset, params.Limit)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_athlete_repo_list_failed")
	}
	defer rows.Close()

	return collectAthletes(rows)
}

// searchPattern folds the query term (lowercased, accent-stripped,
// whitespace-collapsed) into a substring LIKE pattern.
func searchPattern(term string) string {
	return "%" + textnorm.Fold(term) + "%"
}

// searchClause matches the folded pattern against the searchable columns.
// The columns go through unaccent so both sides of the ILIKE compare
// diacritic-free; ILIKE itself folds case.
func searchClause(placeholder string) string {
	return fmt.Sprintf(
		"(unaccent(full_name) ILIKE %[1]s OR unaccent(email) ILIKE %[1]s OR unaccent(primary_sport) ILIKE %[1]s)",
		placeholder)
}

/*
ListFiltered returns an admin listing page plus the total row count matching
the filter.

Description: The search term is folded and matched against unaccented columns
with ILIKE, so "José", "jose", and "JOSE" all find the same athlete. Sorting
is restricted to whitelisted columns with a stable secondary sort on id.
*/
func (repository *PostgresRepository) ListFiltered(context context.Context, filter Filter) ([]*Athlete, int, error) {
	var conditions []string
	var args []any

	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		conditions = append(conditions, searchClause(arg(searchPattern(filter.Search))))
	}

	if filter.Sport != "" {
		primary := arg(filter.Sport)
		secondary := arg("%" + filter.Sport + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(primary_sport = %s OR secondary_sports LIKE %s)", primary, secondary))
	}

	switch filter.Status {
	case "active":
		conditions = append(conditions, "is_active = TRUE")
	case "inactive":
		conditions = append(conditions, "is_active = FALSE")
	}

	if filter.ExperienceLevel != "" {
		conditions = append(conditions, "experience_level = "+arg(filter.ExperienceLevel))
	}

	if filter.Location != "" {
		conditions = append(conditions, "city ILIKE "+arg("%"+filter.Location+"%"))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Total count before pagination so has_next/has_prev stay consistent.
	var total int
	countQuery := `SELECT COUNT(*) FROM athletes` + whereClause
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_athlete_repo_count_failed")
	}

	sortColumn, ok := sortWhitelist[filter.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM athletes%s ORDER BY %s %s, id %s OFFSET %s LIMIT %s`,
		athleteColumns, whereClause, sortColumn, direction, direction,
		arg(filter.Offset), arg(filter.Limit))

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_athlete_repo_list_filtered_failed")
	}
	defer rows.Close()

	athletes, err := collectAthletes(rows)
	if err != nil {
		return nil, 0, err
	}

	return athletes, total, nil
}

/*
Create persists a new athlete profile. The database assigns the numeric ID,
which is written back into the entity.
*/
func (repository *PostgresRepository) Create(context context.Context, athlete *Athlete) error {
	const query = `
		INSERT INTO athletes (
			email, full_name, is_active, created_at, updated_at,
			phone, date_of_birth, gender, height_cm, weight_kg,
			address, city, state, country, pincode,
			primary_sport, secondary_sports, experience_level, years_of_experience,
			current_team, coach_name, coach_contact,
			training_goals, preferred_training_time, availability_days,
			medical_conditions, allergies,
			emergency_contact_name, emergency_contact_phone, emergency_contact_relation,
			profile_completed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31
		)
		RETURNING id`

	now := time.Now()
	if athlete.CreatedAt.IsZero() {
		athlete.CreatedAt = now
	}
	athlete.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		athlete.Email,
		athlete.FullName,
		athlete.IsActive,
		athlete.CreatedAt,
		athlete.UpdatedAt,
		athlete.Phone,
		athlete.DateOfBirth,
		athlete.Gender,
		athlete.HeightCM,
		athlete.WeightKG,
		athlete.Address,
		athlete.City,
		athlete.State,
		athlete.Country,
		athlete.Pincode,
		athlete.PrimarySport,
		athlete.SecondarySports,
		athlete.ExperienceLevel,
		athlete.YearsOfExperience,
		athlete.CurrentTeam,
		athlete.CoachName,
		athlete.CoachContact,
		athlete.TrainingGoals,
		athlete.PreferredTrainingTime,
		athlete.AvailabilityDays,
		athlete.MedicalConditions,
		athlete.Allergies,
		athlete.EmergencyContactName,
		athlete.EmergencyContactPhone,
		athlete.EmergencyContactRelation,
		athlete.ProfileCompleted,
	).Scan(&athlete.ID)

	if err != nil {
		return dberr.Wrap(err, "postgres_athlete_repo_create_failed")
	}

	return nil
}

/*
Update persists changes to an athlete's mutable profile fields.
*/
func (repository *PostgresRepository) Update(context context.Context, athlete *Athlete) error {
	const query = `
		UPDATE athletes SET
			email = $2, full_name = $3, updated_at = $4,
			phone = $5, date_of_birth = $6, gender = $7, height_cm = $8, weight_kg = $9,
			address = $10, city = $11, state = $12, country = $13, pincode = $14,
			primary_sport = $15, secondary_sports = $16, experience_level = $17,
			years_of_experience = $18, current_team = $19, coach_name = $20, coach_contact = $21,
			training_goals = $22, preferred_training_time = $23, availability_days = $24,
			medical_conditions = $25, allergies = $26,
			emergency_contact_name = $27, emergency_contact_phone = $28, emergency_contact_relation = $29,
			profile_completed = $30
		WHERE id = $1`

	athlete.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		athlete.ID,
		athlete.Email,
		athlete.FullName,
		athlete.UpdatedAt,
		athlete.Phone,
		athlete.DateOfBirth,
		athlete.Gender,
		athlete.HeightCM,
		athlete.WeightKG,
		athlete.Address,
		athlete.City,
		athlete.State,
		athlete.Country,
		athlete.Pincode,
		athlete.PrimarySport,
		athlete.SecondarySports,
		athlete.ExperienceLevel,
		athlete.YearsOfExperience,
		athlete.CurrentTeam,
		athlete.CoachName,
		athlete.CoachContact,
		athlete.TrainingGoals,
		athlete.PreferredTrainingTime,
		athlete.AvailabilityDays,
		athlete.MedicalConditions,
		athlete.Allergies,
		athlete.EmergencyContactName,
		athlete.EmergencyContactPhone,
		athlete.EmergencyContactRelation,
		athlete.ProfileCompleted,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_athlete_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
SetActive flips the profile's active flag.
*/
func (repository *PostgresRepository) SetActive(context context.Context, id int64, active bool) error {
	const query = `UPDATE athletes SET is_active = $2, updated_at = NOW() WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, active)
	if err != nil {
		return dberr.Wrap(err, "postgres_athlete_repo_set_active_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Delete permanently removes the profile row.
*/
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM athletes WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_athlete_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Stats aggregates population statistics for the admin dashboard.

Description: One pass over the table for the headline counters (using FILTER
clauses) plus two small GROUP BY queries for the sport and experience
breakdowns.
*/
func (repository *PostgresRepository) Stats(context context.Context) (*Stats, error) {
	const countQuery = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE profile_completed),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days')
		FROM athletes`

	stats := &Stats{}
	err := repository.pool.QueryRow(context, countQuery).Scan(
		&stats.TotalAthletes,
		&stats.ActiveAthletes,
		&stats.CompletedProfiles,
		&stats.NewThisMonth,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_athlete_repo_stats_failed")
	}

	if stats.TotalAthletes > 0 {
		stats.CompletionRate = float64(stats.CompletedProfiles) / float64(stats.TotalAthletes) * 100
	}

	const sportQuery = `
		SELECT primary_sport, COUNT(id)
		FROM athletes
		WHERE primary_sport IS NOT NULL
		GROUP BY primary_sport
		ORDER BY COUNT(id) DESC
		LIMIT 5`

	sportRows, err := repository.pool.Query(context, sportQuery)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_athlete_repo_sport_stats_failed")
	}
	defer sportRows.Close()

	for sportRows.Next() {
		var row SportCount
		if err := sportRows.Scan(&row.Sport, &row.Count); err != nil {
			return nil, fmt.Errorf("postgres_athlete_repo_sport_scan_failed: %w", err)
		}
		stats.TopSports = append(stats.TopSports, row)
	}
	if err := sportRows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_athlete_repo_sport_rows_failed: %w", err)
	}

	const levelQuery = `
		SELECT experience_level, COUNT(id)
		FROM athletes
		WHERE experience_level IS NOT NULL
		GROUP BY experience_level
		ORDER BY COUNT(id) DESC`

	levelRows, err := repository.pool.Query(context, levelQuery)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_athlete_repo_level_stats_failed")
	}
	defer levelRows.Close()

	for levelRows.Next() {
		var row LevelCount
		if err := levelRows.Scan(&row.Level, &row.Count); err != nil {
			return nil, fmt.Errorf("postgres_athlete_repo_level_scan_failed: %w", err)
		}
		stats.ExperienceDistribution = append(stats.ExperienceDistribution, row)
	}
	if err := levelRows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_athlete_repo_level_rows_failed: %w", err)
	}

	return stats, nil
}

// collectAthletes drains a result set into hydrated entities.
func collectAthletes(rows pgx.Rows) ([]*Athlete, error) {
	var athletes []*Athlete
	for rows.Next() {
		athlete, err := scanAthlete(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_athlete_repo_scan_failed: %w", err)
		}
		athletes = append(athletes, athlete)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_athlete_repo_rows_failed: %w", err)
	}
	return athletes, nil
}
