// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

// PostgreSQL implementation of the video content repository.
package videos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athloshq/athlos/internal/platform/dberr"
)

// # Video Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const videoColumns = `id, title, description, file_url, thumbnail_url,
		duration_seconds, file_size_bytes,
		sport, category, difficulty_level, tags,
		status, moderation_status, moderation_reason, moderated_by, moderated_at,
		uploaded_by, upload_source,
		view_count, like_count, dislike_count, share_count,
		created_at, updated_at, published_at`

// videoSortWhitelist maps client sort keys to real columns.
var videoSortWhitelist = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"published_at": "published_at",
	"title":        "title",
	"view_count":   "view_count",
	"like_count":   "like_count",
}

// scanVideo hydrates one entity from a row matching videoColumns order.
func scanVideo(row pgx.Row) (*Video, error) {
	video := &Video{}
	err := row.Scan(
		&video.ID,
		&video.Title,
		&video.Description,
		&video.FileURL,
		&video.ThumbnailURL,
		&video.DurationSeconds,
		&video.FileSizeBytes,
		&video.Sport,
		&video.Category,
		&video.DifficultyLevel,
		&video.Tags,
		&video.Status,
		&video.ModerationStatus,
		&video.ModerationReason,
		&video.ModeratedBy,
		&video.ModeratedAt,
		&video.UploadedBy,
		&video.UploadSource,
		&video.ViewCount,
		&video.LikeCount,
		&video.DislikeCount,
		&video.ShareCount,
		&video.CreatedAt,
		&video.UpdatedAt,
		&video.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

/*
FindByID retrieves a video by its numeric ID.
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM video_content WHERE id = $1`

	video, err := scanVideo(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_video_repo_find_by_id_failed")
	}

	return video, nil
}

/*
ListFiltered returns a listing page plus the total row count matching the filter.
*/
func (repository *PostgresRepository) ListFiltered(context context.Context, filter Filter) ([]*Video, int, error) {
	var conditions []string
	var args []any

	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		placeholder := arg(pattern)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE %[1]s OR description ILIKE %[1]s OR tags ILIKE %[1]s)", placeholder))
	}
	if filter.Sport != "" {
		conditions = append(conditions, "sport = "+arg(filter.Sport))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(filter.Status))
	}
	if filter.ModerationStatus != "" {
		conditions = append(conditions, "moderation_status = "+arg(filter.ModerationStatus))
	}
	if filter.DifficultyLevel != "" {
		conditions = append(conditions, "difficulty_level = "+arg(filter.DifficultyLevel))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM video_content` + whereClause
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_video_repo_count_failed")
	}

	sortColumn, ok := videoSortWhitelist[filter.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM video_content%s ORDER BY %s %s, id %s OFFSET %s LIMIT %s`,
		videoColumns, whereClause, sortColumn, direction, direction,
		arg(filter.Offset), arg(filter.Limit))

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_video_repo_list_filtered_failed")
	}
	defer rows.Close()

	var results []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_video_repo_scan_failed: %w", err)
		}
		results = append(results, video)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_rows_failed: %w", err)
	}

	return results, total, nil
}

/*
Create persists a new video entry. The database assigns the numeric ID, which
is written back into the entity.
*/
func (repository *PostgresRepository) Create(context context.Context, video *Video) error {
	const query = `
		INSERT INTO video_content (
			title, description, file_url, thumbnail_url,
			duration_seconds, file_size_bytes,
			sport, category, difficulty_level, tags,
			status, moderation_status, moderation_reason, moderated_by, moderated_at,
			uploaded_by, upload_source,
			view_count, like_count, dislike_count, share_count,
			created_at, updated_at, published_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24
		)
		RETURNING id`

	now := time.Now()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		video.Title,
		video.Description,
		video.FileURL,
		video.ThumbnailURL,
		video.DurationSeconds,
		video.FileSizeBytes,
		video.Sport,
		video.Category,
		video.DifficultyLevel,
		video.Tags,
		video.Status,
		video.ModerationStatus,
		video.ModerationReason,
		video.ModeratedBy,
		video.ModeratedAt,
		video.UploadedBy,
		video.UploadSource,
		video.ViewCount,
		video.LikeCount,
		video.DislikeCount,
		video.ShareCount,
		video.CreatedAt,
		video.UpdatedAt,
		video.PublishedAt,
	).Scan(&video.ID)

	if err != nil {
		return dberr.Wrap(err, "postgres_video_repo_create_failed")
	}

	return nil
}

/*
Update persists changes to content fields.
*/
func (repository *PostgresRepository) Update(context context.Context, video *Video) error {
	const query = `
		UPDATE video_content SET
			title = $2, description = $3, file_url = $4, thumbnail_url = $5,
			duration_seconds = $6, file_size_bytes = $7,
			sport = $8, category = $9, difficulty_level = $10, tags = $11,
			updated_at = $12
		WHERE id = $1`

	video.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		video.ID,
		video.Title,
		video.Description,
		video.FileURL,
		video.ThumbnailURL,
		video.DurationSeconds,
		video.FileSizeBytes,
		video.Sport,
		video.Category,
		video.DifficultyLevel,
		video.Tags,
		video.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_video_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
ApplyModeration atomically persists a moderation decision and its log row.
*/
func (repository *PostgresRepository) ApplyModeration(context context.Context, video *Video, log *ModerationLog) error {
	const updateQuery = `
		UPDATE video_content SET
			status = $2, moderation_status = $3, moderation_reason = $4,
			moderated_by = $5, moderated_at = $6, published_at = $7, updated_at = $8
		WHERE id = $1`

	const logQuery = `
		INSERT INTO video_moderation_logs (
			video_id, admin_id, action, reason, previous_status, new_status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_moderation_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	video.UpdatedAt = time.Now()

	tag, err := transaction.Exec(context, updateQuery,
		video.ID,
		video.Status,
		video.ModerationStatus,
		video.ModerationReason,
		video.ModeratedBy,
		video.ModeratedAt,
		video.PublishedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_video_repo_moderation_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	log.CreatedAt = time.Now()
	err = transaction.QueryRow(context, logQuery,
		log.VideoID,
		log.AdminID,
		log.Action,
		log.Reason,
		log.PreviousStatus,
		log.NewStatus,
		log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return dberr.Wrap(err, "postgres_video_repo_moderation_log_failed")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_video_repo_moderation_commit_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes the video row.
*/
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM video_content WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_video_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
ListModerationLogs returns the decision history for one video, newest first.
*/
func (repository *PostgresRepository) ListModerationLogs(context context.Context, videoID int64) ([]*ModerationLog, error) {
	const query = `
		SELECT id, video_id, admin_id, action, reason, previous_status, new_status, created_at
		FROM video_moderation_logs
		WHERE video_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := repository.pool.Query(context, query, videoID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_video_repo_list_logs_failed")
	}
	defer rows.Close()

	var logs []*ModerationLog
	for rows.Next() {
		log := &ModerationLog{}
		if err := rows.Scan(
			&log.ID,
			&log.VideoID,
			&log.AdminID,
			&log.Action,
			&log.Reason,
			&log.PreviousStatus,
			&log.NewStatus,
			&log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_video_repo_log_scan_failed: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_video_repo_log_rows_failed: %w", err)
	}

	return logs, nil
}
