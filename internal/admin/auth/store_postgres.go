// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

// PostgreSQL implementation of the admin account repository.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types via [dberr.Wrap] to avoid leaking storage
// implementation details.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athloshq/athlos/internal/platform/dberr"
)

// # Admin Repository

// PostgresAdminRepository implements the AdminRepository interface using pgx.
type PostgresAdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new PostgreSQL implementation of the AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{pool: pool}
}

const adminColumns = `id, email, password_hash, full_name, role, permissions, is_active, last_login, created_at, updated_at`

/*
FindByID retrieves an admin account by its numeric ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Admin: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAdminRepository) FindByID(context context.Context, id int64) (*Admin, error) {
	const query = `
		SELECT ` + adminColumns + `
		FROM admin_users
		WHERE id = $1`

	admin := &Admin{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.FullName,
		&admin.Role,
		&admin.Permissions,
		&admin.IsActive,
		&admin.LastLogin,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "postgres_admin_repo_find_by_id_failed")
	}

	return admin, nil
}

/*
FindByEmail retrieves an admin account by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Admin: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAdminRepository) FindByEmail(context context.Context, email string) (*Admin, error) {
	const query = `
		SELECT ` + adminColumns + `
		FROM admin_users
		WHERE email = $1`

	admin := &Admin{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.FullName,
		&admin.Role,
		&admin.Permissions,
		&admin.IsActive,
		&admin.LastLogin,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "postgres_admin_repo_find_by_email_failed")
	}

	return admin, nil
}

/*
List returns every administrator account ordered by creation time, newest first.

Parameters:
  - context: context.Context

Returns:
  - []*Admin: Hydrated account entities
  - error: Database retrieval failures
*/
func (repository *PostgresAdminRepository) List(context context.Context) ([]*Admin, error) {
	const query = `
		SELECT ` + adminColumns + `
		FROM admin_users
		ORDER BY created_at DESC, id DESC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_admin_repo_list_failed")
	}
	defer rows.Close()

	var admins []*Admin
	for rows.Next() {
		admin := &Admin{}
		if err := rows.Scan(
			&admin.ID,
			&admin.Email,
			&admin.PasswordHash,
			&admin.FullName,
			&admin.Role,
			&admin.Permissions,
			&admin.IsActive,
			&admin.LastLogin,
			&admin.CreatedAt,
			&admin.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_admin_repo_scan_failed: %w", err)
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_admin_repo_rows_failed: %w", err)
	}

	return admins, nil
}

/*
Create persists a new admin record. The database assigns the numeric ID,
which is written back into the entity.

Parameters:
  - context: context.Context
  - admin: *Admin (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresAdminRepository) Create(context context.Context, admin *Admin) error {
	const query = `
		INSERT INTO admin_users (
			email, password_hash, full_name, role, permissions, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	now := time.Now()
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	admin.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		admin.Email,
		admin.PasswordHash,
		admin.FullName,
		admin.Role,
		admin.Permissions,
		admin.IsActive,
		admin.CreatedAt,
		admin.UpdatedAt,
	).Scan(&admin.ID)

	if err != nil {
		return dberr.Wrap(err, "postgres_admin_repo_create_failed")
	}

	return nil
}

/*
Update persists changes to an admin's mutable profile fields.

Parameters:
  - context: context.Context
  - admin: *Admin

Returns:
  - error: Persistence failures
*/
func (repository *PostgresAdminRepository) Update(context context.Context, admin *Admin) error {
	const query = `
		UPDATE admin_users
		SET email = $2, full_name = $3, role = $4, updated_at = $5
		WHERE id = $1`

	admin.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		admin.ID,
		admin.Email,
		admin.FullName,
		admin.Role,
		admin.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_admin_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
UpdatePermissions replaces only the encoded permission blob for the account.

Parameters:
  - context: context.Context
  - adminID: int64
  - encoded: string (Canonical list-form JSON encoding)

Returns:
  - error: Persistence failures
*/
func (repository *PostgresAdminRepository) UpdatePermissions(context context.Context, adminID int64, encoded string) error {
	const query = `
		UPDATE admin_users
		SET permissions = $2, updated_at = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, adminID, encoded)
	if err != nil {
		return dberr.Wrap(err, "postgres_admin_repo_update_permissions_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
SetActive flips the account's active flag. Deactivation takes effect on the
next guarded request because the guard checks the live record.

Parameters:
  - context: context.Context
  - adminID: int64
  - active: bool

Returns:
  - error: Persistence failures
*/
func (repository *PostgresAdminRepository) SetActive(context context.Context, adminID int64, active bool) error {
	const query = `
		UPDATE admin_users
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, adminID, active)
	if err != nil {
		return dberr.Wrap(err, "postgres_admin_repo_set_active_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
StampLastLogin records the current time as the account's last successful login.

Parameters:
  - context: context.Context
  - adminID: int64

Returns:
  - error: Persistence failures
*/
func (repository *PostgresAdminRepository) StampLastLogin(context context.Context, adminID int64) error {
	const query = `
		UPDATE admin_users
		SET last_login = NOW()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, adminID)
	if err != nil {
		return dberr.Wrap(err, "postgres_admin_repo_stamp_last_login_failed")
	}

	return nil
}

/*
Delete permanently removes the account row. There is no soft-delete for
administrator accounts; deactivation is the reversible alternative.

Parameters:
  - context: context.Context
  - adminID: int64

Returns:
  - error: Persistence failures
*/
func (repository *PostgresAdminRepository) Delete(context context.Context, adminID int64) error {
	const query = `DELETE FROM admin_users WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, adminID)
	if err != nil {
		return dberr.Wrap(err, "postgres_admin_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
