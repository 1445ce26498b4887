// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package item

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athloshq/athlos/internal/platform/dberr"
)

const itemColumns = `id, name, description, price, category, in_stock, created_at, updated_at`

// PostgresRepository implements Repository against the items table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a [PostgresRepository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanItem(row pgx.Row) (*Item, error) {
	item := &Item{}
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.InStock,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID returns one item by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_item_repo_find_by_id_failed")
	}

	return item, nil
}

// List returns a filtered page of items plus the total matching count.
func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Item, int, error) {
	var conditions []string
	var args []any

	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	if filter.InStock != nil {
		conditions = append(conditions, "in_stock = "+arg(*filter.InStock))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM items` + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_item_repo_count_failed")
	}

	listQuery := fmt.Sprintf(`SELECT `+itemColumns+` FROM items%s ORDER BY created_at DESC, id DESC OFFSET %s LIMIT %s`,
		where, arg(filter.Offset), arg(filter.Limit))

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_item_repo_list_failed")
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_item_repo_list_failed")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_item_repo_list_failed")
	}

	return items, total, nil
}

// Create inserts a new item and backfills its generated fields.
func (repository *PostgresRepository) Create(context context.Context, item *Item) error {
	query := `
		INSERT INTO items (name, description, price, category, in_stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := repository.pool.QueryRow(context, query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.InStock,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_item_repo_create_failed")
	}

	return nil
}

// Update persists the item's mutable fields.
func (repository *PostgresRepository) Update(context context.Context, item *Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, price = $3, category = $4,
		    in_stock = $5, updated_at = NOW()
		WHERE id = $6`

	tag, err := repository.pool.Exec(context, query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.InStock,
		item.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_item_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Delete removes an item permanently.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	tag, err := repository.pool.Exec(context, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_item_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
