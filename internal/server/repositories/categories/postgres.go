package categories

import (
	"context"
	"fmt"

	"github.com/ebalakin/cartsync/internal/dbx"
	"github.com/ebalakin/cartsync/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOrUpdate(ctx context.Context, category *models.Category) error {

	query :=
		`INSERT INTO categories (id, list_id, name, sort_order, updated_at, deleted)
		 VALUES ($1, $2, $3, $4, $5, false)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name,
		     sort_order = EXCLUDED.sort_order,
		     updated_at = EXCLUDED.updated_at
		 WHERE categories.list_id = EXCLUDED.list_id AND NOT categories.deleted
		 `

	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.ListID, category.Name, category.SortOrder, category.UpdatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Tombstone(ctx context.Context, listID, id string, t int64) error {

	query :=
		`INSERT INTO categories (id, list_id, name, sort_order, updated_at, deleted)
		 VALUES ($1, $2, '', 0, $3, true)
		 ON CONFLICT (id) DO UPDATE
		 SET deleted = true,
		     updated_at = EXCLUDED.updated_at
		 WHERE categories.list_id = EXCLUDED.list_id AND NOT categories.deleted
		 `

	if _, err := r.db.ExecContext(ctx, query, id, listID, t); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectUpdated(ctx context.Context, listID string, since int64) ([]models.Category, error) {

	query :=
		`SELECT id, list_id, name, sort_order, updated_at, deleted FROM categories
		 WHERE list_id = $1 AND updated_at > $2
		 ORDER BY updated_at
		 `

	rows, err := r.db.QueryContext(ctx, query, listID, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.ListID, &c.Name, &c.SortOrder, &c.UpdatedAt, &c.Deleted); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
