package items

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

func (r *PostgresRepository) CreateOrUpdate(ctx context.Context, item *models.Item) error {

	// The category subselect resolves dangling or tombstoned category
	// references to NULL instead of failing the write. The conflict guard
	// keeps tombstoned rows immutable.
	query :=
		`INSERT INTO items (id, list_id, category_id, text, completed, updated_at, deleted)
		 VALUES ($1, $2,
		         (SELECT c.id FROM categories c WHERE c.id = $3 AND c.list_id = $2 AND NOT c.deleted),
		         $4, $5, $6, false)
		 ON CONFLICT (id) DO UPDATE
		 SET category_id = EXCLUDED.category_id,
		     text = EXCLUDED.text,
		     completed = EXCLUDED.completed,
		     updated_at = EXCLUDED.updated_at
		 WHERE items.list_id = EXCLUDED.list_id AND NOT items.deleted
		 `

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.ListID, nullable(item.CategoryID), item.Text, item.Completed, item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Tombstone(ctx context.Context, listID, id string, t int64) error {

	query :=
		`INSERT INTO items (id, list_id, category_id, text, completed, updated_at, deleted)
		 VALUES ($1, $2, NULL, '', false, $3, true)
		 ON CONFLICT (id) DO UPDATE
		 SET deleted = true,
		     category_id = NULL,
		     updated_at = EXCLUDED.updated_at
		 WHERE items.list_id = EXCLUDED.list_id AND NOT items.deleted
		 `

	if _, err := r.db.ExecContext(ctx, query, id, listID, t); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectUpdated(ctx context.Context, listID string, since int64) ([]models.Item, error) {

	query :=
		`SELECT id, list_id, category_id, text, completed, updated_at, deleted FROM items
		 WHERE list_id = $1 AND updated_at > $2
		 ORDER BY updated_at
		 `

	rows, err := r.db.QueryContext(ctx, query, listID, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.ListID, &it.CategoryID, &it.Text, &it.Completed, &it.UpdatedAt, &it.Deleted); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ClearCategory(ctx context.Context, listID, categoryID string, t int64) error {

	query :=
		`UPDATE items SET category_id = NULL, updated_at = $3
		 WHERE list_id = $1 AND category_id = $2 AND NOT deleted
		 `

	if _, err := r.db.ExecContext(ctx, query, listID, categoryID, t); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
