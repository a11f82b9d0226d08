// Package items provides the SQLite-backed local store for materialized
// shopping-list items.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ebalakin/cartsync/internal/client/models"
	"github.com/ebalakin/cartsync/internal/common"
	"github.com/ebalakin/cartsync/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetAll lists all non-deleted items of a list in insertion order.
func (r *SQLiteRepository) GetAll(ctx context.Context, listID string) ([]models.Item, error) {
	query := `SELECT id, list_id, category_id, text, completed, updated_at, deleted
		FROM items WHERE list_id=? AND deleted=0 ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns a single item by id, tombstoned rows included.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT id, list_id, category_id, text, completed, updated_at, deleted
		FROM items WHERE id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	var item models.Item
	var categoryID sql.NullString
	err := row.Scan(&item.ID, &item.ListID, &categoryID, &item.Text, &item.Completed, &item.UpdatedAt, &item.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	if categoryID.Valid {
		item.CategoryID = &categoryID.String
	}
	return &item, nil
}

// Put upserts an item by id. On conflict every mutable column is replaced;
// the server's copy of the row always wins locally.
func (r *SQLiteRepository) Put(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (id, list_id, category_id, text, completed, updated_at, deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category_id = excluded.category_id,
			text = excluded.text,
			completed = excluded.completed,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.ListID, nullable(item.CategoryID), item.Text, item.Completed, item.UpdatedAt, item.Deleted)
	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}
	return nil
}

// Delete physically removes an item row.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id=?`, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// ClearCategory reassigns every item of a category to NULL ("Uncategorized").
func (r *SQLiteRepository) ClearCategory(ctx context.Context, listID, categoryID string) error {
	query := `UPDATE items SET category_id=NULL WHERE list_id=? AND category_id=?`
	if _, err := r.db.ExecContext(ctx, query, listID, categoryID); err != nil {
		return fmt.Errorf("failed to clear category: %w", err)
	}
	return nil
}

// Clear removes all items of a list.
func (r *SQLiteRepository) Clear(ctx context.Context, listID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE list_id=?`, listID); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	return nil
}

func scanItem(rows *sql.Rows) (*models.Item, error) {
	var item models.Item
	var categoryID sql.NullString
	if err := rows.Scan(&item.ID, &item.ListID, &categoryID, &item.Text, &item.Completed, &item.UpdatedAt, &item.Deleted); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		item.CategoryID = &categoryID.String
	}
	return &item, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
