// Package categories provides the SQLite-backed local store for materialized
// shopping-list categories.
package categories

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

// GetAll lists all non-deleted categories of a list in canonical order.
func (r *SQLiteRepository) GetAll(ctx context.Context, listID string) ([]models.Category, error) {
	query := `SELECT id, list_id, name, sort_order, updated_at, deleted
		FROM categories WHERE list_id=? AND deleted=0 ORDER BY sort_order, name`
	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.ListID, &c.Name, &c.SortOrder, &c.UpdatedAt, &c.Deleted); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns a single category by id, tombstoned rows included.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Category, error) {
	query := `SELECT id, list_id, name, sort_order, updated_at, deleted FROM categories WHERE id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	var c models.Category
	err := row.Scan(&c.ID, &c.ListID, &c.Name, &c.SortOrder, &c.UpdatedAt, &c.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &c, nil
}

// Put upserts a category by id.
func (r *SQLiteRepository) Put(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (id, list_id, name, sort_order, updated_at, deleted)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sort_order = excluded.sort_order,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.ListID, category.Name, category.SortOrder, category.UpdatedAt, category.Deleted)
	if err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}
	return nil
}

// Delete physically removes a category row.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=?`, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// SetOrder rewrites sort_order by position in ids. Ids unknown locally are
// skipped; they arrive through the same response's category changes.
func (r *SQLiteRepository) SetOrder(ctx context.Context, listID string, ids []string) error {
	for pos, id := range ids {
		query := `UPDATE categories SET sort_order=? WHERE list_id=? AND id=?`
		if _, err := r.db.ExecContext(ctx, query, pos, listID, id); err != nil {
			return fmt.Errorf("failed to set category order: %w", err)
		}
	}
	return nil
}

// Clear removes all categories of a list.
func (r *SQLiteRepository) Clear(ctx context.Context, listID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE list_id=?`, listID); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	return nil
}
