package categories

import (
	"context"

	"github.com/ebalakin/cartsync/internal/client/models"
)

// Repository describes local-store operations for category rows.
type Repository interface {
	// GetAll returns all non-deleted categories of a list in canonical order
	// (sort_order, ties broken by name).
	GetAll(ctx context.Context, listID string) ([]models.Category, error)

	// Get returns a category by id, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Category, error)

	// Put upserts a category by id.
	Put(ctx context.Context, category *models.Category) error

	// Delete physically removes a category row.
	Delete(ctx context.Context, id string) error

	// SetOrder rewrites each listed category's sort_order to its position.
	SetOrder(ctx context.Context, listID string, ids []string) error

	// Clear removes every category row of a list.
	Clear(ctx context.Context, listID string) error
}
