package items

import (
	"context"

	"github.com/ebalakin/cartsync/internal/client/models"
)

// Repository describes local-store operations for item rows.
// Implementations are backed by the client's SQLite database.
type Repository interface {
	// GetAll returns all non-deleted items of a list.
	GetAll(ctx context.Context, listID string) ([]models.Item, error)

	// Get returns an item by id, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Item, error)

	// Put upserts an item by id.
	Put(ctx context.Context, item *models.Item) error

	// Delete physically removes an item row. Used only for rows the server
	// reports as already-deleted, so the device need not keep tombstones.
	Delete(ctx context.Context, id string) error

	// ClearCategory moves all items of a category to "Uncategorized".
	ClearCategory(ctx context.Context, listID, categoryID string) error

	// Clear removes every item row of a list.
	Clear(ctx context.Context, listID string) error
}
