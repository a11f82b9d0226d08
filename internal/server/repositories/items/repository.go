package items

import (
	"context"

	"github.com/ebalakin/cartsync/internal/server/models"
)

type Repository interface {
	// CreateOrUpdate upserts one item row. Writes to a tombstoned row are
	// silently dropped; deleting wins over any later field update.
	CreateOrUpdate(ctx context.Context, item *models.Item) error

	// Tombstone marks an item deleted at server time t. Unknown ids produce
	// a tombstone row, which makes retransmitted deletes harmless.
	Tombstone(ctx context.Context, listID, id string, t int64) error

	// SelectUpdated returns every row (tombstones included) whose server
	// timestamp is strictly greater than since.
	SelectUpdated(ctx context.Context, listID string, since int64) ([]models.Item, error)

	// ClearCategory detaches all live items of a category at server time t.
	ClearCategory(ctx context.Context, listID, categoryID string, t int64) error
}
