package categories

import (
	"context"

	"github.com/ebalakin/cartsync/internal/server/models"
)

type Repository interface {
	// CreateOrUpdate upserts one category row. Tombstoned rows stay immutable.
	CreateOrUpdate(ctx context.Context, category *models.Category) error

	// Tombstone marks a category deleted at server time t.
	Tombstone(ctx context.Context, listID, id string, t int64) error

	// SelectUpdated returns every row (tombstones included) whose server
	// timestamp is strictly greater than since.
	SelectUpdated(ctx context.Context, listID string, since int64) ([]models.Category, error)
}
